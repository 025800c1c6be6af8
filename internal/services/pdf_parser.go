package services

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/ats-screener/internal/apperrors"
)

type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText concatenates the plain text of every page, in page order and
// with no separator. It returns either the whole text or an error, never a
// partial result.
func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	if r == nil || size <= 0 {
		return "", apperrors.MissingInput("please upload a PDF resume")
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = apperrors.Extraction(fmt.Errorf("malformed PDF: %v", rec))
		}
	}()

	log.Printf("📄 Extracting text from PDF (%d bytes)...", size)

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", apperrors.Extraction(fmt.Errorf("failed to open PDF: %w", err))
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", apperrors.Extraction(fmt.Errorf("failed to read page %d: %w", pageIndex, err))
		}

		textBuilder.WriteString(pageText)
	}

	text = textBuilder.String()
	// Whitespace alone gives the model nothing to screen.
	if strings.TrimSpace(text) == "" {
		return "", apperrors.Extraction(fmt.Errorf("no text content found in PDF"))
	}

	log.Printf("✅ Extracted %d pages, %d characters", totalPage, len(text))

	return text, nil
}
