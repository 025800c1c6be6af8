package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/testutil"
)

// pageTexts reads each page on its own, as the reference for concatenation.
func pageTexts(t *testing.T, data []byte) []string {
	t.Helper()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var texts []string
	for i := 1; i <= r.NumPage(); i++ {
		text, err := r.Page(i).GetPlainText(nil)
		require.NoError(t, err)
		texts = append(texts, text)
	}
	return texts
}

func TestExtractTextSinglePage(t *testing.T) {
	data := testutil.BuildPDF("Experienced engineer")

	text, err := NewPDFParserService().ExtractText(bytes.NewReader(data), int64(len(data)))

	require.NoError(t, err)
	assert.Contains(t, text, "Experienced engineer")
}

func TestExtractTextConcatenatesPagesInOrder(t *testing.T) {
	data := testutil.BuildPDF("First page", "Second page", "Third page")

	text, err := NewPDFParserService().ExtractText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, strings.Join(pageTexts(t, data), ""), text)

	first := strings.Index(text, "First page")
	second := strings.Index(text, "Second page")
	third := strings.Index(text, "Third page")
	require.True(t, first >= 0 && second >= 0 && third >= 0, "missing page text in %q", text)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestExtractTextMissingInput(t *testing.T) {
	parser := NewPDFParserService()

	_, err := parser.ExtractText(nil, 100)
	assert.ErrorIs(t, err, apperrors.ErrMissingInput)

	_, err = parser.ExtractText(bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, apperrors.ErrMissingInput)
}

func TestExtractTextCorruptFile(t *testing.T) {
	valid := testutil.BuildPDF("Experienced engineer")

	tests := []struct {
		name string
		data []byte
	}{
		{"not a pdf", []byte("this is not a PDF document, just some plain text padding it out")},
		{"truncated", valid[:len(valid)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewPDFParserService().ExtractText(bytes.NewReader(tt.data), int64(len(tt.data)))

			assert.ErrorIs(t, err, apperrors.ErrExtraction)
			assert.Empty(t, text)
		})
	}
}

func TestExtractTextBlankPDF(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"empty page", ""},
		{"whitespace only", "     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testutil.BuildPDF(tt.page)

			text, err := NewPDFParserService().ExtractText(bytes.NewReader(data), int64(len(data)))

			assert.ErrorIs(t, err, apperrors.ErrExtraction)
			assert.Contains(t, err.Error(), "no text content found")
			assert.Empty(t, text)
		})
	}
}
