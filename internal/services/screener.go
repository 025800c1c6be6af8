package services

import (
	"context"
	"io"
	"log"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/models"
)

// Submission is everything one press of "submit" collects.
type Submission struct {
	RoleTags       []string
	JobDescription string
	Resume         io.ReaderAt
	ResumeSize     int64
	ResumeName     string
}

// Outcome carries the raw completion plus, when the model followed the
// requested format, its structured view.
type Outcome struct {
	Result     string
	Feedback   *models.Feedback
	ParseError string
}

type ScreenerService interface {
	Screen(ctx context.Context, sub Submission) (*Outcome, error)
}

type screenerService struct {
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	completion    CompletionClient
}

func NewScreenerService(pdfParser PDFParserService, completion CompletionClient) ScreenerService {
	return &screenerService{
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		completion:    completion,
	}
}

// Screen runs extract, build, complete in sequence and stops at the first
// failure. Nothing from a failed step is carried forward.
func (s *screenerService) Screen(ctx context.Context, sub Submission) (*Outcome, error) {
	if sub.Resume == nil || sub.ResumeSize <= 0 {
		return nil, apperrors.MissingInput("please upload a PDF resume")
	}

	resumeText, err := s.pdfParser.ExtractText(sub.Resume, sub.ResumeSize)
	if err != nil {
		if apperrors.Kind(err) == apperrors.KindInternal {
			err = apperrors.Extraction(err)
		}
		log.Printf("❌ Failed to extract %q: %v", sub.ResumeName, err)
		return nil, err
	}

	prompt := s.promptBuilder.BuildScreeningPrompt(sub.RoleTags, sub.JobDescription, resumeText)
	log.Printf("📝 Screening prompt length: %d characters", len(prompt))

	log.Println("🤖 Analyzing resume...")
	raw, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		if apperrors.Kind(err) == apperrors.KindInternal {
			err = apperrors.Generation(err)
		}
		log.Printf("❌ Screening failed: %v", err)
		return nil, err
	}

	outcome := &Outcome{Result: raw}
	if feedback, err := ParseFeedback(raw); err != nil {
		outcome.ParseError = err.Error()
	} else {
		outcome.Feedback = feedback
	}

	log.Printf("✅ Screening completed: %d characters", len(raw))

	return outcome, nil
}
