package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-screener/internal/models"
	"alfredoptarigan/ats-screener/internal/services"
)

type ScreenHandler struct {
	screener    services.ScreenerService
	maxFileSize int64
}

func NewScreenHandler(screener services.ScreenerService, maxFileSize int64) *ScreenHandler {
	return &ScreenHandler{
		screener:    screener,
		maxFileSize: maxFileSize,
	}
}

// HandleScreen handles POST /screen and answers once the model replied.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	req, file, err := parseSubmission(c, h.maxFileSize)
	if err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	outcome, err := h.screener.Screen(c.UserContext(), services.Submission{
		RoleTags:       req.RoleTags,
		JobDescription: req.JobDescription,
		Resume:         src,
		ResumeSize:     file.Size,
		ResumeName:     file.Filename,
	})
	if err != nil {
		return err
	}

	return c.JSON(models.ScreenResponse{
		Status:     string(models.StatusCompleted),
		Result:     outcome.Result,
		Feedback:   outcome.Feedback,
		ParseError: outcome.ParseError,
	})
}
