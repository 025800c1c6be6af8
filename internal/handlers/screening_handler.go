package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/models"
	"alfredoptarigan/ats-screener/internal/repositories"
	"alfredoptarigan/ats-screener/internal/services"
)

type ScreeningHandler struct {
	screeningRepo repositories.ScreeningRepository
	storage       services.StorageService
	worker        services.Worker
	maxFileSize   int64
}

func NewScreeningHandler(
	screeningRepo repositories.ScreeningRepository,
	storage services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *ScreeningHandler {
	return &ScreeningHandler{
		screeningRepo: screeningRepo,
		storage:       storage,
		worker:        worker,
		maxFileSize:   maxFileSize,
	}
}

// HandleSubmit handles POST /screenings
func (h *ScreeningHandler) HandleSubmit(c *fiber.Ctx) error {
	req, file, err := parseSubmission(c, h.maxFileSize)
	if err != nil {
		return err
	}

	spoolFile, err := h.storage.SaveFile(file)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	screening := &models.Screening{
		ID:        uuid.New(),
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.screeningRepo.Create(ctx, screening); err != nil {
		// Cleanup spooled file if the task cannot be recorded
		h.storage.DeleteFile(spoolFile)
		return err
	}

	err = h.worker.EnqueueJob(services.ScreeningJob{
		ID:             screening.ID,
		RoleTags:       req.RoleTags,
		JobDescription: req.JobDescription,
		SpoolFile:      spoolFile,
		OriginalName:   file.Filename,
	})
	if err != nil {
		h.storage.DeleteFile(spoolFile)
		if uerr := h.screeningRepo.UpdateError(ctx, screening.ID, apperrors.Kind(err), err.Error()); uerr != nil {
			log.Printf("⚠️  Failed to record rejected screening %s: %v\n", screening.ID, uerr)
		}
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ScreeningAcceptedResponse{
		ID:     screening.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGet handles GET /screenings/:id
func (h *ScreeningHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid screening ID format")
	}

	screening, err := h.screeningRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	response := models.ScreeningResultResponse{
		ID:     screening.ID.String(),
		Status: string(screening.Status),
	}

	if !screening.Status.IsTerminal() {
		// Tell pollers when to come back.
		c.Set(fiber.HeaderRetryAfter, "1")
	}

	switch screening.Status {
	case models.StatusCompleted:
		response.Result = screening.Result
		if screening.Result != nil {
			if feedback, err := services.ParseFeedback(*screening.Result); err != nil {
				response.ParseError = err.Error()
			} else {
				response.Feedback = feedback
			}
		}
	case models.StatusFailed:
		response.Error = screening.ErrorMessage
		response.ErrorKind = screening.ErrorKind
	}

	return c.JSON(response)
}
