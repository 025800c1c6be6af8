package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/models"
)

type Handlers struct {
	UI        *UIHandler
	Screen    *ScreenHandler
	Screening *ScreeningHandler
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.UI.HandleIndex)

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/roles", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"roles": models.RoleTags,
		})
	})

	api.Post("/screen", h.Screen.HandleScreen)
	api.Post("/screenings", h.Screening.HandleSubmit)
	api.Get("/screenings/:id", h.Screening.HandleGet)
}

// ErrorHandler renders every error as {"error", "kind", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := apperrors.HTTPStatus(err)
	kind := apperrors.Kind(err)

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		switch {
		case code == fiber.StatusNotFound:
			kind = apperrors.KindNotFound
		case code < fiber.StatusInternalServerError:
			kind = apperrors.KindInvalidInput
		}
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  kind,
		"code":  code,
	})
}
