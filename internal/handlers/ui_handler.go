package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-screener/internal/models"
	"alfredoptarigan/ats-screener/internal/web"
)

const appTitle = "ATS Resume Screener"

type UIHandler struct {
	maxFileSize int64
}

func NewUIHandler(maxFileSize int64) *UIHandler {
	return &UIHandler{maxFileSize: maxFileSize}
}

// HandleIndex serves the screening form.
func (h *UIHandler) HandleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return web.Render(c, web.Page{
		Title:       appTitle,
		Roles:       models.RoleTags,
		MaxFileSize: h.maxFileSize,
	})
}
