package handlers

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/models"
	"alfredoptarigan/ats-screener/internal/services"
)

const (
	resumeField = "resume"
	rolesField  = "roles"
	jdField     = "job_description"
)

// parseSubmission reads the screening form. A request without a résumé is
// rejected before anything else is looked at.
func parseSubmission(c *fiber.Ctx, maxFileSize int64) (*models.ScreenRequest, *multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, apperrors.MissingInput("please upload a PDF resume")
	}

	files := form.File[resumeField]
	if len(files) == 0 || files[0].Size == 0 {
		return nil, nil, apperrors.MissingInput("please upload a PDF resume")
	}
	file := files[0]

	if maxFileSize > 0 && file.Size > maxFileSize {
		return nil, nil, apperrors.InvalidInput(fmt.Sprintf("resume too large. Max size: %d bytes", maxFileSize))
	}
	if err := services.ValidatePDFName(file.Filename); err != nil {
		return nil, nil, err
	}

	req := &models.ScreenRequest{
		RoleTags: models.NormalizeRoleTags(form.Value[rolesField]),
	}
	if jd := form.Value[jdField]; len(jd) > 0 {
		req.JobDescription = jd[0]
	}

	if err := req.Validate(); err != nil {
		return nil, nil, apperrors.InvalidInput(fmt.Sprintf(
			"unknown role tag, choose from: %s", strings.Join(models.RoleTags, ", ")))
	}

	return req, file, nil
}
