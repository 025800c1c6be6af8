package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("role_tag", func(fl validator.FieldLevel) bool {
		return IsRoleTag(fl.Field().String())
	})
	return v
}

// ScreenRequest holds the text fields of the screening form. The résumé file
// travels separately as a multipart part.
type ScreenRequest struct {
	RoleTags       []string `form:"roles" validate:"dive,role_tag"`
	JobDescription string   `form:"job_description"`
}

// Validate validates the ScreenRequest using the validator.
func (r *ScreenRequest) Validate() error {
	return validate.Struct(r)
}

type ScreenResponse struct {
	Status     string    `json:"status"`
	Result     string    `json:"result"`
	Feedback   *Feedback `json:"feedback,omitempty"`
	ParseError string    `json:"parse_error,omitempty"`
}

type ScreeningAcceptedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ScreeningResultResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Result     *string   `json:"result,omitempty"`
	Feedback   *Feedback `json:"feedback,omitempty"`
	ParseError string    `json:"parse_error,omitempty"`
	Error      *string   `json:"error,omitempty"`
	ErrorKind  *string   `json:"error_kind,omitempty"`
}
