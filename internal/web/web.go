// Package web renders the screening form served at "/".
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

// Page is the data the form needs: the selectable roles and the upload cap.
type Page struct {
	Title       string
	Roles       []string
	MaxFileSize int64
}

// MaxFileSizeMB is shown next to the file picker.
func (p Page) MaxFileSizeMB() string {
	return fmt.Sprintf("%.0f", float64(p.MaxFileSize)/(1<<20))
}

func Render(w io.Writer, page Page) error {
	if err := pageTemplate.ExecuteTemplate(w, "index.html", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
