package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderForm(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, Page{
		Title:       "ATS Resume Screener",
		Roles:       []string{"Data Science", "Cloud Computing"},
		MaxFileSize: 10 << 20,
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>ATS Resume Screener</title>")
	assert.Contains(t, html, `<option value="Data Science">Data Science</option>`)
	assert.Contains(t, html, `<option value="Cloud Computing">Cloud Computing</option>`)
	assert.Contains(t, html, `name="job_description"`)
	assert.Contains(t, html, `accept="application/pdf"`)
	assert.Contains(t, html, "up to 10 MB")
	assert.Contains(t, html, `data-state="idle"`)
}

func TestRenderEscapesRoles(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, Page{Roles: []string{"<script>"}}))

	assert.NotContains(t, buf.String(), `<option value="<script>">`)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
