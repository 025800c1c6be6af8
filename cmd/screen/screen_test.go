package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/models"
	"alfredoptarigan/ats-screener/internal/services"
	"alfredoptarigan/ats-screener/mocks"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExecuteScreenPrintsRawResult(t *testing.T) {
	resume := writeFile(t, "cv.pdf", "%PDF-1.4")
	jd := writeFile(t, "jd.txt", "Looking for a Python data scientist")

	screener := new(mocks.MockScreener)
	screener.On("Screen", mock.Anything, mock.MatchedBy(func(sub services.Submission) bool {
		return sub.JobDescription == "Looking for a Python data scientist" &&
			len(sub.RoleTags) == 1 && sub.RoleTags[0] == "Data Science" &&
			sub.ResumeSize == int64(len("%PDF-1.4"))
	})).Return(&services.Outcome{Result: "{'JD Match': '80%'}"}, nil)

	var out bytes.Buffer
	err := executeScreen(context.Background(), screener, screenOptions{
		ResumePath:         resume,
		JobDescriptionFile: jd,
		Roles:              []string{"Data Science"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "{'JD Match': '80%'}\n", out.String())
	screener.AssertExpectations(t)
}

func TestExecuteScreenJSON(t *testing.T) {
	resume := writeFile(t, "cv.pdf", "%PDF-1.4")

	screener := new(mocks.MockScreener)
	screener.On("Screen", mock.Anything, mock.Anything).Return(&services.Outcome{
		Result:   "raw",
		Feedback: &models.Feedback{JDMatch: "55%", MissingKeywords: []string{"Go"}},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, executeScreen(context.Background(), screener, screenOptions{ResumePath: resume, JSON: true}, &out))

	var resp models.ScreenResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "raw", resp.Result)
	assert.Equal(t, "55%", resp.Feedback.JDMatch)
}

func TestExecuteScreenValidation(t *testing.T) {
	resume := writeFile(t, "cv.pdf", "%PDF-1.4")
	jd := writeFile(t, "jd.txt", "jd")

	tests := []struct {
		name string
		opts screenOptions
		want error
	}{
		{"no resume", screenOptions{}, apperrors.ErrMissingInput},
		{"resume not found", screenOptions{ResumePath: filepath.Join(t.TempDir(), "gone.pdf")}, apperrors.ErrMissingInput},
		{"not a pdf", screenOptions{ResumePath: "cv.txt"}, apperrors.ErrInvalidInput},
		{"unknown role", screenOptions{ResumePath: resume, Roles: []string{"Astrology"}}, apperrors.ErrInvalidInput},
		{"both jd flags", screenOptions{ResumePath: resume, JobDescription: "x", JobDescriptionFile: jd}, apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screener := new(mocks.MockScreener)

			err := executeScreen(context.Background(), screener, tt.opts, &bytes.Buffer{})

			assert.ErrorIs(t, err, tt.want)
			screener.AssertNotCalled(t, "Screen", mock.Anything, mock.Anything)
		})
	}
}

func TestExecuteScreenPropagatesKind(t *testing.T) {
	resume := writeFile(t, "cv.pdf", "%PDF-1.4")

	screener := new(mocks.MockScreener)
	screener.On("Screen", mock.Anything, mock.Anything).
		Return(nil, apperrors.Generation(errors.New("quota exceeded")))

	var out bytes.Buffer
	err := executeScreen(context.Background(), screener, screenOptions{ResumePath: resume}, &out)

	assert.Equal(t, apperrors.KindGeneration, apperrors.Kind(err))
	assert.Empty(t, out.String())
}

func TestPrintRoles(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, printRoles(&out))

	assert.Equal(t, "Software Engineering\nData Science\nMachine Learning\nCloud Computing\n", out.String())
}
