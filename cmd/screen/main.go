// Package main provides a command-line front end for screening one résumé.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-screener/internal/apperrors"
)

var rootCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a PDF resume against a job description",
	Long:  "Screen extracts the text of a PDF resume, asks Gemini to evaluate it against a job description the way an ATS would, and prints the feedback.",
	Example: `  screen --resume cv.pdf --jd-file job.txt --role "Data Science" --role "Machine Learning"
  screen roles`,
	RunE:          runScreen,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", apperrors.Kind(err), err)
		os.Exit(1)
	}
}
