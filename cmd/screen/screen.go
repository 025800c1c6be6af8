package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/config"
	"alfredoptarigan/ats-screener/internal/models"
	"alfredoptarigan/ats-screener/internal/services"
)

type screenOptions struct {
	ResumePath         string
	JobDescription     string
	JobDescriptionFile string
	Roles              []string
	JSON               bool
}

var screenOpts screenOptions

func init() {
	rootCmd.Flags().StringVarP(&screenOpts.ResumePath, "resume", "r", "", "Path to the PDF resume")
	rootCmd.Flags().StringVar(&screenOpts.JobDescription, "jd", "", "Job description text")
	rootCmd.Flags().StringVar(&screenOpts.JobDescriptionFile, "jd-file", "", "Path to a file holding the job description")
	rootCmd.Flags().StringArrayVar(&screenOpts.Roles, "role", nil, "Tech role to evaluate against (repeatable, see 'screen roles')")
	rootCmd.Flags().BoolVar(&screenOpts.JSON, "json", false, "Print the result, parsed feedback and parse error as JSON")
}

func runScreen(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	ctx := context.Background()

	completion, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini AI: %w", err)
	}

	screener := services.NewScreenerService(services.NewPDFParserService(), completion)

	return executeScreen(ctx, screener, screenOpts, cmd.OutOrStdout())
}

// executeScreen validates opts, runs one screening and writes the outcome to out.
func executeScreen(ctx context.Context, screener services.ScreenerService, opts screenOptions, out io.Writer) error {
	if opts.ResumePath == "" {
		return apperrors.MissingInput("--resume is required")
	}
	if err := services.ValidatePDFName(opts.ResumePath); err != nil {
		return err
	}

	jobDescription, err := loadJobDescription(opts)
	if err != nil {
		return err
	}

	req := models.ScreenRequest{
		RoleTags:       models.NormalizeRoleTags(opts.Roles),
		JobDescription: jobDescription,
	}
	if err := req.Validate(); err != nil {
		return apperrors.InvalidInput(fmt.Sprintf(
			"unknown role, choose from: %s", strings.Join(models.RoleTags, ", ")))
	}

	f, err := os.Open(opts.ResumePath)
	if err != nil {
		return apperrors.MissingInput(fmt.Sprintf("cannot open resume: %v", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat resume: %w", err)
	}

	outcome, err := screener.Screen(ctx, services.Submission{
		RoleTags:       req.RoleTags,
		JobDescription: req.JobDescription,
		Resume:         f,
		ResumeSize:     info.Size(),
		ResumeName:     info.Name(),
	})
	if err != nil {
		return err
	}

	if !opts.JSON {
		_, err := fmt.Fprintln(out, outcome.Result)
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(models.ScreenResponse{
		Status:     string(models.StatusCompleted),
		Result:     outcome.Result,
		Feedback:   outcome.Feedback,
		ParseError: outcome.ParseError,
	})
}

func loadJobDescription(opts screenOptions) (string, error) {
	if opts.JobDescriptionFile == "" {
		return opts.JobDescription, nil
	}
	if opts.JobDescription != "" {
		return "", apperrors.InvalidInput("use either --jd or --jd-file, not both")
	}

	data, err := os.ReadFile(opts.JobDescriptionFile)
	if err != nil {
		return "", apperrors.MissingInput(fmt.Sprintf("cannot read job description: %v", err))
	}
	return string(data), nil
}
