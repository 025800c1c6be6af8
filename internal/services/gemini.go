package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"

	"alfredoptarigan/ats-screener/internal/apperrors"
	"alfredoptarigan/ats-screener/internal/config"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")

// CompletionClient sends one prompt to the generative model and returns its raw text.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type geminiService struct {
	client          *genai.Client
	modelName       string
	temperature     *float32
	maxOutputTokens int32
}

// NewGeminiService builds the Gemini completion client. Without an API key the
// client is still returned, but every Complete call fails.
func NewGeminiService(ctx context.Context, cfg config.GeminiConfig) (CompletionClient, error) {
	svc := &geminiService{
		modelName:       cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}

	if cfg.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is empty, screenings will fail until it is set")
		return svc, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	svc.client = client

	return svc, nil
}

// Complete makes a single GenerateContent call. There is no retry.
func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", apperrors.Generation(ErrMissingAPIKey)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: g.temperature,
	}
	if g.maxOutputTokens > 0 {
		genConfig.MaxOutputTokens = g.maxOutputTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", apperrors.Generation(fmt.Errorf("failed to generate text: %w", err))
	}

	if resp == nil {
		return "", apperrors.Generation(errors.New("no response generated (nil response)"))
	}

	text := resp.Text()
	if text == "" {
		reason := "no text content in response"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			reason = fmt.Sprintf("%s (finish reason %s)", reason, resp.Candidates[0].FinishReason)
		}
		return "", apperrors.Generation(errors.New(reason))
	}

	log.Printf("📊 Gemini response received: %d characters", len(text))

	return text, nil
}
