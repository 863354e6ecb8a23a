package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiParser extracts workout data with a Google Gemini model.
type GeminiParser struct {
	client *genai.Client
	model  string
}

// NewGeminiParser builds a parser backed by the named Gemini model.
func NewGeminiParser(ctx context.Context, apiKey, model string) (*GeminiParser, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiParser{client: client, model: model}, nil
}

func (p *GeminiParser) Parse(ctx context.Context, transcript string, ref time.Time) (*ParsedActivity, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(transcript, ref)))
	if err != nil {
		recordParse("error")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		recordParse("error")
		return nil, fmt.Errorf("no content generated")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	parsed, err := decodeResponse(raw)
	switch {
	case errors.Is(err, ErrNoWorkout):
		recordParse("no_workout")
	case err != nil:
		recordParse("error")
	default:
		recordParse("parsed")
	}
	return parsed, err
}

// Close releases the underlying API client.
func (p *GeminiParser) Close() error {
	return p.client.Close()
}
