// Package llm builds generation prompts, calls the generative model and
// normalizes its responses.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient calls the Gemini API. It makes exactly one attempt per call.
type GeminiClient struct {
	cli   *genai.Client
	model string

	Stats *LLMStats
}

// NewGeminiClient returns a ModelError wrapping ErrNoCredential when apiKey is
// blank. timeout bounds each call at the HTTP client level.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, stats *LLMStats) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ModelError{Op: "init", Err: ErrNoCredential}
	}
	return newGeminiClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}, model, stats)
}

func newGeminiClient(ctx context.Context, cc *genai.ClientConfig, model string, stats *LLMStats) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, &ModelError{Op: "init", Err: err}
	}
	if stats == nil {
		stats = NewLLMStats(time.Hour)
	}
	return &GeminiClient{cli: cli, model: model, Stats: stats}, nil
}

// Model returns the configured model name.
func (g *GeminiClient) Model() string { return g.model }

// Generate sends prompt and returns the raw response text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		merr := &ModelError{Op: "generate", Err: err}
		if merr.IsTimeout() {
			g.Stats.Record(elapsed, OutcomeTimeout)
		} else {
			g.Stats.Record(elapsed, OutcomeFailed)
		}
		return "", merr
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		g.Stats.Record(elapsed, OutcomeFailed)
		return "", &ModelError{Op: "generate", Err: errEmptyResponse}
	}
	g.Stats.Record(elapsed, OutcomeOK)
	return text, nil
}

var errEmptyResponse = errors.New("empty response from model")

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
