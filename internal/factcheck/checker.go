// Package factcheck implements the primary inference path: an AI
// fact-check against an OpenAI-compatible chat-completion endpoint, with
// bounded ordered failover across model identifiers. Exhausting every model
// is a signal to fall back, not an error.
package factcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/LegendarySumit/TruthShield/internal/model"
	"github.com/LegendarySumit/TruthShield/internal/retry"
)

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// DefaultAttemptTimeout bounds one model attempt so a stalled call cannot
// exhaust the request's time budget.
const DefaultAttemptTimeout = 20 * time.Second

// DefaultModels is the ordered failover list; each model gets one bounded
// attempt per request before the next is tried.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// completionClient is the slice of the OpenAI client the checker needs;
// narrowed so tests can inject a fake transport.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds checker construction options.
type Config struct {
	// APIKey authenticates against the completion endpoint. Required.
	APIKey string

	// BaseURL overrides the completion endpoint. Defaults to Gemini's
	// OpenAI-compatible URL.
	BaseURL string

	// Models is the ordered failover list. Defaults to DefaultModels.
	Models []string

	// AttemptTimeout bounds each individual model attempt.
	AttemptTimeout time.Duration
}

// Checker performs AI fact-checks with ordered model failover.
type Checker struct {
	client         completionClient
	models         []string
	attemptTimeout time.Duration
}

// New creates a Checker from the given configuration.
func New(cfg Config) (*Checker, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("factcheck: API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = DefaultBaseURL
	}

	c := &Checker{
		client:         openai.NewClientWithConfig(clientCfg),
		models:         cfg.Models,
		attemptTimeout: cfg.AttemptTimeout,
	}
	if len(c.models) == 0 {
		c.models = DefaultModels
	}
	if c.attemptTimeout <= 0 {
		c.attemptTimeout = DefaultAttemptTimeout
	}
	return c, nil
}

// Check runs the fact-check prompt through the model list in order and
// returns the first parseable verdict. It returns (nil, nil) when every
// model fails: the caller decides whether a fallback path remains. The only
// error it surfaces is cancellation of the parent context.
func (c *Checker) Check(ctx context.Context, text string) (*model.Verdict, error) {
	prompt := buildPrompt(text)

	for _, m := range c.models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		verdict, err := c.attempt(ctx, m, prompt)
		if err != nil {
			// Transport, quota and parse failures are all treated the
			// same: advance to the next model.
			log.Printf("[WARN] factcheck: model %s failed: %v", m, err)
			continue
		}
		return verdict, nil
	}
	return nil, nil
}

// attempt issues one bounded completion call against a single model and
// parses its output. Rate limits and server errors get one short retry
// before the model is given up on.
func (c *Checker) attempt(ctx context.Context, modelID, prompt string) (*model.Verdict, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	var resp openai.ChatCompletionResponse
	err := retry.Do(attemptCtx, retry.DefaultPolicy(), isTransient, func() error {
		var err error
		resp, err = c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: modelID,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.1,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	return parseVerdict(resp.Choices[0].Message.Content)
}

// isTransient reports whether an API error may clear on its own.
func isTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return false
}
