// Package llm adapts hosted generative models to ports.ModelClient.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const (
	DefaultModel = "gemini-1.5-flash"

	defaultMaxTokens   = 512
	defaultTemperature = 0.2
)

var errNoAPIKey = errors.New("gemini: api key is required")

// Config selects the Gemini model and generation limits.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client implements ports.ModelClient over any langchaingo model.
type Client struct {
	llm         llms.Model
	name        string
	maxTokens   int
	temperature float64
}

// NewGemini builds a Client backed by the Google AI (Gemini) provider.
func NewGemini(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return NewClient(model, cfg), nil
}

// NewClient wraps an existing langchaingo model.
func NewClient(model llms.Model, cfg Config) *Client {
	c := &Client{
		llm:         model,
		name:        cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
	if c.name == "" {
		c.name = DefaultModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	if c.temperature <= 0 {
		c.temperature = defaultTemperature
	}
	return c
}

// Generate sends prompt as a single user message and returns the first
// candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithMaxTokens(c.maxTokens),
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	return text, nil
}

func (c *Client) Name() string { return c.name }
