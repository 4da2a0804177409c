// Package llm wraps the OpenAI chat completion API behind the
// TextGenerator port.
package llm

import (
	"context"
	"time"

	"kyarte_server/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const DefaultModel = "gpt-4o-mini"

// Client implements out.TextGenerator against the OpenAI API. Calls run
// through a circuit breaker so a flapping upstream degrades to the
// rule-based fallback quickly instead of stalling note processing.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	cb          *gobreaker.CircuitBreaker
}

type ClientConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func NewClient(apiKey string) *Client {
	return NewClientWithConfig(ClientConfig{APIKey: apiKey})
}

func NewClientWithConfig(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	cbSettings := gobreaker.Settings{
		Name:     "openai-chat",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}

	return &Client{
		client:      openai.NewClient(cfg.APIKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: float32(temperature),
		timeout:     timeout,
		cb:          gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// Generate sends a single-message chat completion and returns the raw
// response text. An open breaker or a timeout surfaces as an error;
// callers decide how to degrade.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return "", nil
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
