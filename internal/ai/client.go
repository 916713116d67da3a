// Package ai wraps the Groq OpenAI-compatible chat completion endpoint.
// Every call is attempted exactly once with a bounded timeout; callers
// own the fallback for any failure.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal"
)

const defaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// ErrNoAPIKey short-circuits to the caller's fallback without a network call.
var ErrNoAPIKey = errors.New("ai: no API key configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
	Timeout     time.Duration
}

type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	apiKey     string
	model      string
	logger     internal.Logger
}

func NewClient(apiKey, model string, logger internal.Logger) *Client {
	return &Client{
		Endpoint:   defaultEndpoint,
		HTTPClient: &http.Client{},
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

type wireRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type wireResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the first
// choice's content. Timeout, transport error, non-2xx and a malformed
// body are all the same failure to the caller.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wire := wireRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		wire.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Errorf("ai: failed to create request: %v", err)
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		c.logger.Warnf("ai: completion call failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Warnf("ai: completion returned %d", resp.StatusCode)
		return "", fmt.Errorf("ai: completion returned %d", resp.StatusCode)
	}

	var parsed wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Warnf("ai: failed to decode completion response: %v", err)
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("ai: empty completion response")
	}
	return parsed.Choices[0].Message.Content, nil
}
