package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/sdk788-art/ec-agent/pkg/errors"
	"github.com/sdk788-art/ec-agent/pkg/httpclient"
)

// CompletionRequest is the minimized payload sent to the completion service.
// It carries only the prompt text itself; the caller is responsible for
// keeping catalog data out of it.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Completer is the contract for the external text-completion service.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ClientConfig holds completion-service client configuration.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string

	// Timeout bounds each completion call. Expiry is reported as a
	// generation-service failure, equivalent to a malformed response.
	Timeout time.Duration
}

// Client calls a chat-completions HTTP API through a retrying HTTP client
// wrapped in a circuit breaker. Any transport failure, timeout, open
// breaker, or malformed response surfaces as ErrGenerationUnavailable.
type Client struct {
	http   *httpclient.CircuitBreakerClient
	cfg    ClientConfig
	logger *slog.Logger
}

// NewClient creates a completion-service client.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	base := httpclient.New(httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxRetries:      2,
		RetryWaitMin:    time.Second,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 10,
	})
	breaker := httpclient.NewCircuitBreakerClient(
		base,
		httpclient.DefaultCircuitBreakerConfig("completion"),
		logger,
	)

	return &Client{
		http:   breaker,
		cfg:    cfg,
		logger: logger,
	}
}

// Wire types for the chat-completions API.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends one prompt and returns the trimmed completion text.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:     c.cfg.Model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Do(ctx, httpReq)
	if err != nil {
		return "", apperrors.GenerationUnavailable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.GenerationUnavailable(httpclient.ParseResponseError(resp, "completion service"))
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperrors.GenerationUnavailable(fmt.Errorf("read response: %w", err))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.GenerationUnavailable(fmt.Errorf("decode response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.GenerationUnavailable(fmt.Errorf("response contains no choices"))
	}

	c.logger.DebugContext(ctx, "completion received",
		slog.String("model", c.cfg.Model),
		slog.Duration("duration", time.Since(start)),
	)

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
