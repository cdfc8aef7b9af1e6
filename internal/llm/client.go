package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"retroboard/pkg/logger"
	"retroboard/pkg/metrics"
)

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // long generations
		},
		logger: logger,
	}
}

// UpstreamError is returned when the provider responds with a non-2xx status.
// The status code is forwarded to API clients.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion provider error: status %d", e.StatusCode)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Request carries everything one completion call needs. Feature is a short
// label ("chat", "estimate", ...) used for logging and latency metrics.
type Request struct {
	Feature     string
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Complete sends a two-message chat completion and returns the assistant text.
func (c *Client) Complete(ctx context.Context, r Request) (string, error) {
	msgs := []Message{
		{Role: "system", Content: r.System},
		{Role: "user", Content: r.User},
	}
	return c.CompleteMessages(ctx, r.Feature, r.Model, msgs, r.Temperature, r.MaxTokens)
}

// CompleteMessages sends a full message history, for conversational use.
func (c *Client) CompleteMessages(ctx context.Context, feature, model string, msgs []Message, temperature float64, maxTokens int) (string, error) {
	body := completionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log := logger.WithTrace(ctx, c.logger)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCompletionCallLatency(feature, "network_error", time.Since(start))
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.RecordCompletionCallLatency(feature, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn("completion provider returned error",
			zap.String("feature", feature),
			zap.Int("status", resp.StatusCode))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	log.Info("completion call finished",
		zap.String("feature", feature),
		zap.String("model", model),
		zap.Int("total_tokens", cr.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)))

	return cr.Choices[0].Message.Content, nil
}
