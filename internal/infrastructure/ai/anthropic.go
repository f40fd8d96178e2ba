package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/infrastructure/config"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"

	defaultMaxTokens = 4096
	maxRetries       = 3
)

// AnthropicClient implements Client against the Anthropic Messages API
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
	logger     *zap.Logger
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	Stream      bool               `json:"stream,omitempty"`
}

type anthropicStreamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnthropicClient creates an Anthropic-backed client
func NewAnthropicClient(cfg config.AIConfig, logger *zap.Logger) *AnthropicClient {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &AnthropicClient{
		apiKey:     cfg.AnthropicAPIKey,
		baseURL:    anthropicBaseURL,
		model:      cfg.AnthropicModel,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Complete answers a conversation with a system prompt
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	reqMessages := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	return c.send(ctx, anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      systemPrompt,
		Messages:    reqMessages,
		Temperature: 0.7,
	})
}

// CompleteStream answers a conversation, forwarding text deltas as the
// provider emits them. No retries: once deltas have been delivered the
// request cannot be transparently replayed.
func (c *AnthropicClient) CompleteStream(ctx context.Context, systemPrompt string, messages []Message, onDelta func(string) error) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	reqMessages := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, anthropicMessage{Role: m.Role, Content: m.Content})
	}
	jsonData, err := json.Marshal(anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      systemPrompt,
		Messages:    reqMessages,
		Temperature: 0.7,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
scan:
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var ev anthropicStreamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			continue
		}
		switch ev.Type {
		case "content_block_delta":
			if ev.Delta.Type != "text_delta" || ev.Delta.Text == "" {
				continue
			}
			full.WriteString(ev.Delta.Text)
			if err := onDelta(ev.Delta.Text); err != nil {
				return "", err
			}
		case "error":
			if ev.Error != nil {
				return "", fmt.Errorf("api error: %s", ev.Error.Message)
			}
		case "message_stop":
			break scan
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read stream: %w", err)
	}

	text := strings.TrimSpace(full.String())
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("Streaming completion finished",
		zap.String("provider", "anthropic"),
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(text)),
	)
	return text, nil
}

// CompleteJSON answers a single prompt expecting a strict JSON reply
func (c *AnthropicClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	system := systemPrompt + "\n\nRespond with a single JSON object only. No markdown, no prose."

	raw, err := c.send(ctx, anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      system,
		Messages:    []anthropicMessage{{Role: RoleUser, Content: userPrompt}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	return extractJSON(raw), nil
}

func (c *AnthropicClient) send(ctx context.Context, reqBody anthropicRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(1<<uint(i-1)) * time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", anthropicVersion)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("api returned status %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, string(body))
		}

		var parsed anthropicResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("api error: %s", parsed.Error.Message)
		}

		var result strings.Builder
		for _, block := range parsed.Content {
			if block.Type == "text" {
				result.WriteString(block.Text)
			}
		}
		text := strings.TrimSpace(result.String())
		if text == "" {
			return "", ErrEmptyResponse
		}

		c.logger.Debug("Completion finished",
			zap.String("provider", "anthropic"),
			zap.String("model", c.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("response_len", len(text)),
		)
		return text, nil
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// extractJSON strips markdown fences and any prose surrounding the
// first balanced JSON object in a model reply.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if fenced := strings.TrimPrefix(s, "```json"); fenced != s {
		s = strings.TrimSuffix(strings.TrimSpace(fenced), "```")
		return strings.TrimSpace(s)
	}
	if fenced := strings.TrimPrefix(s, "```"); fenced != s {
		s = strings.TrimSuffix(strings.TrimSpace(fenced), "```")
		return strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closing := byte('}')
	if s[start] == '[' {
		closing = ']'
	}
	end := strings.LastIndexByte(s, closing)
	if end <= start {
		return s
	}
	return s[start : end+1]
}
