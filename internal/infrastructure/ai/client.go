// Package ai contains thin HTTP clients for the coaching model
// providers. The application layer talks to the Client interface and
// never sees provider wire formats.
package ai

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrNotConfigured = errors.New("ai client not configured")
	ErrEmptyResponse = errors.New("ai provider returned no content")
)

// Role constants for conversation messages
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of a conversation
type Message struct {
	Role    string
	Content string
}

// Client generates completions from a coaching model provider
type Client interface {
	// Complete answers a conversation with a system prompt. The last
	// message must be from the user.
	Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)

	// CompleteStream answers a conversation like Complete but forwards
	// text fragments through onDelta as the provider produces them.
	// The assembled reply is returned once the stream ends.
	CompleteStream(ctx context.Context, systemPrompt string, messages []Message, onDelta func(delta string) error) (string, error)

	// CompleteJSON answers a single prompt and instructs the provider
	// to return strict JSON with no surrounding prose.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewClient builds the provider client selected by configuration. A
// missing API key is not fatal here: calls on the returned client fail
// with ErrNotConfigured until a key is supplied.
func NewClient(cfg config.AIConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("Anthropic API key not set, coaching assistant disabled")
		}
		return NewAnthropicClient(cfg, logger), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn("Gemini API key not set, coaching assistant disabled")
		}
		return NewGeminiClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
