package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/snakanz/adviceApp-sub002/pkg/config"
)

// ErrUnavailable is returned when no engine credential is configured
var ErrUnavailable = errors.New("generation engine not configured")

// GenerateOptions carries the named options of a single generation call
type GenerateOptions struct {
	System         string
	ClientName     string
	MaxActionItems int
	MaxTokens      int
	Temperature    float32
}

// Generator is a chat-completion client for OpenAI or any OpenAI-compatible
// endpoint (Groq, local gateways) selected through BaseURL.
type Generator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewGenerator creates a Generator from config. A missing API key yields a
// Generator whose Available reports false.
func NewGenerator(cfg *config.GeneratorConfig) *Generator {
	g := &Generator{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}
	if cfg.APIKey == "" {
		return g
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	g.client = openai.NewClientWithConfig(clientConfig)
	return g
}

// Available reports whether the engine can be called
func (g *Generator) Available() bool {
	return g != nil && g.client != nil
}

// Generate sends prompt and returns the assistant content. ctx cancellation
// aborts the underlying HTTP request.
func (g *Generator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if opts.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = opts.Temperature
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
