// Package anthropic generates idea documents and analyses with Claude.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/ideascore-backend/internal/config"
	"github.com/heartmarshall/ideascore-backend/internal/provider"
)

// ProviderName labels this generator in errors and metrics.
const ProviderName = "anthropic"

// ErrTruncated is returned when the model stopped at the token limit.
var ErrTruncated = errors.New("response truncated at max_tokens")

// Generator calls the Messages API once per request.
type Generator struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// New builds a Generator from config. Request deadlines come from the
// caller's context.
func New(cfg config.GeneratorConfig) *Generator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Generator{
		client:    sdk.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Name returns ProviderName.
func (g *Generator) Name() string { return ProviderName }

// Generate sends the prompt for req and returns the concatenated text blocks.
func (g *Generator) Generate(ctx context.Context, req provider.GenerateRequest) (provider.GenerateResult, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return provider.GenerateResult{}, err
	}

	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return provider.GenerateResult{}, fmt.Errorf("messages api: %w", err)
	}

	if string(msg.StopReason) == "max_tokens" {
		return provider.GenerateResult{}, ErrTruncated
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return provider.GenerateResult{}, errors.New("empty response")
	}

	return provider.GenerateResult{Content: content, Model: string(msg.Model)}, nil
}
