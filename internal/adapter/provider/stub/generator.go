// Package stub is a deterministic offline generator for local development
// and tests. It never calls the network.
package stub

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/provider"
)

// ProviderName labels this generator in errors and metrics.
const ProviderName = "stub"

// Generator renders a fixed Markdown template around the input.
type Generator struct{}

// New creates a stub generator.
func New() *Generator { return &Generator{} }

// Name returns ProviderName.
func (g *Generator) Name() string { return ProviderName }

// Generate returns the same content for the same request.
func (g *Generator) Generate(ctx context.Context, req provider.GenerateRequest) (provider.GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return provider.GenerateResult{}, err
	}

	input := strings.TrimSpace(req.Input)

	var content string
	switch req.Operation {
	case domain.OperationDocument:
		content = fmt.Sprintf("# Project brief\n\n## Summary\n\n%s\n", input)
	case domain.OperationAnalysis:
		content = fmt.Sprintf("# Analysis\n\nOverall score: 50/100\n\n## Idea\n\n%s\n", input)
	default:
		return provider.GenerateResult{}, fmt.Errorf("unsupported operation %q", req.Operation)
	}

	return provider.GenerateResult{Content: content, Model: ProviderName}, nil
}
