// Package provider holds the types exchanged with external content generators.
package provider

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// GenerateRequest is one generation job sent to an external generator.
type GenerateRequest struct {
	AccountID uuid.UUID
	Operation domain.OperationKind
	Input     string
}

// GenerateResult is the generator's output for one request.
type GenerateResult struct {
	Content string
	// Model identifies what produced Content, e.g. the LLM model name.
	Model string
}

// Generator is implemented by every content backend.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
}
