package generation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// GetArtifact returns one of the account's artifacts.
func (s *Service) GetArtifact(ctx context.Context, accountID, id uuid.UUID) (*domain.Artifact, error) {
	a, err := s.artifacts.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("generation.GetArtifact: %w", err)
	}
	return a, nil
}

// ListArtifacts returns a page of the account's artifacts, newest first.
func (s *Service) ListArtifacts(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Artifact, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)
	offset = max(offset, 0)

	artifacts, err := s.artifacts.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("generation.ListArtifacts: %w", err)
	}
	return artifacts, nil
}
