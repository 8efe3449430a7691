// Package artifact stores generated documents and analyses.
package artifact

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ideascore-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

const (
	table  = "artifacts"
	entity = "artifact"
)

var columns = []string{"id", "account_id", "operation", "input", "content", "model", "created_at"}

// Repo provides artifact persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new artifact repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Save inserts a generated artifact.
func (r *Repo) Save(ctx context.Context, a domain.Artifact) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(a.ID, a.AccountID, a.Operation.String(), a.Input, a.Content, a.Model, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert artifact: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, a.ID)
	}
	return nil
}

// GetByID returns an artifact owned by accountID, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, accountID, id uuid.UUID) (*domain.Artifact, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id, "account_id": accountID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select artifact: %w", err)
	}

	a, err := scanArtifact(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return &a, nil
}

// ListByAccount returns an account's artifacts, newest first.
func (r *Repo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Artifact, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list artifacts: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artifacts for account %s: %w", accountID, err)
	}

	artifacts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Artifact, error) {
		return scanArtifact(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan artifacts for account %s: %w", accountID, err)
	}
	return artifacts, nil
}

func scanArtifact(row pgx.Row) (domain.Artifact, error) {
	var (
		a  domain.Artifact
		op string
	)
	if err := row.Scan(&a.ID, &a.AccountID, &op, &a.Input, &a.Content, &a.Model, &a.CreatedAt); err != nil {
		return domain.Artifact{}, err
	}
	a.Operation = domain.OperationKind(op)
	return a, nil
}
