// Package account implements the Account repository using PostgreSQL.
// Balance writes are compare-and-set on the previous credit value.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ideascore-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

const (
	table  = "accounts"
	entity = "account"
)

var columns = []string{"id", "credits", "initial_credits", "created_at", "updated_at"}

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new account repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new account. Returns domain.ErrAlreadyExists when the ID is taken.
func (r *Repo) Create(ctx context.Context, a domain.Account) (*domain.Account, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(a.ID, a.Credits, a.InitialCredits, a.CreatedAt, a.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert account: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanAccount(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, a.ID)
	}
	return created, nil
}

// FindByID returns the account or domain.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	a, err := scanAccount(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return a, nil
}

// UpdateBalance sets credits to next only if the stored value still equals
// expected. A concurrent writer that got there first yields domain.ErrConflict;
// a missing account yields domain.ErrNotFound.
func (r *Repo) UpdateBalance(ctx context.Context, id uuid.UUID, expected, next int, at time.Time) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("credits", next).
		Set("updated_at", at).
		Where(sq.Eq{"id": id, "credits": expected}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update account balance: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return postgres.MapError(err, entity, id)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return fmt.Errorf("%s %s: balance changed since read: %w", entity, id, domain.ErrConflict)
}

// ListIDs returns up to limit account IDs greater than after, in ID order.
// Pass uuid.Nil to start from the beginning.
func (r *Repo) ListIDs(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	builder := postgres.Builder().
		Select("id").
		From(table).
		OrderBy("id").
		Limit(uint64(limit))
	if after != uuid.Nil {
		builder = builder.Where(sq.Gt{"id": after})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list account ids: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list account ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan account ids: %w", err)
	}
	return ids, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Credits, &a.InitialCredits, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
