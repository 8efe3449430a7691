// Package ledger implements the append-only transaction ledger using PostgreSQL.
// The repository never updates or deletes rows; the schema enforces the same.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ideascore-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

const (
	table  = "transactions"
	entity = "transaction"
)

var columns = []string{"id", "account_id", "amount", "kind", "description", "metadata", "created_at"}

// Repo provides ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Record appends one entry to the ledger.
func (r *Repo) Record(ctx context.Context, entry domain.TransactionEntry) error {
	meta := entry.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%s %s marshal metadata: %w", entity, entry.ID, err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(entry.ID, entry.AccountID, entry.Amount, entry.Kind.String(), entry.Description, metaJSON, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert transaction: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, entry.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByAccount returns an account's entries, newest first.
func (r *Repo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.TransactionEntry, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list transactions: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var entries []domain.TransactionEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions for account %s: %w", accountID, err)
	}

	return entries, nil
}

// CountByAccount returns the number of entries recorded for an account.
func (r *Repo) CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	return r.aggregate(ctx, "count(*)", accountID)
}

// SumByAccount returns the sum of all entry amounts for an account (0 when empty).
func (r *Repo) SumByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	return r.aggregate(ctx, "COALESCE(SUM(amount), 0)", accountID)
}

func (r *Repo) aggregate(ctx context.Context, expr string, accountID uuid.UUID) (int, error) {
	query, args, err := postgres.Builder().
		Select(expr).
		From(table).
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build transaction aggregate: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, entity, accountID)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.TransactionEntry, error) {
	var (
		e        domain.TransactionEntry
		kind     string
		metaJSON []byte
	)
	if err := row.Scan(&e.ID, &e.AccountID, &e.Amount, &kind, &e.Description, &metaJSON, &e.CreatedAt); err != nil {
		return domain.TransactionEntry{}, fmt.Errorf("scan transaction: %w", err)
	}
	e.Kind = domain.TransactionKind(kind)

	if len(metaJSON) > 0 {
		meta := make(map[string]string)
		if err := json.Unmarshal(metaJSON, &meta); err != nil {
			return domain.TransactionEntry{}, fmt.Errorf("%s %s unmarshal metadata: %w", entity, e.ID, err)
		}
		if len(meta) > 0 {
			e.Metadata = meta
		}
	}

	return e, nil
}
