package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// SeedAccount inserts an account holding credits and returns it.
func SeedAccount(t *testing.T, pool *pgxpool.Pool, credits int) domain.Account {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	account := domain.Account{
		ID:             uuid.New(),
		Credits:        credits,
		InitialCredits: credits,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO accounts (id, credits, initial_credits, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		account.ID, account.Credits, account.InitialCredits, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount: %v", err)
	}

	return account
}

// SeedTransaction inserts a ledger entry without touching the account balance.
func SeedTransaction(t *testing.T, pool *pgxpool.Pool, accountID uuid.UUID, amount int, kind domain.TransactionKind) domain.TransactionEntry {
	t.Helper()

	entry, err := domain.NewTransactionEntry(accountID, amount, kind, "seeded "+kind.String(), nil,
		time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		t.Fatalf("testhelper: SeedTransaction build: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO transactions (id, account_id, amount, kind, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.AccountID, entry.Amount, string(entry.Kind), entry.Description, entry.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTransaction insert: %v", err)
	}

	return entry
}

// CountTransactions returns the number of ledger rows for an account.
func CountTransactions(t *testing.T, pool *pgxpool.Pool, accountID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM transactions WHERE account_id = $1`, accountID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountTransactions: %v", err)
	}
	return n
}
