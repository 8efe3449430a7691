package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/pkg/ctxutil"
)

// OpenAccount creates an account with the configured default balance, or with
// InitialCredits when set. Opening an existing account returns it unchanged
// with created == false (admin only).
func (s *Service) OpenAccount(ctx context.Context, in OpenAccountInput) (*domain.Account, bool, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, false, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, false, err
	}

	initial := in.InitialCredits
	if initial == nil {
		initial = &s.settings.DefaultBalance
	}

	account, err := domain.NewAccount(in.AccountID, initial, s.now())
	if err != nil {
		return nil, false, err
	}

	created, err := s.accounts.Create(ctx, *account)
	if errors.Is(err, domain.ErrAlreadyExists) {
		existing, findErr := s.accounts.FindByID(ctx, in.AccountID)
		if findErr != nil {
			return nil, false, fmt.Errorf("credit.OpenAccount: %w", findErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("credit.OpenAccount: %w", err)
	}

	s.log.InfoContext(ctx, "account opened",
		slog.String("account_id", created.ID.String()),
		slog.Int("credits", created.Credits),
	)
	return created, true, nil
}

// TopUp adds credits to an account and records an ADD entry (admin only).
func (s *Service) TopUp(ctx context.Context, in TopUpInput) (*domain.Account, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = "credit top-up"
	}

	account, err := s.applyInTx(ctx, in.AccountID, in.Amount, domain.TransactionKindAdd, domain.LedgerPhaseTopUp,
		description, func(a *domain.Account) error { return a.Add(in.Amount, s.now()) })
	if err != nil {
		return nil, fmt.Errorf("credit.TopUp: %w", err)
	}

	s.log.InfoContext(ctx, "credits topped up",
		slog.String("account_id", in.AccountID.String()),
		slog.Int("amount", in.Amount),
		slog.Int("credits", account.Credits),
	)
	return account, nil
}

// Adjust applies a signed correction and records an ADMIN_ADJUSTMENT entry.
// A correction that would leave the balance negative is rejected (admin only).
func (s *Service) Adjust(ctx context.Context, in AdjustInput) (*domain.Account, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	account, err := s.applyInTx(ctx, in.AccountID, in.Delta, domain.TransactionKindAdminAdjustment, domain.LedgerPhaseAdjustment,
		in.Reason, func(a *domain.Account) error { return a.Adjust(in.Delta, s.now()) })
	if err != nil {
		return nil, fmt.Errorf("credit.Adjust: %w", err)
	}

	s.log.InfoContext(ctx, "credits adjusted",
		slog.String("account_id", in.AccountID.String()),
		slog.Int("delta", in.Delta),
		slog.Int("credits", account.Credits),
	)
	return account, nil
}

// applyInTx mutates the balance and records the matching ledger entry in one
// database transaction, retrying the whole transaction when a concurrent
// writer changed the balance first. The cache is invalidated after commit.
func (s *Service) applyInTx(
	ctx context.Context,
	accountID uuid.UUID,
	amount int,
	kind domain.TransactionKind,
	phase domain.LedgerPhase,
	description string,
	mutate func(a *domain.Account) error,
) (*domain.Account, error) {
	var result *domain.Account

	attempt := func(ctx context.Context) error {
		account, err := s.accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		previous := account.Credits

		if err := mutate(account); err != nil {
			return err
		}
		if err := s.accounts.UpdateBalance(ctx, accountID, previous, account.Credits, account.UpdatedAt); err != nil {
			return err
		}

		entry, err := domain.NewTransactionEntry(accountID, amount, kind, description, actorMetadata(ctx), s.now())
		if err != nil {
			return err
		}
		if err := s.ledger.Record(ctx, entry); err != nil {
			return &domain.LedgerWriteError{Phase: phase, AccountID: accountID, Amount: amount, Err: err}
		}

		result = account
		return nil
	}

	var err error
	for i := 0; i < s.settings.MaxRetries; i++ {
		err = s.tx.RunInTx(ctx, attempt)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
		s.log.DebugContext(ctx, "balance changed concurrently, retrying",
			slog.String("account_id", accountID.String()),
			slog.Int("attempt", i+1),
		)
	}

	var lwErr *domain.LedgerWriteError
	if errors.As(err, &lwErr) {
		s.metrics.LedgerWriteFailed(lwErr.Phase)
		// The transaction rolled back, so the balance still matches the ledger.
		s.log.ErrorContext(ctx, "ledger write failed",
			slog.Bool("alert", true),
			slog.String("phase", string(lwErr.Phase)),
			slog.String("account_id", accountID.String()),
			slog.Int("amount", amount),
			slog.String("error", lwErr.Err.Error()),
		)
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, accountID)
	return result, nil
}

// actorMetadata records which admin performed a manual balance change.
func actorMetadata(ctx context.Context) map[string]string {
	meta := map[string]string{"source": "admin"}
	if actor, ok := ctxutil.AccountIDFromCtx(ctx); ok {
		meta["actor_id"] = actor.String()
	}
	if reqID := ctxutil.RequestIDFromCtx(ctx); reqID != "" {
		meta["request_id"] = reqID
	}
	return meta
}
