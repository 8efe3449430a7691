package credit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// Eligibility answers whether an account may start an operation right now.
type Eligibility struct {
	Operation domain.OperationKind
	Cost      int
	Balance   domain.Balance
	Eligible  bool
}

// GetBalance returns the account's balance snapshot. Metered reads go through
// the balance cache; a miss loads the account and fills the cache. The fill is
// checked against a second read so a balance write that lands between the load
// and the fill cannot leave its pre-write snapshot cached.
// In unmetered mode the fixed unmetered snapshot is returned without touching
// any store.
func (s *Service) GetBalance(ctx context.Context, accountID uuid.UUID) (domain.Balance, error) {
	if accountID == uuid.Nil {
		return domain.Balance{}, domain.NewValidationError("account_id", "required")
	}
	if !s.policy.Metered() {
		return domain.UnmeteredBalance(accountID), nil
	}

	key := domain.BalanceCacheKey(accountID)

	if b, ok := s.cachedBalance(ctx, key); ok {
		s.observeLookup(true)
		return b, nil
	}
	s.observeLookup(false)

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("credit.GetBalance: %w", err)
	}

	b := domain.BalanceOf(account)
	if s.storeBalance(ctx, key, b) {
		s.verifyFill(ctx, key, account)
	}
	return b, nil
}

// verifyFill drops the entry just stored when the account changed after it
// was loaded. Writers invalidate after they commit, so any write this re-read
// misses still removes the entry itself.
func (s *Service) verifyFill(ctx context.Context, key string, loaded *domain.Account) {
	current, err := s.accounts.FindByID(ctx, loaded.ID)
	if err == nil && current.Credits == loaded.Credits && current.UpdatedAt.Equal(loaded.UpdatedAt) {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.WarnContext(ctx, "dropping stale balance cache entry failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// CheckEligibility reports the cost of op and whether the account covers it.
// It never changes any state.
func (s *Service) CheckEligibility(ctx context.Context, accountID uuid.UUID, op domain.OperationKind) (Eligibility, error) {
	if !op.IsValid() {
		return Eligibility{}, domain.NewValidationError("operation", "unknown operation")
	}

	b, err := s.GetBalance(ctx, accountID)
	if err != nil {
		return Eligibility{}, fmt.Errorf("credit.CheckEligibility: %w", err)
	}

	if !s.policy.Metered() {
		return Eligibility{Operation: op, Cost: 0, Balance: b, Eligible: true}, nil
	}

	cost := s.policy.CostOf(op)
	return Eligibility{
		Operation: op,
		Cost:      cost,
		Balance:   b,
		Eligible:  b.Credits >= cost,
	}, nil
}

func (s *Service) cachedBalance(ctx context.Context, key string) (domain.Balance, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "balance cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return domain.Balance{}, false
	}
	if !ok {
		return domain.Balance{}, false
	}

	var b domain.Balance
	if err := json.Unmarshal(raw, &b); err != nil {
		s.log.WarnContext(ctx, "discarding undecodable balance cache entry", slog.String("key", key), slog.String("error", err.Error()))
		_ = s.cache.Delete(ctx, key)
		return domain.Balance{}, false
	}
	return b, true
}

// storeBalance reports whether the snapshot was written.
func (s *Service) storeBalance(ctx context.Context, key string, b domain.Balance) bool {
	raw, err := json.Marshal(b)
	if err != nil {
		s.log.WarnContext(ctx, "encode balance for cache", slog.String("error", err.Error()))
		return false
	}
	if err := s.cache.Set(ctx, key, raw, s.settings.BalanceTTL); err != nil {
		s.log.WarnContext(ctx, "balance cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *Service) observeLookup(hit bool) {
	s.metrics.BalanceCacheLookup(hit)
}
