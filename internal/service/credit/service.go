// Package credit implements balance queries, eligibility checks and the
// administrative paths that change an account's credits.
package credit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// accountRepo defines the account persistence needed by the credit service.
type accountRepo interface {
	Create(ctx context.Context, a domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, expected, next int, at time.Time) error
	ListIDs(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error)
}

// ledgerRepo defines the ledger persistence needed by the credit service.
type ledgerRepo interface {
	Record(ctx context.Context, entry domain.TransactionEntry) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.TransactionEntry, error)
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int, error)
	SumByAccount(ctx context.Context, accountID uuid.UUID) (int, error)
}

// balanceCache holds serialized domain.Balance snapshots.
type balanceCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// txManager defines the transaction manager needed by the credit service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	BalanceCacheLookup(hit bool)
	LedgerWriteFailed(phase domain.LedgerPhase)
}

// Settings carries the tunables the credit service reads from config.
type Settings struct {
	DefaultBalance int
	BalanceTTL     time.Duration
	MaxRetries     int
}

// Service implements balance reads and credit administration.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	ledger   ledgerRepo
	cache    balanceCache
	tx       txManager
	policy   Policy
	metrics  recorder
	settings Settings
	now      func() time.Time
}

// NewService creates a new credit service. metrics may be nil.
func NewService(
	logger *slog.Logger,
	accounts accountRepo,
	ledger ledgerRepo,
	cache balanceCache,
	tx txManager,
	policy Policy,
	metrics recorder,
	settings Settings,
) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if settings.MaxRetries < 1 {
		settings.MaxRetries = 1
	}
	return &Service{
		log:      logger.With("service", "credit"),
		accounts: accounts,
		ledger:   ledger,
		cache:    cache,
		tx:       tx,
		policy:   policy,
		metrics:  metrics,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type nopRecorder struct{}

func (nopRecorder) BalanceCacheLookup(bool)              {}
func (nopRecorder) LedgerWriteFailed(domain.LedgerPhase) {}

// invalidate drops the cached snapshot for an account. The cache only holds
// derived data, so a failure is logged and otherwise ignored.
func (s *Service) invalidate(ctx context.Context, accountID uuid.UUID) {
	if err := s.cache.Delete(ctx, domain.BalanceCacheKey(accountID)); err != nil {
		s.log.WarnContext(ctx, "balance cache invalidation failed",
			slog.String("account_id", accountID.String()),
			slog.String("error", err.Error()))
	}
}
