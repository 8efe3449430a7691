// Package generation runs the metered generation workflow: charge the
// account, call the external generator, store the artifact, and refund the
// charge when a step after the debit fails.
package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/provider"
)

// accountRepo defines the account persistence needed by the saga.
type accountRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, expected, next int, at time.Time) error
}

// ledgerRepo defines the ledger persistence needed by the saga.
type ledgerRepo interface {
	Record(ctx context.Context, entry domain.TransactionEntry) error
}

// artifactRepo defines the artifact persistence needed by the generation service.
type artifactRepo interface {
	Save(ctx context.Context, a domain.Artifact) error
	GetByID(ctx context.Context, accountID, id uuid.UUID) (*domain.Artifact, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Artifact, error)
}

// balanceCache is invalidated after every balance write.
type balanceCache interface {
	Delete(ctx context.Context, key string) error
}

// generator produces content for a request. Latency and failure are unbounded.
type generator interface {
	Name() string
	Generate(ctx context.Context, req provider.GenerateRequest) (provider.GenerateResult, error)
}

// creditPolicy prices operations. Satisfied by credit.Policy.
type creditPolicy interface {
	CostOf(op domain.OperationKind) int
	CanAfford(account *domain.Account, op domain.OperationKind) bool
	Metered() bool
}

type sagaRecorder interface {
	SagaFinished(op domain.OperationKind, outcome string)
	RefundIssued(op domain.OperationKind)
	LedgerWriteFailed(phase domain.LedgerPhase)
	GeneratorCalled(provider string, d time.Duration, success bool)
}

// Saga outcomes reported to metrics.
const (
	OutcomeSuccess             = "success"
	OutcomeInvalid             = "invalid"
	OutcomeInsufficientCredits = "insufficient_credits"
	OutcomeRefunded            = "refunded"
	OutcomeCompensationFailed  = "compensation_failed"
	OutcomeError               = "error"
)

// Defaults applied by NewService to zero Settings fields.
const (
	DefaultGenerateTimeout     = 60 * time.Second
	DefaultCompensationTimeout = 10 * time.Second
)

// Settings carries the saga's timing and retry limits.
type Settings struct {
	// GenerateTimeout bounds one generator call.
	GenerateTimeout time.Duration
	// CompensationTimeout bounds the refund, which runs even after the
	// caller's context is cancelled.
	CompensationTimeout time.Duration
	// MaxRetries bounds compare-and-set attempts per balance write.
	MaxRetries int
}

// Service orchestrates generation runs and serves stored artifacts.
type Service struct {
	log       *slog.Logger
	accounts  accountRepo
	ledger    ledgerRepo
	artifacts artifactRepo
	cache     balanceCache
	gen       generator
	policy    creditPolicy
	metrics   sagaRecorder
	settings  Settings
	now       func() time.Time
}

// NewService creates a new generation service. metrics may be nil.
func NewService(
	logger *slog.Logger,
	accounts accountRepo,
	ledger ledgerRepo,
	artifacts artifactRepo,
	cache balanceCache,
	gen generator,
	policy creditPolicy,
	metrics sagaRecorder,
	settings Settings,
) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if settings.GenerateTimeout <= 0 {
		settings.GenerateTimeout = DefaultGenerateTimeout
	}
	if settings.CompensationTimeout <= 0 {
		settings.CompensationTimeout = DefaultCompensationTimeout
	}
	if settings.MaxRetries < 1 {
		settings.MaxRetries = 1
	}
	return &Service{
		log:       logger.With("service", "generation"),
		accounts:  accounts,
		ledger:    ledger,
		artifacts: artifacts,
		cache:     cache,
		gen:       gen,
		policy:    policy,
		metrics:   metrics,
		settings:  settings,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type nopRecorder struct{}

func (nopRecorder) SagaFinished(domain.OperationKind, string)   {}
func (nopRecorder) RefundIssued(domain.OperationKind)           {}
func (nopRecorder) LedgerWriteFailed(domain.LedgerPhase)        {}
func (nopRecorder) GeneratorCalled(string, time.Duration, bool) {}
