package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/provider"
)

//go:generate moq -out service_mock_test.go -pkg generation . accountRepo ledgerRepo artifactRepo balanceCache generator sagaRecorder

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

// fixture wires the saga to in-memory stores built from the mocks. Balance
// writes are compare-and-set, like the Postgres repository.
type fixture struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]domain.Account
	entries  []domain.TransactionEntry
	saved    []domain.Artifact

	accountRepo *accountRepoMock
	ledger      *ledgerRepoMock
	artifacts   *artifactRepoMock
	cache       *balanceCacheMock
	gen         *generatorMock
	metrics     *sagaRecorderMock

	settings Settings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		accounts: make(map[uuid.UUID]domain.Account),
		settings: Settings{
			GenerateTimeout:     time.Second,
			CompensationTimeout: time.Second,
			MaxRetries:          3,
		},
	}

	f.accountRepo = &accountRepoMock{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Account, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			a, ok := f.accounts[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &a, nil
		},
		UpdateBalanceFunc: func(_ context.Context, id uuid.UUID, expected, next int, at time.Time) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			a, ok := f.accounts[id]
			if !ok {
				return domain.ErrNotFound
			}
			if a.Credits != expected {
				return domain.ErrConflict
			}
			a.Credits = next
			a.UpdatedAt = at
			f.accounts[id] = a
			return nil
		},
	}

	f.ledger = &ledgerRepoMock{
		RecordFunc: func(_ context.Context, e domain.TransactionEntry) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.entries = append(f.entries, e)
			return nil
		},
	}

	f.artifacts = &artifactRepoMock{
		SaveFunc: func(_ context.Context, a domain.Artifact) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.saved = append(f.saved, a)
			return nil
		},
	}

	f.cache = &balanceCacheMock{
		DeleteFunc: func(context.Context, string) error { return nil },
	}

	f.gen = &generatorMock{
		NameFunc: func() string { return "fake" },
		GenerateFunc: func(_ context.Context, req provider.GenerateRequest) (provider.GenerateResult, error) {
			return provider.GenerateResult{Content: "content for " + req.Input, Model: "fake-1"}, nil
		},
	}

	f.metrics = &sagaRecorderMock{
		SagaFinishedFunc:      func(domain.OperationKind, string) {},
		RefundIssuedFunc:      func(domain.OperationKind) {},
		LedgerWriteFailedFunc: func(domain.LedgerPhase) {},
		GeneratorCalledFunc:   func(string, time.Duration, bool) {},
	}

	return f
}

func (f *fixture) service(policy creditPolicy) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, f.accountRepo, f.ledger, f.artifacts, f.cache, f.gen, policy, f.metrics, f.settings)
	svc.now = func() time.Time { return testNow }
	return svc
}

func (f *fixture) seed(credits int) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.accounts[id] = domain.Account{
		ID:             id,
		Credits:        credits,
		InitialCredits: credits,
		CreatedAt:      testNow.Add(-time.Hour),
		UpdatedAt:      testNow.Add(-time.Hour),
	}
	return id
}

func (f *fixture) credits(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id].Credits
}

func (f *fixture) ledgerEntries() []domain.TransactionEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TransactionEntry(nil), f.entries...)
}

func (f *fixture) savedArtifacts() []domain.Artifact {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Artifact(nil), f.saved...)
}

// outcomes lists the outcomes reported to metrics, in order.
func (f *fixture) outcomes() []string {
	var out []string
	for _, c := range f.metrics.SagaFinishedCalls() {
		out = append(out, c.Outcome)
	}
	return out
}

func (f *fixture) failGenerator(err error) {
	f.gen.GenerateFunc = func(context.Context, provider.GenerateRequest) (provider.GenerateResult, error) {
		return provider.GenerateResult{}, err
	}
}

var errGeneratorDown = errors.New("upstream returned 503")

func documentInput(accountID uuid.UUID) ExecuteInput {
	return ExecuteInput{AccountID: accountID, Operation: domain.OperationDocument, Input: "A marketplace for used lab equipment"}
}
