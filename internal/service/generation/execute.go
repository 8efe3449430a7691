package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/provider"
	"github.com/heartmarshall/ideascore-backend/pkg/ctxutil"
)

// run is the state of one Execute call.
type run struct {
	in         ExecuteInput
	artifactID uuid.UUID
	cost       int
	trail      []domain.SagaState
	log        *slog.Logger
}

func (r *run) to(ctx context.Context, state domain.SagaState) {
	r.trail = append(r.trail, state)
	r.log.DebugContext(ctx, "saga state", slog.String("state", state.String()))
}

// Execute charges the account for the operation, generates the content and
// stores it as an artifact.
//
// The debit is persisted and recorded in the ledger before the generator is
// called. If generation or storage fails, the charge is refunded with a
// REFUND entry and the original error is returned; should the refund itself
// fail, the returned error joins both. An account that cannot pay gets
// *domain.InsufficientCreditsError and nothing is written.
func (s *Service) Execute(ctx context.Context, in ExecuteInput) (*Result, error) {
	r := &run{
		in:         in,
		artifactID: uuid.New(),
		trail:      []domain.SagaState{domain.SagaStateStart},
	}
	r.log = s.log.With(
		slog.String("account_id", in.AccountID.String()),
		slog.String("operation", in.Operation.String()),
		slog.String("artifact_id", r.artifactID.String()),
	)

	if err := in.Validate(); err != nil {
		s.metrics.SagaFinished(in.Operation, OutcomeInvalid)
		return nil, err
	}
	r.in.Input = strings.TrimSpace(in.Input)

	if !s.policy.Metered() {
		return s.executeUnmetered(ctx, r)
	}

	r.cost = s.policy.CostOf(in.Operation)

	account, err := s.debit(ctx, r)
	if err != nil {
		r.to(ctx, domain.SagaStateFailure)
		outcome := OutcomeError
		switch {
		case errors.Is(err, domain.ErrInsufficientCredits):
			outcome = OutcomeInsufficientCredits
		case errors.Is(err, domain.ErrCompensation):
			outcome = OutcomeCompensationFailed
		}
		s.metrics.SagaFinished(in.Operation, outcome)
		return nil, fmt.Errorf("generation.Execute: %w", err)
	}
	r.to(ctx, domain.SagaStateDebited)

	artifact, cause := s.generateAndStore(ctx, r)
	if cause != nil {
		if compErr := s.refund(ctx, r); compErr != nil {
			r.to(ctx, domain.SagaStateFailure)
			s.metrics.SagaFinished(in.Operation, OutcomeCompensationFailed)
			return nil, fmt.Errorf("generation.Execute: %w", errors.Join(cause, compErr))
		}
		r.to(ctx, domain.SagaStateFailure)
		s.metrics.SagaFinished(in.Operation, OutcomeRefunded)
		r.log.WarnContext(ctx, "generation failed, charge refunded", slog.String("error", cause.Error()))
		return nil, fmt.Errorf("generation.Execute: %w", cause)
	}

	r.to(ctx, domain.SagaStateSuccess)
	s.metrics.SagaFinished(in.Operation, OutcomeSuccess)
	r.log.InfoContext(ctx, "generation completed", slog.Int("cost", r.cost), slog.Int("credits", account.Credits))

	return &Result{
		Artifact: artifact,
		Cost:     r.cost,
		Balance:  account.Credits,
		Metered:  true,
		Trail:    r.trail,
	}, nil
}

// executeUnmetered skips all credit bookkeeping. Nothing is charged, so a
// failure needs no compensation.
func (s *Service) executeUnmetered(ctx context.Context, r *run) (*Result, error) {
	r.to(ctx, domain.SagaStateCostChecked)

	artifact, err := s.generateAndStore(ctx, r)
	if err != nil {
		r.to(ctx, domain.SagaStateFailure)
		s.metrics.SagaFinished(r.in.Operation, OutcomeError)
		return nil, fmt.Errorf("generation.Execute: %w", err)
	}

	r.to(ctx, domain.SagaStateSuccess)
	s.metrics.SagaFinished(r.in.Operation, OutcomeSuccess)

	return &Result{
		Artifact: artifact,
		Balance:  domain.UnmeteredCredits,
		Trail:    r.trail,
	}, nil
}

// debit checks affordability and charges the account. The balance write is a
// compare-and-set; when another writer got there first the account is
// reloaded and affordability checked again.
func (s *Service) debit(ctx context.Context, r *run) (*domain.Account, error) {
	id := r.in.AccountID

	var account *domain.Account
	for attempt := 1; ; attempt++ {
		var err error
		account, err = s.accounts.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if attempt == 1 {
			r.to(ctx, domain.SagaStateCostChecked)
		}

		if !s.policy.CanAfford(account, r.in.Operation) {
			return nil, &domain.InsufficientCreditsError{AccountID: id, Required: r.cost, Available: account.Credits}
		}

		previous := account.Credits
		if err := account.Deduct(r.cost, s.now()); err != nil {
			return nil, err
		}

		err = s.accounts.UpdateBalance(ctx, id, previous, account.Credits, account.UpdatedAt)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= s.settings.MaxRetries {
			return nil, err
		}
		r.log.DebugContext(ctx, "balance changed concurrently, retrying debit", slog.Int("attempt", attempt))
	}

	// The balance is written; finish the bookkeeping even if the caller
	// goes away.
	bctx, cancel := s.detached(ctx)
	defer cancel()

	s.invalidate(bctx, id)

	entry, err := domain.NewTransactionEntry(id, -r.cost, domain.TransactionKindDeduct,
		"generation: "+strings.ToLower(r.in.Operation.String()), s.entryMetadata(ctx, r), s.now())
	if err == nil {
		err = s.ledger.Record(bctx, entry)
	}
	if err != nil {
		lwErr := &domain.LedgerWriteError{Phase: domain.LedgerPhaseDebit, AccountID: id, Amount: -r.cost, Err: err}
		s.reportLedgerFailure(ctx, r, lwErr)

		// No DEDUCT entry exists, so give the credits back without a REFUND
		// entry and stop before the generator runs.
		if restoreErr := s.credit(bctx, r); restoreErr != nil {
			return nil, errors.Join(lwErr, restoreErr)
		}
		s.invalidate(bctx, id)
		return nil, lwErr
	}

	return account, nil
}

// generateAndStore calls the generator under a deadline and saves the
// result. Its errors are *domain.ProviderError or *domain.PersistenceError.
func (s *Service) generateAndStore(ctx context.Context, r *run) (domain.Artifact, error) {
	res, err := s.generate(ctx, r)
	if err != nil {
		return domain.Artifact{}, err
	}
	r.to(ctx, domain.SagaStateGenerated)

	artifact := domain.Artifact{
		ID:        r.artifactID,
		AccountID: r.in.AccountID,
		Operation: r.in.Operation,
		Input:     r.in.Input,
		Content:   res.Content,
		Model:     res.Model,
		CreatedAt: s.now(),
	}
	if err := s.artifacts.Save(ctx, artifact); err != nil {
		return domain.Artifact{}, &domain.PersistenceError{ArtifactID: artifact.ID, Err: err}
	}
	r.to(ctx, domain.SagaStatePersisted)

	return artifact, nil
}

func (s *Service) generate(ctx context.Context, r *run) (provider.GenerateResult, error) {
	gctx, cancel := context.WithTimeout(ctx, s.settings.GenerateTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.callGenerator(gctx, provider.GenerateRequest{
		AccountID: r.in.AccountID,
		Operation: r.in.Operation,
		Input:     r.in.Input,
	})
	// A result that arrives after the deadline is discarded.
	if err == nil && gctx.Err() != nil {
		err = gctx.Err()
	}
	if err == nil && strings.TrimSpace(res.Content) == "" {
		err = errors.New("empty content")
	}
	s.metrics.GeneratorCalled(s.gen.Name(), time.Since(start), err == nil)

	if err != nil {
		return provider.GenerateResult{}, &domain.ProviderError{Provider: s.gen.Name(), Err: err}
	}
	return res, nil
}

// callGenerator turns a generator panic into an error.
func (s *Service) callGenerator(ctx context.Context, req provider.GenerateRequest) (res provider.GenerateResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("generator panicked: %v", p)
		}
	}()
	return s.gen.Generate(ctx, req)
}

// refund reverses the debit: credits go back to the account and a REFUND
// entry is recorded. It runs on a detached context.
func (s *Service) refund(ctx context.Context, r *run) error {
	cctx, cancel := s.detached(ctx)
	defer cancel()

	if err := s.credit(cctx, r); err != nil {
		r.log.ErrorContext(ctx, "refund failed, account left debited",
			slog.Bool("alert", true),
			slog.Int("cost", r.cost),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.invalidate(cctx, r.in.AccountID)

	entry, err := domain.NewTransactionEntry(r.in.AccountID, r.cost, domain.TransactionKindRefund,
		"refund: "+strings.ToLower(r.in.Operation.String())+" failed", s.entryMetadata(ctx, r), s.now())
	if err == nil {
		err = s.ledger.Record(cctx, entry)
	}
	if err != nil {
		lwErr := &domain.LedgerWriteError{Phase: domain.LedgerPhaseRefund, AccountID: r.in.AccountID, Amount: r.cost, Err: err}
		s.reportLedgerFailure(ctx, r, lwErr)
		return lwErr
	}

	r.to(ctx, domain.SagaStateRefunded)
	s.metrics.RefundIssued(r.in.Operation)
	return nil
}

// credit adds the run's cost back to the account balance.
func (s *Service) credit(ctx context.Context, r *run) error {
	id := r.in.AccountID

	for attempt := 1; ; attempt++ {
		account, err := s.accounts.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: reload account %s: %w", domain.ErrCompensation, id, err)
		}

		previous := account.Credits
		if err := account.Add(r.cost, s.now()); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrCompensation, err)
		}

		err = s.accounts.UpdateBalance(ctx, id, previous, account.Credits, account.UpdatedAt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= s.settings.MaxRetries {
			return fmt.Errorf("%w: restore %d credits to account %s: %w", domain.ErrCompensation, r.cost, id, err)
		}
	}
}

// detached returns a context that survives cancellation of ctx and is
// bounded by the compensation timeout.
func (s *Service) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.settings.CompensationTimeout)
}

// invalidate drops the cached balance. Failures are logged only.
func (s *Service) invalidate(ctx context.Context, accountID uuid.UUID) {
	if err := s.cache.Delete(ctx, domain.BalanceCacheKey(accountID)); err != nil {
		s.log.WarnContext(ctx, "balance cache invalidation failed",
			slog.String("account_id", accountID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *Service) reportLedgerFailure(ctx context.Context, r *run, err *domain.LedgerWriteError) {
	s.metrics.LedgerWriteFailed(err.Phase)
	r.log.ErrorContext(ctx, "ledger write failed",
		slog.Bool("alert", true),
		slog.String("phase", string(err.Phase)),
		slog.Int("amount", err.Amount),
		slog.String("error", err.Err.Error()),
	)
}

// entryMetadata links the DEDUCT and REFUND entries of a run to its artifact.
func (s *Service) entryMetadata(ctx context.Context, r *run) map[string]string {
	meta := map[string]string{
		"operation":   r.in.Operation.String(),
		"artifact_id": r.artifactID.String(),
		"provider":    s.gen.Name(),
	}
	if reqID := ctxutil.RequestIDFromCtx(ctx); reqID != "" {
		meta["request_id"] = reqID
	}
	return meta
}
