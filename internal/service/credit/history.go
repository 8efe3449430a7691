package credit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// ListTransactions returns a page of the account's ledger, newest first, and
// the total number of entries.
func (s *Service) ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.TransactionEntry, int, error) {
	if accountID == uuid.Nil {
		return nil, 0, domain.NewValidationError("account_id", "required")
	}
	limit, offset = normalizePage(limit, offset)

	entries, err := s.ledger.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("credit.ListTransactions: %w", err)
	}

	total, err := s.ledger.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("credit.CountTransactions: %w", err)
	}

	return entries, total, nil
}

// VerifyLedger compares the stored balance with the opening balance plus the
// sum of all ledger entries. Both reads come from one snapshot. It never
// writes; a drift is reported, not repaired.
func (s *Service) VerifyLedger(ctx context.Context, accountID uuid.UUID) (domain.LedgerReport, error) {
	var report domain.LedgerReport

	err := s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		account, err := s.accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		sum, err := s.ledger.SumByAccount(ctx, accountID)
		if err != nil {
			return err
		}

		report = domain.LedgerReport{
			AccountID:      accountID,
			InitialCredits: account.InitialCredits,
			StoredCredits:  account.Credits,
			LedgerSum:      sum,
		}
		return nil
	})
	if err != nil {
		return domain.LedgerReport{}, fmt.Errorf("credit.VerifyLedger: %w", err)
	}

	if !report.Consistent() {
		s.log.WarnContext(ctx, "ledger does not explain balance",
			slog.Bool("alert", true),
			slog.String("account_id", accountID.String()),
			slog.Int("stored", report.StoredCredits),
			slog.Int("initial", report.InitialCredits),
			slog.Int("ledger_sum", report.LedgerSum),
			slog.Int("drift", report.Drift()),
		)
	}
	return report, nil
}

// AuditAll verifies every account in ID order, batchSize accounts per page,
// and returns the reports that show drift along with the number checked.
func (s *Service) AuditAll(ctx context.Context, batchSize int) ([]domain.LedgerReport, int, error) {
	if batchSize <= 0 {
		batchSize = defaultPageLimit
	}

	var (
		drifted []domain.LedgerReport
		checked int
		after   = uuid.Nil
	)
	for {
		ids, err := s.accounts.ListIDs(ctx, after, batchSize)
		if err != nil {
			return nil, checked, fmt.Errorf("credit.AuditAll: %w", err)
		}

		for _, id := range ids {
			report, err := s.VerifyLedger(ctx, id)
			if err != nil {
				return nil, checked, fmt.Errorf("credit.AuditAll: %w", err)
			}
			checked++
			if !report.Consistent() {
				drifted = append(drifted, report)
			}
		}

		if len(ids) < batchSize {
			return drifted, checked, nil
		}
		after = ids[len(ids)-1]
	}
}
