package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tier labels how an account is billed.
type Tier string

const (
	TierStandard Tier = "standard"
	TierAdmin    Tier = "admin"
)

// UnmeteredCredits is the sentinel balance reported while unmetered mode is on.
const UnmeteredCredits = 9999

// Balance is a read-only snapshot of an account's credits.
type Balance struct {
	AccountID uuid.UUID `json:"account_id"`
	Credits   int       `json:"credits"`
	Tier      Tier      `json:"tier"`
	Unmetered bool      `json:"unmetered"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnmeteredBalance returns the fixed snapshot reported in unmetered mode.
func UnmeteredBalance(accountID uuid.UUID) Balance {
	return Balance{
		AccountID: accountID,
		Credits:   UnmeteredCredits,
		Tier:      TierAdmin,
		Unmetered: true,
	}
}

// BalanceOf snapshots a metered account.
func BalanceOf(a *Account) Balance {
	return Balance{
		AccountID: a.ID,
		Credits:   a.Credits,
		Tier:      TierStandard,
		UpdatedAt: a.UpdatedAt,
	}
}

// BalanceCacheKey is the cache key holding an account's Balance snapshot.
func BalanceCacheKey(accountID uuid.UUID) string {
	return "balance:" + accountID.String()
}

// LedgerReport compares an account's stored balance with its ledger.
type LedgerReport struct {
	AccountID      uuid.UUID
	InitialCredits int
	StoredCredits  int
	LedgerSum      int
}

// Drift is the difference between the stored balance and the one implied by
// the ledger. Zero means the audit trail fully explains the balance.
func (r LedgerReport) Drift() int {
	return r.StoredCredits - (r.InitialCredits + r.LedgerSum)
}

// Consistent reports whether the ledger explains the balance.
func (r LedgerReport) Consistent() bool {
	return r.Drift() == 0
}
