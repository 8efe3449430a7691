package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCredits is the balance a new account starts with unless overridden.
const DefaultCredits = 3

// Account holds the credit balance of a single customer.
// Credits is never negative; it changes only through Deduct, Add and Adjust.
type Account struct {
	ID             uuid.UUID
	Credits        int
	InitialCredits int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates an account with DefaultCredits, or with *initial when set.
func NewAccount(id uuid.UUID, initial *int, now time.Time) (*Account, error) {
	if id == uuid.Nil {
		return nil, NewValidationError("account_id", "required")
	}

	credits := DefaultCredits
	if initial != nil {
		credits = *initial
	}
	if credits < 0 {
		return nil, NewValidationError("initial_credits", "must not be negative")
	}

	return &Account{
		ID:             id,
		Credits:        credits,
		InitialCredits: credits,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CanCover reports whether the balance covers a charge of n credits.
func (a *Account) CanCover(n int) bool {
	return a.Credits >= n
}

// Deduct removes n credits. When the balance is below n it returns an
// *InsufficientCreditsError and leaves the account untouched.
func (a *Account) Deduct(n int, now time.Time) error {
	if n <= 0 {
		return NewValidationError("amount", "must be positive")
	}
	if !a.CanCover(n) {
		return &InsufficientCreditsError{AccountID: a.ID, Required: n, Available: a.Credits}
	}
	a.Credits -= n
	a.UpdatedAt = now
	return nil
}

// Add credits n to the account. Used for top-ups and refunds.
func (a *Account) Add(n int, now time.Time) error {
	if n <= 0 {
		return NewValidationError("amount", "must be positive")
	}
	a.Credits += n
	a.UpdatedAt = now
	return nil
}

// Adjust applies a signed administrative correction. The result must stay >= 0.
func (a *Account) Adjust(delta int, now time.Time) error {
	if delta == 0 {
		return NewValidationError("amount", "must not be zero")
	}
	if delta < 0 {
		return a.Deduct(-delta, now)
	}
	return a.Add(delta, now)
}
