package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrProvider            = errors.New("generator provider failed")
	ErrPersistence         = errors.New("artifact persistence failed")
	ErrLedgerWrite         = errors.New("ledger write failed")
	ErrCompensation        = errors.New("compensation failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// InsufficientCreditsError reports that an account cannot cover a charge.
type InsufficientCreditsError struct {
	AccountID uuid.UUID
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("account %s: insufficient credits: required %d, available %d",
		e.AccountID, e.Required, e.Available)
}

func (e *InsufficientCreditsError) Unwrap() error { return ErrInsufficientCredits }

// ProviderError wraps any non-success outcome of the external generator:
// an explicit error, a timeout, or a recovered panic.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches
// ErrProvider as well as e.g. context.DeadlineExceeded.
func (e *ProviderError) Unwrap() []error { return []error{ErrProvider, e.Err} }

// PersistenceError reports that a generated artifact could not be saved.
type PersistenceError struct {
	ArtifactID uuid.UUID
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save artifact %s: %v", e.ArtifactID, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// LedgerPhase names the bookkeeping step during which a ledger write failed.
type LedgerPhase string

const (
	LedgerPhaseDebit      LedgerPhase = "debit"
	LedgerPhaseRefund     LedgerPhase = "refund"
	LedgerPhaseTopUp      LedgerPhase = "topup"
	LedgerPhaseAdjustment LedgerPhase = "adjustment"
)

// LedgerWriteError reports a failure to record a transaction entry. The
// account balance may disagree with the audit trail when this is returned,
// so callers escalate it instead of retrying.
type LedgerWriteError struct {
	Phase     LedgerPhase
	AccountID uuid.UUID
	Amount    int
	Err       error
}

func (e *LedgerWriteError) Error() string {
	return fmt.Sprintf("ledger %s for account %s (amount %d): %v", e.Phase, e.AccountID, e.Amount, e.Err)
}

func (e *LedgerWriteError) Unwrap() []error { return []error{ErrLedgerWrite, e.Err} }
