package domain

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	TransactionKindDeduct          TransactionKind = "DEDUCT"
	TransactionKindAdd             TransactionKind = "ADD"
	TransactionKindRefund          TransactionKind = "REFUND"
	TransactionKindAdminAdjustment TransactionKind = "ADMIN_ADJUSTMENT"
)

func (k TransactionKind) String() string { return string(k) }

func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindDeduct, TransactionKindAdd, TransactionKindRefund, TransactionKindAdminAdjustment:
		return true
	}
	return false
}

// AcceptsAmount reports whether the sign of amount matches the kind:
// DEDUCT < 0, ADD and REFUND > 0, ADMIN_ADJUSTMENT != 0.
func (k TransactionKind) AcceptsAmount(amount int) bool {
	switch k {
	case TransactionKindDeduct:
		return amount < 0
	case TransactionKindAdd, TransactionKindRefund:
		return amount > 0
	case TransactionKindAdminAdjustment:
		return amount != 0
	}
	return false
}

const maxDescriptionLen = 512

// TransactionEntry is one immutable line of an account's audit log.
// Corrections are recorded as new entries, never as edits.
type TransactionEntry struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Amount      int
	Kind        TransactionKind
	Description string
	Metadata    map[string]string
	CreatedAt   time.Time
}

// NewTransactionEntry validates and builds a ledger entry with a fresh ID.
// The metadata map is copied.
func NewTransactionEntry(
	accountID uuid.UUID,
	amount int,
	kind TransactionKind,
	description string,
	metadata map[string]string,
	now time.Time,
) (TransactionEntry, error) {
	var errs []FieldError

	if accountID == uuid.Nil {
		errs = append(errs, FieldError{Field: "account_id", Message: "required"})
	}

	switch {
	case !kind.IsValid():
		errs = append(errs, FieldError{Field: "kind", Message: "unknown transaction kind"})
	case amount == 0:
		errs = append(errs, FieldError{Field: "amount", Message: "must not be zero"})
	case !kind.AcceptsAmount(amount):
		errs = append(errs, FieldError{Field: "amount", Message: "sign does not match kind " + kind.String()})
	}

	description = strings.TrimSpace(description)
	if description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	} else if len(description) > maxDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return TransactionEntry{}, NewValidationErrors(errs)
	}

	var meta map[string]string
	if len(metadata) > 0 {
		meta = maps.Clone(metadata)
	}

	return TransactionEntry{
		ID:          uuid.New(),
		AccountID:   accountID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		Metadata:    meta,
		CreatedAt:   now,
	}, nil
}
