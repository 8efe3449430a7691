package credit

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
	maxReasonLen     = 512
)

// OpenAccountInput holds parameters for OpenAccount.
// InitialCredits nil means the configured default balance.
type OpenAccountInput struct {
	AccountID      uuid.UUID
	InitialCredits *int
}

// Validate validates the open account input.
func (i OpenAccountInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if i.InitialCredits != nil && *i.InitialCredits < 0 {
		errs = append(errs, domain.FieldError{Field: "initial_credits", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// TopUpInput holds parameters for TopUp.
type TopUpInput struct {
	AccountID   uuid.UUID
	Amount      int
	Description string
}

// Validate validates the top-up input.
func (i TopUpInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if len(i.Description) > maxReasonLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AdjustInput holds parameters for Adjust. Delta is signed.
type AdjustInput struct {
	AccountID uuid.UUID
	Delta     int
	Reason    string
}

// Validate validates the adjustment input.
func (i AdjustInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if i.Delta == 0 {
		errs = append(errs, domain.FieldError{Field: "delta", Message: "must not be zero"})
	}
	reason := strings.TrimSpace(i.Reason)
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	} else if len(reason) > maxReasonLen {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalizePage clamps a limit/offset pair to sane bounds.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)
	return limit, max(offset, 0)
}
