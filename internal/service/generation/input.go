package generation

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

const (
	maxInputLen      = 20000
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ExecuteInput holds parameters for one generation run.
type ExecuteInput struct {
	AccountID uuid.UUID
	Operation domain.OperationKind
	Input     string
}

// Validate validates the execute input.
func (i ExecuteInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}

	if !i.Operation.IsValid() {
		errs = append(errs, domain.FieldError{Field: "operation", Message: "unknown operation"})
	}

	input := strings.TrimSpace(i.Input)
	switch {
	case input == "":
		errs = append(errs, domain.FieldError{Field: "input", Message: "required"})
	case !utf8.ValidString(input):
		errs = append(errs, domain.FieldError{Field: "input", Message: "must be valid UTF-8"})
	case utf8.RuneCountInString(input) > maxInputLen:
		errs = append(errs, domain.FieldError{Field: "input", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Result describes a successful run.
type Result struct {
	Artifact domain.Artifact
	// Cost is what the run charged; zero in unmetered mode.
	Cost int
	// Balance is the account's credits after the debit, or the unmetered
	// sentinel.
	Balance int
	Metered bool
	// Trail lists the states the run passed through.
	Trail []domain.SagaState
}
