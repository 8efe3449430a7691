package domain

import (
	"time"

	"github.com/google/uuid"
)

// OperationKind is a metered operation a customer can request.
type OperationKind string

const (
	// OperationDocument produces a written project document for an idea.
	OperationDocument OperationKind = "DOCUMENT"
	// OperationAnalysis produces a structured analysis of an idea.
	OperationAnalysis OperationKind = "ANALYSIS"
)

func (o OperationKind) String() string { return string(o) }

func (o OperationKind) IsValid() bool {
	switch o {
	case OperationDocument, OperationAnalysis:
		return true
	}
	return false
}

// AllOperationKinds returns every known operation kind.
func AllOperationKinds() []OperationKind {
	return []OperationKind{OperationDocument, OperationAnalysis}
}

// Artifact is the persisted output of one successful generation.
type Artifact struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Operation OperationKind
	Input     string
	Content   string
	Model     string
	CreatedAt time.Time
}

// SagaState is a step of the generation workflow.
type SagaState string

const (
	SagaStateStart       SagaState = "START"
	SagaStateCostChecked SagaState = "COST_CHECKED"
	SagaStateDebited     SagaState = "DEBITED"
	SagaStateGenerated   SagaState = "GENERATED"
	SagaStatePersisted   SagaState = "PERSISTED"
	SagaStateSuccess     SagaState = "SUCCESS"
	SagaStateRefunded    SagaState = "REFUNDED"
	SagaStateFailure     SagaState = "FAILURE"
)

func (s SagaState) String() string { return string(s) }
