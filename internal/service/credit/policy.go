package credit

import (
	"github.com/heartmarshall/ideascore-backend/internal/config"
	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// Policy decides what an operation costs and whether an account can pay.
// Implementations are pure and safe for concurrent use.
type Policy interface {
	// CostOf returns the credits charged for op. Constant per op.
	CostOf(op domain.OperationKind) int
	// CanAfford reports whether account can pay for op.
	CanAfford(account *domain.Account, op domain.OperationKind) bool
	// Metered is false when balances are not tracked at all.
	Metered() bool
}

// NewPolicy selects the policy for the configured operating mode.
func NewPolicy(cfg config.CreditsConfig) Policy {
	if cfg.Unmetered {
		return UnmeteredPolicy{}
	}
	return NewMeteredPolicy(cfg.GenerationCost)
}

// MeteredPolicy charges a fixed price per operation kind.
type MeteredPolicy struct {
	costs map[domain.OperationKind]int
}

// NewMeteredPolicy prices every known operation at cost credits.
// A non-positive cost falls back to 1.
func NewMeteredPolicy(cost int) *MeteredPolicy {
	if cost <= 0 {
		cost = 1
	}
	costs := make(map[domain.OperationKind]int, len(domain.AllOperationKinds()))
	for _, op := range domain.AllOperationKinds() {
		costs[op] = cost
	}
	return &MeteredPolicy{costs: costs}
}

func (p *MeteredPolicy) CostOf(op domain.OperationKind) int {
	if c, ok := p.costs[op]; ok {
		return c
	}
	// Unknown kinds are rejected by input validation; price them like the
	// most expensive known kind so a gap never means free.
	maxCost := 1
	for _, c := range p.costs {
		maxCost = max(maxCost, c)
	}
	return maxCost
}

func (p *MeteredPolicy) CanAfford(account *domain.Account, op domain.OperationKind) bool {
	return account.CanCover(p.CostOf(op))
}

func (p *MeteredPolicy) Metered() bool { return true }

// UnmeteredPolicy makes every operation free and every account eligible.
type UnmeteredPolicy struct{}

func (UnmeteredPolicy) CostOf(domain.OperationKind) int { return 0 }

func (UnmeteredPolicy) CanAfford(*domain.Account, domain.OperationKind) bool { return true }

func (UnmeteredPolicy) Metered() bool { return false }
