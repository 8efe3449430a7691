package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/service/credit"
)

type creditService interface {
	GetBalance(ctx context.Context, accountID uuid.UUID) (domain.Balance, error)
	CheckEligibility(ctx context.Context, accountID uuid.UUID, op domain.OperationKind) (credit.Eligibility, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.TransactionEntry, int, error)
}

// CreditHandler serves the caller's balance, eligibility and history.
type CreditHandler struct {
	svc creditService
	log *slog.Logger
}

// NewCreditHandler creates a CreditHandler.
func NewCreditHandler(svc creditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{svc: svc, log: logger.With("handler", "credit")}
}

type balanceResponse struct {
	AccountID string     `json:"accountId"`
	Credits   int        `json:"credits"`
	Tier      string     `json:"tier"`
	Unmetered bool       `json:"unmetered"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type eligibilityResponse struct {
	Operation string          `json:"operation"`
	Cost      int             `json:"cost"`
	Eligible  bool            `json:"eligible"`
	Balance   balanceResponse `json:"balance"`
}

type transactionResponse struct {
	ID          string            `json:"id"`
	Amount      int               `json:"amount"`
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type transactionListResponse struct {
	Items []transactionResponse `json:"items"`
	Total int                   `json:"total"`
}

// Balance handles GET /v1/balance.
func (h *CreditHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID, err := callerID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	b, err := h.svc.GetBalance(r.Context(), accountID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceResponse(b))
}

// Eligibility handles GET /v1/eligibility?operation=DOCUMENT.
func (h *CreditHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	accountID, err := callerID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	op := parseOperation(r.URL.Query().Get("operation"))
	e, err := h.svc.CheckEligibility(r.Context(), accountID, op)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, eligibilityResponse{
		Operation: e.Operation.String(),
		Cost:      e.Cost,
		Eligible:  e.Eligible,
		Balance:   toBalanceResponse(e.Balance),
	})
}

// Transactions handles GET /v1/transactions?limit=&offset=.
func (h *CreditHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := callerID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	limit, offset, err := pageParams(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	entries, total, err := h.svc.ListTransactions(r.Context(), accountID, limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]transactionResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, transactionResponse{
			ID:          e.ID.String(),
			Amount:      e.Amount,
			Kind:        e.Kind.String(),
			Description: e.Description,
			Metadata:    e.Metadata,
			CreatedAt:   e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Items: items, Total: total})
}

func toBalanceResponse(b domain.Balance) balanceResponse {
	resp := balanceResponse{
		AccountID: b.AccountID.String(),
		Credits:   b.Credits,
		Tier:      string(b.Tier),
		Unmetered: b.Unmetered,
	}
	if !b.UpdatedAt.IsZero() {
		at := b.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}
