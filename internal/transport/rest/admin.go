package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/service/credit"
)

type accountAdmin interface {
	OpenAccount(ctx context.Context, in credit.OpenAccountInput) (*domain.Account, bool, error)
	TopUp(ctx context.Context, in credit.TopUpInput) (*domain.Account, error)
	Adjust(ctx context.Context, in credit.AdjustInput) (*domain.Account, error)
}

// AdminHandler serves operator endpoints. The router gates it with
// RequireAdmin and the credit service re-checks the role.
type AdminHandler struct {
	accounts accountAdmin
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(accounts accountAdmin, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		accounts: accounts,
		log:      logger.With("handler", "admin"),
	}
}

type openAccountRequest struct {
	AccountID      string `json:"accountId"      validate:"required,uuid"`
	InitialCredits *int   `json:"initialCredits" validate:"omitnil,min=0"`
}

type topUpRequest struct {
	Amount      int    `json:"amount"      validate:"gt=0"`
	Description string `json:"description" validate:"max=512"`
}

type adjustRequest struct {
	Delta  int    `json:"delta"  validate:"ne=0"`
	Reason string `json:"reason" validate:"required,max=512"`
}

type accountResponse struct {
	ID             string    `json:"id"`
	Credits        int       `json:"credits"`
	InitialCredits int       `json:"initialCredits"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// OpenAccount handles POST /v1/admin/accounts.
// Responds 201 for a new account and 200 when it already existed.
func (h *AdminHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := uuidParam(req.AccountID, "accountId")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	acc, created, err := h.accounts.OpenAccount(r.Context(), credit.OpenAccountInput{
		AccountID:      id,
		InitialCredits: req.InitialCredits,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toAccountResponse(acc))
}

// TopUp handles POST /v1/admin/accounts/{id}/topup.
func (h *AdminHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req topUpRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	acc, err := h.accounts.TopUp(r.Context(), credit.TopUpInput{
		AccountID:   id,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

// Adjust handles POST /v1/admin/accounts/{id}/adjust.
func (h *AdminHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req adjustRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	acc, err := h.accounts.Adjust(r.Context(), credit.AdjustInput{
		AccountID: id,
		Delta:     req.Delta,
		Reason:    req.Reason,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:             a.ID.String(),
		Credits:        a.Credits,
		InitialCredits: a.InitialCredits,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
