package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/service/generation"
)

type generationService interface {
	Execute(ctx context.Context, in generation.ExecuteInput) (*generation.Result, error)
	GetArtifact(ctx context.Context, accountID, id uuid.UUID) (*domain.Artifact, error)
	ListArtifacts(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Artifact, error)
}

// GenerationHandler serves metered generation runs and their artifacts.
type GenerationHandler struct {
	svc generationService
	log *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(svc generationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{svc: svc, log: logger.With("handler", "generation")}
}

type createGenerationRequest struct {
	Operation string `json:"operation" validate:"required,oneof=DOCUMENT ANALYSIS document analysis"`
	Input     string `json:"input"     validate:"required"`
}

type artifactResponse struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Input     string    `json:"input"`
	Content   string    `json:"content"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

type generationResponse struct {
	Artifact artifactResponse `json:"artifact"`
	Cost     int              `json:"cost"`
	Balance  int              `json:"balance"`
	Metered  bool             `json:"metered"`
	Trail    []string         `json:"trail"`
}

type artifactListResponse struct {
	Items []artifactResponse `json:"items"`
}

// Create handles POST /v1/generations.
func (h *GenerationHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, err := callerID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createGenerationRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Execute(r.Context(), generation.ExecuteInput{
		AccountID: accountID,
		Operation: parseOperation(req.Operation),
		Input:     req.Input,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	trail := make([]string, len(res.Trail))
	for i, s := range res.Trail {
		trail[i] = s.String()
	}
	writeJSON(w, http.StatusCreated, generationResponse{
		Artifact: toArtifactResponse(res.Artifact),
		Cost:     res.Cost,
		Balance:  res.Balance,
		Metered:  res.Metered,
		Trail:    trail,
	})
}

// Get handles GET /v1/generations/{id}.
func (h *GenerationHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := callerID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := uuidParam(chi.URLParam(r, "id"), "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	a, err := h.svc.GetArtifact(r.Context(), accountID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toArtifactResponse(*a))
}

// List handles GET /v1/generations?limit=&offset=.
func (h *GenerationHandler) List(w http.ResponseWriter, r *http.Request) {
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

	artifacts, err := h.svc.ListArtifacts(r.Context(), accountID, limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]artifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		items = append(items, toArtifactResponse(a))
	}
	writeJSON(w, http.StatusOK, artifactListResponse{Items: items})
}

func toArtifactResponse(a domain.Artifact) artifactResponse {
	return artifactResponse{
		ID:        a.ID.String(),
		Operation: a.Operation.String(),
		Input:     a.Input,
		Content:   a.Content,
		Model:     a.Model,
		CreatedAt: a.CreatedAt,
	}
}
