package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

// handleError maps a service error onto a status code and error code.
// Server-side failures are logged; client errors are not.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		verr *domain.ValidationError
		ierr *domain.InsufficientCreditsError
	)

	switch {
	case errors.As(err, &verr):
		details := make(map[string]any, len(verr.Errors))
		for _, fe := range verr.Errors {
			details[fe.Field] = fe.Message
		}
		writeErrorDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", details)

	case errors.As(err, &ierr):
		writeErrorDetails(w, http.StatusPaymentRequired, "INSUFFICIENT_CREDITS", "insufficient credits", map[string]any{
			"required":  ierr.Required,
			"available": ierr.Available,
		})

	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "ALREADY_EXISTS", "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", "balance changed concurrently, retry")

	// A failed refund or ledger write leaves the account needing attention,
	// so it outranks the provider or persistence failure that caused it.
	case errors.Is(err, domain.ErrCompensation), errors.Is(err, domain.ErrLedgerWrite):
		log.ErrorContext(r.Context(), "bookkeeping failure", slog.String("error", err.Error()), slog.Bool("alert", true))
		writeError(w, http.StatusInternalServerError, "BOOKKEEPING_FAILED", "credit bookkeeping failed; the operation was not completed")

	case errors.Is(err, domain.ErrProvider) && errors.Is(err, context.DeadlineExceeded):
		log.WarnContext(r.Context(), "generator timed out", slog.String("error", err.Error()))
		writeError(w, http.StatusGatewayTimeout, "GENERATOR_TIMEOUT", "generation timed out; no credits were charged")
	case errors.Is(err, domain.ErrProvider):
		log.WarnContext(r.Context(), "generator failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "GENERATOR_FAILED", "generation failed; no credits were charged")
	case errors.Is(err, domain.ErrPersistence):
		log.ErrorContext(r.Context(), "artifact persistence failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE_FAILED", "result could not be saved; no credits were charged")

	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		w.WriteHeader(499)
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
