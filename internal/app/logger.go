package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/ideascore-backend/internal/config"
	"github.com/heartmarshall/ideascore-backend/pkg/ctxutil"
)

const (
	attrRequestID = "request_id"
	attrAccountID = "account_id"
)

// NewLogger builds the process logger from LogConfig, writes it to stderr and
// installs it as the slog default.
//
// Every record carries the build version. Records logged with a request
// context also get request_id and account_id, unless the caller already
// attached them, so saga and ledger logs can be joined to the access log.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(&contextHandler{Handler: handler}).With(slog.String("version", Version))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler copies request-scoped identifiers from the context onto
// records. Keys already bound with Logger.With are not repeated.
type contextHandler struct {
	slog.Handler
	boundRequestID bool
	boundAccountID bool
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx == nil {
		return h.Handler.Handle(ctx, r)
	}

	hasRequestID, hasAccountID := h.boundRequestID, h.boundAccountID
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case attrRequestID:
			hasRequestID = true
		case attrAccountID:
			hasAccountID = true
		}
		return !(hasRequestID && hasAccountID)
	})

	if !hasRequestID {
		if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
			r.AddAttrs(slog.String(attrRequestID, id))
		}
	}
	if !hasAccountID {
		if id, ok := ctxutil.AccountIDFromCtx(ctx); ok {
			r.AddAttrs(slog.String(attrAccountID, id.String()))
		}
	}

	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &contextHandler{
		Handler:        h.Handler.WithAttrs(attrs),
		boundRequestID: h.boundRequestID,
		boundAccountID: h.boundAccountID,
	}
	for _, a := range attrs {
		switch a.Key {
		case attrRequestID:
			next.boundRequestID = true
		case attrAccountID:
			next.boundAccountID = true
		}
	}
	return next
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		Handler:        h.Handler.WithGroup(name),
		boundRequestID: h.boundRequestID,
		boundAccountID: h.boundAccountID,
	}
}
