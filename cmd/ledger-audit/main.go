// Command ledger-audit checks that every account's balance is explained by its
// opening balance plus its ledger entries. It only reads; drift is reported
// for an operator to investigate, never repaired.
//
// Usage:
//
//	ledger-audit                  audit every account
//	ledger-audit --account=<id>   audit one account
//
// Exit codes: 0 = consistent, 1 = error, 2 = drift found.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/adapter/cache/memory"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/ideascore-backend/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/ideascore-backend/internal/app"
	"github.com/heartmarshall/ideascore-backend/internal/config"
	"github.com/heartmarshall/ideascore-backend/internal/domain"
	"github.com/heartmarshall/ideascore-backend/internal/service/credit"
)

const exitDrift = 2

func main() {
	accountFlag := flag.String("account", "", "audit a single account by ID")
	batchFlag := flag.Int("batch", 200, "accounts per page when auditing all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg.Database.ApplicationName = "ideascore-ledger-audit"
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	cache := memory.New(memory.WithCapacity(cfg.Cache.MaxEntries))
	defer cache.Stop()

	svc := credit.NewService(logger, account.New(pool), ledger.New(pool), cache,
		postgres.NewTxManager(pool), credit.NewPolicy(cfg.Credits), nil, credit.Settings{
			DefaultBalance: cfg.Credits.DefaultBalance,
			MaxRetries:     cfg.Credits.MaxBalanceRetries,
		})

	var (
		drifted []domain.LedgerReport
		checked int
	)
	if *accountFlag != "" {
		id, err := uuid.Parse(*accountFlag)
		if err != nil {
			logger.Error("invalid account id", slog.String("account", *accountFlag))
			os.Exit(1)
		}
		report, err := svc.VerifyLedger(ctx, id)
		if err != nil {
			logger.Error("verify ledger", slog.String("error", err.Error()))
			os.Exit(1)
		}
		checked = 1
		if !report.Consistent() {
			drifted = append(drifted, report)
		}
	} else {
		drifted, checked, err = svc.AuditAll(ctx, *batchFlag)
		if err != nil {
			logger.Error("audit failed", slog.Int("checked", checked), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	for _, r := range drifted {
		logger.Warn("drift",
			slog.String("account_id", r.AccountID.String()),
			slog.Int("stored", r.StoredCredits),
			slog.Int("initial", r.InitialCredits),
			slog.Int("ledger_sum", r.LedgerSum),
			slog.Int("drift", r.Drift()),
		)
	}

	logger.Info("ledger audit completed",
		slog.Int("checked", checked),
		slog.Int("drifted", len(drifted)),
	)

	if len(drifted) > 0 {
		os.Exit(exitDrift)
	}
}
