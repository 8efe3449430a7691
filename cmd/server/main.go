// Command server runs the credit ledger and generation HTTP API.
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and environment
// variables; see internal/config. SIGINT or SIGTERM triggers a graceful
// shutdown.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ideascore-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx)
	stop()

	if err != nil {
		log.Printf("server: %v", err)
		os.Exit(1)
	}
}
