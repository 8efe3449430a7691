// Command issue-token mints a bearer token for an account. There is no login
// flow; operators hand these tokens to customers or use them for admin calls.
//
// Usage:
//
//	issue-token --account=<uuid> [--admin] [--ttl=24h]
//
// Reads auth settings from the same config as the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/heartmarshall/ideascore-backend/internal/auth"
	"github.com/heartmarshall/ideascore-backend/internal/config"
	"github.com/heartmarshall/ideascore-backend/pkg/ctxutil"
)

func main() {
	accountFlag := flag.String("account", "", "account UUID (default: a new random one)")
	adminFlag := flag.Bool("admin", false, "grant the admin role")
	ttlFlag := flag.Duration("ttl", 0, "token lifetime (default: auth.token_ttl)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	accountID := uuid.New()
	if *accountFlag != "" {
		if accountID, err = uuid.Parse(*accountFlag); err != nil {
			fmt.Fprintf(os.Stderr, "invalid --account %q: %v\n", *accountFlag, err)
			os.Exit(1)
		}
	}

	ttl := cfg.Auth.TokenTTL
	if *ttlFlag > 0 {
		ttl = *ttlFlag
	}

	role := ""
	if *adminFlag {
		role = ctxutil.RoleAdmin
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl).Issue(accountID, role)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "account: %s\n", accountID)
	fmt.Println(token)
}
