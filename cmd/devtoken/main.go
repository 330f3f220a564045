// Command devtoken mints HS256 ID tokens accepted by the local identity
// provider (IDENTITY_PROVIDER=local), for manual testing without Firebase.
//
//	devtoken -uid alice-1 -email alice@example.com -ttl 1h
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirpyerre/account-portal/internal/core/domain"
	"github.com/sirpyerre/account-portal/internal/infrastructure/identity"
	"github.com/sirpyerre/account-portal/internal/pkg/config"
	"github.com/sirpyerre/account-portal/pkg/logger"
)

func main() {
	var (
		uid   = flag.String("uid", "", "identity uid (required)")
		email = flag.String("email", "", "email claim")
		name  = flag.String("name", "", "name claim")
		ttl   = flag.Duration("ttl", time.Hour, "token lifetime")
		skew  = flag.Duration("skew", 0, "issue the token this far in the future to exercise clock-skew retries")
	)
	flag.Parse()

	log := logger.Init(logger.Options{Pretty: true, Output: os.Stderr})

	if *uid == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadWith(context.Background(), localLookuper())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	issuer, err := identity.NewLocalVerifier(cfg.Identity.LocalSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create issuer")
	}

	token, err := issuer.IssueAt(domain.Identity{UID: *uid, Email: *email, Name: *name}, time.Now().Add(*skew), *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot sign token")
	}
	fmt.Println(token)
}
