// Command admin creates an administrator account in the catalog database.
//
// Credentials come from ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD; any
// that are unset are prompted for. Database settings are read the same way
// as for the server.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophcatalog/internal/admin"
	"github.com/dmitrijs2005/gophcatalog/internal/cryptox"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server"
	"github.com/dmitrijs2005/gophcatalog/internal/server/auth"
	"github.com/dmitrijs2005/gophcatalog/internal/server/config"
	"github.com/dmitrijs2005/gophcatalog/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.NewLogger(cfg.Environment)

	if cfg.DatabaseDSN == server.MemoryDSN {
		log.Fatal("admin seeding needs a persistent database")
	}

	store, err := server.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer store.Close()

	tokens, err := auth.NewTokenManager(cfg.SecretKey, cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	if err != nil {
		log.Fatalf("%v", err)
	}

	users := services.NewUserService(store.Tx, store.Repomanager, cryptox.NewHasher(cfg.HashConcurrency), tokens, logger)

	if _, err := admin.NewSeeder(users, os.Getenv, os.Stdin, os.Stdout).Run(ctx); err != nil {
		store.Close()
		log.Fatalf("%v", err)
	}
}
