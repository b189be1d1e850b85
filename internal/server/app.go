// Package server wires configuration, storage, services and the REST API
// into a runnable application and manages its lifecycle.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophcatalog/internal/cryptox"
	"github.com/dmitrijs2005/gophcatalog/internal/dbx"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/dmitrijs2005/gophcatalog/internal/server/auth"
	"github.com/dmitrijs2005/gophcatalog/internal/server/config"
	"github.com/dmitrijs2005/gophcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcatalog/internal/server/rest"
	"github.com/dmitrijs2005/gophcatalog/internal/server/services"
	"github.com/dmitrijs2005/gophcatalog/internal/server/storage"
	"golang.org/x/sync/errgroup"
)

// MemoryDSN selects the in-memory repositories instead of PostgreSQL.
const MemoryDSN = "memory"

var sqlOpen = sql.Open

// Store is an opened repository backend.
type Store struct {
	Tx          dbx.Transactor
	Repomanager repomanager.RepositoryManager
	db          *sql.DB
}

// Close releases the database pool, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenStore connects to the configured database and applies migrations.
func OpenStore(ctx context.Context, c *config.Config, logger logging.Logger) (*Store, error) {
	if c.DatabaseDSN == MemoryDSN {
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		return &Store{Tx: dbx.NoopTransactor{}, Repomanager: repomanager.NewMemoryRepositoryManager(nil)}, nil
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return &Store{Tx: dbx.NewSQLTransactor(db, nil), Repomanager: m, db: db}, nil
}

// NewImageStore builds the configured image backend. The returned handler
// serves local images and is nil for S3.
func NewImageStore(ctx context.Context, c *config.Config) (storage.ImageStore, http.Handler, error) {
	switch c.ImageStore {
	case config.ImageStoreS3:
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
			PublicURL:    c.S3PublicURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		s, err := storage.NewLocalStore(c.UploadDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Handler(), nil
	}
}

type App struct {
	config *config.Config
	logger logging.Logger
	store  *Store
	server *rest.RESTServer
	reaper *services.TokenReaper
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewLogger(c.Environment)

	if c.UsesDefaultSecret() {
		if c.IsProduction() {
			logger.Warn(ctx, "JWT secret is the built-in default; set JWT_SECRET")
		} else {
			logger.Debug(ctx, "using the built-in development JWT secret")
		}
	}

	tokens, err := auth.NewTokenManager(c.SecretKey, c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token manager error: %w", err)
	}

	images, uploads, err := NewImageStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("image store error: %w", err)
	}

	store, err := OpenStore(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	hasher := cryptox.NewHasher(c.HashConcurrency)

	us := services.NewUserService(store.Tx, store.Repomanager, hasher, tokens, logger)
	cs := services.NewCategoryService(store.Tx, store.Repomanager, logger)
	ps := services.NewProductService(store.Tx, store.Repomanager, images, c.MaxUploadSize, logger)

	srv := rest.NewRESTServer(c.HTTPAddr, logger, rest.Services{Users: us, Categories: cs, Products: ps}, tokens, uploads, c.MaxUploadSize)

	return &App{
		config: c,
		logger: logger,
		store:  store,
		server: srv,
		reaper: services.NewTokenReaper(us, c.RefreshTokenCleanupInterval, logger.With("module", "token_reaper")),
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives. A failing
// component stops the others.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.server.Run(ctx) })
	g.Go(func() error { return app.reaper.Run(ctx) })

	err := g.Wait()

	if cerr := app.store.Close(); cerr != nil {
		app.logger.Error(context.WithoutCancel(ctx), "closing database", "error", cerr)
	}

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return err
}
