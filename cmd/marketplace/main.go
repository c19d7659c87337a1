package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ericfisherdev/marketplace/internal/adapter/driven/password"
	sqliteadapter "github.com/ericfisherdev/marketplace/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/marketplace/internal/adapter/driven/token"
	httphandler "github.com/ericfisherdev/marketplace/internal/adapter/driving/http"
	"github.com/ericfisherdev/marketplace/internal/application"
	"github.com/ericfisherdev/marketplace/internal/config"
	"github.com/ericfisherdev/marketplace/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// databases holds one SQLite file per resource family.
type databases struct {
	buyers, sellers, products, variants, payments, shipping, reviews, profiles *sqliteadapter.DB
	opened                                                                     []*sqliteadapter.DB
}

func (d *databases) open(dir, name string, schema sqliteadapter.Schema) (*sqliteadapter.DB, error) {
	path := filepath.Join(dir, name)
	db, err := sqliteadapter.Open(path, schema)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	d.opened = append(d.opened, db)
	slog.Info("database opened", "path", path, "schema", schema)
	return db, nil
}

func (d *databases) close() {
	for _, db := range d.opened {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "path", db.Path(), "error", err)
		}
	}
}

func openDatabases(dir string) (*databases, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	d := &databases{}
	files := []struct {
		dst    **sqliteadapter.DB
		name   string
		schema sqliteadapter.Schema
	}{
		{&d.buyers, "buyers.db", sqliteadapter.SchemaCredentials},
		{&d.sellers, "sellers.db", sqliteadapter.SchemaCredentials},
		{&d.products, "products.db", sqliteadapter.SchemaProducts},
		{&d.variants, "variants.db", sqliteadapter.SchemaVariants},
		{&d.payments, "payments.db", sqliteadapter.SchemaPayments},
		{&d.shipping, "shipping.db", sqliteadapter.SchemaShipping},
		{&d.reviews, "reviews.db", sqliteadapter.SchemaReviews},
		{&d.profiles, "profile.db", sqliteadapter.SchemaProfiles},
	}

	for _, f := range files {
		db, err := d.open(dir, f.name, f.schema)
		if err != nil {
			d.close()
			return nil, err
		}
		*f.dst = db
	}

	return d, nil
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"data_dir", cfg.DataDir,
		"token_ttl", cfg.TokenTTL,
		"bcrypt_cost", cfg.BcryptCost,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open every database and apply its migrations.
	dbs, err := openDatabases(cfg.DataDir)
	if err != nil {
		return err
	}
	defer dbs.close()

	// 4. Wire adapters.
	credentialStore := sqliteadapter.NewCredentialRepo(map[model.Role]*sqliteadapter.DB{
		model.RoleBuyer:  dbs.buyers,
		model.RoleSeller: dbs.sellers,
	})
	productStore := sqliteadapter.NewProductRepo(dbs.products)
	variantStore := sqliteadapter.NewVariantRepo(dbs.variants)

	hasher, err := password.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// 5. Create services.
	svc := httphandler.Services{
		Auth:     application.NewAuthService(credentialStore, hasher, tokens, tokens.TTL()),
		Products: application.NewProductService(productStore),
		Variants: application.NewVariantService(variantStore, productStore),
		Payments: application.NewPaymentService(sqliteadapter.NewPaymentRepo(dbs.payments)),
		Shipping: application.NewShippingService(sqliteadapter.NewShippingRepo(dbs.shipping)),
		Reviews:  application.NewReviewService(sqliteadapter.NewReviewRepo(dbs.reviews)),
		Profiles: application.NewProfileService(sqliteadapter.NewProfileRepo(dbs.profiles)),
	}

	// 6. Create HTTP handler with routes and middleware.
	handler := httphandler.NewServeMux(httphandler.NewHandler(svc, tokens, logger), logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	slog.Info("marketplace started", "listen_addr", cfg.ListenAddr)

	// 7. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// 8. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
