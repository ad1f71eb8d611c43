package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/cache"
	"github.com/csr-ugra/matrouh-rentals/internal/db"
	"github.com/csr-ugra/matrouh-rentals/internal/export"
	"github.com/csr-ugra/matrouh-rentals/internal/httpapi"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/csr-ugra/matrouh-rentals/internal/rental"
	"github.com/csr-ugra/matrouh-rentals/internal/seed"
	"github.com/csr-ugra/matrouh-rentals/internal/session"
	"github.com/csr-ugra/matrouh-rentals/internal/util"
	"github.com/csr-ugra/matrouh-rentals/internal/util/assert"
	"github.com/uptrace/bun"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultAdminPassword = "admin123"
	shutdownTimeout      = 10 * time.Second
)

func Run(ctx context.Context, connection *bun.DB, config *util.Config) error {
	var migrateOnly, noSeed bool
	var exportPath string
	flag.BoolVar(&migrateOnly, "migrate-only", false, "create or upgrade the schema and exit")
	flag.BoolVar(&noSeed, "no-seed", false, "skip seeding demo data")
	flag.StringVar(&exportPath, "export-leads", "", "write leads to this .xlsx file and exit")
	flag.Parse()

	logger := log.GetLogger()

	logger.Debug("initialising schema")
	if err := db.InitSchema(ctx, connection); err != nil {
		return err
	}
	if migrateOnly {
		logger.Info("schema is up to date")
		return nil
	}

	store := rental.NewStore(connection,
		rental.WithUnitIdPrefix(config.UnitIdPrefix.Value),
		rental.WithReReview(config.BookingAllowReReview.Bool()),
	)

	if !noSeed {
		if err := seed.Run(ctx, store); err != nil {
			return err
		}
	}

	if exportPath != "" {
		return exportLeads(ctx, store, exportPath)
	}

	return serve(ctx, store, config)
}

func exportLeads(ctx context.Context, store *rental.Store, path string) error {
	leads, err := store.ListLeads(ctx, rental.DefaultLeadLimit)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteLeads(f, leads); err != nil {
		return err
	}

	log.GetLogger().WithField("Path", path).WithField("LeadCount", len(leads)).Info("exported leads")

	return f.Close()
}

func newCache(ctx context.Context, config *util.Config) (cache.Cache, func(), error) {
	if config.RedisUrl.Value == "" {
		log.GetLogger().Info("listing cache disabled")
		return cache.Nop{}, func() {}, nil
	}

	r, err := cache.NewRedis(ctx, config.RedisUrl.Value, config.RedisPassword.Value)
	if err != nil {
		return nil, nil, err
	}
	log.GetLogger().Info("listing cache connected to redis")

	return r, func() { _ = r.Close() }, nil
}

func serve(ctx context.Context, store *rental.Store, config *util.Config) error {
	logger := log.GetLogger()

	production := config.Environment.Value == "production"
	assert.Assert(!production || config.AdminPassword.Value != defaultAdminPassword,
		"refusing to start with the default admin password in production", "Variable", "ADMIN_PASSWORD")
	assert.Assert(!production || config.SessionSecret.Value != "",
		"refusing to start without a session secret in production", "Variable", "SESSION_SECRET")

	listingCache, closeCache, err := newCache(ctx, config)
	if err != nil {
		return err
	}
	defer closeCache()

	sessions, err := session.NewManager(config.SessionSecret.Value, config.SessionTtl.Duration(12*time.Hour))
	if err != nil {
		return err
	}

	admin, err := session.NewAdminPassword(config.AdminPassword.Value)
	if err != nil {
		return err
	}

	api := httpapi.NewServer(store, listingCache, sessions, admin,
		httpapi.WithAllowedOrigins(config.CorsAllowedOrigins.List()),
	)

	server := &http.Server{
		Addr:              config.HttpAddr.Value,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.WithField("Addr", server.Addr).Info("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	logger.Info("http server stopped")

	return nil
}
