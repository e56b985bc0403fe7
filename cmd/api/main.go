package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catalog-service/cmd/api/auth"
	"github.com/catalog-service/cmd/api/book"
	"github.com/catalog-service/cmd/api/database"
	"github.com/catalog-service/cmd/api/demo"
	bookhttp "github.com/catalog-service/cmd/api/http"
	"github.com/catalog-service/cmd/api/inmemory"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/golang-migrate/migrate/v4"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stdout, cfg.LogLevel)
	err = run(cfg, logger)
	if err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

/* Store chosen by configuration, with the fixture operations the demo loader needs. */
type catalogStore interface {
	book.Repository
	demo.Seeder
}

func run(cfg config, logger log.Logger) error {
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.TestData {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		err = demo.LoadBookTestData(ctx, store, logger)
		cancel()
		if err != nil {
			return err
		}
	}

	policy, err := auth.NewDefaultPolicy()
	if err != nil {
		return fmt.Errorf("building access policy: %w", err)
	}

	bookService := book.NewService(store, policy)
	bookHandler := bookhttp.NewBookHandler(bookService, policy, log.With(logger, "component", "http"), cfg.RequestTimeout)

	//create and init http server:
	server := bookhttp.NewServer(bookhttp.ServerConfig{
		Port: cfg.Port,
		Limiter: bookhttp.LimiterConfig{
			Enabled: cfg.LimiterEnabled,
			RPS:     cfg.LimiterRPS,
			Burst:   cfg.LimiterBurst,
		},
	}, bookHandler, auth.NewJWTVerifier(cfg.JWTSecret), logger)

	serverErr := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "Starting catalog service", "addr", server.Addr, "storage", cfg.Storage)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("unexpected http server error: %w", err)
		}
		close(serverErr)
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sc:
	case err := <-serverErr:
		return err
	}

	ctx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownRelease()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	level.Info(logger).Log("msg", "Graceful shutdown complete.")
	return nil
}

func openStore(cfg config, logger log.Logger) (catalogStore, func(), error) {
	if cfg.Storage == storageMemory {
		store, err := inmemory.NewInMemoryStore()
		if err != nil {
			return nil, nil, fmt.Errorf("creating in-memory store: %w", err)
		}
		return store, func() {}, nil
	}

	//connect to db:
	dbObject, err := database.ConnectDb(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting with db: %w", err)
	}
	level.Info(logger).Log("msg", "Successfully connected!")

	//apply migrations:
	store := database.NewStore(dbObject)
	err = database.MigrationUp(store, cfg.MigrationsPath)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		dbObject.Close()
		return nil, nil, fmt.Errorf("migrating: %w", err)
	}

	return store, func() { dbObject.Close() }, nil
}
