package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/adapters/httpapi"
	memlistrepo "task-manager/internal/adapters/memory/listrepo"
	"task-manager/internal/adapters/memory/store"
	memtaskrepo "task-manager/internal/adapters/memory/taskrepo"
	"task-manager/internal/adapters/postgres"
	pglistrepo "task-manager/internal/adapters/postgres/listrepo"
	pgtaskrepo "task-manager/internal/adapters/postgres/taskrepo"
	"task-manager/internal/app/tasklists"
	"task-manager/internal/platform/config"
	"task-manager/internal/platform/logging"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       string
		storeKind  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if storeKind != "" {
				cfg.Store = storeKind
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides config and PORT)")
	cmd.Flags().StringVar(&storeKind, "store", "", "Storage backend: memory or postgres")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	svc, closeStore, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	api := httpapi.NewServer(svc)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{Logger: log}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening", "addr", srv.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	grace, _ := cfg.ShutdownGrace()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openService wires the configured store into the application service.
func openService(ctx context.Context, cfg config.Config) (*tasklists.Service, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		db := store.New()
		svc := tasklists.NewService(memlistrepo.NewRepo(db), memtaskrepo.NewRepo(db), db)
		return svc, func() {}, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, postgres.PoolOptions{MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, nil, err
		}
		svc := tasklists.NewService(pglistrepo.NewRepo(pool), pgtaskrepo.NewRepo(pool), postgres.NewTxManager(pool))
		return svc, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
