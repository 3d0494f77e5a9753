package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SscSPs/club_ledger_app/internal/handlers"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
	"github.com/SscSPs/club_ledger_app/internal/scheduler"
	"github.com/SscSPs/club_ledger_app/pkg/database"
)

func newServeCommand() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic expiry/sync jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
	return cmd
}

func runServe(ctx context.Context, skipMigrations bool) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !skipMigrations {
		if err := database.Migrate(a.cfg.DatabaseURL, a.cfg.MigrationsPath, database.MigrateUp, a.logger); err != nil {
			return err
		}
	}

	jobs := scheduler.New(a.logger)
	jobs.Add(scheduler.Task{
		Name:     "expire-requests",
		Interval: a.cfg.ExpirySweepInterval,
		Run: func(ctx context.Context) error {
			ctx = middleware.WithLogger(ctx, a.logger.With(slog.String("task", "expire-requests")))
			_, err := a.services.Reconciliation.ExpireAll(ctx)
			return err
		},
	})
	jobs.Add(scheduler.Task{
		Name:     "auto-sync",
		Interval: a.cfg.AutoSyncInterval,
		Run: func(ctx context.Context) error {
			ctx = middleware.WithLogger(ctx, a.logger.With(slog.String("task", "auto-sync")))
			a.services.Sync.SyncAll(ctx)
			return nil
		},
	})
	jobs.Start()
	defer jobs.Shutdown()

	if a.cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(a.logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, a.cfg, a.services); err != nil {
		return err
	}

	srv := &http.Server{Addr: ":" + a.cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", slog.String("port", a.cfg.Port))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
