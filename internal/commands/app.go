package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/club_ledger_app/internal/adapters/bank"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/core/services"
	"github.com/SscSPs/club_ledger_app/internal/platform/config"
	"github.com/SscSPs/club_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/club_ledger_app/pkg/database"
)

// app is everything a command needs once configuration and the database are up.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	svc := services.NewServiceContainer(
		pgsql.NewRepositoryProvider(pool),
		pgsql.NewTxManager(pool),
		newGatewayRegistry(ctx, cfg, logger),
		services.SyncConfig{BootstrapDays: cfg.SyncBootstrapDays, FetchTimeout: cfg.SyncTimeout},
		services.WithLocation(cfg.Location),
	)
	return &app{cfg: cfg, logger: logger, pool: pool, services: svc}, nil
}

func (a *app) Close() {
	database.ClosePgxPool(a.pool)
}

// newGatewayRegistry registers every bank gateway the configuration enables.
func newGatewayRegistry(ctx context.Context, cfg *config.Config, logger *slog.Logger) *bank.Registry {
	registry := bank.NewRegistry()
	if cfg.BankAPI.Enabled() {
		registry.Register(cfg.BankAPI.BankCode, bank.NewHTTPGateway(ctx, bank.HTTPConfig{
			BaseURL:      cfg.BankAPI.BaseURL,
			TokenURL:     cfg.BankAPI.TokenURL,
			ClientID:     cfg.BankAPI.ClientID,
			ClientSecret: cfg.BankAPI.ClientSecret,
			Timeout:      cfg.SyncTimeout,
		}))
		logger.Info("Bank API gateway registered", slog.String("bank_code", cfg.BankAPI.BankCode))
	}
	if cfg.StatementDir != "" && cfg.StatementBankCode != "" {
		registry.Register(cfg.StatementBankCode, bank.NewStatementGateway(cfg.StatementDir, cfg.Location))
		logger.Info("Statement gateway registered", slog.String("bank_code", cfg.StatementBankCode), slog.String("dir", cfg.StatementDir))
	}
	return registry
}
