package initializer

import (
	"fmt"
	"log/slog"

	"github.com/dinero-app/dinero/infra"
	"github.com/dinero-app/dinero/infra/provider/mockaggregator"
	"github.com/dinero-app/dinero/infra/provider/plaid"
	infra_repository "github.com/dinero-app/dinero/infra/repository"
	"github.com/dinero-app/dinero/pkg/app"
	"github.com/dinero-app/dinero/pkg/config"
	"github.com/dinero-app/dinero/pkg/provider"
)

// MockProviderEnv selects the in-process aggregator instead of Plaid.
const MockProviderEnv = "mock"

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := NewLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := infra.RunMigrations(db, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	deps.Uow = infra_repository.NewUoW(db)
	deps.Aggregator = NewAggregator(cfg.Plaid, logger)
	return
}

// NewAggregator returns the aggregation provider named by the Plaid
// environment setting.
func NewAggregator(cfg *config.Plaid, logger *slog.Logger) provider.Aggregator {
	if cfg == nil {
		cfg = &config.Plaid{Env: MockProviderEnv}
	}
	if cfg.Env == MockProviderEnv {
		logger.Info("Using mock aggregation provider")
		return mockaggregator.New()
	}
	if cfg.ClientID == "" || cfg.Secret == "" {
		logger.Warn("Plaid credentials are not configured", "env", cfg.Env)
	}
	logger.Info("Using Plaid aggregation provider", "env", cfg.Env)
	return plaid.New(cfg, logger)
}
