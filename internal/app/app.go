// Package app wires configuration, storage, clients and services into the
// shared core used by cmd/finances-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/clients/notify"
	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/balance"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/investment"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/ledger"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/obligation"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/report"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/statement"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/transfer"
	"github.com/gabrielmazz/finances-app-sub000/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	NotifyClient      interfaces.NotifyClient
	LedgerService     interfaces.LedgerService
	ObligationService interfaces.ObligationService
	InvestmentService interfaces.InvestmentService
	BalanceService    interfaces.BalanceService
	TransferService   interfaces.TransferService
	StatementService  interfaces.StatementService
	ReportService     interfaces.ReportService
	StartupTime       time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config resolution: explicit path, FINANCES_CONFIG, binary dir, dev fallback.
	if configPath == "" {
		configPath = os.Getenv("FINANCES_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finances.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finances.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var notifyClient interfaces.NotifyClient
	if config.Clients.Notify.BaseURL != "" {
		notifyClient = notify.NewClient(
			notify.WithBaseURL(config.Clients.Notify.BaseURL),
			notify.WithAPIKey(config.Clients.Notify.APIKey),
			notify.WithLogger(logger),
			notify.WithRateLimit(config.Clients.Notify.RateLimit),
			notify.WithTimeout(config.Clients.Notify.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("Notify service not configured - obligation reminders will be disabled")
		notifyClient = notify.NewNoopClient()
	}

	ledgerService := ledger.NewService(storageManager, logger)
	obligationService := obligation.NewService(storageManager, notifyClient, logger)
	investmentService := investment.NewService(storageManager, logger)
	balanceService := balance.NewService(storageManager, ledgerService, logger)
	transferService := transfer.NewService(storageManager, logger)
	statementService := statement.NewService(storageManager, logger)
	reportService := report.NewService(storageManager, balanceService, logger)

	logger.Info().
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("application initialized")

	return &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		NotifyClient:      notifyClient,
		LedgerService:     ledgerService,
		ObligationService: obligationService,
		InvestmentService: investmentService,
		BalanceService:    balanceService,
		TransferService:   transferService,
		StatementService:  statementService,
		ReportService:     reportService,
		StartupTime:       startupStart,
	}, nil
}

// Close releases storage resources.
func (a *App) Close() error {
	return a.Storage.Close()
}
