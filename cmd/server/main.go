package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocker-hk/stocker-backend/internal/api"
	"github.com/stocker-hk/stocker-backend/internal/config"
	"github.com/stocker-hk/stocker-backend/internal/database"
	"github.com/stocker-hk/stocker-backend/internal/fx"
	"github.com/stocker-hk/stocker-backend/internal/logging"
	"github.com/stocker-hk/stocker-backend/internal/marketdata"
	"github.com/stocker-hk/stocker-backend/internal/repository"
	"github.com/stocker-hk/stocker-backend/internal/scheduler"
	"github.com/stocker-hk/stocker-backend/internal/secrets"
	"github.com/stocker-hk/stocker-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	// Open database connection and bring the schema up to date
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	logger.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Market data client and the cached USD/HKD rate
	market := marketdata.NewYahooClient()
	rates := fx.NewCachedRateProvider(market.USDToHKD, cfg.Portfolio.RateTTL, logger)

	codec, err := secrets.NewCodec(cfg.Portfolio.FernetKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid fernet key")
	}

	// Create services
	systemService := service.NewSystemService(db)
	settingService := service.NewSettingService(settingRepo, codec, logger)
	market.SetTokenSource(func() string {
		token, err := settingService.MarketDataToken()
		if err != nil {
			return ""
		}
		return token
	})
	balanceService := service.NewBalanceService(balanceRepo, transactionRepo, cashFlowRepo, rates, logger)
	assetService := service.NewAssetService(assetRepo, market, logger)
	transactionService := service.NewTransactionService(transactionRepo, assetService, balanceService, logger)
	cashFlowService := service.NewCashFlowService(cashFlowRepo, balanceService, logger)
	portfolioService := service.NewPortfolioService(assetRepo, transactionRepo, cashFlowRepo, rates, logger)
	performanceService := service.NewPerformanceService(assetRepo, transactionRepo, cashFlowRepo, rates, logger)
	snapshotService := service.NewSnapshotService(snapshotRepo, portfolioService, assetService, balanceService, logger)
	importService := service.NewImportService(transactionRepo, assetService, balanceService, logger)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Setting:     settingService,
		Portfolio:   portfolioService,
		Balance:     balanceService,
		Performance: performanceService,
		Transaction: transactionService,
		Import:      importService,
		CashFlow:    cashFlowService,
		Asset:       assetService,
		Snapshot:    snapshotService,
	}, cfg, logger)

	// Daily snapshot scheduler
	sched := scheduler.New(logger)
	if cfg.Scheduler.Enabled {
		job := scheduler.NewSnapshotJob(snapshotService, cfg.Portfolio.DefaultAccount)
		if err := sched.AddJob(cfg.Scheduler.SnapshotSchedule, job); err != nil {
			logger.Fatal().Err(err).Msg("failed to register snapshot job")
		}
		sched.Start()
		defer sched.Stop()
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
