package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/stocker-hk/stocker-backend/internal/api/handlers"
	custommiddleware "github.com/stocker-hk/stocker-backend/internal/api/middleware"
	"github.com/stocker-hk/stocker-backend/internal/config"
	"github.com/stocker-hk/stocker-backend/internal/service"
)

// Services bundles everything the router hands to its handlers.
type Services struct {
	System      *service.SystemService
	Setting     *service.SettingService
	Portfolio   *service.PortfolioService
	Balance     *service.BalanceService
	Performance *service.PerformanceService
	Transaction *service.TransactionService
	Import      *service.ImportService
	CashFlow    *service.CashFlowService
	Asset       *service.AssetService
	Snapshot    *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	accountID := cfg.Portfolio.DefaultAccount

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.NewCORS(cfg.CORS.AllowedOrigins))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System, svcs.Setting)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)

			r.Route("/settings", func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Get("/", systemHandler.GetSettings)
				r.Put("/", systemHandler.UpdateSettings)
			})
		})

		portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio, svcs.Balance, svcs.Performance, accountID)
		r.Get("/dashboard", portfolioHandler.Dashboard)
		r.Get("/balance", portfolioHandler.Balance)
		r.Get("/performance/{year}", portfolioHandler.Performance)

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction, svcs.Import, accountID)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/import", transactionHandler.ImportTransactions)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/cashflow", func(r chi.Router) {
			cashFlowHandler := handlers.NewCashFlowHandler(svcs.CashFlow, accountID)
			r.Get("/", cashFlowHandler.AllCashFlows)
			r.Post("/", cashFlowHandler.CreateCashFlow)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", cashFlowHandler.GetCashFlow)
				r.Put("/", cashFlowHandler.UpdateCashFlow)
				r.Delete("/", cashFlowHandler.DeleteCashFlow)
			})
		})

		adminHandler := handlers.NewAdminHandler(svcs.Asset, svcs.Snapshot, accountID)
		r.Post("/prices/update", adminHandler.UpdatePrices)
		r.Post("/snapshot/run", adminHandler.RunSnapshot)
	})

	return r
}
