// Package api wires HTTP handlers, middleware and routes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Money-Manager-Backend/internal/api/middleware"
	"github.com/ndewijer/Money-Manager-Backend/internal/config"
	"github.com/ndewijer/Money-Manager-Backend/internal/service"
)

// Services bundles everything the router dispatches to.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Recurring   *service.RecurringService
	ShortTerm   *service.ShortTermService
	Asset       *service.AssetService
	Price       *service.PriceService
	Market      *service.MarketService
	Analytics   *service.AnalyticsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/short-term", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			recurringHandler := handlers.NewRecurringHandler(svc.Recurring)
			shortTermHandler := handlers.NewShortTermHandler(svc.ShortTerm)

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", transactionHandler.Transactions)
				r.Post("/", transactionHandler.CreateTransaction)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", transactionHandler.GetTransaction)
					r.Put("/", transactionHandler.UpdateTransaction)
					r.Delete("/", transactionHandler.DeleteTransaction)
				})
			})

			r.Post("/recurring/generate", recurringHandler.Generate)

			r.Get("/subscriptions", shortTermHandler.Subscriptions)
			r.Post("/subscriptions", shortTermHandler.CreateSubscription)
			r.Get("/accounts", shortTermHandler.Accounts)
			r.Post("/accounts", shortTermHandler.CreateAccount)
			r.Get("/credit-cards", shortTermHandler.CreditCards)
			r.Post("/credit-cards", shortTermHandler.CreateCreditCard)
			r.Get("/summary", shortTermHandler.Summary)
		})

		r.Route("/long-term", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Asset)
			priceHandler := handlers.NewPriceHandler(svc.Price)

			r.Route("/assets", func(r chi.Router) {
				r.Get("/", assetHandler.Assets)
				r.Post("/", assetHandler.CreateAsset)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", assetHandler.GetAsset)
					r.Put("/", assetHandler.UpdateAsset)
					r.Delete("/", assetHandler.DeleteAsset)
				})
			})

			r.Get("/breakdown", assetHandler.Breakdown)

			r.Route("/prices", func(r chi.Router) {
				r.Get("/portfolio", priceHandler.PortfolioHistory)
				r.With(custommiddleware.ValidateUUIDMiddleware).Get("/assets/{uuid}", priceHandler.AssetHistory)

				r.Group(func(r chi.Router) {
					r.Use(custommiddleware.APIKeyMiddleware)
					r.Post("/snapshot", priceHandler.Snapshot)
					r.Post("/backfill", priceHandler.Backfill)
				})
			})
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svc.Market)
			r.Get("/quote", marketHandler.Quote)
			r.Get("/search", marketHandler.Search)
		})

		r.Route("/analytics", func(r chi.Router) {
			analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)
			r.Post("/spending", analyticsHandler.Spending)
			r.Post("/breakdown", analyticsHandler.Breakdown)
		})
	})

	return r
}
