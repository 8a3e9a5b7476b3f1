// Package server exposes the ledger engine over HTTP. Handlers are thin:
// decode, call the engine, encode. All semantics live in the ledger package.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/accrue-app/accrue/internal/ledger"
)

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(eng *ledger.Ledger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthzHandler(eng))

	r.Route("/v1", func(r chi.Router) {
		// Accounts
		r.Get("/accounts", listAccountsHandler(eng))
		r.Post("/accounts", createAccountHandler(eng))
		r.Get("/accounts/{id}", getAccountHandler(eng))
		r.Put("/accounts/{id}", updateAccountHandler(eng))
		r.Post("/accounts/{id}/archive", setAccountActiveHandler(eng, false))
		r.Post("/accounts/{id}/restore", setAccountActiveHandler(eng, true))
		r.Get("/accounts/{id}/history", accountHistoryHandler(eng))

		// Transactions
		r.Get("/transactions", listTransactionsHandler(eng))
		r.Post("/transactions", createTransactionHandler(eng))
		r.Get("/transactions/{id}", getTransactionHandler(eng))
		r.Put("/transactions/{id}", updateTransactionHandler(eng))
		r.Delete("/transactions/{id}", deleteTransactionHandler(eng))

		// Transfers
		r.Get("/transfers", listTransfersHandler(eng))
		r.Post("/transfers", createTransferHandler(eng))
		r.Get("/transfers/{id}", getTransferHandler(eng))
		r.Delete("/transfers/{id}", deleteTransferHandler(eng))

		// Categories
		r.Get("/categories", listCategoriesHandler(eng))
		r.Post("/categories", createCategoryHandler(eng))
		r.Get("/categories/{id}", getCategoryHandler(eng))
		r.Put("/categories/{id}", updateCategoryHandler(eng))
		r.Post("/categories/{id}/archive", setCategoryArchivedHandler(eng, true))
		r.Post("/categories/{id}/restore", setCategoryArchivedHandler(eng, false))

		// Reports
		r.Get("/reports/dashboard", dashboardHandler(eng))
		r.Get("/reports/spending", spendingHandler(eng))
		r.Get("/reports/trends", trendsHandler(eng))

		// Export and maintenance
		r.Get("/export/transactions.csv", exportCSVHandler(eng))
		r.Post("/maintenance/backup", backupHandler(eng))
		r.Post("/maintenance/restore", restoreHandler(eng))
		r.Post("/maintenance/reset", resetHandler(eng))
	})

	return r
}

func healthzHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := eng.RowCounts(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"counts": counts,
		})
	}
}
