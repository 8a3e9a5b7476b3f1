package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/ledger"
)

func dashboardHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := eng.Dashboard(r.Context())
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
	}
}

func spendingHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		year, month := now.Year(), int(now.Month())

		q := r.URL.Query()
		if raw := q.Get("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				handleError(w, common.Validationf("invalid year %q", raw))
				return
			}
			year = parsed
		}
		if raw := q.Get("month"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				handleError(w, common.Validationf("invalid month %q", raw))
				return
			}
			month = parsed
		}

		breakdown, err := eng.SpendingBreakdown(r.Context(), year, month)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, breakdown)
	}
}

func trendsHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months := 6
		if raw := r.URL.Query().Get("months"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				handleError(w, common.Validationf("invalid months %q", raw))
				return
			}
			months = parsed
		}

		trends, err := eng.MonthlyTrends(r.Context(), months)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"months": trends})
	}
}
