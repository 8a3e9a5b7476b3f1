package server

import (
	"log/slog"
	"net/http"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/ledger"
)

func exportCSVHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
		if _, err := eng.ExportCSV(r.Context(), w); err != nil {
			// Headers are already sent; a truncated body is all the client sees.
			slog.Error("CSV export failed mid-stream", "error", err)
		}
	}
}

type maintenancePathRequest struct {
	Path string `json:"path"`
}

func backupHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req maintenancePathRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(w, err)
			return
		}
		if req.Path == "" {
			handleError(w, common.Validationf("path is required"))
			return
		}
		if err := eng.Backup(r.Context(), req.Path); err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"path": req.Path})
	}
}

func restoreHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req maintenancePathRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(w, err)
			return
		}
		if req.Path == "" {
			handleError(w, common.Validationf("path is required"))
			return
		}
		if err := eng.Restore(r.Context(), req.Path); err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"restored": true})
	}
}

func resetHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirm") != "true" {
			handleError(w, common.Validationf("reset requires ?confirm=true"))
			return
		}
		if err := eng.Reset(r.Context()); err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reset": true})
	}
}
