package server

import (
	"net/http"

	"github.com/accrue-app/accrue/internal/ledger"
	"github.com/accrue-app/accrue/internal/model"
)

func listTransfersHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transfers, err := eng.ListTransfers(r.Context())
		if err != nil {
			handleError(w, err)
			return
		}
		if transfers == nil {
			transfers = []model.Transfer{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"transfers": transfers})
	}
}

func createTransferHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields model.TransferFields
		if err := decodeBody(r, &fields); err != nil {
			handleError(w, err)
			return
		}
		transfer, err := eng.CreateTransfer(r.Context(), fields)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, transfer)
	}
}

func getTransferHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		transfer, err := eng.GetTransfer(r.Context(), id)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transfer)
	}
}

func deleteTransferHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		if err := eng.DeleteTransfer(r.Context(), id); err != nil {
			handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
