package server

import (
	"net/http"

	"github.com/accrue-app/accrue/internal/ledger"
	"github.com/accrue-app/accrue/internal/model"
)

func listAccountsHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("all") != "true"
		accounts, err := eng.AccountsWithBalances(r.Context(), activeOnly)
		if err != nil {
			handleError(w, err)
			return
		}
		if accounts == nil {
			accounts = []model.AccountWithBalance{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
	}
}

func createAccountHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields model.AccountFields
		if err := decodeBody(r, &fields); err != nil {
			handleError(w, err)
			return
		}
		account, err := eng.CreateAccount(r.Context(), fields)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, account)
	}
}

func getAccountHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		account, err := eng.GetAccount(r.Context(), id)
		if err != nil {
			handleError(w, err)
			return
		}
		balance, err := eng.AccountBalance(r.Context(), id)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, model.AccountWithBalance{Account: *account, Balance: balance})
	}
}

func updateAccountHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		var fields model.AccountFields
		if err := decodeBody(r, &fields); err != nil {
			handleError(w, err)
			return
		}
		account, err := eng.UpdateAccount(r.Context(), id, fields)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

func setAccountActiveHandler(eng *ledger.Ledger, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		if err := eng.SetAccountActive(r.Context(), id, active); err != nil {
			handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func accountHistoryHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		history, err := eng.AccountHistory(r.Context(), id)
		if err != nil {
			handleError(w, err)
			return
		}
		if history == nil {
			history = []model.RunningBalanceEntry{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"history": history})
	}
}
