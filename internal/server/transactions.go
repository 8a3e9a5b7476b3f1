package server

import (
	"net/http"
	"strconv"

	"github.com/accrue-app/accrue/internal/common"
	"github.com/accrue-app/accrue/internal/ledger"
	"github.com/accrue-app/accrue/internal/model"
	"github.com/accrue-app/accrue/internal/service"
)

func listTransactionsHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseTransactionFilter(r)
		if err != nil {
			handleError(w, err)
			return
		}
		transactions, err := eng.ListTransactions(r.Context(), filter)
		if err != nil {
			handleError(w, err)
			return
		}
		if transactions == nil {
			transactions = []model.Transaction{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
	}
}

func parseTransactionFilter(r *http.Request) (service.TransactionFilter, error) {
	var filter service.TransactionFilter
	q := r.URL.Query()

	for name, dest := range map[string]**int64{
		"account_id":  &filter.AccountID,
		"category_id": &filter.CategoryID,
	} {
		if raw := q.Get(name); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return filter, common.Validationf("invalid %s %q", name, raw)
			}
			*dest = &id
		}
	}

	if raw := q.Get("type"); raw != "" {
		txnType := model.TransactionType(raw)
		if !txnType.Valid() {
			return filter, common.Validationf("invalid type %q", raw)
		}
		filter.Type = &txnType
	}

	for name, dest := range map[string]**model.Date{
		"from": &filter.DateFrom,
		"to":   &filter.DateTo,
	} {
		if raw := q.Get(name); raw != "" {
			date, err := model.ParseDate(raw)
			if err != nil {
				return filter, common.Validationf("invalid %s date %q", name, raw)
			}
			*dest = &date
		}
	}

	filter.Search = q.Get("search")
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, common.Validationf("invalid limit %q", raw)
		}
		filter.Limit = limit
	}
	return filter, nil
}

func createTransactionHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields model.TransactionFields
		if err := decodeBody(r, &fields); err != nil {
			handleError(w, err)
			return
		}
		txn, err := eng.CreateTransaction(r.Context(), fields)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, txn)
	}
}

func getTransactionHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		txn, err := eng.GetTransaction(r.Context(), id)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, txn)
	}
}

func updateTransactionHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		var fields model.TransactionFields
		if err := decodeBody(r, &fields); err != nil {
			handleError(w, err)
			return
		}
		txn, err := eng.UpdateTransaction(r.Context(), id, fields)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, txn)
	}
}

func deleteTransactionHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		if err := eng.DeleteTransaction(r.Context(), id); err != nil {
			handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
