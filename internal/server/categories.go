package server

import (
	"net/http"

	"github.com/accrue-app/accrue/internal/ledger"
	"github.com/accrue-app/accrue/internal/model"
)

func listCategoriesHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeArchived := r.URL.Query().Get("all") == "true"
		categories, err := eng.ListCategories(r.Context(), includeArchived)
		if err != nil {
			handleError(w, err)
			return
		}
		if categories == nil {
			categories = []model.Category{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
	}
}

func createCategoryHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields model.CategoryFields
		if err := decodeBody(r, &fields); err != nil {
			handleError(w, err)
			return
		}
		category, err := eng.CreateCategory(r.Context(), fields)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, category)
	}
}

func getCategoryHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		category, err := eng.GetCategory(r.Context(), id)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func updateCategoryHandler(eng *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		var fields model.CategoryFields
		if err := decodeBody(r, &fields); err != nil {
			handleError(w, err)
			return
		}
		category, err := eng.UpdateCategory(r.Context(), id, fields)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func setCategoryArchivedHandler(eng *ledger.Ledger, archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			handleError(w, err)
			return
		}
		if err := eng.SetCategoryArchived(r.Context(), id, archived); err != nil {
			handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
