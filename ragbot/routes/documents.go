package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ragbot/ragbot/controllers"
	"ragbot/ragbot/types"
)

func DocumentRoutes(ctrl *controllers.DocumentsController) chi.Router {
	r := chi.NewRouter()

	// POST /documents : embed and store document texts
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.IndexRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp, err := ctrl.Index(r.Context(), req)
		if err != nil {
			if errors.Is(err, controllers.ErrNoDocuments) {
				http.Error(w, err.Error(), http.StatusBadRequest)
			} else {
				http.Error(w, err.Error(), http.StatusBadGateway)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	return r
}
