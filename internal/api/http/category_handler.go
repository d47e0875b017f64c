package http

import (
	"encoding/json"
	"net/http"

	"equiprent-backend/internal/domain"

	"github.com/gorilla/mux"
)

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.pricing.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (h *Handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var cat domain.EquipmentCategory
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if cat.ID == "" || cat.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "id and name are required"})
		return
	}
	if err := h.pricing.CreateCategory(r.Context(), &cat); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (h *Handlers) updateRateCard(w http.ResponseWriter, r *http.Request) {
	var card domain.RateCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.pricing.UpdateRateCard(r.Context(), mux.Vars(r)["id"], card); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
