package http

import (
	"net/http"
	"strconv"

	"equiprent-backend/internal/utils"
)

func (h *Handlers) checkAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := utils.ParseDate(q.Get("start"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	end, err := utils.ParseDate(q.Get("end"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	quantity := 1
	if v := q.Get("quantity"); v != "" {
		quantity, err = strconv.Atoi(v)
		if err != nil || quantity < 1 {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "quantity must be a positive integer"})
			return
		}
	}

	res, err := h.availability.CheckAvailability(r.Context(), q.Get("category"), q.Get("branch"), start, end, quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := utils.ParseDate(q.Get("start"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	end, err := utils.ParseDate(q.Get("end"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	crossBranch := q.Get("cross_branch") == "true"

	quote, err := h.pricing.Quote(r.Context(), q.Get("category"), start, end, crossBranch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}
