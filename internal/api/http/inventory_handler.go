package http

import (
	"encoding/json"
	"net/http"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/utils"
)

type addItemRequest struct {
	CategoryID   string `json:"category_id"`
	Branch       string `json:"branch"`
	SerialNumber string `json:"serial_number"`
	Condition    string `json:"condition"`
	Notes        string `json:"notes"`
}

func (h *Handlers) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.SerialNumber == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "serial_number is required"})
		return
	}

	item := &domain.InventoryItem{
		CategoryID:   req.CategoryID,
		Branch:       req.Branch,
		SerialNumber: req.SerialNumber,
		Condition:    domain.ItemCondition(req.Condition),
		Notes:        req.Notes,
	}
	if err := h.inventory.AddItem(r.Context(), item); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handlers) listItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.inventory.ListItems(r.Context(), q.Get("branch"), q.Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handlers) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	item, err := h.inventory.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

type updateItemRequest struct {
	Condition   string `json:"condition"`
	LastChecked string `json:"last_checked"`
	Notes       string `json:"notes"`
}

func (h *Handlers) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.inventory.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if req.Condition != "" {
		item.Condition = domain.ItemCondition(req.Condition)
	}
	if req.LastChecked != "" {
		checked, err := utils.ParseDate(req.LastChecked)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		item.LastChecked = checked
	}
	item.Notes = req.Notes

	if err := h.inventory.UpdateItem(r.Context(), item); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.inventory.DeleteItem(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type createMaintenanceRequest struct {
	ItemID    int64  `json:"item_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"created_by"`
}

func (h *Handlers) createMaintenanceBlock(w http.ResponseWriter, r *http.Request) {
	var req createMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	mb, err := h.booking.CreateMaintenanceBlock(r.Context(), req.ItemID, start, end, req.Reason, req.CreatedBy)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, mb)
}

func (h *Handlers) removeMaintenanceBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.booking.RemoveMaintenanceBlock(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
