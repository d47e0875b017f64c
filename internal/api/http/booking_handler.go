package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
	"equiprent-backend/internal/utils"

	"github.com/gorilla/mux"
)

type createBookingRequest struct {
	CategoryID    string `json:"category_id"`
	Branch        string `json:"branch"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Notes         string `json:"notes"`
	CreatedBy     string `json:"created_by"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
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
	if req.CustomerName == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "customer_name is required"})
		return
	}

	booking, err := h.booking.CreateBooking(r.Context(), &service.CreateBookingRequest{
		CategoryID:    req.CategoryID,
		Branch:        req.Branch,
		StartDate:     start,
		EndDate:       end,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookings, err := h.booking.ListBookings(r.Context(), q.Get("status"), q.Get("branch"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	booking, err := h.booking.GetBooking(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	// Overdue is derived for display, never stored.
	respondJSON(w, http.StatusOK, struct {
		*domain.Booking
		Overdue bool `json:"overdue"`
	}{booking, booking.Overdue(utils.Today())})
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req updateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.booking.UpdateBookingStatus(r.Context(), id, domain.BookingStatus(req.Status)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
