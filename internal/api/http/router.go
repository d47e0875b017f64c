package http

import (
	"net/http"

	"equiprent-backend/internal/service"

	"github.com/gorilla/mux"
)

// Handlers bundles the services the HTTP surface exposes.
type Handlers struct {
	availability service.AvailabilityService
	pricing      service.PricingService
	inventory    service.InventoryService
	booking      service.BookingService
	broadcaster  *service.Broadcaster
}

func NewHandlers(
	availability service.AvailabilityService,
	pricing service.PricingService,
	inventory service.InventoryService,
	booking service.BookingService,
	broadcaster *service.Broadcaster,
) *Handlers {
	return &Handlers{
		availability: availability,
		pricing:      pricing,
		inventory:    inventory,
		booking:      booking,
		broadcaster:  broadcaster,
	}
}

// NewRouter wires all routes under /api/v1.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, requestLogger)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/availability", h.checkAvailability).Methods(http.MethodGet)
	api.HandleFunc("/quote", h.quote).Methods(http.MethodGet)

	api.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.createCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}/rates", h.updateRateCard).Methods(http.MethodPut)

	api.HandleFunc("/bookings", h.createBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.listBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", h.getBooking).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/status", h.updateBookingStatus).Methods(http.MethodPatch)

	api.HandleFunc("/inventory", h.addItem).Methods(http.MethodPost)
	api.HandleFunc("/inventory", h.listItems).Methods(http.MethodGet)
	api.HandleFunc("/inventory/{id}", h.getItem).Methods(http.MethodGet)
	api.HandleFunc("/inventory/{id}", h.updateItem).Methods(http.MethodPut)
	api.HandleFunc("/inventory/{id}", h.deleteItem).Methods(http.MethodDelete)

	api.HandleFunc("/maintenance", h.createMaintenanceBlock).Methods(http.MethodPost)
	api.HandleFunc("/maintenance/{id}", h.removeMaintenanceBlock).Methods(http.MethodDelete)

	api.HandleFunc("/events", h.streamEvents).Methods(http.MethodGet)

	return r
}
