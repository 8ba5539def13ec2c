package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"truckbooking/internal/db"
	"truckbooking/internal/entities"
	svcerrors "truckbooking/internal/errors"
	"truckbooking/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBooking handles POST /api/bookings. Validation and duplicate
// rejections are expected outcomes and answer 400 without error logs;
// only storage failures reach the log as 500s.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Données invalides"})
		return
	}

	booking, err := h.Service.CreateBooking(&req)
	if err != nil {
		var verr *svcerrors.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: verr.Message, Errors: verr.Errors})
		case errors.Is(err, svcerrors.ErrDuplicateBooking):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		default:
			log.Printf("Error creating booking: %v", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Erreur lors de la création de la réservation"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, CreateBookingResponse{
		Message: "Réservation créée avec succès",
		Booking: booking,
	})
}

// ListBookings handles GET /api/bookings, newest first.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListBookings()
	if err != nil {
		log.Printf("Error fetching bookings: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Erreur lors de la récupération des réservations"})
		return
	}
	if bookings == nil {
		bookings = []db.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
