package api

import (
	"truckbooking/internal/db"
	"truckbooking/internal/entities"
)

type CreateBookingResponse struct {
	Message string      `json:"message"`
	Booking *db.Booking `json:"booking"`
}

// ErrorResponse carries the user-facing message; Errors is present only
// for schema validation failures.
type ErrorResponse struct {
	Message string                `json:"message"`
	Errors  []entities.FieldError `json:"errors,omitempty"`
}
