package db

import "time"

// Booking is a stored reservation request from the landing page.
// Optional fields are pointers so they serialize as null, never as
// the empty string, once stored.
type Booking struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Wilaya             string     `json:"wilaya"`
	Commune            string     `json:"commune"`
	BusinessType       string     `json:"businessType"` // commercant, artisan, fellah
	RegistrationNumber *string    `json:"registrationNumber"`
	TruckModel         string     `json:"truckModel"` // 3.5 or 6
	Message            *string    `json:"message"`
	NationalIDImage    *string    `json:"nationalIdImage"`
	GoldCardImage      *string    `json:"goldCardImage"`
	CreatedAt          *time.Time `json:"createdAt"`
}
