package entities

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	BusinessTypeCommercant = "commercant"
	BusinessTypeArtisan    = "artisan"
	BusinessTypeFellah     = "fellah"
)

// BookingRequest is the payload of POST /api/bookings. Optional fields
// arrive as empty strings and are normalized to null by the store.
type BookingRequest struct {
	FirstName          string `json:"firstName" validate:"required"`
	LastName           string `json:"lastName" validate:"required"`
	Phone              string `json:"phone" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Wilaya             string `json:"wilaya" validate:"required"`
	Commune            string `json:"commune" validate:"required"`
	BusinessType       string `json:"businessType" validate:"required,oneof=commercant artisan fellah"`
	RegistrationNumber string `json:"registrationNumber"`
	TruckModel         string `json:"truckModel" validate:"required,oneof=3.5 6"`
	Message            string `json:"message"`
	NationalIDImage    string `json:"nationalIdImage"`
	GoldCardImage      string `json:"goldCardImage"`
}

// FieldError is one field-level validation problem, surfaced to the
// client under the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"firstName":    "Le prénom est requis",
	"lastName":     "Le nom est requis",
	"phone":        "Le téléphone est requis",
	"email":        "Email invalide",
	"wilaya":       "La wilaya est requise",
	"commune":      "La commune est requise",
	"businessType": "Le type d'activité est requis",
	"truckModel":   "Le modèle de camion est requis",
}

// Validate checks every schema rule and returns the full list of field
// problems, not just the first. A nil result means the request is valid.
func (r *BookingRequest) Validate() []FieldError {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: "Données invalides"}}
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Champ invalide"
		}
		fieldErrs = append(fieldErrs, FieldError{Field: fe.Field(), Message: msg})
	}
	return fieldErrs
}
