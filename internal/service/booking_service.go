package service

import (
	"errors"
	"log"

	"truckbooking/internal/db"
	"truckbooking/internal/entities"
	svcerrors "truckbooking/internal/errors"
	"truckbooking/internal/repository"
)

// BookingService runs the submission pipeline: schema validation,
// registration-number rule, duplicate check, persistence, then
// best-effort notifications.
type BookingService struct {
	Repo     repository.BookingStore
	Notifier Notifier
	Sender   *SenderService
}

func NewBookingService(repo repository.BookingStore, notifier Notifier, sender *SenderService) *BookingService {
	return &BookingService{
		Repo:     repo,
		Notifier: notifier,
		Sender:   sender,
	}
}

// CreateBooking validates and stores one booking request. Steps run in
// strict order and short-circuit on the first failure; nothing is
// persisted or sent unless every check passes. Notification dispatch
// happens after the create commits and cannot fail the request.
func (s *BookingService) CreateBooking(req *entities.BookingRequest) (*db.Booking, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return nil, svcerrors.NewSchemaError(fieldErrs)
	}

	if msg := registrationRequiredMessage(req); msg != "" {
		return nil, svcerrors.NewBusinessRuleError(msg)
	}

	existing, err := s.Repo.GetAllBookings()
	if err != nil {
		return nil, svcerrors.NewStorageError("list bookings", err)
	}
	for _, b := range existing {
		if b.Email == req.Email && b.Phone == req.Phone {
			return nil, svcerrors.ErrDuplicateBooking
		}
	}

	booking, err := s.Repo.CreateBooking(req)
	if err != nil {
		// The Postgres store reports a (email, phone) unique index hit
		// as a duplicate, closing the race between check and create.
		if errors.Is(err, svcerrors.ErrDuplicateBooking) {
			return nil, err
		}
		return nil, svcerrors.NewStorageError("create booking", err)
	}

	s.dispatchNotifications(booking)
	return booking, nil
}

// ListBookings returns every stored booking, newest first.
func (s *BookingService) ListBookings() ([]db.Booking, error) {
	bookings, err := s.Repo.GetAllBookings()
	if err != nil {
		return nil, svcerrors.NewStorageError("list bookings", err)
	}
	return bookings, nil
}

// dispatchNotifications alerts the operator channel and confirms to the
// customer without holding up the response. The booking is already
// committed; failures here are logged and swallowed.
func (s *BookingService) dispatchNotifications(booking *db.Booking) {
	go func() {
		if s.Notifier != nil {
			if err := s.Notifier.NotifyBooking(booking); err != nil {
				log.Printf("ALERT: booking %s stored but operator notification failed: %v", booking.ID, err)
			}
		}
		if s.Sender != nil {
			s.Sender.SendBookingConfirmation(booking)
		}
	}()
}

// registrationRequiredMessage enforces the per-business-type
// registration document rule. Every current business type requires one;
// the rule stays per-type so a future type can be exempted.
func registrationRequiredMessage(req *entities.BookingRequest) string {
	if req.RegistrationNumber != "" {
		return ""
	}
	switch req.BusinessType {
	case entities.BusinessTypeCommercant:
		return "Le numéro de registre du commerce est requis pour les commerçants"
	case entities.BusinessTypeArtisan:
		return "Le numéro de carte d'artisan est requis pour les artisans"
	case entities.BusinessTypeFellah:
		return "Le numéro de carte fellah est requis pour les fellahs/éleveurs"
	}
	return ""
}
