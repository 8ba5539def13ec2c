package service

import (
	"fmt"
	"log"

	"truckbooking/internal/db"
)

// SenderService sends the applicant a confirmation of their request by
// email and SMS. Both are best-effort: the booking is already stored by
// the time these run.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingConfirmation(booking *db.Booking) {
	s.sendConfirmationEmail(booking)
	s.sendConfirmationSMS(booking)
}

func (s *SenderService) sendConfirmationEmail(booking *db.Booking) {
	fullName := booking.FirstName + " " + booking.LastName
	subject := "CamionDZ : votre demande de réservation a bien été reçue"
	body := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Nous avons bien reçu votre demande de réservation pour le camion %s tonnes.\n\n"+
			"Récapitulatif :\n"+
			"Nom : %s\n"+
			"Téléphone : %s\n"+
			"Wilaya : %s\n"+
			"Commune : %s\n"+
			"Type d'activité : %s\n\n"+
			"Notre équipe commerciale vous contactera prochainement pour finaliser votre dossier.\n\n"+
			"CamionDZ. Tous droits réservés.",
		booking.FirstName, booking.TruckModel, fullName, booking.Phone,
		booking.Wilaya, booking.Commune, booking.BusinessType,
	)

	if err := SendEmailWithSendGrid(booking.Email, fullName, subject, body); err != nil {
		log.Printf("ALERT: booking %s stored, but confirmation email to %s failed: %v", booking.ID, booking.Email, err)
	}
}

func (s *SenderService) sendConfirmationSMS(booking *db.Booking) {
	message := fmt.Sprintf(
		"CamionDZ : votre demande de réservation (camion %s t) a bien été reçue. Notre équipe vous contactera prochainement.",
		booking.TruckModel,
	)

	if err := SendSMS(booking.Phone, message); err != nil {
		log.Printf("ALERT: booking %s stored, but confirmation SMS to %s failed: %v", booking.ID, booking.Phone, err)
	}
}
