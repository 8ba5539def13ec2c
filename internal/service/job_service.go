package service

import (
	"fmt"
	"log"
	"time"

	"truckbooking/internal/repository"
)

// JobService holds the scheduled work: a nightly one-line digest of the
// day's bookings pushed to the operator channel. Read-only, bookings
// are never mutated or deleted.
type JobService struct {
	Repo     repository.BookingStore
	Notifier Notifier
}

func NewJobService(repo repository.BookingStore, notifier Notifier) *JobService {
	return &JobService{Repo: repo, Notifier: notifier}
}

// SendDailySummary counts bookings created since midnight UTC and
// notifies the operator channel.
func (s *JobService) SendDailySummary() error {
	bookings, err := s.Repo.GetAllBookings()
	if err != nil {
		return fmt.Errorf("daily summary: failed to list bookings: %w", err)
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	count := 0
	for _, b := range bookings {
		if b.CreatedAt != nil && !b.CreatedAt.Before(midnight) {
			count++
		}
	}

	text := fmt.Sprintf("📊 Récapitulatif du jour : %d nouvelle(s) demande(s) de réservation (total : %d).", count, len(bookings))
	if err := s.Notifier.NotifyText(text); err != nil {
		return fmt.Errorf("daily summary: failed to notify: %w", err)
	}

	log.Printf("Cron Job: daily summary sent (%d bookings today, %d total)", count, len(bookings))
	return nil
}
