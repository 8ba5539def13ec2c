package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"truckbooking/internal/db"
	"truckbooking/internal/entities"
	svcerrors "truckbooking/internal/errors"
)

// ErrBookingNotFound is returned by GetBooking when no record matches.
var ErrBookingNotFound = errors.New("booking not found")

// BookingStore is the persistence contract the submission pipeline
// depends on. Bookings are append-only: no update, no delete.
type BookingStore interface {
	GetBooking(id string) (*db.Booking, error)
	GetAllBookings() ([]db.Booking, error)
	CreateBooking(req *entities.BookingRequest) (*db.Booking, error)
}

// newBookingFromRequest assigns id and createdAt and normalizes empty
// optional fields to null. Shared by every store implementation.
func newBookingFromRequest(req *entities.BookingRequest) db.Booking {
	now := time.Now().UTC()
	return db.Booking{
		ID:                 uuid.NewString(),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		Email:              req.Email,
		Wilaya:             req.Wilaya,
		Commune:            req.Commune,
		BusinessType:       req.BusinessType,
		RegistrationNumber: nullable(req.RegistrationNumber),
		TruckModel:         req.TruckModel,
		Message:            nullable(req.Message),
		NationalIDImage:    nullable(req.NationalIDImage),
		GoldCardImage:      nullable(req.GoldCardImage),
		CreatedAt:          &now,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// BookingRepository stores bookings in Postgres. The bookings table
// carries a unique index on (email, phone), so concurrent duplicate
// submissions collapse to a single row without any locking in the
// service layer.
type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, first_name, last_name, phone, email, wilaya, commune, business_type, registration_number, truck_model, message, national_id_image, gold_card_image, created_at`

func (r *BookingRepository) CreateBooking(req *entities.BookingRequest) (*db.Booking, error) {
	booking := newBookingFromRequest(req)

	query := `
		INSERT INTO bookings
		(` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.Exec(query,
		booking.ID,
		booking.FirstName,
		booking.LastName,
		booking.Phone,
		booking.Email,
		booking.Wilaya,
		booking.Commune,
		booking.BusinessType,
		booking.RegistrationNumber,
		booking.TruckModel,
		booking.Message,
		booking.NationalIDImage,
		booking.GoldCardImage,
		booking.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, svcerrors.ErrDuplicateBooking
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetBooking(id string) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	booking, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetAllBookings() ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC NULLS LAST`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*db.Booking, error) {
	var b db.Booking
	var registrationNumber, message, nationalID, goldCard sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID, &b.FirstName, &b.LastName, &b.Phone, &b.Email,
		&b.Wilaya, &b.Commune, &b.BusinessType, &registrationNumber,
		&b.TruckModel, &message, &nationalID, &goldCard, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if registrationNumber.Valid {
		b.RegistrationNumber = &registrationNumber.String
	}
	if message.Valid {
		b.Message = &message.String
	}
	if nationalID.Valid {
		b.NationalIDImage = &nationalID.String
	}
	if goldCard.Valid {
		b.GoldCardImage = &goldCard.String
	}
	if createdAt.Valid {
		t := createdAt.Time
		b.CreatedAt = &t
	}
	return &b, nil
}
