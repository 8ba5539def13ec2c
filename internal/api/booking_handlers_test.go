package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckbooking/internal/api"
	"truckbooking/internal/db"
	"truckbooking/internal/repository"
	"truckbooking/internal/service"
)

func newTestRouter() *mux.Router {
	store := repository.NewMemoryBookingStore()
	svc := service.NewBookingService(store, nil, nil)
	handler := api.NewBookingHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/bookings", handler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", handler.ListBookings).Methods("GET")
	return r
}

func validPayload() map[string]any {
	return map[string]any{
		"firstName":          "Ali",
		"lastName":           "Ben",
		"phone":              "0551",
		"email":              "a@b.com",
		"wilaya":             "16",
		"commune":            "Alger Centre",
		"businessType":       "commercant",
		"registrationNumber": "RC123",
		"truckModel":         "3.5",
	}
}

func postBooking(t *testing.T, router http.Handler, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func listBookings(t *testing.T, router http.Handler) []db.Booking {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []db.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bookings))
	return bookings
}

func TestCreateBooking_201(t *testing.T) {
	router := newTestRouter()

	rec := postBooking(t, router, validPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp api.CreateBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, "Réservation créée avec succès", resp.Message)
	require.NotNil(t, resp.Booking)
	assert.NotEmpty(t, resp.Booking.ID)
	assert.NotNil(t, resp.Booking.CreatedAt)
	require.NotNil(t, resp.Booking.RegistrationNumber)
	assert.Equal(t, "RC123", *resp.Booking.RegistrationNumber)
	assert.Nil(t, resp.Booking.Message)
	assert.Nil(t, resp.Booking.NationalIDImage)
	assert.Nil(t, resp.Booking.GoldCardImage)
}

func TestCreateBooking_400_MissingRequiredField(t *testing.T) {
	router := newTestRouter()

	payload := validPayload()
	delete(payload, "firstName")

	rec := postBooking(t, router, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, "Données invalides", resp.Message)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "firstName", resp.Errors[0].Field)
	assert.Equal(t, "Le prénom est requis", resp.Errors[0].Message)

	assert.Empty(t, listBookings(t, router))
}

func TestCreateBooking_400_InvalidEmail(t *testing.T) {
	router := newTestRouter()

	payload := validPayload()
	payload["email"] = "no-at-sign"

	rec := postBooking(t, router, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)
	assert.Equal(t, "Email invalide", resp.Errors[0].Message)
}

func TestCreateBooking_400_RegistrationNumberRequired(t *testing.T) {
	router := newTestRouter()

	payload := validPayload()
	delete(payload, "registrationNumber")

	rec := postBooking(t, router, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Le numéro de registre du commerce est requis pour les commerçants", resp.Message)
	assert.Empty(t, resp.Errors)
}

func TestCreateBooking_400_Duplicate(t *testing.T) {
	router := newTestRouter()

	rec := postBooking(t, router, validPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postBooking(t, router, validPayload())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Une réservation avec ce téléphone et email existe déjà. Les inscriptions en double sont automatiquement annulées.", resp.Message)
	assert.Empty(t, resp.Errors)

	assert.Len(t, listBookings(t, router), 1)
}

func TestCreateBooking_SameEmailDifferentPhone_BothStored(t *testing.T) {
	router := newTestRouter()

	rec := postBooking(t, router, validPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := validPayload()
	payload["phone"] = "0662"
	rec = postBooking(t, router, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Len(t, listBookings(t, router), 2)
}

func TestCreateBooking_400_MalformedJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBookings_NewestFirst(t *testing.T) {
	router := newTestRouter()

	phones := []string{"0551", "0552", "0553"}
	for _, phone := range phones {
		payload := validPayload()
		payload["phone"] = phone
		rec := postBooking(t, router, payload)
		require.Equal(t, http.StatusCreated, rec.Code)
		time.Sleep(5 * time.Millisecond)
	}

	bookings := listBookings(t, router)
	require.Len(t, bookings, 3)
	assert.Equal(t, "0553", bookings[0].Phone)
	assert.Equal(t, "0552", bookings[1].Phone)
	assert.Equal(t, "0551", bookings[2].Phone)
}

func TestListBookings_EmptyStoreReturnsArray(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
