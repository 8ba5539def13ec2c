package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"truckbooking/internal/api"
	"truckbooking/internal/repository"
	"truckbooking/internal/service"
)

func main() {
	godotenv.Load()

	var store repository.BookingStore
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		database, err := sql.Open("postgres", dbURL)
		if err != nil {
			log.Fatalf("Failed to open DB: %v", err)
		}
		if err := database.Ping(); err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		store = repository.NewBookingRepository(database)
		log.Println("Using Postgres booking store")
	} else {
		store = repository.NewMemoryBookingStore()
		log.Println("DATABASE_URL not set, using in-memory booking store")
	}

	notifier := service.NewTelegramService()
	sender := service.NewSenderService()
	svc := service.NewBookingService(store, notifier, sender)
	bookingHandler := api.NewBookingHandler(svc)

	jobSvc := service.NewJobService(store, notifier)
	c := cron.New()
	if _, err := c.AddFunc("0 20 * * *", func() {
		if err := jobSvc.SendDailySummary(); err != nil {
			log.Printf("Cron Job: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule daily summary: %v", err)
	}
	c.Start()

	r := mux.NewRouter()
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.ListBookings).Methods("GET")

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}
