package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"villa/internal/bookings"
	"villa/internal/content"
	"villa/internal/shared/config"
	"villa/internal/shared/database"
	"villa/internal/shared/dates"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	reset := flag.Bool("reset", false, "truncate bookings and site content before seeding")
	demo := flag.Bool("demo", false, "add sample bookings")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(string(hash))
		return
	}

	_ = godotenv.Load()
	cfg := config.Load()
	cfg.Redis.Enabled = false

	fmt.Println("Starting villa database seeder...")
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}
	ctx := context.Background()

	if *reset {
		if err := seeder.CleanDatabase(ctx); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("Database cleaned")
	}

	if err := seeder.SeedContent(ctx); err != nil {
		log.Fatalf("Failed to seed site content: %v", err)
	}

	if *demo {
		if err := seeder.SeedBookings(ctx, cfg.Location()); err != nil {
			log.Fatalf("Failed to seed bookings: %v", err)
		}
	}

	fmt.Println("Seeding completed")
}

// CleanDatabase truncates every application table
func (s *Seeder) CleanDatabase(ctx context.Context) error {
	for _, table := range []string{"bookings", "site_contents"} {
		if err := s.db.GetPostgreSQL().WithContext(ctx).Exec("TRUNCATE TABLE " + table).Error; err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedContent creates the default landing page record when it is missing
func (s *Seeder) SeedContent(ctx context.Context) error {
	c, err := content.NewRepository(s.db.GetPostgreSQL()).Get(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Site content ready (%d gallery images, %d blocked dates)\n", len(c.GalleryImages), len(c.BlockedDates))
	return nil
}

// SeedBookings adds one pending and one accepted stay in the coming weeks
func (s *Seeder) SeedBookings(ctx context.Context, loc *time.Location) error {
	repo := bookings.NewRepository(s.db.GetPostgreSQL())
	today := dates.Today(time.Now(), loc)
	now := time.Now().UTC()

	samples := []struct {
		name, email  string
		guests       int
		from, nights int
		status       bookings.Status
	}{
		{"Lucía Fernández", "lucia@example.com", 4, 14, 5, bookings.StatusPending},
		{"Tom Becker", "tom@example.com", 2, 30, 7, bookings.StatusAccepted},
	}

	for _, sample := range samples {
		checkIn := today.AddDate(0, 0, sample.from)
		booking := &bookings.Booking{
			ID:       uuid.NewString(),
			Name:     sample.name,
			Email:    sample.email,
			Guests:   sample.guests,
			CheckIn:  dates.Format(checkIn),
			CheckOut: dates.Format(checkIn.AddDate(0, 0, sample.nights)),
			Status:   sample.status,
		}
		if sample.status != bookings.StatusPending {
			booking.DecidedAt = &now
		}
		if err := repo.CreateBooking(ctx, booking); err != nil {
			return err
		}
		fmt.Printf("Booking %s %s -> %s (%s)\n", booking.ID, booking.CheckIn, booking.CheckOut, booking.Status)
	}
	return nil
}
