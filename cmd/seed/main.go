package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"theatre/internal/bookings"
	"theatre/internal/movies"
	"theatre/internal/screens"
	"theatre/internal/shared/config"
	"theatre/internal/shared/database"
	"theatre/internal/tickets"

	"github.com/joho/godotenv"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Theatre Database Seeder...")

	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.InitDB(cfg,
		&screens.Screen{},
		&movies.Movie{},
		&bookings.Booking{},
		&bookings.SeatClaim{},
		&tickets.Ticket{},
	)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"seat_claims",
		"bookings",
		"movies",
		"screens",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds the stock screens and a demo movie catalog.
func (s *Seeder) SeedAll(cfg *config.Config) error {
	ctx := context.Background()
	pg := s.db.GetPostgreSQL()

	modifiers := screens.PriceModifiers{
		Preferred:  cfg.Catalog.PreferredModifier,
		Value:      cfg.Catalog.ValueModifier,
		Premium:    cfg.Catalog.PremiumModifier,
		Wheelchair: cfg.Catalog.WheelchairModifier,
	}

	screenRepo := screens.NewRepository(pg)
	seeded := make(map[string]*screens.Screen)

	for _, bp := range screens.DefaultBlueprints(modifiers) {
		if _, err := screens.GenerateLayout(bp); err != nil {
			return fmt.Errorf("invalid blueprint %s: %w", bp.Code, err)
		}

		screen := &screens.Screen{
			Name:            bp.Name,
			Code:            bp.Code,
			Rows:            bp.Rows,
			Columns:         bp.Columns,
			TotalSeats:      bp.Rows * bp.Columns,
			PreferredRows:   bp.PreferredRows,
			ValueRows:       bp.ValueRows,
			PremiumRows:     bp.PremiumRows,
			WheelchairSeats: bp.WheelchairSeats,
		}
		if err := screenRepo.Create(ctx, screen); err != nil {
			return fmt.Errorf("failed to seed screen %s: %w", bp.Code, err)
		}
		seeded[bp.Code] = screen
		fmt.Printf("   🖥️  %s (%d seats)\n", screen.Name, screen.TotalSeats)
	}

	movieRepo := movies.NewRepository(pg)
	tonight := time.Now().UTC().Truncate(time.Hour).Add(6 * time.Hour)

	catalog := []movies.Movie{
		{
			Title:    "Interstellar",
			Language: "English",
			Genre:    "Sci-Fi",
			Duration: "2h 49m",
			ScreenID: seeded["screen1"].ID,
			Price:    250,
			ShowTime: tonight,
		},
		{
			Title:    "The Grand Budapest Hotel",
			Language: "English",
			Genre:    "Comedy",
			Duration: "1h 39m",
			ScreenID: seeded["screen2"].ID,
			Price:    200,
			ShowTime: tonight.Add(30 * time.Minute),
		},
		{
			Title:    "Spirited Away",
			Language: "Japanese",
			Genre:    "Animation",
			Duration: "2h 5m",
			ScreenID: seeded["screen3"].ID,
			Price:    180,
			ShowTime: tonight.Add(time.Hour),
		},
		{
			Title:    "12 Angry Men",
			Language: "English",
			Genre:    "Drama",
			Duration: "1h 36m",
			ScreenID: seeded["screen4"].ID,
			Price:    150,
			ShowTime: tonight.Add(90 * time.Minute),
		},
	}

	for i := range catalog {
		if err := movieRepo.Create(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("failed to seed movie %s: %w", catalog[i].Title, err)
		}
		fmt.Printf("   🎬 %s @ %s\n", catalog[i].Title, catalog[i].ShowTime.Format(time.Kitchen))
	}

	return nil
}
