package main

import (
	"fmt"
	"log"
	"time"

	"tablebook/internal/reservations"
	"tablebook/internal/shared/config"
	"tablebook/internal/shared/database"
	"tablebook/internal/shared/localtime"
	"tablebook/internal/venues"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Tablebook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"table_assignments",
		"holds",
		"reservations",
		"venue_tables",
		"service_buffers",
		"blackout_dates",
		"pacing_rules",
		"shifts",
		"venues",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds one demo venue with shifts, pacing, tables and a reservation
func (s *Seeder) SeedAll() error {
	venue := &venues.Venue{
		Name:                   "Harbor House",
		Timezone:               "Europe/Tirane",
		TurnTimeMinutes:        90,
		DefaultDurationMinutes: 120,
		HoldTTLSeconds:         600,
	}
	if err := s.db.PostgreSQL.Create(venue).Error; err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}
	fmt.Printf("   Created venue %s (%s)\n", venue.Name, venue.ID)

	// Dinner shift every day, lunch on weekends
	for day := 0; day <= 6; day++ {
		shift := &venues.Shift{
			VenueID:   venue.ID,
			DayOfWeek: day,
			StartTime: "17:00",
			EndTime:   "22:00",
			Capacity:  40,
			Active:    true,
		}
		if err := s.db.PostgreSQL.Create(shift).Error; err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
	}
	for _, day := range []int{0, 6} {
		shift := &venues.Shift{
			VenueID:   venue.ID,
			DayOfWeek: day,
			StartTime: "11:30",
			EndTime:   "14:30",
			Capacity:  30,
			Active:    true,
		}
		if err := s.db.PostgreSQL.Create(shift).Error; err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
	}

	// Pacing: at most 24 covers every 30 minutes
	maxCovers := 24
	pacing := &venues.PacingRule{
		VenueID:       venue.ID,
		WindowMinutes: 30,
		MaxCovers:     &maxCovers,
	}
	if err := s.db.PostgreSQL.Create(pacing).Error; err != nil {
		return fmt.Errorf("failed to create pacing rule: %w", err)
	}

	// Ten minutes of turnover padding after every seating
	buffer := &venues.ServiceBuffer{
		VenueID:       venue.ID,
		BeforeMinutes: 0,
		AfterMinutes:  10,
	}
	if err := s.db.PostgreSQL.Create(buffer).Error; err != nil {
		return fmt.Errorf("failed to create service buffer: %w", err)
	}

	// Closed for a private event
	blackout := &venues.BlackoutDate{
		VenueID: venue.ID,
		Date:    "2026-12-24",
		Reason:  "private event",
	}
	if err := s.db.PostgreSQL.Create(blackout).Error; err != nil {
		return fmt.Errorf("failed to create blackout date: %w", err)
	}

	// Floor plan: singles plus a joinable row of 2-seaters
	joinGroup := uuid.New()
	tables := []venues.Table{
		{VenueID: venue.ID, Label: "T1", Capacity: 2, MinPartySize: 1},
		{VenueID: venue.ID, Label: "T2", Capacity: 4, MinPartySize: 2},
		{VenueID: venue.ID, Label: "T3", Capacity: 4, MinPartySize: 2},
		{VenueID: venue.ID, Label: "T4", Capacity: 6, MinPartySize: 4},
		{VenueID: venue.ID, Label: "J1", Capacity: 2, MinPartySize: 1, JoinGroup: &joinGroup},
		{VenueID: venue.ID, Label: "J2", Capacity: 2, MinPartySize: 1, JoinGroup: &joinGroup},
		{VenueID: venue.ID, Label: "J3", Capacity: 2, MinPartySize: 1, JoinGroup: &joinGroup},
		{VenueID: venue.ID, Label: "J4", Capacity: 2, MinPartySize: 1, JoinGroup: &joinGroup},
	}
	for i := range tables {
		if err := s.db.PostgreSQL.Create(&tables[i]).Error; err != nil {
			return fmt.Errorf("failed to create table %s: %w", tables[i].Label, err)
		}
	}
	fmt.Printf("   Created %d tables (join group of 4)\n", len(tables))

	// One confirmed reservation tomorrow at 19:00 venue time
	loc, err := time.LoadLocation(venue.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load venue timezone: %w", err)
	}
	date := time.Now().In(loc).AddDate(0, 0, 1).Format(localtime.DateLayout)
	instants, err := localtime.Resolve(date, 19, 0, loc)
	if err != nil || len(instants) == 0 {
		return fmt.Errorf("failed to resolve seed reservation time: %w", err)
	}

	reservation := &reservations.Reservation{
		VenueID:         venue.ID,
		Status:          reservations.StatusConfirmed,
		LocalDate:       date,
		LocalTime:       "19:00",
		StartAt:         instants[0],
		DurationMinutes: 120,
		PartySize:       6,
		GuestName:       "Walk-through Party",
	}
	if err := s.db.PostgreSQL.Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	fmt.Printf("   Created reservation %s for %d on %s 19:00\n", reservation.ID, reservation.PartySize, date)

	return nil
}
