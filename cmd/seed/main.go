package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"superpack/internal/catalog"
	"superpack/internal/packages"
	"superpack/internal/quotes"
	"superpack/internal/shared/config"
	"superpack/internal/shared/database"
	"superpack/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Superpack Database Seeder...")

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

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"quotes",
		"catalog_events",
		"super_packages",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	// Seed users first (no dependencies)
	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Seed super packages with pricing matrices
	packageIDs, err := s.SeedPackages(userIDs["admin"])
	if err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}

	// Seed the bookable events catalogue
	if err := s.SeedCatalogEvents(userIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed catalog events: %w", err)
	}

	// Seed a couple of quotes
	if err := s.SeedQuotes(userIDs["agent1"], packageIDs); err != nil {
		return fmt.Errorf("failed to seed quotes: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 1 admin and 2 agents
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@superpack.travel", users.RoleAdmin},
		{"agent1", "Alice", "Hartman", "alice@superpack.travel", users.RoleAgent},
		{"agent2", "Ben", "Okafor", "ben@superpack.travel", users.RoleAgent},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedPackages creates sample super packages: one complete and active, one
// with ON_REQUEST high-season cells, one still being authored.
func (s *Seeder) SeedPackages(adminID uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🏝️ Seeding super packages...")

	packageIDs := make(map[string]uuid.UUID)

	tiers := packages.GroupSizeTiers{
		{Label: "2-3", MinPeople: 2, MaxPeople: 3},
		{Label: "4-6", MinPeople: 4, MaxPeople: 6},
		{Label: "7-10", MinPeople: 7, MaxPeople: 10},
	}
	durations := packages.DurationOptions{3, 5, 7}

	// Crete: fully priced across the season, active
	crete := packages.Package{
		ID:              uuid.New(),
		Name:            "Crete Explorer",
		Destination:     "Crete",
		Version:         1,
		Currency:        packages.CurrencyEUR,
		GroupSizeTiers:  tiers,
		DurationOptions: durations,
		PricingMatrix: buildFullMatrix(
			[]string{"May", "June", "July", "August", "September"},
			len(tiers), durations, 420, 35,
		),
		Inclusions:            packages.StringList{"Airport transfers", "Daily breakfast", "Guided old-town walk"},
		AccommodationExamples: packages.StringList{"Casa Delfino", "Domes Noruz"},
		Status:                packages.StatusActive,
		CreatedBy:             adminID,
	}
	if err := s.db.PostgreSQL.Create(&crete).Error; err != nil {
		return nil, fmt.Errorf("failed to create package %s: %w", crete.Name, err)
	}
	packageIDs["crete"] = crete.ID
	fmt.Printf("    ✅ Created package: %s (%s)\n", crete.Name, crete.Status)

	// Iceland: New Year dates are ON_REQUEST, plus a special period
	iceland := packages.Package{
		ID:              uuid.New(),
		Name:            "Iceland Northern Lights",
		Destination:     "Reykjavik",
		Version:         1,
		Currency:        packages.CurrencyEUR,
		GroupSizeTiers:  tiers,
		DurationOptions: durations,
		PricingMatrix: append(
			buildFullMatrix([]string{"November", "December", "January", "February"}, len(tiers), durations, 680, 50),
			newYearPeriod(len(tiers), durations),
		),
		Inclusions:            packages.StringList{"Airport transfers", "Aurora hunt by minibus", "Blue Lagoon entry"},
		AccommodationExamples: packages.StringList{"Hotel Borg", "Ion Adventure Hotel"},
		Status:                packages.StatusActive,
		CreatedBy:             adminID,
	}
	if err := s.db.PostgreSQL.Create(&iceland).Error; err != nil {
		return nil, fmt.Errorf("failed to create package %s: %w", iceland.Name, err)
	}
	packageIDs["iceland"] = iceland.ID
	fmt.Printf("    ✅ Created package: %s (%s)\n", iceland.Name, iceland.Status)

	// Morocco: matrix still being authored, stays inactive
	morocco := packages.Package{
		ID:              uuid.New(),
		Name:            "Morocco Desert Trail",
		Destination:     "Marrakech",
		Version:         1,
		Currency:        packages.CurrencyEUR,
		GroupSizeTiers:  tiers,
		DurationOptions: durations,
		PricingMatrix: packages.PricingMatrix{
			{
				Period:     "October",
				PeriodType: packages.PeriodTypeMonth,
				Prices: []packages.PriceCell{
					{GroupSizeTierIndex: 0, Nights: 3, Price: packages.NumericPrice(390)},
					{GroupSizeTierIndex: 0, Nights: 5, Price: packages.NumericPrice(540)},
				},
			},
		},
		Inclusions:            packages.StringList{"Riad stay", "Atlas day trip"},
		AccommodationExamples: packages.StringList{"Riad Yasmine"},
		Status:                packages.StatusInactive,
		CreatedBy:             adminID,
	}
	if err := s.db.PostgreSQL.Create(&morocco).Error; err != nil {
		return nil, fmt.Errorf("failed to create package %s: %w", morocco.Name, err)
	}
	packageIDs["morocco"] = morocco.ID
	fmt.Printf("    ✅ Created package: %s (%s)\n", morocco.Name, morocco.Status)

	return packageIDs, nil
}

// buildFullMatrix prices every tier x nights cell for each month. Larger
// groups get a small per-person discount, longer stays cost more.
func buildFullMatrix(months []string, tierCount int, durations packages.DurationOptions, base, nightStep float64) packages.PricingMatrix {
	matrix := make(packages.PricingMatrix, 0, len(months))
	for mi, month := range months {
		period := packages.PricingPeriod{
			Period:     month,
			PeriodType: packages.PeriodTypeMonth,
		}
		for tierIndex := 0; tierIndex < tierCount; tierIndex++ {
			for _, nights := range durations {
				amount := base + float64(mi)*20 + float64(nights)*nightStep - float64(tierIndex)*30
				period.Prices = append(period.Prices, packages.PriceCell{
					GroupSizeTierIndex: tierIndex,
					Nights:             nights,
					Price:              packages.NumericPrice(amount),
				})
			}
		}
		matrix = append(matrix, period)
	}
	return matrix
}

// newYearPeriod builds a special period over the New Year dates with every
// cell priced ON_REQUEST.
func newYearPeriod(tierCount int, durations packages.DurationOptions) packages.PricingPeriod {
	start := time.Date(time.Now().Year(), 12, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(time.Now().Year()+1, 1, 3, 0, 0, 0, 0, time.UTC)

	period := packages.PricingPeriod{
		Period:     "New Year",
		PeriodType: packages.PeriodTypeSpecial,
		StartDate:  &start,
		EndDate:    &end,
	}
	for tierIndex := 0; tierIndex < tierCount; tierIndex++ {
		for _, nights := range durations {
			period.Prices = append(period.Prices, packages.PriceCell{
				GroupSizeTierIndex: tierIndex,
				Nights:             nights,
				Price:              packages.OnRequestPrice(),
			})
		}
	}
	return period
}

// SeedCatalogEvents creates bookable add-on events
func (s *Seeder) SeedCatalogEvents(adminID uuid.UUID) error {
	fmt.Println("  🎟️ Seeding catalog events...")

	eventsData := []struct {
		name        string
		description string
		destination string
		price       float64
		currency    packages.Currency
	}{
		{"Samaria Gorge Hike", "Full-day guided hike through the Samaria Gorge.", "Crete", 65.0, packages.CurrencyEUR},
		{"Cretan Cooking Class", "Evening cooking class with a local family.", "Crete", 85.0, packages.CurrencyEUR},
		{"Catamaran Sunset Cruise", "Sunset sail along the Chania coastline.", "Crete", 110.0, packages.CurrencyEUR},
		{"Golden Circle Tour", "Classic day tour: Thingvellir, Geysir and Gullfoss.", "Reykjavik", 120.0, packages.CurrencyEUR},
		{"Glacier Snowmobiling", "Snowmobile ride on the Langjokull glacier.", "Reykjavik", 260.0, packages.CurrencyUSD},
		{"Agafay Desert Dinner", "Sunset camel ride and dinner in the Agafay desert.", "Marrakech", 95.0, packages.CurrencyEUR},
	}

	for _, eventData := range eventsData {
		event := catalog.Event{
			ID:          uuid.New(),
			Name:        eventData.name,
			Description: eventData.description,
			Destination: eventData.destination,
			Price:       eventData.price,
			Currency:    eventData.currency,
			IsActive:    true,
			CreatedBy:   adminID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create catalog event %s: %w", event.Name, err)
		}

		fmt.Printf("    ✅ Created catalog event: %s (%s %.2f)\n", event.Name, event.Currency, event.Price)
	}

	return nil
}

// SeedQuotes creates sample quotes: one custom-priced, one linked and synced
func (s *Seeder) SeedQuotes(agentID uuid.UUID, packageIDs map[string]uuid.UUID) error {
	fmt.Println("  📄 Seeding quotes...")

	customPrice := 950.0
	custom := quotes.Quote{
		ID:             uuid.New(),
		Reference:      "QT-SEED0001",
		CustomerName:   "Margaret Ellis",
		CustomerEmail:  "m.ellis@example.com",
		NumberOfPeople: 2,
		Nights:         5,
		ArrivalDate:    time.Now().AddDate(0, 2, 0),
		Currency:       packages.CurrencyEUR,
		SyncStatus:     quotes.SyncStatusCustom,
		CustomPrice:    &customPrice,
		CreatedBy:      agentID,
	}
	if err := s.db.PostgreSQL.Create(&custom).Error; err != nil {
		return fmt.Errorf("failed to create quote %s: %w", custom.Reference, err)
	}
	fmt.Printf("    ✅ Created quote: %s (%s)\n", custom.Reference, custom.SyncStatus)

	// Linked quote with a calculated snapshot against the Crete package
	arrival := nextMonthDate(time.June)
	linked := quotes.Quote{
		ID:             uuid.New(),
		Reference:      "QT-SEED0002",
		CustomerName:   "Jonas Weber",
		CustomerEmail:  "j.weber@example.com",
		NumberOfPeople: 4,
		Nights:         5,
		ArrivalDate:    arrival,
		Currency:       packages.CurrencyEUR,
		SyncStatus:     quotes.SyncStatusSynced,
		Selection: &quotes.LinkedPackageSelection{
			PackageID:       packageIDs["crete"],
			PackageVersion:  1,
			SelectedTier:    quotes.TierRef{TierIndex: 1, TierLabel: "4-6"},
			SelectedNights:  5,
			SelectedPeriod:  "June",
			CalculatedPrice: 585,
			NumberOfPeople:  4,
			ArrivalDate:     arrival,
			Currency:        packages.CurrencyEUR,
		},
		CreatedBy: agentID,
	}
	if err := s.db.PostgreSQL.Create(&linked).Error; err != nil {
		return fmt.Errorf("failed to create quote %s: %w", linked.Reference, err)
	}
	fmt.Printf("    ✅ Created quote: %s (%s)\n", linked.Reference, linked.SyncStatus)

	return nil
}

// nextMonthDate returns the 10th of the next occurrence of the given month.
func nextMonthDate(month time.Month) time.Time {
	now := time.Now()
	year := now.Year()
	if now.Month() >= month {
		year++
	}
	return time.Date(year, month, 10, 0, 0, 0, 0, time.UTC)
}
