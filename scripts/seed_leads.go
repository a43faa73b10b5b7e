package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"kore-landing-backend/internal/client"
	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/database"
	"kore-landing-backend/internal/repository"
	"kore-landing-backend/internal/schema"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	file := flag.String("file", "scripts/data/leads.yaml", "YAML file with sample leads")
	flag.Parse()

	log.Println("🚀 Seeding sample leads from YAML...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.DatabaseConfigured() {
		log.Fatal("DATABASE_URL (or DB_HOST) must be set to seed leads")
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseDriver, cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	created, err := seedLeads(context.Background(), db, *file)
	if err != nil {
		log.Fatalf("Failed to seed leads: %v", err)
	}

	log.Printf("✅ Leads: %d created", created)
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(driver, dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress GORM query logging during seeding
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(driver, dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

// seedLeads validates every entry first and inserts them in one
// transaction, so a bad file or a failed insert leaves the table as it was
func seedLeads(ctx context.Context, db *gorm.DB, path string) (int, error) {
	requests, err := client.LoadLeadsFile(path)
	if err != nil {
		return 0, err
	}

	validator := schema.NewValidator()
	valid := make([]*schema.CreateLeadRequest, 0, len(requests))
	for i, req := range requests {
		normalized, err := validator.Validate(req)
		if err != nil {
			return 0, fmt.Errorf("lead %d (%s): %w", i, req.Email, err)
		}
		valid = append(valid, normalized)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := repository.NewLeadRepository(tx)
		for i, req := range valid {
			if _, err := store.CreateLead(ctx, req); err != nil {
				return fmt.Errorf("failed to create lead %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(valid), nil
}
