package repository

import (
	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/database"
	"kore-landing-backend/internal/logger"

	"gorm.io/gorm"
)

// Backend names the lead store chosen at startup
type Backend string

const (
	BackendDatabase Backend = "database"
	BackendMemory   Backend = "memory"
)

// Selection is the outcome of SelectLeadStore. DB is nil for the memory
// backend and for a database that could not be opened.
type Selection struct {
	Store   LeadStore
	Backend Backend
	DB      *gorm.DB
}

// SelectLeadStore picks the lead store once, from configuration. A configured
// but unreachable database still selects the durable store with no connection,
// so creates fail loudly instead of silently landing in memory.
func SelectLeadStore(cfg *config.Config, open database.Opener) *Selection {
	log := logger.New().WithField("component", "lead_store")

	if cfg == nil || !cfg.DatabaseConfigured() {
		log.Warn("DATABASE_URL not set, leads are kept in memory and lost on restart")
		return &Selection{
			Store:   NewMemoryLeadRepository(),
			Backend: BackendMemory,
		}
	}

	if open == nil {
		open = database.Initialize
	}

	db, err := open(cfg.DatabaseDriver, cfg.DatabaseURL, nil)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.DatabaseDriver).Error("Failed to initialize database, lead creation will fail until fixed")
		db = nil
	} else {
		log.WithField("driver", cfg.DatabaseDriver).Info("Using database lead store")
	}

	return &Selection{
		Store:   NewLeadRepository(db),
		Backend: BackendDatabase,
		DB:      db,
	}
}
