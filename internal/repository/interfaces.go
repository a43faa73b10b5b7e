package repository

import (
	"context"

	"kore-landing-backend/internal/database/models"
	"kore-landing-backend/internal/schema"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// LeadStore persists validated lead requests and assigns their id and creation time.
// Implementations do not re-validate business rules.
type LeadStore interface {
	CreateLead(ctx context.Context, req *schema.CreateLeadRequest) (*models.Lead, error)
}
