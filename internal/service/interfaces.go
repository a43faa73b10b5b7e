package service

import (
	"context"

	"kore-landing-backend/internal/database/models"
	"kore-landing-backend/internal/schema"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// LeadServiceInterface defines the interface for lead service
type LeadServiceInterface interface {
	CreateLead(ctx context.Context, req *schema.CreateLeadRequest) (*models.Lead, error)
}
