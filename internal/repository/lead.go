package repository

import (
	"context"

	"kore-landing-backend/internal/database/models"
	apperrors "kore-landing-backend/internal/errors"
	"kore-landing-backend/internal/schema"

	"gorm.io/gorm"
)

// LeadRepository is the durable lead store backed by a GORM connection
type LeadRepository struct {
	db *gorm.DB
}

// Ensure LeadRepository implements LeadStore
var _ LeadStore = (*LeadRepository)(nil)

// NewLeadRepository creates a new lead repository. A nil db yields a store
// whose every call fails with ErrStorageNotConfigured.
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// CreateLead inserts a new lead; the id comes from the table sequence
func (r *LeadRepository) CreateLead(ctx context.Context, req *schema.CreateLeadRequest) (*models.Lead, error) {
	if r.db == nil {
		return nil, apperrors.ErrStorageNotConfigured
	}

	lead := newLead(req)
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, apperrors.NewStorageError("create lead", err)
	}
	return lead, nil
}

// newLead copies req into a fresh model; id and timestamp stay zero for the store to assign
func newLead(req *schema.CreateLeadRequest) *models.Lead {
	lead := &models.Lead{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Industry:     req.Industry,
		Branches:     1,
	}
	if req.Branches != nil {
		lead.Branches = *req.Branches
	}
	if req.Whatsapp != nil {
		lead.Whatsapp = schema.Ptr(*req.Whatsapp)
	}
	if req.Comment != nil {
		lead.Comment = schema.Ptr(*req.Comment)
	}
	return lead
}
