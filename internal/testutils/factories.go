package testutils

import (
	"fmt"
	"time"

	"kore-landing-backend/internal/database/models"
	"kore-landing-backend/internal/schema"

	"github.com/google/uuid"
)

// LeadFactory provides methods to create test lead data
type LeadFactory struct{}

// NewLeadFactory creates a new LeadFactory
func NewLeadFactory() *LeadFactory {
	return &LeadFactory{}
}

// Request creates a valid lead submission with default values
func (f *LeadFactory) Request() *schema.CreateLeadRequest {
	return &schema.CreateLeadRequest{
		Name:         "Ana Pérez",
		BusinessName: "Tienda Ana",
		Email:        "ana@example.com",
		Industry:     "Moda",
		Branches:     schema.Ptr(1),
	}
}

// UniqueRequest creates a valid submission whose email is unique per call
func (f *LeadFactory) UniqueRequest() *schema.CreateLeadRequest {
	req := f.Request()
	req.Email = fmt.Sprintf("lead-%s@example.com", uuid.New().String()[:8])
	return req
}

// WithEmail sets a custom email on the default submission
func (f *LeadFactory) WithEmail(email string) *schema.CreateLeadRequest {
	req := f.Request()
	req.Email = email
	return req
}

// WithBranches sets a custom branch count on the default submission
func (f *LeadFactory) WithBranches(branches int) *schema.CreateLeadRequest {
	req := f.Request()
	req.Branches = schema.Ptr(branches)
	return req
}

// WithOptionals fills in the optional contact fields
func (f *LeadFactory) WithOptionals(whatsapp, comment string) *schema.CreateLeadRequest {
	req := f.Request()
	req.Whatsapp = schema.Ptr(whatsapp)
	req.Comment = schema.Ptr(comment)
	return req
}

// Lead creates a stored lead as a backend would return it
func (f *LeadFactory) Lead(id int64) *models.Lead {
	return &models.Lead{
		ID:           id,
		Name:         "Ana Pérez",
		BusinessName: "Tienda Ana",
		Email:        "ana@example.com",
		Industry:     "Moda",
		Branches:     1,
		CreatedAt:    time.Now().UTC(),
	}
}
