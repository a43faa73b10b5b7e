package repository

import (
	"context"
	"sync"
	"time"

	"kore-landing-backend/internal/database/models"
	"kore-landing-backend/internal/schema"
)

// MemoryLeadRepository keeps leads for the lifetime of the process.
// Ids start at 1 and are never reused.
type MemoryLeadRepository struct {
	mu     sync.Mutex
	leads  []models.Lead
	nextID int64
	now    func() time.Time
}

// Ensure MemoryLeadRepository implements LeadStore
var _ LeadStore = (*MemoryLeadRepository)(nil)

// NewMemoryLeadRepository creates an empty in-memory lead store
func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{
		nextID: 1,
		now:    time.Now,
	}
}

// CreateLead appends a lead under a single critical section so concurrent
// callers never share an id
func (r *MemoryLeadRepository) CreateLead(_ context.Context, req *schema.CreateLeadRequest) (*models.Lead, error) {
	lead := newLead(req)

	r.mu.Lock()
	lead.ID = r.nextID
	r.nextID++
	lead.CreatedAt = r.now()
	r.leads = append(r.leads, cloneLead(*lead))
	r.mu.Unlock()

	return lead, nil
}

// Len returns the number of stored leads
func (r *MemoryLeadRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.leads)
}

// Snapshot returns a copy of the stored leads in insertion order
func (r *MemoryLeadRepository) Snapshot() []models.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Lead, len(r.leads))
	for i, lead := range r.leads {
		out[i] = cloneLead(lead)
	}
	return out
}

// cloneLead copies l including its optional fields, so callers never hold
// pointers into stored leads
func cloneLead(l models.Lead) models.Lead {
	if l.Whatsapp != nil {
		l.Whatsapp = schema.Ptr(*l.Whatsapp)
	}
	if l.Comment != nil {
		l.Comment = schema.Ptr(*l.Comment)
	}
	return l
}
