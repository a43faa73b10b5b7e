package service

import (
	"context"
	"fmt"
	"time"

	"kore-landing-backend/internal/database/models"
	apperrors "kore-landing-backend/internal/errors"
	"kore-landing-backend/internal/logger"
	"kore-landing-backend/internal/metrics"
	"kore-landing-backend/internal/repository"
	"kore-landing-backend/internal/schema"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("kore-landing-backend/internal/service")

// LeadService is the authoritative validate-then-persist step for lead submissions
type LeadService struct {
	store     repository.LeadStore
	validator *schema.Validator
	backend   repository.Backend
	metrics   *metrics.Registry
}

// Ensure LeadService implements LeadServiceInterface
var _ LeadServiceInterface = (*LeadService)(nil)

// NewLeadService creates a new LeadService. metrics may be nil.
func NewLeadService(store repository.LeadStore, validator *schema.Validator, backend repository.Backend, metrics *metrics.Registry) *LeadService {
	if validator == nil {
		validator = schema.NewValidator()
	}
	return &LeadService{
		store:     store,
		validator: validator,
		backend:   backend,
		metrics:   metrics,
	}
}

// CreateLead re-validates req and, only when valid, hands it to the store.
// Client-side validation is never trusted.
func (s *LeadService) CreateLead(ctx context.Context, req *schema.CreateLeadRequest) (*models.Lead, error) {
	ctx, span := tracer.Start(ctx, "LeadService.CreateLead")
	defer span.End()
	span.SetAttributes(attribute.String("lead.backend", string(s.backend)))

	log := logger.WithContext(ctx).WithField("backend", s.backend)

	valid, err := s.validator.Validate(req)
	if err != nil {
		s.observe(metrics.ResultInvalid)
		span.SetStatus(codes.Error, "validation failed")
		log.WithError(err).Debug("Rejected invalid lead")
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	start := time.Now()
	lead, err := s.store.CreateLead(ctx, valid)
	if s.metrics != nil {
		s.metrics.ObserveStoreWrite(string(s.backend), time.Since(start))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		if apperrors.IsConfiguration(err) {
			s.observe(metrics.ResultUnconfigured)
			log.WithError(err).Error("Lead store is not configured")
		} else {
			s.observe(metrics.ResultFailed)
			log.WithError(err).Error("Failed to store lead")
		}
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.observe(metrics.ResultCreated)
	span.SetAttributes(attribute.Int64("lead.id", lead.ID))
	log.WithFields(map[string]interface{}{
		"lead_id":  lead.ID,
		"industry": lead.Industry,
		"branches": lead.Branches,
	}).Info("Lead created")

	return lead, nil
}

func (s *LeadService) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveSubmission(string(s.backend), result)
	}
}
