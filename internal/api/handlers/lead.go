package handlers

import (
	"errors"
	"io"
	"net/http"

	apperrors "kore-landing-backend/internal/errors"
	"kore-landing-backend/internal/logger"
	"kore-landing-backend/internal/schema"
	"kore-landing-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MaxLeadBodyBytes bounds the size of a lead submission
const MaxLeadBodyBytes = 64 << 10

// LeadHandler handles HTTP requests for lead submissions
type LeadHandler struct {
	leadService service.LeadServiceInterface
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService service.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// MessageResponse is the minimal error body
type MessageResponse struct {
	Message string `json:"message" example:"Failed to create lead"`
}

// ValidationErrorResponse is the 400 body; Message and Field describe the first failure
type ValidationErrorResponse struct {
	Message string                       `json:"message" example:"email: invalid format"`
	Field   string                       `json:"field,omitempty" example:"email"`
	Errors  []*apperrors.ValidationError `json:"errors"`
}

// CreateLead handles POST /api/leads
// @Summary Submit a lead
// @Description Validate a lead-capture form submission and store it. Not idempotent: every valid call creates a new lead.
// @Tags leads
// @Accept json
// @Produce json
// @Param lead body schema.CreateLeadRequest true "Lead form data"
// @Success 201 {object} models.Lead "Lead created"
// @Failure 400 {object} ValidationErrorResponse "Invalid input"
// @Failure 413 {object} MessageResponse "Request body too large"
// @Failure 500 {object} MessageResponse "Failed to create lead"
// @Failure 503 {object} MessageResponse "Lead storage is unavailable"
// @Router /api/leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxLeadBodyBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, MessageResponse{Message: apperrors.ErrBodyTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "failed to read request body"})
		return
	}

	req, err := schema.Decode(body)
	if err != nil {
		respondValidation(c, err)
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), req)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			respondValidation(c, err)
		case apperrors.IsConfiguration(err):
			logger.WithContext(c.Request.Context()).WithError(err).Error("Lead storage is not configured")
			c.JSON(http.StatusServiceUnavailable, MessageResponse{Message: "Lead storage is unavailable"})
		default:
			logger.WithContext(c.Request.Context()).WithError(err).Error("Lead creation failed")
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to create lead"})
		}
		return
	}

	c.JSON(http.StatusCreated, lead)
}

func respondValidation(c *gin.Context, err error) {
	list, ok := apperrors.AsValidationErrors(err)
	if !ok || len(list) == 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Message: "invalid request", Errors: []*apperrors.ValidationError{}})
		return
	}
	first := list.First()
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Message: first.Error(),
		Field:   first.Field,
		Errors:  list,
	})
}
