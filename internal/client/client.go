package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kore-landing-backend/internal/database/models"
	apperrors "kore-landing-backend/internal/errors"
	"kore-landing-backend/internal/schema"
)

// ErrSubmitFailed marks any non-validation failure of a submission
var ErrSubmitFailed = errors.New("lead submission failed")

// APIError is a non-2xx answer from the lead endpoint
type APIError struct {
	StatusCode int
	Message    string
	Field      string
	Errors     []*apperrors.ValidationError
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lead endpoint returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("lead endpoint returned %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether the server rejected the input
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest
}

// Client posts lead submissions to a Kore backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	validator  *schema.Validator
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the overall request timeout. It works on a copy of the
// current http.Client, so a client passed to WithHTTPClient is not changed.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithValidator shares a validator instance with the caller
func WithValidator(v *schema.Validator) Option {
	return func(c *Client) {
		if v != nil {
			c.validator = v
		}
	}
}

// NewClient creates a client for the backend at baseURL, e.g. http://localhost:5000
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		validator:  schema.NewValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Message string                       `json:"message"`
	Field   string                       `json:"field"`
	Errors  []*apperrors.ValidationError `json:"errors"`
}

// CreateLead validates req locally, posts it and returns the created lead.
// Invalid input is returned as ValidationErrors without any request being sent.
func (c *Client) CreateLead(ctx context.Context, req *schema.CreateLeadRequest) (*models.Lead, error) {
	valid, err := c.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(valid)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrSubmitFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, schema.Method, c.baseURL+schema.Path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrSubmitFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrSubmitFailed, err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var lead models.Lead
	if err := json.Unmarshal(body, &lead); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrSubmitFailed, apperrors.ErrInvalidResponse, err)
	}
	if err := c.validator.ValidateLead(&lead); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrSubmitFailed, apperrors.ErrInvalidResponse, err)
	}

	return &lead, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Message = eb.Message
		apiErr.Field = eb.Field
		apiErr.Errors = eb.Errors
	}

	if status != http.StatusBadRequest {
		apiErr.Err = ErrSubmitFailed
	}
	return apiErr
}
