// Package schema defines the lead-creation contract shared by the
// submission endpoint and the submission client.
package schema

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"kore-landing-backend/internal/database/models"
	apperrors "kore-landing-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Path and Method are the fixed route of the lead-creation call.
const (
	Path   = "/api/leads"
	Method = "POST"
)

// CreateLeadRequest is the untrusted lead-creation payload.
// Branches is a pointer so that an absent value can be told apart from 0.
type CreateLeadRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	BusinessName string  `json:"businessName" validate:"required,max=200"`
	Email        string  `json:"email" validate:"required,email,max=254"`
	Whatsapp     *string `json:"whatsapp,omitempty" validate:"omitempty,max=32"`
	Industry     string  `json:"industry" validate:"required,max=100"`
	Branches     *int    `json:"branches" validate:"required,min=1"`
	Comment      *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// Ptr returns a pointer to v; handy for the optional request fields.
func Ptr[T any](v T) *T {
	return &v
}

// Validator normalizes and validates lead payloads. Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	policy   *bluemonday.Policy
}

// NewValidator creates a Validator reporting failures by JSON field name
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{
		validate: v,
		policy:   bluemonday.StrictPolicy(),
	}
}

// Decode parses an untrusted JSON body. Type mismatches are reported as
// field-level validation errors; unknown fields are ignored.
func Decode(body []byte) (*CreateLeadRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperrors.ValidationErrors{{Message: "request body is empty"}}
	}

	var req CreateLeadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return nil, apperrors.ValidationErrors{{Message: "request body must be a JSON object"}}
			}
			return nil, apperrors.ValidationErrors{{Field: typeErr.Field, Message: typeMessage(typeErr.Type)}}
		}
		return nil, apperrors.ValidationErrors{{Message: "invalid JSON body"}}
	}
	return &req, nil
}

// Parse decodes and validates body in one step
func (v *Validator) Parse(body []byte) (*CreateLeadRequest, error) {
	req, err := Decode(body)
	if err != nil {
		return nil, err
	}
	return v.Validate(req)
}

// Validate returns a normalized copy of req, or ValidationErrors naming
// every field that failed. req itself is left untouched.
func (v *Validator) Validate(req *CreateLeadRequest) (*CreateLeadRequest, error) {
	if req == nil {
		return nil, apperrors.ValidationErrors{{Message: "request body is empty"}}
	}

	normalized := v.normalize(req)
	if err := v.check(normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// ValidateLead checks that a stored lead satisfies the creation rules and
// carries the storage-assigned fields.
func (v *Validator) ValidateLead(lead *models.Lead) error {
	if lead == nil {
		return apperrors.ValidationErrors{{Message: "lead is empty"}}
	}

	var errs apperrors.ValidationErrors
	if lead.ID < 1 {
		errs = append(errs, &apperrors.ValidationError{Field: "id", Message: "must be at least 1"})
	}
	if err := v.check(FromLead(lead)); err != nil {
		list, _ := apperrors.AsValidationErrors(err)
		errs = append(errs, list...)
	}
	if lead.CreatedAt.IsZero() {
		errs = append(errs, &apperrors.ValidationError{Field: "createdAt", Message: "required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FromLead rebuilds the creation payload that a stored lead corresponds to
func FromLead(lead *models.Lead) *CreateLeadRequest {
	return &CreateLeadRequest{
		Name:         lead.Name,
		BusinessName: lead.BusinessName,
		Email:        lead.Email,
		Whatsapp:     lead.Whatsapp,
		Industry:     lead.Industry,
		Branches:     Ptr(lead.Branches),
		Comment:      lead.Comment,
	}
}

func (v *Validator) check(req *CreateLeadRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return apperrors.ValidationErrors{{Message: err.Error()}}
	}

	errs := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &apperrors.ValidationError{Field: fe.Field(), Message: ruleMessage(fe)})
	}
	return errs
}

func (v *Validator) normalize(req *CreateLeadRequest) *CreateLeadRequest {
	out := &CreateLeadRequest{
		Name:         v.cleanText(req.Name),
		BusinessName: v.cleanText(req.BusinessName),
		Email:        strings.TrimSpace(req.Email),
		Whatsapp:     v.cleanOptional(req.Whatsapp),
		Industry:     v.cleanText(req.Industry),
		Comment:      v.cleanOptional(req.Comment),
	}
	if req.Branches != nil {
		out.Branches = Ptr(*req.Branches)
	}
	return out
}

// maxCleanPasses bounds how many entity layers cleanText peels off.
const maxCleanPasses = 5

var angleStripper = strings.NewReplacer("<", "", ">", "")

// cleanText strips markup and surrounding whitespace. Entities are decoded
// before sanitizing, and the pass repeats until the text is stable, so
// entity-encoded markup cannot come out of it as live tags.
func (v *Validator) cleanText(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < maxCleanPasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(html.UnescapeString(s))))
		if next == s {
			return s
		}
		s = next
	}
	// Still changing after the last pass: drop anything tag-shaped.
	return strings.TrimSpace(angleStripper.Replace(s))
}

func (v *Validator) cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := v.cleanText(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "invalid format"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "invalid type"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "must be an integer"
	case reflect.String:
		return "must be a string"
	default:
		return fmt.Sprintf("must be of type %s", t.Kind())
	}
}
