package client

import (
	"context"
	"errors"

	"kore-landing-backend/internal/database/models"
	apperrors "kore-landing-backend/internal/errors"
	"kore-landing-backend/internal/logger"
	"kore-landing-backend/internal/schema"
)

// Toast texts shown to the visitor
const (
	SuccessTitle       = "¡Recibido!"
	SuccessDescription = "Gracias por tu interés en Kore. Te contactaremos pronto."
	ErrorTitle         = "Error"
	GenericErrorText   = "Hubo un problema al enviar el formulario."
)

// Toast is a transient user notification
type Toast struct {
	Title       string
	Description string
	Destructive bool
}

// Notifier displays toasts
type Notifier interface {
	Notify(Toast)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// LogNotifier prints toasts as log lines, for command line use
type LogNotifier struct {
	Logger *logger.Logger
}

func (n LogNotifier) Notify(t Toast) {
	log := n.Logger
	if log == nil {
		log = logger.New()
	}
	entry := log.WithField("title", t.Title)
	if t.Destructive {
		entry.Error(t.Description)
		return
	}
	entry.Info(t.Description)
}

// LeadCreator is the part of Client the hook needs
type LeadCreator interface {
	CreateLead(ctx context.Context, req *schema.CreateLeadRequest) (*models.Lead, error)
}

// SubmitHook wires a form submission to the backend and reports the outcome
type SubmitHook struct {
	client   LeadCreator
	notifier Notifier
}

// NewSubmitHook creates a hook; a nil notifier falls back to LogNotifier
func NewSubmitHook(client LeadCreator, notifier Notifier) *SubmitHook {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &SubmitHook{client: client, notifier: notifier}
}

// Submit sends req once. On success onSuccess (if any) runs with the created
// lead before the success toast; on failure an error toast is shown. The
// error is returned so callers can decide what to keep in the form.
func (h *SubmitHook) Submit(ctx context.Context, req *schema.CreateLeadRequest, onSuccess func(*models.Lead)) (*models.Lead, error) {
	lead, err := h.client.CreateLead(ctx, req)
	if err != nil {
		h.notifier.Notify(Toast{
			Title:       ErrorTitle,
			Description: errorDescription(err),
			Destructive: true,
		})
		return nil, err
	}

	if onSuccess != nil {
		onSuccess(lead)
	}
	h.notifier.Notify(Toast{Title: SuccessTitle, Description: SuccessDescription})
	return lead, nil
}

func errorDescription(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if list, ok := apperrors.AsValidationErrors(err); ok && len(list) > 0 {
		return list.First().Error()
	}
	return GenericErrorText
}
