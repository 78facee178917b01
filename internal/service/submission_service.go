package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/notifier"
	"github.com/noah-isme/portfolio-api/internal/observability"
)

// ContactStore is the persistence step of the submission pipeline.
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
}

// Notifier delivers a submission to the site owner.
type Notifier interface {
	Send(ctx context.Context, submission notifier.Submission) error
}

// SubmissionResult carries the independent outcomes of a pipeline run.
// Notified is nil when the owner notification went out.
type SubmissionResult struct {
	Contact   *models.Contact
	Persisted bool
	Notified  error
}

// Delivered reports whether the owner notification succeeded.
func (r SubmissionResult) Delivered() bool {
	return r.Notified == nil
}

// SubmissionService runs validate -> persist (optional) -> notify.
type SubmissionService interface {
	Submit(ctx context.Context, input dto.SubmissionInput) (SubmissionResult, error)
}

// SubmissionOptions selects the pipeline configuration at composition time.
type SubmissionOptions struct {
	// Name labels metrics and logs ("contacts", "email").
	Name string
	// Store persists submissions; nil runs the store-less pipeline.
	Store ContactStore
	// SubjectFormat builds a subject from the submitter name when none was given.
	// Empty leaves the notifier default in place.
	SubjectFormat string
	Clock         func() time.Time
}

type submissionService struct {
	name          string
	store         ContactStore
	validator     SubmissionValidator
	notifier      Notifier
	subjectFormat string
	now           func() time.Time
	logger        zerolog.Logger
	tracer        trace.Tracer
}

// NewSubmissionService constructs a submission pipeline.
func NewSubmissionService(opts SubmissionOptions, validate *validator.Validate, notify Notifier, logger zerolog.Logger) SubmissionService {
	name := opts.Name
	if name == "" {
		name = "contacts"
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &submissionService{
		name:          name,
		store:         opts.Store,
		validator:     NewSubmissionValidator(validate),
		notifier:      notify,
		subjectFormat: opts.SubjectFormat,
		now:           clock,
		logger:        logger.With().Str("component", "submission_service").Str("pipeline", name).Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/portfolio-api/internal/service/submission"),
	}
}

func (s *submissionService) Submit(ctx context.Context, input dto.SubmissionInput) (SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "submission.submit")
	defer span.End()
	span.SetAttributes(attribute.String("submission.pipeline", s.name))

	if err := s.validator.Validate(input); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		observability.ContactSubmissions().WithLabelValues(s.name, observability.OutcomeInvalid).Inc()
		return SubmissionResult{}, err
	}

	var result SubmissionResult
	if s.store != nil {
		contact := models.Contact{
			Name:      input.Name,
			Email:     input.Email,
			Message:   input.Message,
			CreatedAt: s.now().UTC().Truncate(time.Microsecond),
		}
		if err := s.store.Create(ctx, &contact); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "persistence failed")
			observability.ContactSubmissions().WithLabelValues(s.name, observability.OutcomeStorageError).Inc()
			return SubmissionResult{}, &StorageError{Op: "create", Err: err}
		}
		result.Contact = &contact
		result.Persisted = true
		span.SetAttributes(attribute.Int64("contact.id", int64(contact.ID)))
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" && s.subjectFormat != "" {
		subject = fmt.Sprintf(s.subjectFormat, strings.TrimSpace(input.Name))
	}

	result.Notified = s.notifier.Send(ctx, notifier.Submission{
		Name:    input.Name,
		Email:   input.Email,
		Subject: subject,
		Message: input.Message,
	})

	event := s.logger.Info()
	if !result.Delivered() {
		span.RecordError(result.Notified)
		span.SetAttributes(attribute.Bool("submission.notified", false))
		observability.ContactSubmissions().WithLabelValues(s.name, observability.OutcomeNotifyFailed).Inc()
		event = s.logger.Warn().Err(result.Notified)
	} else {
		span.SetAttributes(attribute.Bool("submission.notified", true))
		observability.ContactSubmissions().WithLabelValues(s.name, observability.OutcomeNotified).Inc()
	}
	if result.Contact != nil {
		event = event.Uint("contact_id", result.Contact.ID)
	}
	event.Str("email", maskEmail(input.Email)).Bool("persisted", result.Persisted).Bool("notified", result.Delivered()).Msg("contact submission processed")

	span.SetStatus(codes.Ok, "accepted")
	return result, nil
}
