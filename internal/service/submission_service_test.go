package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/notifier"
	"github.com/noah-isme/portfolio-api/internal/repository"
)

func validInput() dto.SubmissionInput {
	return dto.SubmissionInput{Name: "Ada", Email: "ada@example.com", Message: "Hello"}
}

func TestSubmissionServiceRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		input dto.SubmissionInput
		field string
	}{
		{name: "missing name", input: dto.SubmissionInput{Email: "ada@example.com", Message: "Hello"}, field: "name"},
		{name: "blank name", input: dto.SubmissionInput{Name: "   ", Email: "ada@example.com", Message: "Hello"}, field: "name"},
		{name: "missing email", input: dto.SubmissionInput{Name: "Ada", Message: "Hello"}, field: "email"},
		{name: "missing message", input: dto.SubmissionInput{Name: "Ada", Email: "ada@example.com", Message: "\n\t"}, field: "message"},
		{name: "everything missing reports name first", input: dto.SubmissionInput{}, field: "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &storeStub{}
			notify := &notifierStub{}
			svc := NewSubmissionService(SubmissionOptions{Store: store}, NewValidator(), notify, zerolog.Nop())

			_, err := svc.Submit(context.Background(), tc.input)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
			require.Empty(t, store.created, "nothing is persisted")
			require.Empty(t, notify.calls, "nothing is sent")
		})
	}
}

func TestSubmissionServiceDoesNotValidateEmailFormat(t *testing.T) {
	notify := &notifierStub{}
	svc := NewSubmissionService(SubmissionOptions{Name: "email"}, NewValidator(), notify, zerolog.Nop())

	input := validInput()
	input.Email = "not-an-address"
	_, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, notify.calls, 1)
}

func TestSubmissionServicePersistsThenNotifies(t *testing.T) {
	repo := repository.NewContactRepository(setupServiceTestDB(t))
	notify := &notifierStub{}
	fixed := time.Date(2024, 5, 4, 10, 0, 0, 0, time.FixedZone("X", 3600))
	svc := NewSubmissionService(SubmissionOptions{
		Store:         repo,
		SubjectFormat: "New Contact Form Submission from %s",
		Clock:         func() time.Time { return fixed },
	}, NewValidator(), notify, zerolog.Nop())

	first, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	require.True(t, first.Persisted)
	require.True(t, first.Delivered())
	require.NotNil(t, first.Contact)
	require.NotZero(t, first.Contact.ID)
	require.NotEqual(t, first.Contact.ID, second.Contact.ID)
	require.Equal(t, time.UTC, first.Contact.CreatedAt.Location())
	require.True(t, fixed.Equal(first.Contact.CreatedAt))
	require.Equal(t, "Ada", first.Contact.Name)
	require.Equal(t, "ada@example.com", first.Contact.Email)
	require.Equal(t, "Hello", first.Contact.Message)

	require.Len(t, notify.calls, 2)
	require.Equal(t, "New Contact Form Submission from Ada", notify.calls[0].Subject)
}

func TestSubmissionServiceReportsSuccessWhenNotificationFails(t *testing.T) {
	store := &storeStub{}
	notify := &notifierStub{err: errTransport}
	svc := NewSubmissionService(SubmissionOptions{Store: store}, NewValidator(), notify, zerolog.Nop())

	result, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err, "notification failure must not fail the submission")
	require.True(t, result.Persisted)
	require.NotNil(t, result.Contact)
	require.Equal(t, uint(1), result.Contact.ID)
	require.False(t, result.Delivered())

	var notifyErr *notifier.Error
	require.ErrorAs(t, result.Notified, &notifyErr)
	require.Len(t, notify.calls, 1, "no retries")
}

func TestSubmissionServiceStorageFailureSkipsNotification(t *testing.T) {
	store := &storeStub{err: errors.New("disk I/O error")}
	notify := &notifierStub{}
	svc := NewSubmissionService(SubmissionOptions{Store: store}, NewValidator(), notify, zerolog.Nop())

	result, err := svc.Submit(context.Background(), validInput())
	require.Error(t, err)
	require.True(t, IsStorageError(err))
	require.False(t, result.Persisted)
	require.Empty(t, notify.calls)
}

func TestSubmissionServiceWithoutStore(t *testing.T) {
	notify := &notifierStub{err: errTransport}
	svc := NewSubmissionService(SubmissionOptions{Name: "email"}, NewValidator(), notify, zerolog.Nop())

	input := validInput()
	input.Subject = "Hiring"
	result, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.False(t, result.Persisted)
	require.Nil(t, result.Contact)
	require.Error(t, result.Notified)
	require.Equal(t, "Hiring", notify.calls[0].Subject)
}

func TestMaskEmail(t *testing.T) {
	require.Equal(t, "a***a@example.com", maskEmail("Ada@Example.com"))
	require.Equal(t, "j***@example.com", maskEmail("jo@example.com"))
	require.Equal(t, "***", maskEmail("invalid"))
	require.Equal(t, "", maskEmail(" "))
}
