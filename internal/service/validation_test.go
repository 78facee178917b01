package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/dto"
)

func TestSubmissionValidatorUsesJSONFieldNames(t *testing.T) {
	v := NewSubmissionValidator(nil)

	err := v.Validate(dto.ContactRequest{Name: "Ada", Message: "Hi"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "email", validationErr.Field)
	require.Equal(t, "email is required", validationErr.Error())
}

func TestSubmissionValidatorAcceptsLongFields(t *testing.T) {
	v := NewSubmissionValidator(nil)

	require.NoError(t, v.Validate(dto.EmailRequest{
		Name:    strings.Repeat("n", 500),
		Email:   strings.Repeat("e", 300) + "@example.com",
		Subject: strings.Repeat("s", 1000),
		Message: strings.Repeat("m", 20000),
	}))
}

func TestSubmissionValidatorNamesFirstMissingField(t *testing.T) {
	v := NewSubmissionValidator(nil)

	err := v.Validate(dto.ContactRequest{Name: strings.Repeat("n", 129), Message: "Hi"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "email is required", validationErr.Error())
}

func TestSubmissionValidatorAcceptsCompletePayload(t *testing.T) {
	v := NewSubmissionValidator(nil)
	require.NoError(t, v.Validate(dto.EmailRequest{Name: "Ada", Email: "ada@example.com", Message: "Hi"}))
}
