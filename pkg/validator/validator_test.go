package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Severity string `json:"severity" validate:"required,oneof=mild moderate severe critical"`
	Born     string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sample{Email: "nope", Severity: "bad", Born: "01/02/2020", Password: "short"})
	require.Error(t, err)

	want := map[string]string{
		"email":         "email must be a valid email address",
		"severity":      "severity must be one of: mild, moderate, severe, critical",
		"date_of_birth": "date_of_birth must be a date in 2006-01-02 format",
		"password":      "password must be at least 8 characters",
	}
	if diff := cmp.Diff(want, v.FormatValidationErrors(err)); diff != "" {
		t.Errorf("validation messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Passes(t *testing.T) {
	v := NewValidator()
	err := v.Validate(sample{Email: "doc@example.com", Severity: "mild", Password: "longenough"})
	require.NoError(t, err)
}
