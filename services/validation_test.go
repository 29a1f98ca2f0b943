package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentenceCase(t *testing.T) {
	cases := map[string]string{
		"CITY general":               "City general",
		"  city   GENERAL hospital ": "City general hospital",
		"a":                          "A",
		"":                           "",
		"élan clinic":                "Élan clinic",
	}
	for in, want := range cases {
		assert.Equal(t, want, SentenceCase(in), in)
	}
}

func TestDigitsOnlyTruncates(t *testing.T) {
	assert.Equal(t, "9876543210", DigitsOnly("98a76-54 32101234", 10))
	assert.Equal(t, "9876543210", NormalizePhone("(98765) 43210"))
	assert.Equal(t, "12345", DigitsOnly("12-345", 10))
	assert.Equal(t, "", DigitsOnly("phone", 10))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("desk@cityclinic.in"))
	assert.False(t, IsValidEmail("desk@cityclinic"))
	assert.False(t, IsValidEmail("desk cityclinic.in"))
	assert.False(t, IsValidEmail("@cityclinic.in"))
}

func TestShiftTimes(t *testing.T) {
	for _, ok := range []string{"9am to 12pm", "2:30pm to 5pm", "10 AM to 1 PM", "09am to 11am"} {
		assert.True(t, IsShiftTime(ok), ok)
	}
	for _, bad := range []string{"9 to 12", "13pm to 2pm", "morning", "9am-12pm", ""} {
		assert.False(t, IsShiftTime(bad), bad)
	}
	assert.Equal(t, "10 am to 1 pm", NormalizeShift("  10 AM   to 1 PM"))
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	in := RegisterCenterInput{
		CenterInput: CenterInput{
			City:         "Kochi",
			Address:      "MG Road",
			InChargeName: "Anil",
			Phone:        "98765",
			Email:        "not-an-email",
		},
		Password: "short",
	}

	err := validateStruct(in)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Validation failed", verr.Message)
	assert.Equal(t, "This field is required", verr.Fields["clinicName"])
	assert.Equal(t, "Phone number must be 10 digits", verr.Fields["phone"])
	assert.Equal(t, "Enter a valid email address", verr.Fields["email"])
	assert.Equal(t, "Must be at least 8 characters", verr.Fields["password"])
	assert.NotContains(t, verr.Fields, "city")
}
