package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	shiftPattern = regexp.MustCompile(`(?i)^(1[0-2]|0?[1-9])(:[0-5][0-9])?\s?(am|pm)\s+to\s+(1[0-2]|0?[1-9])(:[0-5][0-9])?\s?(am|pm)$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("shift", func(fl validator.FieldLevel) bool {
		return IsShiftTime(fl.Field().String())
	})
	return v
}

// SentenceCase collapses whitespace and capitalises only the first letter:
// "CITY  general" becomes "City general".
func SentenceCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// DigitsOnly keeps the digits of s and truncates the result to max digits.
func DigitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() >= max {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func NormalizePhone(s string) string {
	return DigitsOnly(s, 10)
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsShiftTime accepts shift windows such as "9am to 12pm" or "2:30pm to 5pm".
func IsShiftTime(s string) bool {
	return shiftPattern.MatchString(strings.TrimSpace(s))
}

// NormalizeShift lower-cases a shift window and collapses its spacing.
func NormalizeShift(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// validateStruct runs the struct rules and reports failures per JSON field.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return validationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "phone10":
		return "Phone number must be 10 digits"
	case "emailaddr":
		return "Enter a valid email address"
	case "shift":
		return "Shift time must look like '9am to 12pm'"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "Use the YYYY-MM-DD format"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Add at least %s", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("At most %s allowed", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gte":
		return "Must be at least " + fe.Param()
	case "lte":
		return "Must be at most " + fe.Param()
	case "eqfield":
		return "Does not match"
	}
	return "Invalid value"
}
