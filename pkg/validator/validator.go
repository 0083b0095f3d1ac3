package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"clinic-portal/pkg/phone"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	strictEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
)

// MsgEmailInvalid is the message of the sign-in, registration and profile forms.
const MsgEmailInvalid = "Некорректный email"

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report json field names so errors line up with the payload keys.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phone.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("email_loose", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("email_strict", func(fl validator.FieldLevel) bool {
		return ValidStrictEmail(fl.Field().String())
	})
	// login is a staff email or a patient phone in any formatting.
	_ = v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if strings.Contains(s, "@") {
			return ValidStrictEmail(s)
		}
		return len(phone.Digits(s)) == 11
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Var validates a single value against a tag, e.g. Var(s, "omitempty,email_loose").
func (cv *CustomValidator) Var(field interface{}, tag string) error {
	return cv.validator.Var(field, tag)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required", "notblank":
				errors[field] = field + " is required"
			case "email", "email_loose", "email_strict":
				errors[field] = field + " must be a valid email address"
			case "login":
				errors[field] = field + " must be an email or a phone number"
			case "phone":
				errors[field] = field + " must be 11 digits starting with 7"
			case "hhmm":
				errors[field] = field + " must be a time in HH:MM format"
			case "isodate":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "gt":
				errors[field] = field + " must be greater than " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

// ValidEmail applies the loose something@something.something rule of the
// staff list dialogs.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidStrictEmail also wants a top-level domain of two or more characters.
func ValidStrictEmail(s string) bool {
	return strictEmailPattern.MatchString(s)
}

// EmailError returns the form message for an optional email field checked
// with the strict rule.
func EmailError(s string) string {
	if s == "" || ValidStrictEmail(s) {
		return ""
	}
	return MsgEmailInvalid
}

// StrongPassword wants at least 8 latin letters and digits, with at least
// one of each.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		default:
			return false
		}
	}
	return letter && digit
}
