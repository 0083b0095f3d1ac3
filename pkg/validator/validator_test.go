package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailError(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"a@b.co", false},
		{"a@b.c", true},
		{"a@b", true},
		{"", false},
		{"a b@c.de", true},
		{"user@mail.example.ru", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if tt.wantErr {
				assert.NotEmpty(t, EmailError(tt.in))
			} else {
				assert.Empty(t, EmailError(tt.in))
			}
		})
	}
}

type contactForm struct {
	Name  string `json:"first_name" validate:"notblank"`
	Phone string `json:"phone" validate:"required,phone"`
	Email string `json:"email" validate:"omitempty,email_loose"`
	Start string `json:"start_time" validate:"omitempty,hhmm"`
	Birth string `json:"birth_date" validate:"omitempty,isodate"`
}

func TestCustomTags(t *testing.T) {
	v := NewValidator()

	ok := contactForm{Name: "Иван", Phone: "+7 (999) 123-45-67", Start: "09:30", Birth: "1990-05-01"}
	require.NoError(t, v.Validate(&ok))

	bad := contactForm{Name: "  ", Phone: "123", Email: "a@b", Start: "9:3x", Birth: "01.05.1990"}
	err := v.Validate(&bad)
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "start_time")
	assert.Contains(t, errs, "birth_date")
}

func TestEmailRulesDiffer(t *testing.T) {
	assert.True(t, ValidEmail("a@b.c"))
	assert.False(t, ValidStrictEmail("a@b.c"))
	assert.True(t, ValidStrictEmail("doc@clinic.ru"))
}

func TestLoginTag(t *testing.T) {
	v := NewValidator()
	for _, ok := range []string{"doc@clinic.ru", "79991234567", "+7 (999) 123-45-67", "8 999 123 45 67"} {
		assert.NoError(t, v.Var(ok, "required,login"), ok)
	}
	for _, bad := range []string{"doc@clinic.r", "12345", "user"} {
		assert.Error(t, v.Var(bad, "required,login"), bad)
	}
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abcdefg1", true},
		{"ABCDEFGH12", true},
		{"abcdefgh", false},
		{"12345678", false},
		{"abc12", false},
		{"пароль123", false},
		{"abcd 1234", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StrongPassword(tt.in))
		})
	}
}

func TestVar(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Var("", "omitempty,email_loose"))
	assert.Error(t, v.Var("a@b", "omitempty,email_loose"))
}
