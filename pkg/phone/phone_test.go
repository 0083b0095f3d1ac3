package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain eleven digits", "79991234567", "+7 (999) 123-45-67"},
		{"leading eight", "89991234567", "+7 (999) 123-45-67"},
		{"already formatted", "+7 (999) 123-45-67", "+7 (999) 123-45-67"},
		{"ten digits unchanged", "9991234567", "9991234567"},
		{"wrong country code unchanged", "19991234567", "19991234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("79991234567"))
	assert.True(t, Valid("+7 (999) 123-45-67"))
	assert.False(t, Valid("89991234567"))
	assert.False(t, Valid("7999123456"))
	assert.False(t, Valid(""))
}

func TestError(t *testing.T) {
	assert.Empty(t, Error(""))
	assert.Empty(t, Error("+7 (999) 123-45-67"))
	assert.NotEmpty(t, Error("+7 (999) 12"))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "79991234567", Digits("+7 (999) 123-45-67"))
}
