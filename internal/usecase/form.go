package usecase

import (
	"sort"
	"strings"

	"clinic-portal/pkg/phone"
	"clinic-portal/pkg/validator"
)

// Form messages shared by the edit dialogs.
const (
	MsgFirstNameRequired  = "Имя не может быть пустым"
	MsgSecondNameRequired = "Фамилия не может быть пустой"
	MsgEmailFormat        = "Неверный формат email"
	MsgSpecialtyRequired  = "Выберите хотя бы одну специализацию"
)

// FormError carries per-field messages keyed by the form's payload names.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

type formCheck map[string]string

func (f formCheck) set(field, msg string) {
	if msg != "" {
		if _, ok := f[field]; !ok {
			f[field] = msg
		}
	}
}

func (f formCheck) notBlank(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		f.set(field, msg)
	}
}

// phone requires a valid number; an empty one is reported as malformed.
func (f formCheck) phone(field, value string) {
	if phone.Digits(value) == "" {
		f.set(field, phone.MsgInvalid)
		return
	}
	f.set(field, phone.Error(value))
}

func (f formCheck) optionalPhone(field, value string) {
	f.set(field, phone.Error(value))
}

// email applies the loose rule of the staff list dialogs.
func (f formCheck) email(field, value, msg string) {
	if value != "" && !validator.ValidEmail(value) {
		f.set(field, msg)
	}
}

// strictEmail is the rule of the registration and profile forms.
func (f formCheck) strictEmail(field, value string) {
	f.set(field, validator.EmailError(value))
}

func (f formCheck) err() error {
	if len(f) == 0 {
		return nil
	}
	return &FormError{Fields: map[string]string(f)}
}
