package viewmodel

import (
	"context"
	"encoding/json"
	"errors"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/usecase"
)

const (
	msgRegistered         = "Регистрация прошла успешно!"
	msgRegistrationFailed = "Произошла ошибка при отправке данных."
	redirectPatientList   = "/admins_patient_list.html"
)

// registrationFailure shows the API's own reason when it gave one.
func registrationFailure(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return "Ошибка регистрации: " + apiErr.Message
	}
	return msgRegistrationFailed
}

type PatientRegistrationView struct {
	Header
	Feedback
	Form         dto.RegistrationFormPayload `json:"form"`
	BirthDateMin string                      `json:"birth_date_min"`
	BirthDateMax string                      `json:"birth_date_max"`
	Redirect     string                      `json:"redirect,omitempty"`
}

// patientRegistrationPage signs up a walk-in patient at the front desk.
type patientRegistrationPage struct {
	base
	form     dto.RegistrationFormPayload
	redirect string
}

func newPatientRegistrationPage(deps *Deps) Page {
	p := &patientRegistrationPage{base: newBase(deps, KindPatientRegistration, "admin-profile")}
	p.on("register", p.register)
	return p
}

func (p *patientRegistrationPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	return nil
}

func (p *patientRegistrationPage) register(ctx context.Context, payload json.RawMessage) error {
	var in dto.RegistrationFormPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	p.form = in

	if _, err := p.deps.Patients.RegisterPatient(ctx, converter.PatientFromRegistration(in)); err != nil {
		p.fail(err, registrationFailure(err))
		return nil
	}
	p.alert = msgRegistered
	p.form = dto.RegistrationFormPayload{}
	p.redirect = redirectPatientList
	return nil
}

func (p *patientRegistrationPage) View() interface{} {
	earliest, latest := usecase.BirthDateBounds(p.deps.Now())
	return PatientRegistrationView{
		Header:       p.header(),
		Feedback:     p.feedback(),
		Form:         p.form,
		BirthDateMin: earliest,
		BirthDateMax: latest,
		Redirect:     p.redirect,
	}
}
