package viewmodel

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

const (
	redirectPatientAccount = "/patient_account.html"
	redirectHome           = "/index.html"
)

type AppointmentView struct {
	Header
	Feedback
	Booking  BookingView `json:"booking"`
	Redirect string      `json:"redirect,omitempty"`
}

// appointmentPage is the public booking wizard. A signed-in patient books
// for themselves with the form prefilled.
type appointmentPage struct {
	base
	wizard   *bookingWizard
	redirect string
}

func newAppointmentPage(deps *Deps) Page {
	p := &appointmentPage{base: newBase(deps, KindAppointment, "patient-profile")}
	p.wizard = newBookingWizard(&p.base)
	p.wizard.register("", func(context.Context) {
		p.redirect = redirectHome
		if p.wizard.patientID != nil {
			p.redirect = redirectPatientAccount
		}
	})
	return p
}

func (p *appointmentPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	if s.Authenticated() && s.Role == entity.RolePatient {
		p.loadIdentity(ctx)
		if profile, err := p.deps.Account.GetPatientProfile(ctx); err == nil && profile != nil {
			p.wizard.prefill(profile)
		}
	}
	p.wizard.loadSpecialties(ctx)
	return nil
}

func (p *appointmentPage) View() interface{} {
	return AppointmentView{
		Header:   p.header(),
		Feedback: p.feedback(),
		Booking:  p.wizard.view(),
		Redirect: p.redirect,
	}
}
