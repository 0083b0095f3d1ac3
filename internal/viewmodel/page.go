// Package viewmodel hosts the clinic page view-models. A page is mounted
// per browser tab, owns all of its state and is driven by named actions.
package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/ui"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/validator"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindScheduleManagement   Kind = "schedule-management"
	KindAppointment          Kind = "appointment"
	KindPriceList            Kind = "price-list"
	KindDoctorList           Kind = "doctor-list"
	KindAdminList            Kind = "admin-list"
	KindPatientList          Kind = "patient-list"
	KindConsultation         Kind = "consultation"
	KindPatientAccount       Kind = "patient-account"
	KindDoctorAccount        Kind = "doctor-account"
	KindAdministratorAccount Kind = "administrator-account"
	KindPatientRegistration  Kind = "patient-registration"
	KindAdministratorProfile Kind = "administrator-profile"
	KindDoctorProfile        Kind = "doctor-profile"
	KindStatistics           Kind = "statistics"
)

var (
	ErrUnknownKind    = errors.New("unknown page kind")
	ErrUnknownAction  = errors.New("unknown page action")
	ErrPageNotFound   = errors.New("page not found")
	ErrForbidden      = errors.New("page is not available for this role")
	ErrUnauthorized   = errors.New("page requires a signed-in user")
	ErrNothingChosen  = errors.New("no item selected")
	ErrNoAppointment  = errors.New("appointment id is required")
	ErrUnknownSlot    = errors.New("slot is not offered")
	ErrUnknownElement = errors.New("no such item on the page")
)

// PayloadError is a malformed action payload.
type PayloadError struct {
	Fields map[string]string
	Err    error
}

func (e *PayloadError) Error() string { return "invalid payload: " + e.Err.Error() }

func (e *PayloadError) Unwrap() error { return e.Err }

// Session is who mounts the page and with which parameters.
type Session struct {
	UserID        int
	Role          entity.Role
	AppointmentID int
}

func (s Session) Authenticated() bool { return s.UserID != 0 && s.Role.Valid() }

// Page is a mounted view-model. Calls are serialized by the registry.
type Page interface {
	Kind() Kind
	Mount(ctx context.Context, s Session) error
	Dispatch(ctx context.Context, action string, payload json.RawMessage) error
	Event(e ui.Event)
	View() interface{}
	Unmount()
}

// Deps are the collaborators every page draws from.
type Deps struct {
	Log       *logrus.Logger
	Validator *validator.CustomValidator
	Now       func() time.Time

	Account     usecase.AccountUsecase
	Schedule    usecase.ScheduleUsecase
	Catalog     usecase.CatalogUsecase
	Doctors     usecase.DoctorUsecase
	Admins      usecase.AdminUsecase
	Patients    usecase.PatientUsecase
	Appointment usecase.AppointmentUsecase
	Visits      usecase.VisitUsecase
	Profiles    usecase.ProfileUsecase
	Statistics  usecase.StatisticsUsecase
}

type action func(ctx context.Context, payload json.RawMessage) error

// base carries the state every page shares: identity popover, alert and
// inline form errors.
type base struct {
	deps     *Deps
	kind     Kind
	session  Session
	identity *entity.Identity

	alert   string
	errors  map[string]string
	message string

	bus     *ui.Bus
	popover *ui.Popover
	actions map[string]action
}

func newBase(deps *Deps, kind Kind, popoverID string) base {
	return base{
		deps:    deps,
		kind:    kind,
		bus:     ui.NewBus(),
		popover: ui.NewPopover(popoverID),
		actions: map[string]action{},
	}
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) on(name string, fn action) { b.actions[name] = fn }

// attach records the session and starts the outside-click listener.
func (b *base) attach(s Session) {
	b.session = s
	b.popover.Attach(b.bus)
}

func (b *base) Dispatch(ctx context.Context, name string, payload json.RawMessage) error {
	b.alert = ""
	b.errors = nil

	if name == "toggle_popover" {
		b.popover.Toggle()
		return nil
	}
	fn, ok := b.actions[name]
	if !ok {
		return ErrUnknownAction
	}
	return fn(ctx, payload)
}

func (b *base) Event(e ui.Event) { b.bus.Publish(e) }

func (b *base) Unmount() { b.popover.Detach() }

// decode reads and validates an action payload into dst.
func (b *base) decode(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return &PayloadError{Err: err}
	}
	if err := b.deps.Validator.Validate(dst); err != nil {
		return &PayloadError{Fields: b.deps.Validator.FormatValidationErrors(err), Err: err}
	}
	return nil
}

// loadIdentity fills the header popover. A failure leaves it empty.
func (b *base) loadIdentity(ctx context.Context) {
	if !b.session.Authenticated() {
		return
	}
	identity, err := b.deps.Account.GetIdentity(ctx, b.session.Role)
	if err != nil {
		return
	}
	b.identity = identity
}

// fail turns a usecase error into page feedback: form errors inline,
// anything else as the given alert.
func (b *base) fail(err error, alert string) {
	var formErr *usecase.FormError
	if errors.As(err, &formErr) {
		b.errors = formErr.Fields
		return
	}
	b.alert = alert
}

func (b *base) header() Header {
	h := Header{
		PopoverID:      b.popover.ElementID(),
		PopoverVisible: b.popover.Visible(),
	}
	if b.identity != nil {
		h.FullName = b.identity.ShortName()
		h.Role = string(b.identity.Role)
		h.UserID = b.identity.UserID
	}
	return h
}

func (b *base) feedback() Feedback {
	return Feedback{Alert: b.alert, Errors: b.errors, Message: b.message}
}
