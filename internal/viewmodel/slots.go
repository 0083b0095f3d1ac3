package viewmodel

import (
	"context"
	"encoding/json"
	"errors"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/pagination"
)

const (
	msgBookingCreated = "Запись успешно создана!"
	msgBookingFailed  = "Ошибка при записи. Попробуйте позже."
)

type SlotView struct {
	Label string `json:"label"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

type DayView struct {
	Label string   `json:"label"`
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type SlotTableView struct {
	Days       []DayView `json:"days"`
	MaxSlots   int       `json:"max_slots"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Selected   *SlotView `json:"selected"`
}

// slotPicker pages a doctor's free slots a week at a time.
type slotPicker struct {
	days     []entity.DaySlots
	pager    *pagination.Pager
	selected *SlotView
}

func newSlotPicker() *slotPicker {
	return &slotPicker{pager: pagination.NewPager(pagination.DaysPerPage)}
}

func (s *slotPicker) load(days []entity.DaySlots) {
	s.days = days
	s.pager.SetTotal(len(days))
	s.selected = nil
}

func (s *slotPicker) reset() { s.load(nil) }

func (s *slotPicker) next() { s.pager.Next() }

func (s *slotPicker) prev() { s.pager.Prev() }

// choose selects a slot the doctor actually offers.
func (s *slotPicker) choose(label, clock string) error {
	for _, d := range s.days {
		if d.Label != label {
			continue
		}
		for _, slot := range d.Slots {
			if slot == clock {
				s.selected = &SlotView{Label: label, Date: d.Date(), Time: clock}
				return nil
			}
		}
	}
	return ErrUnknownSlot
}

func (s *slotPicker) view() SlotTableView {
	page := pagination.Page(s.pager, s.days)
	v := SlotTableView{
		Days:       make([]DayView, len(page)),
		Page:       s.pager.Current(),
		TotalPages: s.pager.TotalPages(),
		Selected:   s.selected,
	}
	for i, d := range page {
		v.Days[i] = DayView{Label: d.Label, Date: d.Date(), Slots: d.Slots}
		if len(d.Slots) > v.MaxSlots {
			v.MaxSlots = len(d.Slots)
		}
	}
	return v
}

type BookingView struct {
	Step          int                    `json:"step"`
	Specialties   []OptionView           `json:"specialties"`
	SpecialtyID   int                    `json:"specialty_id"`
	Doctors       []OptionView           `json:"doctors"`
	DoctorID      int                    `json:"doctor_id"`
	Schedule      SlotTableView          `json:"schedule"`
	Form          dto.BookingFormPayload `json:"form"`
	BirthDateMin  string                 `json:"birth_date_min"`
	BirthDateMax  string                 `json:"birth_date_max"`
	Authenticated bool                   `json:"authenticated"`
}

// bookingWizard is the two-step booking flow: doctor and slot first, then
// the patient form.
type bookingWizard struct {
	page *base

	specialties []entity.Specialty
	specialtyID int
	doctors     []entity.Doctor
	doctorID    int
	slots       *slotPicker
	step        int

	patientID *int
	form      dto.BookingFormPayload
}

func newBookingWizard(page *base) *bookingWizard {
	return &bookingWizard{page: page, slots: newSlotPicker(), step: 1}
}

// register binds the wizard actions under prefix.
func (w *bookingWizard) register(prefix string, onBooked func(ctx context.Context)) {
	w.page.on(prefix+"select_specialty", w.selectSpecialty)
	w.page.on(prefix+"select_doctor", w.selectDoctor)
	w.page.on(prefix+"next_page", func(context.Context, json.RawMessage) error { w.slots.next(); return nil })
	w.page.on(prefix+"prev_page", func(context.Context, json.RawMessage) error { w.slots.prev(); return nil })
	w.page.on(prefix+"select_slot", w.selectSlot)
	w.page.on(prefix+"back", func(context.Context, json.RawMessage) error { w.back(); return nil })
	w.page.on(prefix+"submit", func(ctx context.Context, payload json.RawMessage) error {
		booked, err := w.submit(ctx, payload)
		if err == nil && booked && onBooked != nil {
			onBooked(ctx)
		}
		return err
	})
}

func (w *bookingWizard) loadSpecialties(ctx context.Context) {
	w.specialties, _ = w.page.deps.Doctors.GetSpecialties(ctx)
}

// reset clears the wizard. The signed-in patient's own data is kept.
func (w *bookingWizard) reset() {
	w.specialtyID, w.doctorID, w.doctors = 0, 0, nil
	w.slots.reset()
	w.step = 1
	if w.patientID == nil {
		w.form = dto.BookingFormPayload{}
	}
}

// prefill books on behalf of the signed-in patient.
func (w *bookingWizard) prefill(p *entity.Patient) {
	id := p.ID
	w.patientID = &id
	w.form = dto.BookingFormPayload{
		SecondName: p.SecondName,
		FirstName:  p.FirstName,
		Surname:    p.Surname,
		BirthDate:  p.BirthDate,
		Gender:     p.Gender,
		Phone:      p.Phone,
	}
}

func (w *bookingWizard) selectSpecialty(ctx context.Context, payload json.RawMessage) error {
	var p dto.IDPayload
	if err := w.page.decode(payload, &p); err != nil {
		return err
	}
	w.specialtyID = p.ID
	w.doctorID = 0
	w.slots.reset()
	w.doctors, _ = w.page.deps.Doctors.GetDoctorsBySpecialty(ctx, p.ID)
	return nil
}

func (w *bookingWizard) selectDoctor(ctx context.Context, payload json.RawMessage) error {
	var p dto.IDPayload
	if err := w.page.decode(payload, &p); err != nil {
		return err
	}
	w.doctorID = p.ID
	days, _ := w.page.deps.Appointment.GetFreeSlots(ctx, p.ID)
	w.slots.load(days)
	return nil
}

func (w *bookingWizard) selectSlot(_ context.Context, payload json.RawMessage) error {
	var p dto.SlotPayload
	if err := w.page.decode(payload, &p); err != nil {
		return err
	}
	if err := w.slots.choose(p.Label, p.Time); err != nil {
		return err
	}
	w.step = 2
	return nil
}

func (w *bookingWizard) back() {
	w.step = 1
	w.slots.selected = nil
}

func (w *bookingWizard) submit(ctx context.Context, payload json.RawMessage) (bool, error) {
	var p dto.BookingFormPayload
	if err := w.page.decode(payload, &p); err != nil {
		return false, err
	}
	w.form = p

	b := entity.Booking{
		DoctorID:  w.doctorID,
		PatientID: w.patientID,
		Person: entity.Person{
			FirstName:  p.FirstName,
			SecondName: p.SecondName,
			Surname:    p.Surname,
			Gender:     p.Gender,
			BirthDate:  p.BirthDate,
			Phone:      p.Phone,
		},
	}
	if w.slots.selected != nil {
		b.Date, b.Time = w.slots.selected.Date, w.slots.selected.Time
	}

	err := w.page.deps.Appointment.Book(ctx, b)
	switch {
	case err == nil:
		w.page.alert = msgBookingCreated
		return true, nil
	case errors.Is(err, usecase.ErrSlotNotSelected):
		w.page.alert = usecase.MsgSelectDoctorAndTime
	default:
		w.page.fail(err, msgBookingFailed)
	}
	return false, nil
}

func (w *bookingWizard) view() BookingView {
	earliest, latest := usecase.BirthDateBounds(w.page.deps.Now())
	doctors := make([]OptionView, len(w.doctors))
	for i, d := range w.doctors {
		doctors[i] = OptionView{ID: d.UserID, Name: d.FullName()}
	}
	return BookingView{
		Step:          w.step,
		Specialties:   specialtyOptions(w.specialties),
		SpecialtyID:   w.specialtyID,
		Doctors:       doctors,
		DoctorID:      w.doctorID,
		Schedule:      w.slots.view(),
		Form:          w.form,
		BirthDateMin:  earliest,
		BirthDateMax:  latest,
		Authenticated: w.patientID != nil,
	}
}
