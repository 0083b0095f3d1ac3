package viewmodel

import (
	"context"
	"encoding/json"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/pkg/pagination"

	"github.com/shopspring/decimal"
)

const (
	msgAppointmentConfirmed     = "Запись подтверждена!"
	msgAppointmentConfirmFailed = "Не удалось обновить статус записи"
	msgVisitConfirmed           = "Приём подтверждён"
	msgVisitConfirmFailed       = "Не удалось подтвердить приём"
)

const (
	TabToday    = "today"
	TabSchedule = "schedule"
)

type UpcomingView struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Doctor    string `json:"doctor"`
	Specialty string `json:"specialty"`
}

type HistoryView struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Doctor    string `json:"doctor"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
}

type PatientAccountView struct {
	Header
	Feedback
	Upcoming []UpcomingView `json:"upcoming"`
	History  []HistoryView  `json:"history"`
	Tests    []DocumentView `json:"tests"`
	Transfer TransferView   `json:"transfer"`
}

type patientAccountPage struct {
	base
	upcoming []entity.UpcomingAppointment
	history  []entity.HistoryEntry
	tests    []entity.Document
	transfer *transferDialog
}

func newPatientAccountPage(deps *Deps) Page {
	p := &patientAccountPage{base: newBase(deps, KindPatientAccount, "patient-profile")}
	p.transfer = newTransferDialog(&p.base)
	p.transfer.register(p.doctorOf, p.reloadUpcoming)
	p.on("next_page", func(context.Context, json.RawMessage) error { p.transfer.slots.next(); return nil })
	p.on("prev_page", func(context.Context, json.RawMessage) error { p.transfer.slots.prev(); return nil })
	return p
}

func (p *patientAccountPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.reloadUpcoming(ctx)
	p.history, _ = p.deps.Visits.GetOwnHistory(ctx)
	p.tests, _ = p.deps.Visits.GetOwnDocuments(ctx)
	return nil
}

func (p *patientAccountPage) reloadUpcoming(ctx context.Context) {
	p.upcoming, _ = p.deps.Appointment.GetUpcoming(ctx)
}

func (p *patientAccountPage) doctorOf(appointmentID int) (int, bool) {
	for _, a := range p.upcoming {
		if a.ID == appointmentID {
			return a.DoctorID, true
		}
	}
	return 0, false
}

func (p *patientAccountPage) View() interface{} {
	v := PatientAccountView{
		Header:   p.header(),
		Feedback: p.feedback(),
		Upcoming: make([]UpcomingView, len(p.upcoming)),
		History:  make([]HistoryView, len(p.history)),
		Tests:    documentViews(p.tests),
		Transfer: p.transfer.view(),
	}
	for i, a := range p.upcoming {
		v.Upcoming[i] = UpcomingView{ID: a.ID, Date: a.Date, Time: a.Time, Doctor: a.Doctor, Specialty: a.Specialty}
	}
	for i, h := range p.history {
		v.History[i] = HistoryView{ID: h.ID, Date: h.Date, Doctor: h.Doctor, Diagnosis: h.Diagnosis, Treatment: h.Treatment}
	}
	return v
}

type TodayView struct {
	ID        int    `json:"id"`
	Time      string `json:"time"`
	PatientID int    `json:"patient_id"`
	Patient   string `json:"patient"`
}

type TableCellView struct {
	ID        int    `json:"id"`
	PatientID int    `json:"patient_id"`
	Patient   string `json:"patient"`
}

// TableView rows are times, columns the dates of the current page. A nil
// cell is a free slot.
type TableView struct {
	Dates      []string           `json:"dates"`
	Times      []string           `json:"times"`
	Rows       [][]*TableCellView `json:"rows"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

type DoctorAccountView struct {
	Header
	Feedback
	Tab   string      `json:"tab"`
	Today []TodayView `json:"today"`
	Table *TableView  `json:"table,omitempty"`
}

type doctorAccountPage struct {
	base
	tab   string
	today []entity.TodayAppointment
	table *entity.DoctorScheduleTable
	pager *pagination.Pager
}

func newDoctorAccountPage(deps *Deps) Page {
	p := &doctorAccountPage{
		base:  newBase(deps, KindDoctorAccount, "doctor-profile"),
		tab:   TabToday,
		pager: pagination.NewPager(pagination.DaysPerPage),
	}
	p.on("set_tab", p.setTab)
	p.on("next_page", func(context.Context, json.RawMessage) error { p.pager.Next(); return nil })
	p.on("prev_page", func(context.Context, json.RawMessage) error { p.pager.Prev(); return nil })
	return p
}

func (p *doctorAccountPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.today, _ = p.deps.Appointment.GetToday(ctx)
	return nil
}

// setTab loads the schedule table the first time it is shown.
func (p *doctorAccountPage) setTab(ctx context.Context, payload json.RawMessage) error {
	var in dto.TabPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	switch in.Tab {
	case TabToday:
		p.today, _ = p.deps.Appointment.GetToday(ctx)
	case TabSchedule:
		if p.table == nil {
			p.table, _ = p.deps.Appointment.GetDoctorTable(ctx)
			if p.table != nil {
				p.pager.SetTotal(len(p.table.Dates))
			}
		}
	default:
		return &PayloadError{Fields: map[string]string{"tab": "unknown tab"}, Err: ErrUnknownElement}
	}
	p.tab = in.Tab
	return nil
}

func (p *doctorAccountPage) View() interface{} {
	v := DoctorAccountView{
		Header:   p.header(),
		Feedback: p.feedback(),
		Tab:      p.tab,
		Today:    make([]TodayView, len(p.today)),
	}
	for i, a := range p.today {
		v.Today[i] = TodayView{ID: a.ID, Time: a.Time, PatientID: a.PatientID, Patient: a.Patient}
	}

	if p.table != nil {
		dates := pagination.Page(p.pager, p.table.Dates)
		t := &TableView{
			Dates:      dates,
			Times:      p.table.Times,
			Rows:       make([][]*TableCellView, len(p.table.Times)),
			Page:       p.pager.Current(),
			TotalPages: p.pager.TotalPages(),
		}
		for i, tm := range p.table.Times {
			row := make([]*TableCellView, len(dates))
			for j, date := range dates {
				if c := p.table.Cells[date][tm]; c != nil {
					row[j] = &TableCellView{ID: c.ID, PatientID: c.PatientID, Patient: c.Patient}
				}
			}
			t.Rows[i] = row
		}
		v.Table = t
	}
	return v
}

type GridEntryView struct {
	ID        int    `json:"id"`
	DoctorID  int    `json:"doctor_id"`
	Doctor    string `json:"doctor"`
	Specialty string `json:"specialty"`
	PatientID int    `json:"patient_id"`
	Patient   string `json:"patient"`
	Phone     string `json:"patient_phone"`
}

type GridDayView struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type GridView struct {
	Days  []GridDayView       `json:"days"`
	Times []string            `json:"times"`
	Rows  [][][]GridEntryView `json:"rows"`
	Start int                 `json:"start"`
	Total int                 `json:"total"`
}

type UnconfirmedView struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Doctor    string `json:"doctor"`
	Patient   string `json:"patient"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type CompletedVisitView struct {
	VisitID   int             `json:"visit_id"`
	Doctor    string          `json:"doctor"`
	Patient   string          `json:"patient"`
	CreatedAt string          `json:"created_at"`
	Price     decimal.Decimal `json:"price"`
	Items     []string        `json:"items"`
}

type AdministratorAccountView struct {
	Header
	Feedback
	Grid        GridView             `json:"grid"`
	Unconfirmed []UnconfirmedView    `json:"unconfirmed"`
	Completed   []CompletedVisitView `json:"completed"`
	Transfer    TransferView         `json:"transfer"`
	Booking     BookingView          `json:"booking"`
}

// administratorAccountPage is the front desk: the week grid of every
// doctor, the confirmation queues and booking on a caller's behalf.
type administratorAccountPage struct {
	base
	grid        *entity.ScheduleGrid
	week        pagination.Window
	unconfirmed []entity.UnconfirmedAppointment
	completed   []entity.CompletedVisit
	transfer    *transferDialog
	wizard      *bookingWizard
}

func newAdministratorAccountPage(deps *Deps) Page {
	p := &administratorAccountPage{
		base: newBase(deps, KindAdministratorAccount, "admin-profile"),
		week: pagination.Window{Step: pagination.DaysPerPage},
	}
	p.transfer = newTransferDialog(&p.base)
	p.transfer.register(p.doctorOf, p.reloadGrid)
	p.on("transfer_next_page", func(context.Context, json.RawMessage) error { p.transfer.slots.next(); return nil })
	p.on("transfer_prev_page", func(context.Context, json.RawMessage) error { p.transfer.slots.prev(); return nil })

	p.wizard = newBookingWizard(&p.base)
	p.wizard.register("book_", func(ctx context.Context) {
		p.wizard.reset()
		p.reloadGrid(ctx)
	})

	p.on("next_week", func(context.Context, json.RawMessage) error { p.week.Next(len(p.gridDays())); return nil })
	p.on("prev_week", func(context.Context, json.RawMessage) error { p.week.Prev(); return nil })
	p.on("confirm_appointment", p.confirmAppointment)
	p.on("confirm_visit", p.confirmVisit)
	return p
}

func (p *administratorAccountPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.reloadGrid(ctx)
	p.completed, _ = p.deps.Visits.GetCompletedVisits(ctx)
	p.wizard.loadSpecialties(ctx)
	return nil
}

// reloadGrid refreshes everything a booking change can touch.
func (p *administratorAccountPage) reloadGrid(ctx context.Context) {
	p.grid, _ = p.deps.Appointment.GetScheduleGrid(ctx)
	p.unconfirmed, _ = p.deps.Appointment.GetUnconfirmed(ctx)
}

func (p *administratorAccountPage) gridDays() []entity.GridDay {
	if p.grid == nil {
		return nil
	}
	return p.grid.Days
}

func (p *administratorAccountPage) doctorOf(appointmentID int) (int, bool) {
	if p.grid == nil {
		return 0, false
	}
	for _, byTime := range p.grid.Appointments {
		for _, appts := range byTime {
			for _, a := range appts {
				if a.ID == appointmentID {
					return a.Doctor.ID, true
				}
			}
		}
	}
	return 0, false
}

func (p *administratorAccountPage) confirmAppointment(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	var target *entity.UnconfirmedAppointment
	for i := range p.unconfirmed {
		if p.unconfirmed[i].ID == in.ID {
			target = &p.unconfirmed[i]
		}
	}
	if target == nil {
		return ErrUnknownElement
	}
	if err := p.deps.Appointment.Confirm(ctx, *target); err != nil {
		p.alert = msgAppointmentConfirmFailed
		return nil
	}
	p.alert = msgAppointmentConfirmed
	p.reloadGrid(ctx)
	return nil
}

func (p *administratorAccountPage) confirmVisit(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	var target *entity.CompletedVisit
	for i := range p.completed {
		if p.completed[i].VisitID == in.ID {
			target = &p.completed[i]
		}
	}
	if target == nil {
		return ErrUnknownElement
	}
	if err := p.deps.Visits.ConfirmVisit(ctx, *target); err != nil {
		p.alert = msgVisitConfirmFailed
		return nil
	}
	p.alert = msgVisitConfirmed
	p.completed, _ = p.deps.Visits.GetCompletedVisits(ctx)
	return nil
}

func (p *administratorAccountPage) gridView() GridView {
	days := pagination.Slice(p.week, p.gridDays())
	v := GridView{
		Days:  make([]GridDayView, len(days)),
		Start: p.week.Start,
		Total: len(p.gridDays()),
		Rows:  [][][]GridEntryView{},
		Times: []string{},
	}
	for i, d := range days {
		v.Days[i] = GridDayView{Date: d.Date, Weekday: d.Weekday}
	}
	if p.grid == nil {
		return v
	}
	v.Times = p.grid.TimeSlots
	for _, tm := range p.grid.TimeSlots {
		row := make([][]GridEntryView, len(days))
		for j, d := range days {
			entries := []GridEntryView{}
			for _, a := range p.grid.Appointments[d.Date][tm] {
				entries = append(entries, GridEntryView{
					ID:        a.ID,
					DoctorID:  a.Doctor.ID,
					Doctor:    a.Doctor.FullName(),
					Specialty: a.Doctor.Specialty,
					PatientID: a.Patient.ID,
					Patient:   a.Patient.FullName(),
					Phone:     personView(a.Patient.Person).PhoneText,
				})
			}
			row[j] = entries
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

func (p *administratorAccountPage) View() interface{} {
	v := AdministratorAccountView{
		Header:      p.header(),
		Feedback:    p.feedback(),
		Grid:        p.gridView(),
		Unconfirmed: make([]UnconfirmedView, len(p.unconfirmed)),
		Completed:   make([]CompletedVisitView, len(p.completed)),
		Transfer:    p.transfer.view(),
		Booking:     p.wizard.view(),
	}
	for i, a := range p.unconfirmed {
		v.Unconfirmed[i] = UnconfirmedView{
			ID: a.ID, Date: a.Date, Time: a.Time, Doctor: a.Doctor,
			Patient: a.FullName(), Phone: personView(a.Person).PhoneText,
			Status: a.Status, CreatedAt: a.CreatedAt,
		}
	}
	for i, c := range p.completed {
		items := make([]string, len(c.Items))
		for j, it := range c.Items {
			items[j] = it.Item
		}
		v.Completed[i] = CompletedVisitView{
			VisitID: c.VisitID, Doctor: c.Doctor, Patient: c.Patient,
			CreatedAt: c.CreatedAt, Price: c.Price, Items: items,
		}
	}
	return v
}
