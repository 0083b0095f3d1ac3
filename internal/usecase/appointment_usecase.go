package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/schedule"
	"clinic-portal/internal/service"

	"github.com/sirupsen/logrus"
)

const (
	MsgSelectDoctorAndTime = "Выберите врача и время"
	MsgBirthDateRange      = "Возраст пациента должен быть от 18 до 110 лет"

	MinPatientAge = 18
	MaxPatientAge = 110
)

var (
	ErrSlotNotSelected  = errors.New("doctor and time slot must be selected")
	ErrNoTransferTarget = errors.New("transfer slot is not selected")
)

// BirthDateBounds returns the earliest and latest birth dates, YYYY-MM-DD,
// accepted on the booking form at now.
func BirthDateBounds(now time.Time) (earliest, latest string) {
	return now.AddDate(-MaxPatientAge, 0, 0).Format(schedule.DateLayout),
		now.AddDate(-MinPatientAge, 0, 0).Format(schedule.DateLayout)
}

type AppointmentUsecase interface {
	GetFreeSlots(ctx context.Context, doctorID int) ([]entity.DaySlots, error)
	Book(ctx context.Context, b entity.Booking) error
	Transfer(ctx context.Context, t entity.Transfer) error
	Cancel(ctx context.Context, id int) error
	GetAppointment(ctx context.Context, id int) (*entity.AppointmentDetails, error)

	GetUpcoming(ctx context.Context) ([]entity.UpcomingAppointment, error)
	GetToday(ctx context.Context) ([]entity.TodayAppointment, error)
	GetDoctorTable(ctx context.Context) (*entity.DoctorScheduleTable, error)
	GetScheduleGrid(ctx context.Context) (*entity.ScheduleGrid, error)
	GetUnconfirmed(ctx context.Context) ([]entity.UnconfirmedAppointment, error)
	Confirm(ctx context.Context, a entity.UnconfirmedAppointment) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	audit           service.AuditService
	now             func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	audit service.AuditService,
	now func() time.Time,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		audit:           audit,
		now:             now,
	}
}

func (u *appointmentUsecase) GetFreeSlots(ctx context.Context, doctorID int) ([]entity.DaySlots, error) {
	days, err := u.appointmentRepo.FindFreeSlots(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find free slots of doctor %d: %+v", doctorID, err)
		return []entity.DaySlots{}, err
	}
	return days, nil
}

// Book validates the booking form and creates the appointment. Field
// errors use the booking form's payload names.
func (u *appointmentUsecase) Book(ctx context.Context, b entity.Booking) error {
	if b.DoctorID == 0 || b.Date == "" || b.Time == "" {
		return ErrSlotNotSelected
	}

	check := formCheck{}
	check.phone("phone", b.Phone)
	check.notBlank("firstName", b.FirstName, MsgFirstNameRequired)
	check.notBlank("secondName", b.SecondName, MsgSecondNameRequired)
	if b.BirthDate != "" {
		earliest, latest := BirthDateBounds(u.now())
		if b.BirthDate < earliest || b.BirthDate > latest {
			check.set("birthDate", MsgBirthDateRange)
		}
	}
	if err := check.err(); err != nil {
		return err
	}

	if err := u.appointmentRepo.Create(ctx, b); err != nil {
		u.log.Warnf("Failed to create appointment with doctor %d: %+v", b.DoctorID, err)
		return err
	}

	_ = u.audit.LogCreate(ctx, entity.AuditActionAppointmentBook, "appointment", b.Date+" "+b.Time, b)
	return nil
}

func (u *appointmentUsecase) Transfer(ctx context.Context, t entity.Transfer) error {
	if t.Date == "" || t.Time == "" {
		return ErrNoTransferTarget
	}

	if err := u.appointmentRepo.Transfer(ctx, t); err != nil {
		u.log.Warnf("Failed to transfer appointment %d: %+v", t.AppointmentID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionAppointmentMove, "appointment", strconv.Itoa(t.AppointmentID), nil, t)
	return nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id int) error {
	if err := u.appointmentRepo.Cancel(ctx, id); err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", id, err)
		return err
	}

	_ = u.audit.LogDelete(ctx, entity.AuditActionAppointmentCancel, "appointment", strconv.Itoa(id), nil)
	return nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id int) (*entity.AppointmentDetails, error) {
	appt, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	return appt, nil
}

func (u *appointmentUsecase) GetUpcoming(ctx context.Context) ([]entity.UpcomingAppointment, error) {
	upcoming, err := u.appointmentRepo.FindUpcoming(ctx)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments: %+v", err)
		return []entity.UpcomingAppointment{}, err
	}
	return upcoming, nil
}

// GetToday returns today's appointments ordered by time.
func (u *appointmentUsecase) GetToday(ctx context.Context) ([]entity.TodayAppointment, error) {
	today, err := u.appointmentRepo.FindToday(ctx)
	if err != nil {
		u.log.Warnf("Failed to find today's appointments: %+v", err)
		return []entity.TodayAppointment{}, err
	}
	sort.SliceStable(today, func(i, j int) bool {
		return clockOrder(today[i].Time) < clockOrder(today[j].Time)
	})
	return today, nil
}

// clockOrder sorts unparsable times last.
func clockOrder(s string) int {
	if m, ok := schedule.ParseClock(s); ok {
		return m
	}
	return 24 * 60
}

func (u *appointmentUsecase) GetDoctorTable(ctx context.Context) (*entity.DoctorScheduleTable, error) {
	table, err := u.appointmentRepo.FindDoctorTable(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctor schedule table: %+v", err)
		return &entity.DoctorScheduleTable{}, err
	}
	return table, nil
}

func (u *appointmentUsecase) GetScheduleGrid(ctx context.Context) (*entity.ScheduleGrid, error) {
	grid, err := u.appointmentRepo.FindScheduleGrid(ctx)
	if err != nil {
		u.log.Warnf("Failed to find schedule grid: %+v", err)
		return &entity.ScheduleGrid{}, err
	}
	return grid, nil
}

func (u *appointmentUsecase) GetUnconfirmed(ctx context.Context) ([]entity.UnconfirmedAppointment, error) {
	pending, err := u.appointmentRepo.FindUnconfirmed(ctx)
	if err != nil {
		u.log.Warnf("Failed to find unconfirmed appointments: %+v", err)
		return []entity.UnconfirmedAppointment{}, err
	}
	return pending, nil
}

func (u *appointmentUsecase) Confirm(ctx context.Context, a entity.UnconfirmedAppointment) error {
	if err := u.appointmentRepo.Confirm(ctx, a); err != nil {
		u.log.Warnf("Failed to confirm appointment %d: %+v", a.ID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionAppointmentConfirm, "appointment", strconv.Itoa(a.ID), a.Status, "confirmed")
	return nil
}
