package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/schedule"
	"clinic-portal/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSlot        = errors.New("slot duration must be between 5 and 180 minutes")
	ErrInvalidClinicDays  = errors.New("clinic schedule has invalid days")
	ErrInvalidDoctorDays  = errors.New("doctor schedule has invalid days")
	ErrDoctorNotSelected  = errors.New("doctor is not selected")
	ErrScheduleSaveFailed = errors.New("schedule could not be saved")
	ErrOverrideSaveFailed = errors.New("override could not be saved")
)

// InvalidDaysError lists the weekdays that failed validation.
type InvalidDaysError struct {
	Kind error
	Days []time.Weekday
}

func (e *InvalidDaysError) Error() string { return e.Kind.Error() }

func (e *InvalidDaysError) Unwrap() error { return e.Kind }

type ScheduleUsecase interface {
	GetClinicSchedule(ctx context.Context) (*entity.WeeklySchedule, error)
	GetDoctorSchedule(ctx context.Context, doctorID int) (*entity.WeeklySchedule, error)
	SaveClinicSchedule(ctx context.Context, week entity.WeeklySchedule) error
	SaveDoctorSchedule(ctx context.Context, doctorID int, week, clinic entity.WeeklySchedule) error

	GetClinicOverride(ctx context.Context, date string) (entity.Override, error)
	GetDoctorOverride(ctx context.Context, doctorID int, date string) (entity.Override, error)
	SaveClinicOverride(ctx context.Context, o entity.Override) error
	SaveDoctorOverride(ctx context.Context, o entity.Override, clinic entity.WeeklySchedule) error
}

type scheduleUsecase struct {
	log          *logrus.Logger
	scheduleRepo repository.ScheduleRepository
	audit        service.AuditService
	now          func() time.Time
}

// NewScheduleUsecase validates against now(), which must return the time
// in the clinic's zone.
func NewScheduleUsecase(
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	audit service.AuditService,
	now func() time.Time,
) ScheduleUsecase {
	return &scheduleUsecase{
		log:          log,
		scheduleRepo: scheduleRepo,
		audit:        audit,
		now:          now,
	}
}

func (u *scheduleUsecase) GetClinicSchedule(ctx context.Context) (*entity.WeeklySchedule, error) {
	week, err := u.scheduleRepo.FindClinicSchedule(ctx)
	if err != nil {
		u.log.Warnf("Failed to find clinic schedule: %+v", err)
		return nil, err
	}
	week.Days = schedule.NormalizeWeek(week.Days)
	return week, nil
}

func (u *scheduleUsecase) GetDoctorSchedule(ctx context.Context, doctorID int) (*entity.WeeklySchedule, error) {
	week, err := u.scheduleRepo.FindDoctorSchedule(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedule of doctor %d: %+v", doctorID, err)
		return nil, err
	}
	week.Days = schedule.NormalizeWeek(week.Days)
	return week, nil
}

func (u *scheduleUsecase) SaveClinicSchedule(ctx context.Context, week entity.WeeklySchedule) error {
	if !schedule.IsValidSlot(week.SlotMinutes) {
		return ErrInvalidSlot
	}
	week.Days = schedule.NormalizeWeek(week.Days)
	if invalid := schedule.InvalidClinicDays(week); len(invalid) > 0 {
		return &InvalidDaysError{Kind: ErrInvalidClinicDays, Days: invalid}
	}

	if err := u.scheduleRepo.SaveClinicSchedule(ctx, week); err != nil {
		u.log.Warnf("Failed to save clinic schedule: %+v", err)
		return errors.Join(ErrScheduleSaveFailed, err)
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionScheduleUpdate, "clinic_schedule", "clinic", nil, week)
	return nil
}

func (u *scheduleUsecase) SaveDoctorSchedule(ctx context.Context, doctorID int, week, clinic entity.WeeklySchedule) error {
	if doctorID == 0 {
		return ErrDoctorNotSelected
	}
	if !schedule.IsValidSlot(week.SlotMinutes) {
		return ErrInvalidSlot
	}
	week.Days = schedule.NormalizeWeek(week.Days)
	if invalid := schedule.InvalidDoctorDays(week, clinic); len(invalid) > 0 {
		return &InvalidDaysError{Kind: ErrInvalidDoctorDays, Days: invalid}
	}

	if err := u.scheduleRepo.SaveDoctorSchedule(ctx, doctorID, week); err != nil {
		u.log.Warnf("Failed to save schedule of doctor %d: %+v", doctorID, err)
		return errors.Join(ErrScheduleSaveFailed, err)
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionScheduleUpdate, "doctor_schedule", strconv.Itoa(doctorID), nil, week)
	return nil
}

// GetClinicOverride returns the empty day-off form when nothing is stored.
func (u *scheduleUsecase) GetClinicOverride(ctx context.Context, date string) (entity.Override, error) {
	o, err := u.scheduleRepo.FindClinicOverride(ctx, date)
	if err != nil {
		u.log.Warnf("Failed to find clinic override for %s: %+v", date, err)
		return entity.EmptyOverride(nil, date), err
	}
	if o == nil {
		return entity.EmptyOverride(nil, date), nil
	}
	return *o, nil
}

func (u *scheduleUsecase) GetDoctorOverride(ctx context.Context, doctorID int, date string) (entity.Override, error) {
	o, err := u.scheduleRepo.FindDoctorOverride(ctx, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find override of doctor %d for %s: %+v", doctorID, date, err)
		return entity.EmptyOverride(&doctorID, date), err
	}
	if o == nil {
		return entity.EmptyOverride(&doctorID, date), nil
	}
	return *o, nil
}

func (u *scheduleUsecase) SaveClinicOverride(ctx context.Context, o entity.Override) error {
	if err := schedule.CheckClinicOverride(o, u.now()); err != nil {
		return err
	}

	o.DoctorID = nil
	if err := u.scheduleRepo.SaveClinicOverride(ctx, o); err != nil {
		u.log.Warnf("Failed to save clinic override: %+v", err)
		return errors.Join(ErrOverrideSaveFailed, err)
	}

	_ = u.audit.LogCreate(ctx, entity.AuditActionOverrideUpdate, "clinic_override", o.Date, o)
	return nil
}

func (u *scheduleUsecase) SaveDoctorOverride(ctx context.Context, o entity.Override, clinic entity.WeeklySchedule) error {
	if o.DoctorID == nil || *o.DoctorID == 0 {
		return ErrDoctorNotSelected
	}
	if err := schedule.CheckDoctorOverride(o, clinic, u.now()); err != nil {
		return err
	}

	if err := u.scheduleRepo.SaveDoctorOverride(ctx, o); err != nil {
		u.log.Warnf("Failed to save doctor override: %+v", err)
		return errors.Join(ErrOverrideSaveFailed, err)
	}

	_ = u.audit.LogCreate(ctx, entity.AuditActionOverrideUpdate, "doctor_override", strconv.Itoa(*o.DoctorID)+"/"+o.Date, o)
	return nil
}
