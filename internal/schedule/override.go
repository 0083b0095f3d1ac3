package schedule

import (
	"errors"
	"time"

	"clinic-portal/internal/domain/entity"
)

var (
	ErrOverrideDate     = errors.New("override date must be within three months from today")
	ErrOverrideInterval = errors.New("override end time must be after start time")
	ErrOutsideClinic    = errors.New("override does not fit the clinic hours")
	ErrClinicClosed     = errors.New("clinic does not work on the override date")
)

// CheckClinicOverride validates a clinic-wide override before it is saved.
func CheckClinicOverride(o entity.Override, now time.Time) error {
	date, err := ParseDate(o.Date, now.Location())
	if err != nil || !IsValidDateOverride(date, now) {
		return ErrOverrideDate
	}
	if o.Type == entity.OverrideWork && !ValidateTimeInterval(o.StartTime, o.EndTime, 0) {
		return ErrOverrideInterval
	}
	return nil
}

// CheckDoctorOverride validates a doctor override against the date window
// and, for working days, against the clinic hours of that weekday.
func CheckDoctorOverride(o entity.Override, clinic entity.WeeklySchedule, now time.Time) error {
	if err := CheckClinicOverride(o, now); err != nil {
		return err
	}
	if o.Type != entity.OverrideWork {
		return nil
	}

	date, _ := ParseDate(o.Date, now.Location())
	bounds := ClinicTimeBoundsForDay(clinic, date.Weekday())
	if bounds == nil {
		return ErrClinicClosed
	}
	if !IsWithinClinicTime(o.StartTime, o.EndTime, bounds, clinic.SlotMinutes) {
		return ErrOutsideClinic
	}
	return nil
}
