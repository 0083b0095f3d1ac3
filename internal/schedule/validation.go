// Package schedule holds the client-side rules for weekly schedules and
// per-date overrides. All checks are advisory, the API has the final say.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"clinic-portal/internal/domain/entity"
)

const (
	MinSlotMinutes = 5
	MaxSlotMinutes = 180

	// OverrideHorizonMonths is how far ahead an override may be planned.
	OverrideHorizonMonths = 3

	DateLayout = "2006-01-02"
)

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ValidateTimeInterval reports whether end is after start and the interval
// lasts at least minDuration minutes.
func ValidateTimeInterval(start, end string, minDuration int) bool {
	s, ok := ParseClock(start)
	if !ok {
		return false
	}
	e, ok := ParseClock(end)
	if !ok {
		return false
	}
	return e > s && e-s >= minDuration
}

// IsValidSlot reports whether a slot duration is within [5, 180] minutes.
func IsValidSlot(minutes int) bool {
	return minutes >= MinSlotMinutes && minutes <= MaxSlotMinutes
}

// IsValidDateOverride reports whether date falls between today and today
// plus three calendar months, both ends inclusive. Days are taken in now's
// location.
func IsValidDateOverride(date, now time.Time) bool {
	today := startOfDay(now)
	day := startOfDay(date.In(now.Location()))
	limit := today.AddDate(0, OverrideHorizonMonths, 0)
	return !day.Before(today) && !day.After(limit)
}

// ParseDate parses YYYY-MM-DD as a calendar day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ClinicTimeBoundsForDay returns the clinic opening hours for weekday, or
// nil when the clinic does not work that day.
func ClinicTimeBoundsForDay(clinic entity.WeeklySchedule, weekday time.Weekday) *entity.TimeBounds {
	day, ok := clinic.Day(weekday)
	if !ok || !day.Working {
		return nil
	}
	return &entity.TimeBounds{Start: day.StartTime, End: day.EndTime}
}

// IsWithinClinicTime reports whether [start, end] lies inside bounds and is
// long enough for one clinic slot. Nil bounds mean the clinic is closed.
func IsWithinClinicTime(start, end string, bounds *entity.TimeBounds, clinicSlot int) bool {
	if bounds == nil {
		return false
	}
	s, ok := ParseClock(start)
	if !ok {
		return false
	}
	e, ok := ParseClock(end)
	if !ok {
		return false
	}
	bs, ok := ParseClock(bounds.Start)
	if !ok {
		return false
	}
	be, ok := ParseClock(bounds.End)
	if !ok {
		return false
	}
	return s >= bs && e <= be && ValidateTimeInterval(start, end, clinicSlot)
}

// NormalizeWeek returns exactly seven days in Monday-first order. Weekdays
// missing from days become empty non-working records.
func NormalizeWeek(days []entity.WeekdaySchedule) []entity.WeekdaySchedule {
	byDay := make(map[time.Weekday]entity.WeekdaySchedule, len(days))
	for _, d := range days {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			continue
		}
		byDay[d.Weekday] = d
	}

	out := make([]entity.WeekdaySchedule, 0, len(entity.DisplayWeek))
	for _, w := range entity.DisplayWeek {
		d, ok := byDay[w]
		if !ok {
			d = entity.WeekdaySchedule{Weekday: w}
		}
		out = append(out, d)
	}
	return out
}

// DayOffWeek is the schedule shown when a doctor's schedule cannot be loaded.
func DayOffWeek() entity.WeeklySchedule {
	return entity.WeeklySchedule{Days: NormalizeWeek(nil)}
}

// InvalidClinicDays returns the working weekdays whose hours do not fit one slot.
func InvalidClinicDays(clinic entity.WeeklySchedule) []time.Weekday {
	var invalid []time.Weekday
	for _, d := range clinic.Days {
		if d.Working && !ValidateTimeInterval(d.StartTime, d.EndTime, clinic.SlotMinutes) {
			invalid = append(invalid, d.Weekday)
		}
	}
	return invalid
}

// InvalidDoctorDays returns the working weekdays of a doctor schedule that
// are too short for the doctor's slot or fall outside the clinic hours.
func InvalidDoctorDays(doctor, clinic entity.WeeklySchedule) []time.Weekday {
	var invalid []time.Weekday
	for _, d := range doctor.Days {
		if !d.Working {
			continue
		}
		if !ValidateTimeInterval(d.StartTime, d.EndTime, doctor.SlotMinutes) {
			invalid = append(invalid, d.Weekday)
			continue
		}
		bounds := ClinicTimeBoundsForDay(clinic, d.Weekday)
		if !IsWithinClinicTime(d.StartTime, d.EndTime, bounds, clinic.SlotMinutes) {
			invalid = append(invalid, d.Weekday)
		}
	}
	return invalid
}
