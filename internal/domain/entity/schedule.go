package entity

import "time"

// WeekdaySchedule is one recurring day of a clinic or doctor schedule.
type WeekdaySchedule struct {
	ID        int
	Weekday   time.Weekday
	StartTime string
	EndTime   string
	Working   bool
}

// WeeklySchedule always carries seven days once normalized.
type WeeklySchedule struct {
	Days        []WeekdaySchedule
	SlotMinutes int
}

// Day returns the record for weekday w.
func (s WeeklySchedule) Day(w time.Weekday) (WeekdaySchedule, bool) {
	for _, d := range s.Days {
		if d.Weekday == w {
			return d, true
		}
	}
	return WeekdaySchedule{}, false
}

// TimeBounds is an opening interval in HH:MM.
type TimeBounds struct {
	Start string
	End   string
}

// DisplayWeek is the Monday-first order the schedule editor shows.
var DisplayWeek = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayNames are the Russian day names indexed by time.Weekday.
var WeekdayNames = [7]string{
	"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота",
}
