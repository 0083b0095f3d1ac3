package entity

import "strings"

// DaySlots is one bookable day: a display label "DD.MM.YYYY" optionally
// followed by a newline and the weekday, and its free HH:MM slots.
type DaySlots struct {
	Label string
	Slots []string
}

// Date returns the DD.MM.YYYY part of the label.
func (d DaySlots) Date() string {
	date, _, _ := strings.Cut(d.Label, "\n")
	return date
}

// Booking is a new appointment request. PatientID is set when a signed-in
// patient books for themselves.
type Booking struct {
	DoctorID  int
	PatientID *int
	Date      string
	Time      string
	Person
}

type Transfer struct {
	AppointmentID int
	Date          string
	Time          string
}

type UpcomingAppointment struct {
	ID        int
	Date      string
	Time      string
	DoctorID  int
	Doctor    string
	Specialty string
}

type TodayAppointment struct {
	ID        int
	Date      string
	Time      string
	PatientID int
	Patient   string
}

// AppointmentDetails is a single appointment as seen by the treating doctor.
type AppointmentDetails struct {
	ID        int
	DoctorID  int
	PatientID int
	Date      string
	Time      string
	Status    string
	Person
}

type UnconfirmedAppointment struct {
	ID        int
	Doctor    string
	PatientID int
	Date      string
	Time      string
	Status    string
	CreatedAt string
	UpdatedAt string
	Person
}

// TableCell is a booked slot in the doctor's schedule table.
type TableCell struct {
	ID        int
	PatientID int
	Patient   string
}

// DoctorScheduleTable is the doctor's date x time grid. A missing cell is a free slot.
type DoctorScheduleTable struct {
	Dates []string
	Times []string
	Cells map[string]map[string]*TableCell
}

type GridDay struct {
	Date    string
	Weekday string
}

type GridPerson struct {
	ID        int
	Specialty string
	Person
}

type GridAppointment struct {
	ID      int
	Doctor  GridPerson
	Patient GridPerson
}

// ScheduleGrid is the admin overview: days x time slots, each holding the
// appointments of every doctor booked in that slot.
type ScheduleGrid struct {
	Days         []GridDay
	TimeSlots    []string
	Appointments map[string]map[string][]GridAppointment
}
