package dto

import "time"

// DaySlotsDTO is one day of /api/appointment-doctor-schedule/{doctorId}.
// Slots may be null for fully booked days.
type DaySlotsDTO struct {
	Label string   `json:"label" validate:"required"`
	Slots []string `json:"slots" validate:"omitempty,dive,hhmm"`
}

// BookingRequest is the body of POST /api/appointments. Date is the slot
// label, BirthDate is YYYY-MM-DD and Phone is digits only.
type BookingRequest struct {
	DoctorID   int    `json:"doctor_id"`
	UserID     *int   `json:"user_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	SecondName string `json:"secondName"`
	FirstName  string `json:"firstName"`
	Surname    string `json:"surname"`
	BirthDate  string `json:"birthDate"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
}

type TransferRequest struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
}

type UpcomingAppointmentDTO struct {
	ID        int    `json:"id" validate:"required"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	DoctorID  int    `json:"doctorId"`
	Doctor    string `json:"doctor"`
	Specialty string `json:"specialty"`
}

type TodayAppointmentDTO struct {
	ID        int    `json:"id" validate:"required"`
	Date      string `json:"date"`
	Time      string `json:"time" validate:"omitempty,hhmm"`
	PatientID int    `json:"patient_id"`
	Patient   string `json:"patient"`
}

// AppointmentDTO is GET /api/appointments/{id}. BirthDate is DD.MM.YYYY.
type AppointmentDTO struct {
	ID         int     `json:"id" validate:"required"`
	DoctorID   int     `json:"doctor_id"`
	PatientID  *int    `json:"user_id"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	SecondName string  `json:"secondName"`
	FirstName  string  `json:"firstName"`
	Surname    *string `json:"surname"`
	BirthDate  string  `json:"birthDate"`
	Gender     string  `json:"gender"`
	Phone      string  `json:"phone"`
	Status     string  `json:"status"`
}

type UnconfirmedAppointmentDTO struct {
	ID                int    `json:"id" validate:"required"`
	Doctor            string `json:"doctor"`
	PatientID         int    `json:"patient_id"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	PatientFirstName  string `json:"patient_first_name"`
	PatientSecondName string `json:"patient_second_name"`
	PatientSurname    string `json:"patient_surname"`
	PatientBirthDate  string `json:"patient_birth_date"`
	Gender            string `json:"gender"`
	PhoneNumber       string `json:"phone_number"`
	Status            string `json:"status"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// ConfirmAppointmentRequest is the body of PUT /api/unconfirmed-appointments/{id}.
type ConfirmAppointmentRequest struct {
	ID        int       `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DoctorTableCellDTO struct {
	ID        int    `json:"id"`
	PatientID int    `json:"patient_id"`
	Patient   string `json:"patient"`
}

// DoctorScheduleTableDTO is /api/schedule-with-appointments.
type DoctorScheduleTableDTO struct {
	Dates []string                                  `json:"dates"`
	Times []string                                  `json:"times" validate:"dive,hhmm"`
	Table map[string]map[string]*DoctorTableCellDTO `json:"table"`
}

type GridDayDTO struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type GridPersonDTO struct {
	ID         int    `json:"id"`
	SecondName string `json:"second_name"`
	FirstName  string `json:"first_name"`
	Surname    string `json:"surname"`
	BirthDate  string `json:"birthDate"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Specialty  string `json:"specialty"`
}

type GridAppointmentDTO struct {
	ID      int           `json:"id"`
	Doctor  GridPersonDTO `json:"doctor"`
	Patient GridPersonDTO `json:"patient"`
}

// AdminScheduleDTO is /api/schedule-admin.
type AdminScheduleDTO struct {
	Schedule struct {
		Days      []GridDayDTO `json:"days"`
		TimeSlots []string     `json:"timeSlots"`
	} `json:"schedule"`
	Appointments map[string]map[string][]GridAppointmentDTO `json:"appointments"`
}
