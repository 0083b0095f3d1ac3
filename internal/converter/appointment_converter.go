package converter

import (
	"time"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/pkg/phone"
)

// DaySlotsToEntities replaces null slot lists with empty ones.
func DaySlotsToEntities(ds []dto.DaySlotsDTO) []entity.DaySlots {
	out := make([]entity.DaySlots, len(ds))
	for i, d := range ds {
		slots := d.Slots
		if slots == nil {
			slots = []string{}
		}
		out[i] = entity.DaySlots{Label: d.Label, Slots: slots}
	}
	return out
}

func BookingToRequest(b entity.Booking) dto.BookingRequest {
	return dto.BookingRequest{
		DoctorID:   b.DoctorID,
		UserID:     b.PatientID,
		Date:       b.Date,
		Time:       b.Time,
		SecondName: b.SecondName,
		FirstName:  b.FirstName,
		Surname:    b.Surname,
		BirthDate:  b.BirthDate,
		Gender:     b.Gender,
		Phone:      phone.Digits(b.Phone),
	}
}

func TransferToRequest(t entity.Transfer) dto.TransferRequest {
	return dto.TransferRequest{ID: t.AppointmentID, Date: t.Date, Time: t.Time}
}

func UpcomingToEntities(us []dto.UpcomingAppointmentDTO) []entity.UpcomingAppointment {
	out := make([]entity.UpcomingAppointment, len(us))
	for i, u := range us {
		out[i] = entity.UpcomingAppointment(u)
	}
	return out
}

func TodayToEntities(ts []dto.TodayAppointmentDTO) []entity.TodayAppointment {
	out := make([]entity.TodayAppointment, len(ts))
	for i, t := range ts {
		out[i] = entity.TodayAppointment(t)
	}
	return out
}

// AppointmentToEntity takes the patient from user_id. The appointment id
// is never a patient id.
func AppointmentToEntity(a dto.AppointmentDTO) *entity.AppointmentDetails {
	return &entity.AppointmentDetails{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: deref(a.PatientID),
		Date:      a.Date,
		Time:      a.Time,
		Status:    a.Status,
		Person: entity.Person{
			FirstName:  a.FirstName,
			SecondName: a.SecondName,
			Surname:    deref(a.Surname),
			Gender:     a.Gender,
			BirthDate:  a.BirthDate,
			Phone:      a.Phone,
		},
	}
}

func UnconfirmedToEntities(us []dto.UnconfirmedAppointmentDTO) []entity.UnconfirmedAppointment {
	out := make([]entity.UnconfirmedAppointment, len(us))
	for i, u := range us {
		out[i] = entity.UnconfirmedAppointment{
			ID:        u.ID,
			Doctor:    u.Doctor,
			PatientID: u.PatientID,
			Date:      u.Date,
			Time:      u.Time,
			Status:    u.Status,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
			Person: entity.Person{
				FirstName:  u.PatientFirstName,
				SecondName: u.PatientSecondName,
				Surname:    u.PatientSurname,
				Gender:     u.Gender,
				BirthDate:  u.PatientBirthDate,
				Phone:      u.PhoneNumber,
			},
		}
	}
	return out
}

func ConfirmAppointmentRequest(a entity.UnconfirmedAppointment, now time.Time) dto.ConfirmAppointmentRequest {
	return dto.ConfirmAppointmentRequest{
		ID:        a.ID,
		Date:      a.Date,
		Time:      a.Time,
		Status:    "confirmed",
		UpdatedAt: now.UTC(),
	}
}

func DoctorTableToEntity(t *dto.DoctorScheduleTableDTO) *entity.DoctorScheduleTable {
	table := &entity.DoctorScheduleTable{
		Dates: t.Dates,
		Times: t.Times,
		Cells: make(map[string]map[string]*entity.TableCell, len(t.Table)),
	}
	for date, row := range t.Table {
		cells := make(map[string]*entity.TableCell, len(row))
		for tm, c := range row {
			if c == nil {
				continue
			}
			cells[tm] = &entity.TableCell{ID: c.ID, PatientID: c.PatientID, Patient: c.Patient}
		}
		table.Cells[date] = cells
	}
	return table
}

func gridPerson(p dto.GridPersonDTO) entity.GridPerson {
	return entity.GridPerson{
		ID:        p.ID,
		Specialty: p.Specialty,
		Person: entity.Person{
			FirstName:  p.FirstName,
			SecondName: p.SecondName,
			Surname:    p.Surname,
			Gender:     p.Gender,
			BirthDate:  p.BirthDate,
			Phone:      p.Phone,
		},
	}
}

func ScheduleGridToEntity(s *dto.AdminScheduleDTO) *entity.ScheduleGrid {
	grid := &entity.ScheduleGrid{
		TimeSlots:    s.Schedule.TimeSlots,
		Appointments: make(map[string]map[string][]entity.GridAppointment, len(s.Appointments)),
	}
	for _, d := range s.Schedule.Days {
		grid.Days = append(grid.Days, entity.GridDay{Date: d.Date, Weekday: d.Weekday})
	}
	for date, byTime := range s.Appointments {
		row := make(map[string][]entity.GridAppointment, len(byTime))
		for tm, appts := range byTime {
			for _, a := range appts {
				row[tm] = append(row[tm], entity.GridAppointment{
					ID:      a.ID,
					Doctor:  gridPerson(a.Doctor),
					Patient: gridPerson(a.Patient),
				})
			}
		}
		grid.Appointments[date] = row
	}
	return grid
}
