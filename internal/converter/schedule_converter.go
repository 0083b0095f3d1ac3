package converter

import (
	"time"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

// WeekdayScheduleToEntity flips the wire flag: the schedule endpoints send
// is_day_off=true for working days.
func WeekdayScheduleToEntity(d dto.WeekdayScheduleDTO) entity.WeekdaySchedule {
	return entity.WeekdaySchedule{
		ID:        d.ID,
		Weekday:   time.Weekday(d.Day),
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Working:   d.IsDayOff,
	}
}

func WeekdayScheduleToDTO(d entity.WeekdaySchedule, slotMinutes int) dto.WeekdayScheduleDTO {
	return dto.WeekdayScheduleDTO{
		ID:          d.ID,
		Day:         int(d.Weekday),
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		SlotMinutes: slotMinutes,
		IsDayOff:    d.Working,
	}
}

// WeeklyScheduleToEntity reads the slot length from the envelope, falling
// back to the first day that carries one.
func WeeklyScheduleToEntity(resp *dto.WeeklyScheduleResponse) entity.WeeklySchedule {
	week := entity.WeeklySchedule{Days: make([]entity.WeekdaySchedule, 0, len(resp.Schedule))}
	if resp.SlotMinutes != nil {
		week.SlotMinutes = *resp.SlotMinutes
	}
	for _, d := range resp.Schedule {
		week.Days = append(week.Days, WeekdayScheduleToEntity(d))
		if week.SlotMinutes == 0 && d.SlotMinutes > 0 {
			week.SlotMinutes = d.SlotMinutes
		}
	}
	return week
}

func weekToDTOs(week entity.WeeklySchedule) []dto.WeekdayScheduleDTO {
	days := make([]dto.WeekdayScheduleDTO, len(week.Days))
	for i, d := range week.Days {
		days[i] = WeekdayScheduleToDTO(d, week.SlotMinutes)
	}
	return days
}

func ClinicScheduleToRequest(week entity.WeeklySchedule) dto.ClinicScheduleRequest {
	return dto.ClinicScheduleRequest{
		Schedule:            weekToDTOs(week),
		SlotDurationMinutes: week.SlotMinutes,
	}
}

func DoctorScheduleToRequest(week entity.WeeklySchedule) dto.DoctorScheduleRequest {
	return dto.DoctorScheduleRequest{
		Schedule:    weekToDTOs(week),
		SlotMinutes: week.SlotMinutes,
	}
}

// WeeklyScheduleFromPayload builds a week from the editor form.
func WeeklyScheduleFromPayload(p dto.WeeklySchedulePayload) entity.WeeklySchedule {
	week := entity.WeeklySchedule{SlotMinutes: p.SlotMinutes}
	for _, d := range p.Days {
		week.Days = append(week.Days, entity.WeekdaySchedule{
			Weekday:   time.Weekday(d.Weekday),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Working:   d.Working,
		})
	}
	return week
}

func OverrideToEntity(d *dto.OverrideDTO) *entity.Override {
	if d == nil {
		return nil
	}
	o := &entity.Override{
		DoctorID:  d.DoctorID,
		Date:      d.Date,
		Type:      entity.OverrideType(d.Type),
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
	}
	if o.Type == entity.OverrideOff {
		o.StartTime, o.EndTime = "", ""
	}
	return o
}

// OverrideToDTO drops the times of a day off.
func OverrideToDTO(o entity.Override) dto.OverrideDTO {
	d := dto.OverrideDTO{
		DoctorID: o.DoctorID,
		Date:     o.Date,
		Type:     string(o.Type),
	}
	if o.Type == entity.OverrideWork {
		d.StartTime = o.StartTime
		d.EndTime = o.EndTime
	}
	return d
}
