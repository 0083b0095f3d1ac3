package dto

import (
	"encoding/json"
	"strings"
)

// WeekdayScheduleDTO is one day of /api/clinic-schedule and /api/doctor-schedule.
// On this wire IsDayOff=true marks a WORKING day; the converter flips it.
type WeekdayScheduleDTO struct {
	ID          int    `json:"id,omitempty"`
	Day         int    `json:"day" validate:"gte=0,lte=6"`
	StartTime   string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime     string `json:"end_time" validate:"omitempty,hhmm"`
	SlotMinutes int    `json:"slot_minutes,omitempty" validate:"gte=0"`
	IsDayOff    bool   `json:"is_day_off"`
}

type WeeklyScheduleResponse struct {
	Schedule    []WeekdayScheduleDTO `json:"schedule" validate:"dive"`
	SlotMinutes *int                 `json:"slot_minutes"`
}

type ClinicScheduleRequest struct {
	Schedule            []WeekdayScheduleDTO `json:"schedule"`
	SlotDurationMinutes int                  `json:"slot_duration_minutes"`
}

type DoctorScheduleRequest struct {
	Schedule    []WeekdayScheduleDTO `json:"schedule"`
	SlotMinutes int                  `json:"slot_minutes"`
}

// OverrideDTO is the body of the override endpoints. Type is "off" or "work".
type OverrideDTO struct {
	DoctorID  *int   `json:"doctor_id,omitempty"`
	Date      string `json:"date" validate:"required,isodate"`
	Type      string `json:"type" validate:"oneof=off work"`
	StartTime string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime   string `json:"end_time" validate:"omitempty,hhmm"`
}

// UnmarshalJSON also accepts the legacy is_day_off key, either as the
// "off"/"work" string or as a boolean.
func (o *OverrideDTO) UnmarshalJSON(data []byte) error {
	type plain OverrideDTO
	var raw struct {
		plain
		IsDayOff json.RawMessage `json:"is_day_off"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = OverrideDTO(raw.plain)

	if o.Type != "" || len(raw.IsDayOff) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.IsDayOff, &s); err == nil {
		o.Type = strings.ToLower(strings.TrimSpace(s))
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw.IsDayOff, &b); err == nil {
		if b {
			o.Type = "off"
		} else {
			o.Type = "work"
		}
	}
	return nil
}
