package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/schedule"
	"clinic-portal/internal/usecase"
)

const (
	msgSlotRange             = "Продолжительность приема должна составлять от 10 до 180 минут"
	msgCheckClinicSchedule   = "Проверьте корректность расписания клиники"
	msgCheckDoctorSchedule   = "Проверьте корректность расписания врача"
	msgClinicScheduleSaved   = "Расписание клиники сохранено"
	msgDoctorScheduleSaved   = "Расписание врача сохранено"
	msgClinicScheduleFailed  = "Не удалось сохранить расписание клиники"
	msgDoctorScheduleFailed  = "Не удалось сохранить расписание врача"
	msgOverrideDate          = "Недопустимая дата. Выберите дату не позднее трех месяцев от текущей."
	msgOverrideInterval      = "Недопустимый интервал времени"
	msgOverrideOutsideClinic = "Выбранные параметры не соответствуют расписанию клиники"
	msgOverrideSaved         = "Переопределение сохранено"
	msgOverrideFailed        = "Не удалось сохранить переопределение"
	msgSelectDoctor          = "Выберите врача"
)

type WeekdayView struct {
	Weekday   int    `json:"weekday"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Working   bool   `json:"working"`
	Invalid   bool   `json:"invalid"`
}

type WeekView struct {
	Days        []WeekdayView `json:"days"`
	SlotMinutes int           `json:"slot_minutes"`
}

type OverrideView struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduleManagementView struct {
	Header
	Feedback
	Clinic          WeekView     `json:"clinic"`
	Doctors         []OptionView `json:"doctors"`
	DoctorID        int          `json:"doctor_id"`
	Doctor          *WeekView    `json:"doctor"`
	ClinicOverride  OverrideView `json:"clinic_override"`
	DoctorOverride  OverrideView `json:"doctor_override"`
	OverrideMinDate string       `json:"override_min_date"`
	OverrideMaxDate string       `json:"override_max_date"`
}

type scheduleManagementPage struct {
	base

	clinic         entity.WeeklySchedule
	doctors        []entity.Doctor
	doctorID       int
	doctor         *entity.WeeklySchedule
	invalidClinic  []time.Weekday
	invalidDoctor  []time.Weekday
	clinicOverride entity.Override
	doctorOverride entity.Override
}

func newScheduleManagementPage(deps *Deps) Page {
	p := &scheduleManagementPage{base: newBase(deps, KindScheduleManagement, "admin-profile")}
	p.on("select_doctor", p.selectDoctor)
	p.on("save_clinic_schedule", p.saveClinicSchedule)
	p.on("save_doctor_schedule", p.saveDoctorSchedule)
	p.on("load_clinic_override", p.loadClinicOverride)
	p.on("save_clinic_override", p.saveClinicOverride)
	p.on("load_doctor_override", p.loadDoctorOverride)
	p.on("save_doctor_override", p.saveDoctorOverride)
	return p
}

func (p *scheduleManagementPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)

	today := p.deps.Now().Format(schedule.DateLayout)
	p.clinicOverride = entity.EmptyOverride(nil, today)
	p.doctorOverride = entity.EmptyOverride(nil, today)

	p.reloadClinic(ctx)
	p.doctors, _ = p.deps.Doctors.GetDoctors(ctx)
	return nil
}

func (p *scheduleManagementPage) reloadClinic(ctx context.Context) {
	week, err := p.deps.Schedule.GetClinicSchedule(ctx)
	if err != nil {
		p.clinic = entity.WeeklySchedule{Days: schedule.NormalizeWeek(nil)}
		return
	}
	p.clinic = *week
}

func (p *scheduleManagementPage) selectDoctor(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	p.doctorID = in.ID
	p.invalidDoctor = nil
	p.doctor = nil
	if week, err := p.deps.Schedule.GetDoctorSchedule(ctx, in.ID); err == nil {
		p.doctor = week
	}
	p.doctorOverride = entity.EmptyOverride(&p.doctorID, p.doctorOverride.Date)
	return nil
}

func weekFromPayload(in dto.WeeklySchedulePayload) entity.WeeklySchedule {
	week := entity.WeeklySchedule{SlotMinutes: in.SlotMinutes}
	for _, d := range in.Days {
		week.Days = append(week.Days, entity.WeekdaySchedule{
			Weekday:   time.Weekday(d.Weekday),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Working:   d.Working,
		})
	}
	return week
}

func (p *scheduleManagementPage) saveClinicSchedule(ctx context.Context, payload json.RawMessage) error {
	var in dto.WeeklySchedulePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	week := weekFromPayload(in)
	p.invalidClinic = nil

	err := p.deps.Schedule.SaveClinicSchedule(ctx, week)
	var invalid *usecase.InvalidDaysError
	switch {
	case err == nil:
		p.alert = msgClinicScheduleSaved
		p.reloadClinic(ctx)
	case errors.Is(err, usecase.ErrInvalidSlot):
		p.alert = msgSlotRange
	case errors.As(err, &invalid):
		p.invalidClinic = invalid.Days
		p.alert = msgCheckClinicSchedule
	default:
		p.alert = msgClinicScheduleFailed
	}
	return nil
}

func (p *scheduleManagementPage) saveDoctorSchedule(ctx context.Context, payload json.RawMessage) error {
	var in dto.WeeklySchedulePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	week := weekFromPayload(in)
	p.invalidDoctor = nil

	err := p.deps.Schedule.SaveDoctorSchedule(ctx, p.doctorID, week, p.clinic)
	var invalid *usecase.InvalidDaysError
	switch {
	case err == nil:
		p.alert = msgDoctorScheduleSaved
		if reloaded, err := p.deps.Schedule.GetDoctorSchedule(ctx, p.doctorID); err == nil {
			p.doctor = reloaded
		}
	case errors.Is(err, usecase.ErrDoctorNotSelected):
		p.alert = msgSelectDoctor
	case errors.Is(err, usecase.ErrInvalidSlot):
		p.alert = msgSlotRange
	case errors.As(err, &invalid):
		p.invalidDoctor = invalid.Days
		p.alert = msgCheckDoctorSchedule
	default:
		p.alert = msgDoctorScheduleFailed
	}
	return nil
}

func (p *scheduleManagementPage) loadClinicOverride(ctx context.Context, payload json.RawMessage) error {
	var in dto.DatePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	p.clinicOverride, _ = p.deps.Schedule.GetClinicOverride(ctx, in.Date)
	return nil
}

func (p *scheduleManagementPage) loadDoctorOverride(ctx context.Context, payload json.RawMessage) error {
	var in dto.DatePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if p.doctorID == 0 {
		p.alert = msgSelectDoctor
		return nil
	}
	p.doctorOverride, _ = p.deps.Schedule.GetDoctorOverride(ctx, p.doctorID, in.Date)
	return nil
}

func overrideFromPayload(in dto.OverridePayload, doctorID *int) entity.Override {
	return entity.Override{
		DoctorID:  doctorID,
		Date:      in.Date,
		Type:      entity.OverrideType(in.Type),
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
}

// overrideAlert maps an override save error to the dialog text.
func overrideAlert(err error) string {
	switch {
	case errors.Is(err, usecase.ErrDoctorNotSelected):
		return msgSelectDoctor
	case errors.Is(err, schedule.ErrOverrideDate):
		return msgOverrideDate
	case errors.Is(err, schedule.ErrOverrideInterval):
		return msgOverrideInterval
	case errors.Is(err, schedule.ErrOutsideClinic), errors.Is(err, schedule.ErrClinicClosed):
		return msgOverrideOutsideClinic
	}
	return msgOverrideFailed
}

func (p *scheduleManagementPage) saveClinicOverride(ctx context.Context, payload json.RawMessage) error {
	var in dto.OverridePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	o := overrideFromPayload(in, nil)
	p.clinicOverride = o
	if err := p.deps.Schedule.SaveClinicOverride(ctx, o); err != nil {
		p.alert = overrideAlert(err)
		return nil
	}
	p.alert = msgOverrideSaved
	return nil
}

func (p *scheduleManagementPage) saveDoctorOverride(ctx context.Context, payload json.RawMessage) error {
	var in dto.OverridePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	var doctorID *int
	if p.doctorID != 0 {
		id := p.doctorID
		doctorID = &id
	}
	o := overrideFromPayload(in, doctorID)
	p.doctorOverride = o
	if err := p.deps.Schedule.SaveDoctorOverride(ctx, o, p.clinic); err != nil {
		p.alert = overrideAlert(err)
		return nil
	}
	p.alert = msgOverrideSaved
	return nil
}

func weekView(week entity.WeeklySchedule, invalid []time.Weekday) WeekView {
	bad := make(map[time.Weekday]bool, len(invalid))
	for _, w := range invalid {
		bad[w] = true
	}
	v := WeekView{SlotMinutes: week.SlotMinutes}
	for _, w := range entity.DisplayWeek {
		d, _ := week.Day(w)
		v.Days = append(v.Days, WeekdayView{
			Weekday:   int(w),
			Name:      entity.WeekdayNames[w],
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Working:   d.Working,
			Invalid:   bad[w],
		})
	}
	return v
}

func overrideView(o entity.Override) OverrideView {
	return OverrideView{Date: o.Date, Type: string(o.Type), StartTime: o.StartTime, EndTime: o.EndTime}
}

func (p *scheduleManagementPage) View() interface{} {
	now := p.deps.Now()
	v := ScheduleManagementView{
		Header:          p.header(),
		Feedback:        p.feedback(),
		Clinic:          weekView(p.clinic, p.invalidClinic),
		Doctors:         make([]OptionView, len(p.doctors)),
		DoctorID:        p.doctorID,
		ClinicOverride:  overrideView(p.clinicOverride),
		DoctorOverride:  overrideView(p.doctorOverride),
		OverrideMinDate: now.Format(schedule.DateLayout),
		OverrideMaxDate: now.AddDate(0, schedule.OverrideHorizonMonths, 0).Format(schedule.DateLayout),
	}
	for i, d := range p.doctors {
		v.Doctors[i] = OptionView{ID: d.UserID, Name: d.FullName()}
	}
	if p.doctor != nil {
		w := weekView(*p.doctor, p.invalidDoctor)
		v.Doctor = &w
	}
	return v
}
