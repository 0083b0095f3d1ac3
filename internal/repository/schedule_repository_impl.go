package repository

import (
	"context"
	"fmt"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"
	"clinic-portal/internal/infrastructure/apiclient"
)

type scheduleRepository struct {
	api API
}

func NewScheduleRepository(api API) domainRepo.ScheduleRepository {
	return &scheduleRepository{api: api}
}

func (r *scheduleRepository) FindClinicSchedule(ctx context.Context) (*entity.WeeklySchedule, error) {
	var resp dto.WeeklyScheduleResponse
	if err := r.api.Get(ctx, "/api/clinic-schedule", &resp); err != nil {
		return nil, err
	}
	week := converter.WeeklyScheduleToEntity(&resp)
	return &week, nil
}

func (r *scheduleRepository) SaveClinicSchedule(ctx context.Context, week entity.WeeklySchedule) error {
	return r.api.Post(ctx, "/api/clinic-schedule", converter.ClinicScheduleToRequest(week), nil)
}

func (r *scheduleRepository) FindDoctorSchedule(ctx context.Context, doctorID int) (*entity.WeeklySchedule, error) {
	var resp dto.WeeklyScheduleResponse
	if err := r.api.Get(ctx, fmt.Sprintf("/api/doctor-schedule/%d", doctorID), &resp); err != nil {
		return nil, err
	}
	week := converter.WeeklyScheduleToEntity(&resp)
	return &week, nil
}

func (r *scheduleRepository) SaveDoctorSchedule(ctx context.Context, doctorID int, week entity.WeeklySchedule) error {
	return r.api.Post(ctx, fmt.Sprintf("/api/doctor-schedule/%d", doctorID), converter.DoctorScheduleToRequest(week), nil)
}

func (r *scheduleRepository) FindClinicOverride(ctx context.Context, date string) (*entity.Override, error) {
	return r.findOverride(ctx, "/api/clinic-overrides/"+date)
}

func (r *scheduleRepository) SaveClinicOverride(ctx context.Context, o entity.Override) error {
	o.DoctorID = nil
	return r.api.Post(ctx, "/api/clinic-overrides", converter.OverrideToDTO(o), nil)
}

func (r *scheduleRepository) FindDoctorOverride(ctx context.Context, doctorID int, date string) (*entity.Override, error) {
	o, err := r.findOverride(ctx, fmt.Sprintf("/api/doctor-overrides/%d/%s", doctorID, date))
	if o != nil && o.DoctorID == nil {
		o.DoctorID = &doctorID
	}
	return o, err
}

func (r *scheduleRepository) SaveDoctorOverride(ctx context.Context, o entity.Override) error {
	if o.DoctorID == nil {
		return fmt.Errorf("save doctor override for %s: missing doctor", o.Date)
	}
	return r.api.Post(ctx, "/api/doctor-overrides", converter.OverrideToDTO(o), nil)
}

func (r *scheduleRepository) findOverride(ctx context.Context, path string) (*entity.Override, error) {
	var resp dto.OverrideDTO
	if err := r.api.Get(ctx, path, &resp); err != nil {
		if apiclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return converter.OverrideToEntity(&resp), nil
}
