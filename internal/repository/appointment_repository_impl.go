package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"
)

type appointmentRepository struct {
	api API
	now func() time.Time
}

func NewAppointmentRepository(api API) domainRepo.AppointmentRepository {
	return &appointmentRepository{api: api, now: time.Now}
}

func (r *appointmentRepository) FindFreeSlots(ctx context.Context, doctorID int) ([]entity.DaySlots, error) {
	var resp []dto.DaySlotsDTO
	if err := r.api.Get(ctx, fmt.Sprintf("/api/appointment-doctor-schedule/%d", doctorID), &resp); err != nil {
		return nil, err
	}
	return converter.DaySlotsToEntities(resp), nil
}

func (r *appointmentRepository) Create(ctx context.Context, b entity.Booking) error {
	return r.api.Post(ctx, "/api/appointments", converter.BookingToRequest(b), nil)
}

func (r *appointmentRepository) Transfer(ctx context.Context, t entity.Transfer) error {
	return r.api.Put(ctx, "/api/appointments/transfer", converter.TransferToRequest(t), nil)
}

// Cancel is a GET on the clinic API.
func (r *appointmentRepository) Cancel(ctx context.Context, id int) error {
	_, err := r.api.Send(ctx, http.MethodGet, fmt.Sprintf("/api/appointments/cancel/%d", id), nil, nil)
	return err
}

func (r *appointmentRepository) FindByID(ctx context.Context, id int) (*entity.AppointmentDetails, error) {
	var resp dto.AppointmentDTO
	if err := r.api.Get(ctx, fmt.Sprintf("/api/appointments/%d", id), &resp); err != nil {
		return nil, err
	}
	return converter.AppointmentToEntity(resp), nil
}

func (r *appointmentRepository) FindUpcoming(ctx context.Context) ([]entity.UpcomingAppointment, error) {
	var resp []dto.UpcomingAppointmentDTO
	if err := r.api.Get(ctx, "/api/patient/upcoming", &resp); err != nil {
		return nil, err
	}
	return converter.UpcomingToEntities(resp), nil
}

func (r *appointmentRepository) FindToday(ctx context.Context) ([]entity.TodayAppointment, error) {
	var resp []dto.TodayAppointmentDTO
	if err := r.api.Get(ctx, "/api/appointments-today", &resp); err != nil {
		return nil, err
	}
	return converter.TodayToEntities(resp), nil
}

func (r *appointmentRepository) FindDoctorTable(ctx context.Context) (*entity.DoctorScheduleTable, error) {
	var resp dto.DoctorScheduleTableDTO
	if err := r.api.Get(ctx, "/api/schedule-with-appointments", &resp); err != nil {
		return nil, err
	}
	return converter.DoctorTableToEntity(&resp), nil
}

func (r *appointmentRepository) FindScheduleGrid(ctx context.Context) (*entity.ScheduleGrid, error) {
	var resp dto.AdminScheduleDTO
	if err := r.api.Get(ctx, "/api/schedule-admin", &resp); err != nil {
		return nil, err
	}
	return converter.ScheduleGridToEntity(&resp), nil
}

func (r *appointmentRepository) FindUnconfirmed(ctx context.Context) ([]entity.UnconfirmedAppointment, error) {
	var resp []dto.UnconfirmedAppointmentDTO
	if err := r.api.Get(ctx, "/api/unconfirmed-appointments", &resp); err != nil {
		return nil, err
	}
	return converter.UnconfirmedToEntities(resp), nil
}

func (r *appointmentRepository) Confirm(ctx context.Context, a entity.UnconfirmedAppointment) error {
	return r.api.Put(ctx, fmt.Sprintf("/api/unconfirmed-appointments/%d", a.ID), converter.ConfirmAppointmentRequest(a, r.now()), nil)
}
