package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

type AppointmentRepository interface {
	FindFreeSlots(ctx context.Context, doctorID int) ([]entity.DaySlots, error)
	Create(ctx context.Context, b entity.Booking) error
	Transfer(ctx context.Context, t entity.Transfer) error
	Cancel(ctx context.Context, id int) error
	FindByID(ctx context.Context, id int) (*entity.AppointmentDetails, error)

	FindUpcoming(ctx context.Context) ([]entity.UpcomingAppointment, error)
	FindToday(ctx context.Context) ([]entity.TodayAppointment, error)
	FindDoctorTable(ctx context.Context) (*entity.DoctorScheduleTable, error)
	FindScheduleGrid(ctx context.Context) (*entity.ScheduleGrid, error)
	FindUnconfirmed(ctx context.Context) ([]entity.UnconfirmedAppointment, error)
	Confirm(ctx context.Context, a entity.UnconfirmedAppointment) error
}
