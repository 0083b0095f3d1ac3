package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

// ScheduleRepository reads and writes recurring schedules and date
// overrides. Find*Override returns nil, nil when nothing is stored.
type ScheduleRepository interface {
	FindClinicSchedule(ctx context.Context) (*entity.WeeklySchedule, error)
	SaveClinicSchedule(ctx context.Context, week entity.WeeklySchedule) error
	FindDoctorSchedule(ctx context.Context, doctorID int) (*entity.WeeklySchedule, error)
	SaveDoctorSchedule(ctx context.Context, doctorID int, week entity.WeeklySchedule) error

	FindClinicOverride(ctx context.Context, date string) (*entity.Override, error)
	SaveClinicOverride(ctx context.Context, o entity.Override) error
	FindDoctorOverride(ctx context.Context, doctorID int, date string) (*entity.Override, error)
	SaveDoctorOverride(ctx context.Context, o entity.Override) error
}
