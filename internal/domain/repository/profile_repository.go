package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

// ProfileRepository acts on the signed-in staff member's own account.
type ProfileRepository interface {
	FindAdmin(ctx context.Context) (*entity.Admin, error)
	FindDoctor(ctx context.Context) (*entity.Doctor, error)
	UpdateAdmin(ctx context.Context, admin entity.Admin) error
	ChangeEmail(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, password string) error
}

type StatisticsRepository interface {
	Find(ctx context.Context) (*entity.ClinicStats, error)
}
