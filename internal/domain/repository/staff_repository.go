package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

type DoctorRepository interface {
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindStaff(ctx context.Context) ([]entity.Doctor, error)
	FindBySpecialty(ctx context.Context, specialtyID int) ([]entity.Doctor, error)
	FindSpecialties(ctx context.Context) ([]entity.Specialty, error)
	Save(ctx context.Context, doctor entity.Doctor) error
	Delete(ctx context.Context, id int) error
	ChangeLogin(ctx context.Context, id int, email string) error
}

type AdminRepository interface {
	FindAll(ctx context.Context) ([]entity.Admin, error)
	FindRoles(ctx context.Context) ([]entity.RoleOption, error)
	Save(ctx context.Context, admin entity.Admin) error
	Delete(ctx context.Context, id int) error
	ChangeLogin(ctx context.Context, id int, email string) error
}
