package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

type PatientRepository interface {
	FindAll(ctx context.Context) ([]entity.Patient, error)
	// Register creates a patient without a password and returns the user id.
	Register(ctx context.Context, patient entity.Patient) (int, error)
	Update(ctx context.Context, patient entity.Patient) error
	Delete(ctx context.Context, id int) error
	ChangeLogin(ctx context.Context, id int, phoneDigits string) error
	RequestCode(ctx context.Context, phoneDigits string) error
	VerifyCode(ctx context.Context, phoneDigits, code string) error
}
