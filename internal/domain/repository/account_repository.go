package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

// Session is what a successful login yields: the role and the raw
// Set-Cookie headers to hand back to the browser.
type Session struct {
	Role    entity.Role
	Token   string
	Cookies []string
}

type AccountRepository interface {
	Login(ctx context.Context, login, password string) (*Session, error)
	FindAdmin(ctx context.Context) (*entity.Identity, error)
	FindDoctor(ctx context.Context) (*entity.Identity, error)
	FindPatient(ctx context.Context) (*entity.Identity, error)
	FindPatientProfile(ctx context.Context) (*entity.Patient, error)
}
