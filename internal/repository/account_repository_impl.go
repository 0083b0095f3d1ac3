package repository

import (
	"context"
	"errors"
	"net/http"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"
)

var ErrMissingSessionCookie = errors.New("login response carried no session cookie")

type accountRepository struct {
	api        API
	cookieName string
}

func NewAccountRepository(api API, cookieName string) domainRepo.AccountRepository {
	return &accountRepository{api: api, cookieName: cookieName}
}

func (r *accountRepository) Login(ctx context.Context, login, password string) (*domainRepo.Session, error) {
	var resp dto.RoleResponse
	header, err := r.api.Send(ctx, http.MethodPost, "/api/login", dto.LoginRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	session := &domainRepo.Session{
		Role:    entity.Role(resp.Role),
		Cookies: header.Values("Set-Cookie"),
	}
	for _, c := range (&http.Response{Header: header}).Cookies() {
		if c.Name == r.cookieName {
			session.Token = c.Value
		}
	}
	if session.Token == "" {
		return nil, ErrMissingSessionCookie
	}
	return session, nil
}

func (r *accountRepository) FindAdmin(ctx context.Context) (*entity.Identity, error) {
	var resp dto.AdminMeDTO
	if err := r.api.Get(ctx, "/api/admin/me", &resp); err != nil {
		return nil, err
	}
	return converter.AdminMeToIdentity(resp), nil
}

func (r *accountRepository) FindDoctor(ctx context.Context) (*entity.Identity, error) {
	var resp dto.DoctorDTO
	if err := r.api.Get(ctx, "/api/doctor/me", &resp); err != nil {
		return nil, err
	}
	return converter.DoctorMeToIdentity(resp), nil
}

func (r *accountRepository) FindPatient(ctx context.Context) (*entity.Identity, error) {
	p, err := r.FindPatientProfile(ctx)
	if err != nil {
		return nil, err
	}
	return &entity.Identity{UserID: p.ID, Role: entity.RolePatient, Person: p.Person}, nil
}

func (r *accountRepository) FindPatientProfile(ctx context.Context) (*entity.Patient, error) {
	var resp dto.PatientDTO
	if err := r.api.Get(ctx, "/api/patient/me", &resp); err != nil {
		return nil, err
	}
	p := converter.PatientToEntity(resp)
	return &p, nil
}
