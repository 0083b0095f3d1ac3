package repository

import (
	"context"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"
)

type profileRepository struct {
	api API
}

func NewProfileRepository(api API) domainRepo.ProfileRepository {
	return &profileRepository{api: api}
}

func (r *profileRepository) FindAdmin(ctx context.Context) (*entity.Admin, error) {
	var resp dto.AdminMeDTO
	if err := r.api.Get(ctx, "/api/admin/me", &resp); err != nil {
		return nil, err
	}
	return converter.AdminMeToEntity(resp), nil
}

func (r *profileRepository) FindDoctor(ctx context.Context) (*entity.Doctor, error) {
	var resp dto.DoctorDTO
	if err := r.api.Get(ctx, "/api/doctor/me", &resp); err != nil {
		return nil, err
	}
	doctor := converter.DoctorToEntity(resp)
	return &doctor, nil
}

func (r *profileRepository) UpdateAdmin(ctx context.Context, admin entity.Admin) error {
	return r.api.Post(ctx, "/api/update-admin-profile", converter.AdminToProfileRequest(admin), nil)
}

func (r *profileRepository) ChangeEmail(ctx context.Context, email string) error {
	return r.api.Post(ctx, "/api/change-email", dto.ChangeEmailRequest{Email: email}, nil)
}

func (r *profileRepository) ChangePassword(ctx context.Context, password string) error {
	return r.api.Post(ctx, "/api/change-password", dto.ChangePasswordRequest{Password: password}, nil)
}

type statisticsRepository struct {
	api API
}

func NewStatisticsRepository(api API) domainRepo.StatisticsRepository {
	return &statisticsRepository{api: api}
}

func (r *statisticsRepository) Find(ctx context.Context) (*entity.ClinicStats, error) {
	var resp dto.StatisticsDTO
	if err := r.api.Get(ctx, "/api/statistics", &resp); err != nil {
		return nil, err
	}
	return converter.StatisticsToEntity(resp), nil
}
