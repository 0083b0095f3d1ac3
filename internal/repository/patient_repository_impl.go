package repository

import (
	"context"
	"fmt"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"
)

type patientRepository struct {
	api API
}

func NewPatientRepository(api API) domainRepo.PatientRepository {
	return &patientRepository{api: api}
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	var resp []dto.PatientDTO
	if err := r.api.Get(ctx, "/api/patients", &resp); err != nil {
		return nil, err
	}
	return converter.PatientsToEntities(resp), nil
}

func (r *patientRepository) Register(ctx context.Context, patient entity.Patient) (int, error) {
	var resp dto.RegisterPatientResponse
	if err := r.api.Post(ctx, "/api/register-in-clinic", converter.PatientToRegisterRequest(patient), &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

func (r *patientRepository) Update(ctx context.Context, patient entity.Patient) error {
	return r.api.Put(ctx, fmt.Sprintf("/api/patients/%d", patient.ID), converter.PatientToDTO(patient), nil)
}

func (r *patientRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/patients/%d", id))
}

func (r *patientRepository) ChangeLogin(ctx context.Context, id int, phoneDigits string) error {
	return r.api.Put(ctx, fmt.Sprintf("/api/patients-login/%d", id), dto.PhoneLoginRequest{Phone: phoneDigits}, nil)
}

func (r *patientRepository) RequestCode(ctx context.Context, phoneDigits string) error {
	return r.api.Post(ctx, "/api/request-code", dto.RequestCodeRequest{Phone: phoneDigits}, nil)
}

func (r *patientRepository) VerifyCode(ctx context.Context, phoneDigits, code string) error {
	return r.api.Post(ctx, "/api/verify-code", dto.VerifyCodeRequest{Phone: phoneDigits, Code: code}, nil)
}
