package repository

import (
	"context"
	"fmt"
	"time"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"
	"clinic-portal/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
)

type doctorRepository struct {
	api   API
	store cache.Store
	ttl   time.Duration
	log   *logrus.Logger
}

// NewDoctorRepository caches the specialty dictionary in store for ttl.
func NewDoctorRepository(api API, store cache.Store, ttl time.Duration, log *logrus.Logger) domainRepo.DoctorRepository {
	return &doctorRepository{api: api, store: store, ttl: ttl, log: log}
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	return r.findDoctors(ctx, "/api/doctors")
}

func (r *doctorRepository) FindStaff(ctx context.Context) ([]entity.Doctor, error) {
	return r.findDoctors(ctx, "/api/staff-doctors")
}

func (r *doctorRepository) FindBySpecialty(ctx context.Context, specialtyID int) ([]entity.Doctor, error) {
	return r.findDoctors(ctx, fmt.Sprintf("/api/doctors/%d", specialtyID))
}

func (r *doctorRepository) findDoctors(ctx context.Context, path string) ([]entity.Doctor, error) {
	var resp []dto.DoctorDTO
	if err := r.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return converter.DoctorsToEntities(resp), nil
}

func (r *doctorRepository) FindSpecialties(ctx context.Context) ([]entity.Specialty, error) {
	return cached(ctx, r.store, r.log, keySpecialties, r.ttl, func() ([]entity.Specialty, error) {
		var resp []dto.SpecialtyDTO
		if err := r.api.Get(ctx, "/api/specialties", &resp); err != nil {
			return nil, err
		}
		return converter.SpecialtiesToEntities(resp), nil
	})
}

func (r *doctorRepository) Save(ctx context.Context, doctor entity.Doctor) error {
	return r.api.Post(ctx, "/api/save-doctor", converter.DoctorToSaveRequest(doctor), nil)
}

func (r *doctorRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/doctors/%d", id))
}

func (r *doctorRepository) ChangeLogin(ctx context.Context, id int, email string) error {
	return r.api.Put(ctx, fmt.Sprintf("/api/doctors-login/%d", id), dto.EmailLoginRequest{Email: email}, nil)
}
