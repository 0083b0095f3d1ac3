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

type adminRepository struct {
	api   API
	store cache.Store
	ttl   time.Duration
	log   *logrus.Logger
}

func NewAdminRepository(api API, store cache.Store, ttl time.Duration, log *logrus.Logger) domainRepo.AdminRepository {
	return &adminRepository{api: api, store: store, ttl: ttl, log: log}
}

func (r *adminRepository) FindAll(ctx context.Context) ([]entity.Admin, error) {
	var resp []dto.StaffAdminDTO
	if err := r.api.Get(ctx, "/api/staff-admins", &resp); err != nil {
		return nil, err
	}
	return converter.AdminsToEntities(resp), nil
}

func (r *adminRepository) FindRoles(ctx context.Context) ([]entity.RoleOption, error) {
	return cached(ctx, r.store, r.log, keyRoles, r.ttl, func() ([]entity.RoleOption, error) {
		var resp []dto.RoleDTO
		if err := r.api.Get(ctx, "/api/roles", &resp); err != nil {
			return nil, err
		}
		return converter.RolesToEntities(resp), nil
	})
}

func (r *adminRepository) Save(ctx context.Context, admin entity.Admin) error {
	return r.api.Post(ctx, "/api/save-admin", converter.AdminToDTO(admin), nil)
}

func (r *adminRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/admins/%d", id))
}

func (r *adminRepository) ChangeLogin(ctx context.Context, id int, email string) error {
	return r.api.Put(ctx, fmt.Sprintf("/api/admins-login/%d", id), dto.EmailLoginRequest{Email: email}, nil)
}
