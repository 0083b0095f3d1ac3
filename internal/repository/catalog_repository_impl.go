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

type catalogRepository struct {
	api   API
	store cache.Store
	ttl   time.Duration
	log   *logrus.Logger
}

// NewCatalogRepository caches categories and ICD codes. Services and
// materials are always read fresh because the price list edits them.
func NewCatalogRepository(api API, store cache.Store, ttl time.Duration, log *logrus.Logger) domainRepo.CatalogRepository {
	return &catalogRepository{api: api, store: store, ttl: ttl, log: log}
}

func (r *catalogRepository) FindServices(ctx context.Context) ([]entity.Service, error) {
	var resp dto.ServiceListResponse
	if err := r.api.Get(ctx, "/api/services", &resp); err != nil {
		return nil, err
	}
	return converter.ServicesToEntities(resp.Services), nil
}

func (r *catalogRepository) FindMaterials(ctx context.Context) ([]entity.Material, error) {
	var resp dto.MaterialListResponse
	if err := r.api.Get(ctx, "/api/materials", &resp); err != nil {
		return nil, err
	}
	return converter.MaterialsToEntities(resp.Materials), nil
}

func (r *catalogRepository) FindCategories(ctx context.Context) ([]entity.ServiceCategory, error) {
	return cached(ctx, r.store, r.log, keyCategories, r.ttl, func() ([]entity.ServiceCategory, error) {
		var resp dto.CategoryListResponse
		if err := r.api.Get(ctx, "/api/service-categories", &resp); err != nil {
			return nil, err
		}
		return converter.CategoriesToEntities(resp.Categories), nil
	})
}

func (r *catalogRepository) FindICDCodes(ctx context.Context) ([]entity.ICDCode, error) {
	return cached(ctx, r.store, r.log, keyICDCodes, r.ttl, func() ([]entity.ICDCode, error) {
		var resp []dto.ICDCodeDTO
		if err := r.api.Get(ctx, "/api/icd-codes", &resp); err != nil {
			return nil, err
		}
		return converter.ICDCodesToEntities(resp), nil
	})
}

func (r *catalogRepository) CreateService(ctx context.Context, s entity.Service) error {
	return r.api.Post(ctx, "/api/services", converter.ServiceToPayload(s), nil)
}

func (r *catalogRepository) UpdateService(ctx context.Context, s entity.Service) error {
	return r.api.Put(ctx, fmt.Sprintf("/api/services/%d", s.ID), converter.ServiceToPayload(s), nil)
}

func (r *catalogRepository) DeleteService(ctx context.Context, id int) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/services/%d", id))
}

func (r *catalogRepository) CreateMaterial(ctx context.Context, m entity.Material) error {
	return r.api.Post(ctx, "/api/materials", converter.MaterialToPayload(m), nil)
}

func (r *catalogRepository) UpdateMaterial(ctx context.Context, m entity.Material) error {
	return r.api.Put(ctx, fmt.Sprintf("/api/materials/%d", m.ID), converter.MaterialToPayload(m), nil)
}

func (r *catalogRepository) DeleteMaterial(ctx context.Context, id int) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/materials/%d", id))
}
