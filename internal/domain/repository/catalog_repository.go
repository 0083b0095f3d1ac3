package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

type CatalogRepository interface {
	FindServices(ctx context.Context) ([]entity.Service, error)
	FindMaterials(ctx context.Context) ([]entity.Material, error)
	FindCategories(ctx context.Context) ([]entity.ServiceCategory, error)
	FindICDCodes(ctx context.Context) ([]entity.ICDCode, error)

	CreateService(ctx context.Context, s entity.Service) error
	UpdateService(ctx context.Context, s entity.Service) error
	DeleteService(ctx context.Context, id int) error
	CreateMaterial(ctx context.Context, m entity.Material) error
	UpdateMaterial(ctx context.Context, m entity.Material) error
	DeleteMaterial(ctx context.Context, id int) error
}
