package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	MsgPriceRequired    = "Цена не может быть пустой"
	MsgPriceNegative    = "Цена не может быть отрицательной"
	MsgNameRequired     = "Название не может быть пустым"
	MsgCategoryRequired = "Необходимо выбрать категорию"
	MsgPriceWhole       = "Цена должна быть целым числом рублей"
	MsgPriceTooLarge    = "Слишком большая цена"
)

var maxPrice = decimal.NewFromInt(math.MaxInt64)

// ParsePrice reads the text of a price input. The second value is the
// form message when the text is not an acceptable price.
func ParsePrice(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.Zero, MsgPriceRequired
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, MsgPriceRequired
	}
	if price.IsNegative() {
		return decimal.Zero, MsgPriceNegative
	}
	// The API stores whole roubles.
	if !price.Equal(price.Truncate(0)) {
		return decimal.Zero, MsgPriceWhole
	}
	if price.GreaterThan(maxPrice) {
		return decimal.Zero, MsgPriceTooLarge
	}
	return price, ""
}

type CatalogUsecase interface {
	GetServices(ctx context.Context) ([]entity.Service, error)
	GetMaterials(ctx context.Context) ([]entity.Material, error)
	GetCategories(ctx context.Context) ([]entity.ServiceCategory, error)
	GetICDCodes(ctx context.Context) ([]entity.ICDCode, error)

	UpdateServicePrice(ctx context.Context, s entity.Service, rawPrice string) error
	UpdateMaterialPrice(ctx context.Context, m entity.Material, rawPrice string) error
	DeleteService(ctx context.Context, s entity.Service) error
	DeleteMaterial(ctx context.Context, m entity.Material) error
	AddService(ctx context.Context, name, rawPrice string, categoryID int) error
	AddMaterial(ctx context.Context, name, rawPrice string) error
}

type catalogUsecase struct {
	log         *logrus.Logger
	catalogRepo repository.CatalogRepository
	audit       service.AuditService
}

func NewCatalogUsecase(
	log *logrus.Logger,
	catalogRepo repository.CatalogRepository,
	audit service.AuditService,
) CatalogUsecase {
	return &catalogUsecase{
		log:         log,
		catalogRepo: catalogRepo,
		audit:       audit,
	}
}

func (u *catalogUsecase) GetServices(ctx context.Context) ([]entity.Service, error) {
	services, err := u.catalogRepo.FindServices(ctx)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return []entity.Service{}, err
	}
	return services, nil
}

func (u *catalogUsecase) GetMaterials(ctx context.Context) ([]entity.Material, error) {
	materials, err := u.catalogRepo.FindMaterials(ctx)
	if err != nil {
		u.log.Warnf("Failed to find materials: %+v", err)
		return []entity.Material{}, err
	}
	return materials, nil
}

func (u *catalogUsecase) GetCategories(ctx context.Context) ([]entity.ServiceCategory, error) {
	categories, err := u.catalogRepo.FindCategories(ctx)
	if err != nil {
		u.log.Warnf("Failed to find service categories: %+v", err)
		return []entity.ServiceCategory{}, err
	}
	return categories, nil
}

func (u *catalogUsecase) GetICDCodes(ctx context.Context) ([]entity.ICDCode, error) {
	codes, err := u.catalogRepo.FindICDCodes(ctx)
	if err != nil {
		u.log.Warnf("Failed to find icd codes: %+v", err)
		return []entity.ICDCode{}, err
	}
	return codes, nil
}

func (u *catalogUsecase) UpdateServicePrice(ctx context.Context, s entity.Service, rawPrice string) error {
	price, msg := ParsePrice(rawPrice)
	if msg != "" {
		return &FormError{Fields: map[string]string{"price": msg}}
	}

	old := s.Price
	s.Price = price
	if err := u.catalogRepo.UpdateService(ctx, s); err != nil {
		u.log.Warnf("Failed to update service %d: %+v", s.ID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionServiceUpdate, "service", strconv.Itoa(s.ID), old.String(), price.String())
	return nil
}

func (u *catalogUsecase) UpdateMaterialPrice(ctx context.Context, m entity.Material, rawPrice string) error {
	price, msg := ParsePrice(rawPrice)
	if msg != "" {
		return &FormError{Fields: map[string]string{"price": msg}}
	}

	old := m.Price
	m.Price = price
	if err := u.catalogRepo.UpdateMaterial(ctx, m); err != nil {
		u.log.Warnf("Failed to update material %d: %+v", m.ID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionMaterialUpdate, "material", strconv.Itoa(m.ID), old.String(), price.String())
	return nil
}

func (u *catalogUsecase) DeleteService(ctx context.Context, s entity.Service) error {
	if err := u.catalogRepo.DeleteService(ctx, s.ID); err != nil {
		u.log.Warnf("Failed to delete service %d: %+v", s.ID, err)
		return err
	}
	_ = u.audit.LogDelete(ctx, entity.AuditActionServiceDelete, "service", strconv.Itoa(s.ID), s.Name)
	return nil
}

func (u *catalogUsecase) DeleteMaterial(ctx context.Context, m entity.Material) error {
	if err := u.catalogRepo.DeleteMaterial(ctx, m.ID); err != nil {
		u.log.Warnf("Failed to delete material %d: %+v", m.ID, err)
		return err
	}
	_ = u.audit.LogDelete(ctx, entity.AuditActionMaterialDelete, "material", strconv.Itoa(m.ID), m.Name)
	return nil
}

func (u *catalogUsecase) AddService(ctx context.Context, name, rawPrice string, categoryID int) error {
	check := formCheck{}
	check.notBlank("name", name, MsgNameRequired)
	if categoryID == 0 {
		check.set("category_id", MsgCategoryRequired)
	}
	price, msg := ParsePrice(rawPrice)
	check.set("price", msg)
	if err := check.err(); err != nil {
		return err
	}

	s := entity.Service{Name: strings.TrimSpace(name), Price: price, CategoryID: categoryID}
	if err := u.catalogRepo.CreateService(ctx, s); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return err
	}

	_ = u.audit.LogCreate(ctx, entity.AuditActionServiceCreate, "service", s.Name, s)
	return nil
}

func (u *catalogUsecase) AddMaterial(ctx context.Context, name, rawPrice string) error {
	check := formCheck{}
	check.notBlank("name", name, MsgNameRequired)
	price, msg := ParsePrice(rawPrice)
	check.set("price", msg)
	if err := check.err(); err != nil {
		return err
	}

	m := entity.Material{Name: strings.TrimSpace(name), Price: price}
	if err := u.catalogRepo.CreateMaterial(ctx, m); err != nil {
		u.log.Warnf("Failed to create material: %+v", err)
		return err
	}

	_ = u.audit.LogCreate(ctx, entity.AuditActionMaterialCreate, "material", m.Name, m)
	return nil
}
