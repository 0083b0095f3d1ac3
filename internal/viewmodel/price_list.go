package viewmodel

import (
	"context"
	"encoding/json"
	"errors"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/usecase"
)

const (
	TabServices  = "services"
	TabMaterials = "materials"
)

const (
	msgPriceSaveFailed      = "Не удалось сохранить изменения."
	msgServiceDeleteFailed  = "Не удалось удалить услугу."
	msgMaterialDeleteFailed = "Не удалось удалить расходный материал."
	msgGenericFailure       = "Произошла ошибка."
)

// upstreamMessage is the API's own error text, or fallback.
func upstreamMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type PriceListView struct {
	Header
	Feedback
	Tab        string          `json:"tab"`
	Search     string          `json:"search"`
	CategoryID int             `json:"category_id"`
	Categories []OptionView    `json:"categories"`
	Services   []PriceItemView `json:"services"`
	Materials  []PriceItemView `json:"materials"`
}

type priceListPage struct {
	base
	tab        string
	services   *usecase.ListView[entity.Service]
	materials  *usecase.ListView[entity.Material]
	categories []entity.ServiceCategory
}

func newPriceListPage(deps *Deps) Page {
	p := &priceListPage{
		base: newBase(deps, KindPriceList, "admin-profile"),
		tab:  TabServices,
		services: usecase.NewListView(func(s entity.Service, f entity.ListFilter) bool {
			return (f.CategoryID == 0 || s.CategoryID == f.CategoryID) && f.Matches(s.Name)
		}),
		materials: usecase.NewListView(func(m entity.Material, f entity.ListFilter) bool {
			return f.Matches(m.Name)
		}),
	}
	p.on("set_tab", p.setTab)
	p.on("set_filter", p.setFilter)
	p.on("update_service_price", p.updateServicePrice)
	p.on("update_material_price", p.updateMaterialPrice)
	p.on("delete_service", p.deleteService)
	p.on("delete_material", p.deleteMaterial)
	p.on("add_item", p.addItem)
	return p
}

func (p *priceListPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.categories, _ = p.deps.Catalog.GetCategories(ctx)
	p.reload(ctx)
	return nil
}

func (p *priceListPage) reload(ctx context.Context) {
	services, _ := p.deps.Catalog.GetServices(ctx)
	p.services.Set(services)
	materials, _ := p.deps.Catalog.GetMaterials(ctx)
	p.materials.Set(materials)
}

func (p *priceListPage) setTab(_ context.Context, payload json.RawMessage) error {
	var in dto.TabPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if in.Tab != TabServices && in.Tab != TabMaterials {
		return &PayloadError{Fields: map[string]string{"tab": "unknown tab"}, Err: ErrUnknownElement}
	}
	p.tab = in.Tab
	return nil
}

func (p *priceListPage) setFilter(_ context.Context, payload json.RawMessage) error {
	var in dto.FilterPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	f := entity.ListFilter{Search: in.Search, CategoryID: in.CategoryID}
	p.services.SetFilter(f)
	p.materials.SetFilter(entity.ListFilter{Search: in.Search})
	return nil
}

func (p *priceListPage) service(id int) (entity.Service, error) {
	s, ok := p.services.Find(func(s entity.Service) bool { return s.ID == id })
	if !ok {
		return s, ErrUnknownElement
	}
	return s, nil
}

func (p *priceListPage) material(id int) (entity.Material, error) {
	m, ok := p.materials.Find(func(m entity.Material) bool { return m.ID == id })
	if !ok {
		return m, ErrUnknownElement
	}
	return m, nil
}

func (p *priceListPage) updateServicePrice(ctx context.Context, payload json.RawMessage) error {
	var in dto.PricePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	s, err := p.service(in.ID)
	if err != nil {
		return err
	}
	if err := p.deps.Catalog.UpdateServicePrice(ctx, s, in.Price); err != nil {
		p.fail(err, msgPriceSaveFailed)
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *priceListPage) updateMaterialPrice(ctx context.Context, payload json.RawMessage) error {
	var in dto.PricePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	m, err := p.material(in.ID)
	if err != nil {
		return err
	}
	if err := p.deps.Catalog.UpdateMaterialPrice(ctx, m, in.Price); err != nil {
		p.fail(err, msgPriceSaveFailed)
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *priceListPage) deleteService(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	s, err := p.service(in.ID)
	if err != nil {
		return err
	}
	if err := p.deps.Catalog.DeleteService(ctx, s); err != nil {
		p.alert = msgServiceDeleteFailed
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *priceListPage) deleteMaterial(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	m, err := p.material(in.ID)
	if err != nil {
		return err
	}
	if err := p.deps.Catalog.DeleteMaterial(ctx, m); err != nil {
		p.alert = msgMaterialDeleteFailed
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *priceListPage) addItem(ctx context.Context, payload json.RawMessage) error {
	var in dto.NewItemPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}

	var err error
	if in.Kind == "service" {
		err = p.deps.Catalog.AddService(ctx, in.Name, in.Price, in.CategoryID)
	} else {
		err = p.deps.Catalog.AddMaterial(ctx, in.Name, in.Price)
	}
	if err != nil {
		p.fail(err, upstreamMessage(err, msgGenericFailure))
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *priceListPage) View() interface{} {
	f := p.services.Filter()
	return PriceListView{
		Header:     p.header(),
		Feedback:   p.feedback(),
		Tab:        p.tab,
		Search:     f.Search,
		CategoryID: f.CategoryID,
		Categories: categoryOptions(p.categories),
		Services:   serviceViews(p.services.Filtered(), p.categories),
		Materials:  materialViews(p.materials.Filtered()),
	}
}
