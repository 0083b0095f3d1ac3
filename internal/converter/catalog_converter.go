package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func ServicesToEntities(ss []dto.ServiceDTO) []entity.Service {
	out := make([]entity.Service, len(ss))
	for i, s := range ss {
		out[i] = entity.Service{ID: s.ID, Name: s.Name, Price: s.Price, CategoryID: s.CategoryID}
	}
	return out
}

func MaterialsToEntities(ms []dto.MaterialDTO) []entity.Material {
	out := make([]entity.Material, len(ms))
	for i, m := range ms {
		out[i] = entity.Material{ID: m.ID, Name: m.Name, Price: m.Price}
	}
	return out
}

func CategoriesToEntities(cs []dto.CategoryDTO) []entity.ServiceCategory {
	out := make([]entity.ServiceCategory, len(cs))
	for i, c := range cs {
		out[i] = entity.ServiceCategory{ID: c.ID, Name: c.Name}
	}
	return out
}

func ICDCodesToEntities(cs []dto.ICDCodeDTO) []entity.ICDCode {
	out := make([]entity.ICDCode, len(cs))
	for i, c := range cs {
		out[i] = entity.ICDCode{ID: c.ID, Code: c.Code, Name: c.Name}
	}
	return out
}

// ServiceToPayload expects a whole-rouble price; see usecase.ParsePrice.
func ServiceToPayload(s entity.Service) dto.ServicePayload {
	return dto.ServicePayload{
		Name:       s.Name,
		Price:      s.Price.IntPart(),
		CategoryID: s.CategoryID,
	}
}

func MaterialToPayload(m entity.Material) dto.MaterialPayload {
	return dto.MaterialPayload{
		Name:  m.Name,
		Price: m.Price.IntPart(),
	}
}
