package dto

import "github.com/shopspring/decimal"

// ServiceDTO is a price-list service. Prices travel as JSON numbers.
type ServiceDTO struct {
	ID         int             `json:"id,omitempty"`
	Name       string          `json:"name" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int             `json:"category_id"`
}

type MaterialDTO struct {
	ID    int             `json:"id,omitempty"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

type ServiceListResponse struct {
	Services []ServiceDTO `json:"services" validate:"dive"`
}

type MaterialListResponse struct {
	Materials []MaterialDTO `json:"materials" validate:"dive"`
}

type CategoryDTO struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type CategoryListResponse struct {
	Categories []CategoryDTO `json:"categories" validate:"dive"`
}

type ICDCodeDTO struct {
	ID   int    `json:"id" validate:"required"`
	Code string `json:"code" validate:"required"`
	Name string `json:"name"`
}

// ServicePayload is the body of POST/PUT /api/services. The API stores
// whole roubles.
type ServicePayload struct {
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	CategoryID int    `json:"category_id"`
}

type MaterialPayload struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
