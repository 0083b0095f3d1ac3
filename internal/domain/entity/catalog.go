package entity

import "github.com/shopspring/decimal"

// Service is a billable manipulation from the price list.
type Service struct {
	ID         int
	Name       string
	Price      decimal.Decimal
	CategoryID int
}

type Material struct {
	ID    int
	Name  string
	Price decimal.Decimal
}

type ServiceCategory struct {
	ID   int
	Name string
}

type Specialty struct {
	ID   int
	Name string
}

// ICDCode is an entry of the diagnosis classifier.
type ICDCode struct {
	ID   int
	Code string
	Name string
}
