package entity

import "github.com/shopspring/decimal"

// ClinicStats is the superadmin dashboard. Money is in roubles.
type ClinicStats struct {
	TotalPatients        int
	TotalVisits          int
	NewPatientsThisMonth int
	AvgVisitsPerPatient  decimal.Decimal

	TotalIncome    decimal.Decimal
	MonthlyIncome  decimal.Decimal
	ClinicAvgCheck decimal.Decimal

	TopServices    []ServiceUsage
	DoctorLoad     []DoctorFigure // average visits per week
	DoctorChecks   []DoctorFigure // average check
	DoctorPatients []DoctorFigure // unique patients
	AgeGroups      []AgeGroupShare
}

type ServiceUsage struct {
	Name  string
	Count int
}

type DoctorFigure struct {
	Doctor string
	Value  decimal.Decimal
}

type AgeGroupShare struct {
	Group   string
	Percent decimal.Decimal
}
