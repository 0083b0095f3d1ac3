package dto

import "github.com/shopspring/decimal"

// StatisticsDTO is /api/statistics. Empty lists may arrive as null.
type StatisticsDTO struct {
	TotalPatients        int                 `json:"totalPatients" validate:"gte=0"`
	TotalVisits          int                 `json:"totalVisits" validate:"gte=0"`
	TopServices          []TopServiceDTO     `json:"topServices" validate:"dive"`
	DoctorAvgVisit       []DoctorAvgVisitDTO `json:"doctorAvgVisit"`
	DoctorCheckStat      []DoctorCheckDTO    `json:"doctorCheckStat"`
	DoctorUniquePatients []DoctorPatientsDTO `json:"doctorUniquePatients"`
	AgeGroupStat         []AgeGroupDTO       `json:"ageGroupStat"`
	NewPatientsThisMonth int                 `json:"newPatientsThisMonth" validate:"gte=0"`
	AvgVisitPerPatient   decimal.Decimal     `json:"avgVisitPerPatient"`
	TotalIncome          decimal.Decimal     `json:"totalIncome"`
	MonthlyIncome        decimal.Decimal     `json:"monthlyIncome"`
	ClinicAvgCheck       decimal.Decimal     `json:"clinicAvgCheck"`
}

type TopServiceDTO struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

type DoctorAvgVisitDTO struct {
	Doctor          string          `json:"doctor"`
	AvgWeeklyVisits decimal.Decimal `json:"avgWeeklyVisits"`
}

type DoctorCheckDTO struct {
	Doctor   string          `json:"doctor"`
	AvgCheck decimal.Decimal `json:"avgCheck"`
}

// DoctorPatientsDTO names the doctor in doctorId despite the key.
type DoctorPatientsDTO struct {
	Doctor         string `json:"doctorId"`
	UniquePatients int    `json:"uniquePatients"`
}

type AgeGroupDTO struct {
	AgeGroup string          `json:"ageGroup"`
	Percent  decimal.Decimal `json:"percent"`
}
