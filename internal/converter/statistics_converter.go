package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func StatisticsToEntity(s dto.StatisticsDTO) *entity.ClinicStats {
	stats := &entity.ClinicStats{
		TotalPatients:        s.TotalPatients,
		TotalVisits:          s.TotalVisits,
		NewPatientsThisMonth: s.NewPatientsThisMonth,
		AvgVisitsPerPatient:  s.AvgVisitPerPatient,
		TotalIncome:          s.TotalIncome,
		MonthlyIncome:        s.MonthlyIncome,
		ClinicAvgCheck:       s.ClinicAvgCheck,
		TopServices:          make([]entity.ServiceUsage, len(s.TopServices)),
		DoctorLoad:           make([]entity.DoctorFigure, len(s.DoctorAvgVisit)),
		DoctorChecks:         make([]entity.DoctorFigure, len(s.DoctorCheckStat)),
		DoctorPatients:       make([]entity.DoctorFigure, len(s.DoctorUniquePatients)),
		AgeGroups:            make([]entity.AgeGroupShare, len(s.AgeGroupStat)),
	}
	for i, t := range s.TopServices {
		stats.TopServices[i] = entity.ServiceUsage{Name: t.Name, Count: t.Count}
	}
	for i, d := range s.DoctorAvgVisit {
		stats.DoctorLoad[i] = entity.DoctorFigure{Doctor: d.Doctor, Value: d.AvgWeeklyVisits}
	}
	for i, d := range s.DoctorCheckStat {
		stats.DoctorChecks[i] = entity.DoctorFigure{Doctor: d.Doctor, Value: d.AvgCheck}
	}
	for i, d := range s.DoctorUniquePatients {
		stats.DoctorPatients[i] = entity.DoctorFigure{Doctor: d.Doctor, Value: decimal.NewFromInt(int64(d.UniquePatients))}
	}
	for i, a := range s.AgeGroupStat {
		stats.AgeGroups[i] = entity.AgeGroupShare{Group: a.AgeGroup, Percent: a.Percent}
	}
	return stats
}
