package viewmodel

import (
	"context"
	"encoding/json"

	"clinic-portal/internal/domain/entity"
)

const msgStatisticsFailed = "Ошибка при загрузке статистики"

type CountView struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FigureView is a chart point. Values are rounded to kopecks.
type FigureView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type StatisticsView struct {
	Header
	Feedback
	Loaded               bool         `json:"loaded"`
	TotalPatients        int          `json:"total_patients"`
	TotalVisits          int          `json:"total_visits"`
	NewPatientsThisMonth int          `json:"new_patients_this_month"`
	AvgVisitsPerPatient  string       `json:"avg_visits_per_patient"`
	TotalIncome          string       `json:"total_income"`
	MonthlyIncome        string       `json:"monthly_income"`
	ClinicAvgCheck       string       `json:"clinic_avg_check"`
	TopServices          []CountView  `json:"top_services"`
	DoctorLoad           []FigureView `json:"doctor_load"`
	DoctorChecks         []FigureView `json:"doctor_checks"`
	DoctorPatients       []FigureView `json:"doctor_patients"`
	AgeGroups            []FigureView `json:"age_groups"`
}

type statisticsPage struct {
	base
	stats *entity.ClinicStats
}

func newStatisticsPage(deps *Deps) Page {
	p := &statisticsPage{base: newBase(deps, KindStatistics, "admin-profile")}
	p.on("refresh", func(ctx context.Context, _ json.RawMessage) error {
		p.load(ctx)
		return nil
	})
	return p
}

func (p *statisticsPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.load(ctx)
	return nil
}

// load keeps the last figures when a refresh fails.
func (p *statisticsPage) load(ctx context.Context) {
	stats, err := p.deps.Statistics.GetStatistics(ctx)
	if err != nil {
		p.alert = msgStatisticsFailed
		return
	}
	p.stats = stats
}

func figures(in []entity.DoctorFigure) []FigureView {
	out := make([]FigureView, 0, len(in))
	for _, f := range in {
		out = append(out, FigureView{Label: f.Doctor, Value: f.Value.StringFixed(2)})
	}
	return out
}

func (p *statisticsPage) View() interface{} {
	v := StatisticsView{
		Header:         p.header(),
		Feedback:       p.feedback(),
		TopServices:    []CountView{},
		DoctorLoad:     []FigureView{},
		DoctorChecks:   []FigureView{},
		DoctorPatients: []FigureView{},
		AgeGroups:      []FigureView{},
	}
	s := p.stats
	if s == nil {
		return v
	}
	v.Loaded = true
	v.TotalPatients = s.TotalPatients
	v.TotalVisits = s.TotalVisits
	v.NewPatientsThisMonth = s.NewPatientsThisMonth
	v.AvgVisitsPerPatient = s.AvgVisitsPerPatient.StringFixed(2)
	v.TotalIncome = s.TotalIncome.StringFixed(2)
	v.MonthlyIncome = s.MonthlyIncome.StringFixed(2)
	v.ClinicAvgCheck = s.ClinicAvgCheck.StringFixed(2)
	for _, svc := range s.TopServices {
		v.TopServices = append(v.TopServices, CountView{Label: svc.Name, Count: svc.Count})
	}
	v.DoctorLoad = figures(s.DoctorLoad)
	v.DoctorChecks = figures(s.DoctorChecks)
	v.DoctorPatients = figures(s.DoctorPatients)
	for _, g := range s.AgeGroups {
		v.AgeGroups = append(v.AgeGroups, FigureView{Label: g.Group, Value: g.Percent.StringFixed(2)})
	}
	return v
}
