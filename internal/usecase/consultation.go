package usecase

import (
	"strings"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/schedule"

	"github.com/shopspring/decimal"
)

// Validation lines of the consultation form, in display order.
const (
	MsgComplaintsRequired = `Заполните поле "Жалобы".`
	MsgTreatmentRequired  = `Заполните поле "Лечение".`
	MsgServiceRequired    = "Выберите хотя бы одну услугу."
	MsgMaterialQuantity   = "Количество для выбранных материалов должно быть больше 0"
)

// Age returns full years between birthDate and now. Both DD.MM.YYYY and
// YYYY-MM-DD are accepted.
func Age(birthDate string, now time.Time) (int, bool) {
	birth, err := time.ParseInLocation("02.01.2006", birthDate, now.Location())
	if err != nil {
		birth, err = time.ParseInLocation(schedule.DateLayout, birthDate, now.Location())
		if err != nil {
			return 0, false
		}
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// YearWord picks the Russian plural of "год" for n.
func YearWord(n int) string {
	if n < 0 {
		n = -n
	}
	switch last2 := n % 100; {
	case last2 >= 11 && last2 <= 14:
		return "лет"
	}
	switch n % 10 {
	case 1:
		return "год"
	case 2, 3, 4:
		return "года"
	}
	return "лет"
}

// SelectedICD is a diagnosis picked from the classifier with the doctor's comment.
type SelectedICD struct {
	entity.ICDCode
	Comment string
}

// ConsultationDraft is the unsaved state of a consultation form.
type ConsultationDraft struct {
	Complaints   string
	Treatment    string
	Services     []int
	Materials    []entity.ItemQuantity
	ICD          []SelectedICD
	NewAllergies []string
	NewChronics  []string
}

// AddNote queues a new allergy or chronic condition. Blank titles and
// titles already on the card or in the queue are ignored.
func (d *ConsultationDraft) AddNote(kind entity.NoteType, title string, existing []entity.PatientNote) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	for _, n := range existing {
		if n.Type == kind && n.Title == title {
			return false
		}
	}

	queue := &d.NewAllergies
	if kind == entity.NoteChronic {
		queue = &d.NewChronics
	}
	for _, t := range *queue {
		if t == title {
			return false
		}
	}
	*queue = append(*queue, title)
	return true
}

// RemoveNote drops a queued note. Notes already on the card stay.
func (d *ConsultationDraft) RemoveNote(kind entity.NoteType, title string) {
	queue := &d.NewAllergies
	if kind == entity.NoteChronic {
		queue = &d.NewChronics
	}
	out := (*queue)[:0]
	for _, t := range *queue {
		if t != title {
			out = append(out, t)
		}
	}
	*queue = out
}

func (d *ConsultationDraft) SelectService(id int) {
	for _, s := range d.Services {
		if s == id {
			return
		}
	}
	d.Services = append(d.Services, id)
}

func (d *ConsultationDraft) RemoveService(id int) {
	out := d.Services[:0]
	for _, s := range d.Services {
		if s != id {
			out = append(out, s)
		}
	}
	d.Services = out
}

// SelectMaterial adds a material with quantity 1 unless already selected.
func (d *ConsultationDraft) SelectMaterial(id int) {
	for _, m := range d.Materials {
		if m.ID == id {
			return
		}
	}
	d.Materials = append(d.Materials, entity.ItemQuantity{ID: id, Quantity: 1})
}

func (d *ConsultationDraft) SetMaterialQuantity(id, quantity int) bool {
	for i := range d.Materials {
		if d.Materials[i].ID == id {
			d.Materials[i].Quantity = quantity
			return true
		}
	}
	return false
}

func (d *ConsultationDraft) RemoveMaterial(id int) {
	out := d.Materials[:0]
	for _, m := range d.Materials {
		if m.ID != id {
			out = append(out, m)
		}
	}
	d.Materials = out
}

// AddICD selects a classifier entry once per code.
func (d *ConsultationDraft) AddICD(code entity.ICDCode) {
	for _, s := range d.ICD {
		if s.Code == code.Code {
			return
		}
	}
	d.ICD = append(d.ICD, SelectedICD{ICDCode: code})
}

func (d *ConsultationDraft) RemoveICD(id int) {
	out := d.ICD[:0]
	for _, s := range d.ICD {
		if s.ID != id {
			out = append(out, s)
		}
	}
	d.ICD = out
}

func (d *ConsultationDraft) SetICDComment(id int, comment string) bool {
	for i := range d.ICD {
		if d.ICD[i].ID == id {
			d.ICD[i].Comment = comment
			return true
		}
	}
	return false
}

// Total is the sum of selected service prices plus material price times
// quantity. Unknown ids contribute nothing.
func (d *ConsultationDraft) Total(services []entity.Service, materials []entity.Material) decimal.Decimal {
	servicePrice := make(map[int]decimal.Decimal, len(services))
	for _, s := range services {
		servicePrice[s.ID] = s.Price
	}
	materialPrice := make(map[int]decimal.Decimal, len(materials))
	for _, m := range materials {
		materialPrice[m.ID] = m.Price
	}

	total := decimal.Zero
	for _, id := range d.Services {
		total = total.Add(servicePrice[id])
	}
	for _, m := range d.Materials {
		if price, ok := materialPrice[m.ID]; ok {
			total = total.Add(price.Mul(decimal.NewFromInt(int64(m.Quantity))))
		}
	}
	return total
}

// Problems lists what blocks submission, empty when the draft is complete.
func (d *ConsultationDraft) Problems() []string {
	var problems []string
	if strings.TrimSpace(d.Complaints) == "" {
		problems = append(problems, MsgComplaintsRequired)
	}
	if strings.TrimSpace(d.Treatment) == "" {
		problems = append(problems, MsgTreatmentRequired)
	}
	if len(d.Services) == 0 {
		problems = append(problems, MsgServiceRequired)
	}
	for _, m := range d.Materials {
		if m.Quantity <= 0 {
			problems = append(problems, MsgMaterialQuantity)
			break
		}
	}
	return problems
}

// NewNotes returns the queued notes, allergies first.
func (d *ConsultationDraft) NewNotes() []entity.PatientNote {
	notes := make([]entity.PatientNote, 0, len(d.NewAllergies)+len(d.NewChronics))
	for _, t := range d.NewAllergies {
		notes = append(notes, entity.PatientNote{Type: entity.NoteAllergy, Title: t})
	}
	for _, t := range d.NewChronics {
		notes = append(notes, entity.PatientNote{Type: entity.NoteChronic, Title: t})
	}
	return notes
}

// Record builds the visit to submit.
func (d *ConsultationDraft) Record(appointmentID, patientID, doctorID int) entity.VisitRecord {
	services := make([]entity.ItemQuantity, len(d.Services))
	for i, id := range d.Services {
		services[i] = entity.ItemQuantity{ID: id, Quantity: 1}
	}
	diagnoses := make([]entity.DiagnosisInput, len(d.ICD))
	for i, s := range d.ICD {
		diagnoses[i] = entity.DiagnosisInput{ICDCodeID: s.ID, Comment: s.Comment}
	}
	return entity.VisitRecord{
		AppointmentID: appointmentID,
		PatientID:     patientID,
		DoctorID:      doctorID,
		Complaints:    d.Complaints,
		Treatment:     d.Treatment,
		Services:      services,
		Materials:     append([]entity.ItemQuantity(nil), d.Materials...),
		Diagnoses:     diagnoses,
	}
}
