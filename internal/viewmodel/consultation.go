package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/usecase"

	"github.com/shopspring/decimal"
)

const (
	msgVisitSaved       = "Прием сохранен"
	msgVisitSaveFailed  = "Ошибка при сохранении."
	msgAppointmentLost  = "Идентификатор записи не найден."
	redirectDoctorAfter = "/doctor_account.html"
)

type NoteView struct {
	Title string `json:"title"`
	New   bool   `json:"new"`
}

type DiagnosisView struct {
	Code  string `json:"code"`
	Notes string `json:"notes"`
}

type PastVisitView struct {
	ID         int             `json:"id"`
	Date       string          `json:"date"`
	Doctor     string          `json:"doctor"`
	Complaints string          `json:"complaints"`
	Treatment  string          `json:"treatment"`
	Diagnoses  []DiagnosisView `json:"diagnoses"`
}

type SelectedMaterialView struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type SelectedICDView struct {
	ID      int    `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

type ICDView struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type ConsultationView struct {
	Header
	Feedback
	AppointmentID int                    `json:"appointment_id"`
	Date          string                 `json:"date"`
	Time          string                 `json:"time"`
	Patient       PersonView             `json:"patient"`
	Age           string                 `json:"age"`
	Allergies     []NoteView             `json:"allergies"`
	Chronics      []NoteView             `json:"chronics"`
	History       []PastVisitView        `json:"history"`
	Documents     []DocumentView         `json:"documents"`
	Services      []PriceItemView        `json:"services"`
	Materials     []PriceItemView        `json:"materials"`
	ICDCodes      []ICDView              `json:"icd_codes"`
	Complaints    string                 `json:"complaints"`
	Treatment     string                 `json:"treatment"`
	Selected      []PriceItemView        `json:"selected_services"`
	SelectedMats  []SelectedMaterialView `json:"selected_materials"`
	SelectedICD   []SelectedICDView      `json:"selected_icd"`
	Total         decimal.Decimal        `json:"total"`
	Submitted     bool                   `json:"submitted"`
	Redirect      string                 `json:"redirect,omitempty"`
}

// consultationPage is the doctor's visit form for one appointment.
type consultationPage struct {
	base

	appointment *entity.AppointmentDetails
	notes       []entity.PatientNote
	history     []entity.PastVisit
	documents   []entity.Document
	services    []entity.Service
	materials   []entity.Material
	icd         []entity.ICDCode

	draft     usecase.ConsultationDraft
	submitted bool
}

func newConsultationPage(deps *Deps) Page {
	p := &consultationPage{base: newBase(deps, KindConsultation, "doctor-profile")}
	p.on("add_allergy", p.addNote(entity.NoteAllergy))
	p.on("add_chronic", p.addNote(entity.NoteChronic))
	p.on("remove_allergy", p.removeNote(entity.NoteAllergy))
	p.on("remove_chronic", p.removeNote(entity.NoteChronic))
	p.on("select_service", p.selectService)
	p.on("remove_service", p.withID(p.draft.RemoveService))
	p.on("select_material", p.selectMaterial)
	p.on("set_material_quantity", p.setMaterialQuantity)
	p.on("remove_material", p.withID(p.draft.RemoveMaterial))
	p.on("add_icd", p.addICD)
	p.on("remove_icd", p.withID(p.draft.RemoveICD))
	p.on("set_icd_comment", p.setICDComment)
	p.on("set_field", p.setField)
	p.on("submit", p.submit)
	return p
}

func (p *consultationPage) Mount(ctx context.Context, s Session) error {
	if s.AppointmentID == 0 {
		return ErrNoAppointment
	}
	p.attach(s)
	p.loadIdentity(ctx)

	appt, err := p.deps.Appointment.GetAppointment(ctx, s.AppointmentID)
	if err != nil || appt == nil {
		p.alert = msgAppointmentLost
	} else {
		p.appointment = appt
		p.notes, _ = p.deps.Visits.GetNotes(ctx, appt.PatientID)
		p.history, _ = p.deps.Visits.GetPastVisits(ctx, appt.PatientID)
		p.documents, _ = p.deps.Visits.GetPatientDocuments(ctx, appt.PatientID)
	}

	p.services, _ = p.deps.Catalog.GetServices(ctx)
	p.materials, _ = p.deps.Catalog.GetMaterials(ctx)
	p.icd, _ = p.deps.Catalog.GetICDCodes(ctx)
	return nil
}

func (p *consultationPage) addNote(kind entity.NoteType) action {
	return func(_ context.Context, payload json.RawMessage) error {
		var in dto.NotePayload
		if err := p.decode(payload, &in); err != nil {
			return err
		}
		p.draft.AddNote(kind, in.Title, p.notes)
		return nil
	}
}

func (p *consultationPage) removeNote(kind entity.NoteType) action {
	return func(_ context.Context, payload json.RawMessage) error {
		var in dto.NotePayload
		if err := p.decode(payload, &in); err != nil {
			return err
		}
		p.draft.RemoveNote(kind, in.Title)
		return nil
	}
}

func (p *consultationPage) withID(fn func(id int)) action {
	return func(_ context.Context, payload json.RawMessage) error {
		var in dto.IDPayload
		if err := p.decode(payload, &in); err != nil {
			return err
		}
		fn(in.ID)
		return nil
	}
}

func (p *consultationPage) selectService(_ context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	for _, s := range p.services {
		if s.ID == in.ID {
			p.draft.SelectService(in.ID)
			return nil
		}
	}
	return ErrUnknownElement
}

func (p *consultationPage) selectMaterial(_ context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	for _, m := range p.materials {
		if m.ID == in.ID {
			p.draft.SelectMaterial(in.ID)
			return nil
		}
	}
	return ErrUnknownElement
}

func (p *consultationPage) setMaterialQuantity(_ context.Context, payload json.RawMessage) error {
	var in dto.QuantityPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if !p.draft.SetMaterialQuantity(in.ID, in.Quantity) {
		return ErrNothingChosen
	}
	return nil
}

func (p *consultationPage) addICD(_ context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	for _, c := range p.icd {
		if c.ID == in.ID {
			p.draft.AddICD(c)
			return nil
		}
	}
	return ErrUnknownElement
}

func (p *consultationPage) setICDComment(_ context.Context, payload json.RawMessage) error {
	var in dto.ICDCommentPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if !p.draft.SetICDComment(in.ID, in.Comment) {
		return ErrNothingChosen
	}
	return nil
}

func (p *consultationPage) setField(_ context.Context, payload json.RawMessage) error {
	var in dto.FieldPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if in.Field == "complaints" {
		p.draft.Complaints = in.Value
	} else {
		p.draft.Treatment = in.Value
	}
	return nil
}

func (p *consultationPage) submit(ctx context.Context, _ json.RawMessage) error {
	if p.appointment == nil {
		p.alert = msgAppointmentLost
		return nil
	}
	doctorID := p.session.UserID
	if p.identity != nil {
		doctorID = p.identity.UserID
	}

	err := p.deps.Visits.SubmitConsultation(ctx, *p.appointment, doctorID, &p.draft)
	var draftErr *usecase.DraftError
	switch {
	case err == nil:
		p.submitted = true
		p.alert = msgVisitSaved
	case errors.As(err, &draftErr):
		p.alert = draftErr.Error()
	default:
		p.alert = msgVisitSaveFailed
	}
	return nil
}

func (p *consultationPage) noteViews(kind entity.NoteType, queued []string) []NoteView {
	out := []NoteView{}
	for _, n := range p.notes {
		if n.Type == kind {
			out = append(out, NoteView{Title: n.Title})
		}
	}
	for _, t := range queued {
		out = append(out, NoteView{Title: t, New: true})
	}
	return out
}

func (p *consultationPage) View() interface{} {
	v := ConsultationView{
		Header:       p.header(),
		Feedback:     p.feedback(),
		Allergies:    p.noteViews(entity.NoteAllergy, p.draft.NewAllergies),
		Chronics:     p.noteViews(entity.NoteChronic, p.draft.NewChronics),
		History:      make([]PastVisitView, len(p.history)),
		Documents:    documentViews(p.documents),
		Services:     serviceViews(p.services, nil),
		Materials:    materialViews(p.materials),
		ICDCodes:     make([]ICDView, len(p.icd)),
		Complaints:   p.draft.Complaints,
		Treatment:    p.draft.Treatment,
		Selected:     []PriceItemView{},
		SelectedMats: make([]SelectedMaterialView, 0, len(p.draft.Materials)),
		SelectedICD:  make([]SelectedICDView, len(p.draft.ICD)),
		Total:        p.draft.Total(p.services, p.materials),
		Submitted:    p.submitted,
	}
	if p.submitted {
		v.Redirect = redirectDoctorAfter
	}

	if a := p.appointment; a != nil {
		v.AppointmentID = a.ID
		v.Date, v.Time = a.Date, a.Time
		v.Patient = personView(a.Person)
		if age, ok := usecase.Age(a.BirthDate, p.deps.Now()); ok {
			v.Age = fmt.Sprintf("%d %s", age, usecase.YearWord(age))
		}
	}

	for i, h := range p.history {
		diagnoses := make([]DiagnosisView, len(h.Diagnoses))
		for j, d := range h.Diagnoses {
			diagnoses[j] = DiagnosisView{Code: d.ICDCode, Notes: d.Notes}
		}
		v.History[i] = PastVisitView{
			ID: h.ID, Date: h.CreatedAt, Doctor: h.Doctor,
			Complaints: h.Complaints, Treatment: h.Treatment, Diagnoses: diagnoses,
		}
	}
	for i, c := range p.icd {
		v.ICDCodes[i] = ICDView{ID: c.ID, Code: c.Code, Name: c.Name}
	}

	selected := make(map[int]bool, len(p.draft.Services))
	for _, id := range p.draft.Services {
		selected[id] = true
	}
	for _, s := range v.Services {
		if selected[s.ID] {
			v.Selected = append(v.Selected, s)
		}
	}
	for _, q := range p.draft.Materials {
		for _, m := range p.materials {
			if m.ID == q.ID {
				v.SelectedMats = append(v.SelectedMats, SelectedMaterialView{ID: m.ID, Name: m.Name, Price: m.Price, Quantity: q.Quantity})
			}
		}
	}
	for i, s := range p.draft.ICD {
		v.SelectedICD[i] = SelectedICDView{ID: s.ID, Code: s.Code, Name: s.Name, Comment: s.Comment}
	}
	return v
}
