package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

const noDescription = "Без описания"

func PatientNotesToEntities(ns []dto.PatientNoteDTO) []entity.PatientNote {
	out := make([]entity.PatientNote, len(ns))
	for i, n := range ns {
		out[i] = entity.PatientNote{Type: entity.NoteType(n.Type), Title: n.Title}
	}
	return out
}

func PatientNotesToDTOs(ns []entity.PatientNote) []dto.PatientNoteDTO {
	out := make([]dto.PatientNoteDTO, len(ns))
	for i, n := range ns {
		out[i] = dto.PatientNoteDTO{Type: string(n.Type), Title: n.Title}
	}
	return out
}

func PastVisitsToEntities(vs []dto.PastVisitDTO) []entity.PastVisit {
	out := make([]entity.PastVisit, len(vs))
	for i, v := range vs {
		diagnoses := make([]entity.Diagnosis, len(v.Diagnoses))
		for j, d := range v.Diagnoses {
			diagnoses[j] = entity.Diagnosis{ICDCode: d.ICDCode, Notes: d.Notes}
		}
		out[i] = entity.PastVisit{
			ID:         v.ID,
			CreatedAt:  v.CreatedAt,
			Doctor:     v.Doctor,
			Complaints: v.Complaints,
			Treatment:  v.Treatment,
			Diagnoses:  diagnoses,
		}
	}
	return out
}

func HistoryToEntities(hs []dto.HistoryEntryDTO) []entity.HistoryEntry {
	out := make([]entity.HistoryEntry, len(hs))
	for i, h := range hs {
		out[i] = entity.HistoryEntry{
			ID:        h.ID,
			Date:      h.Date,
			DoctorID:  h.DoctorID,
			Doctor:    h.Doctor,
			Diagnosis: h.Diagnose,
			Treatment: h.Treatment,
		}
	}
	return out
}

// DocumentsToEntities fills in the default description.
func DocumentsToEntities(ds []dto.DocumentDTO) []entity.Document {
	out := make([]entity.Document, len(ds))
	for i, d := range ds {
		desc := d.Description
		if desc == "" {
			desc = noDescription
		}
		out[i] = entity.Document{ID: d.ID, FileName: d.FileName, Description: desc, CreatedAt: d.CreatedAt}
	}
	return out
}

func quantities(items []entity.ItemQuantity) []dto.ItemQuantityDTO {
	out := make([]dto.ItemQuantityDTO, len(items))
	for i, it := range items {
		out[i] = dto.ItemQuantityDTO{ID: it.ID, Quantity: it.Quantity}
	}
	return out
}

func VisitToRequest(v entity.VisitRecord) dto.VisitRequest {
	codes := make([]dto.ICDCodeInputDTO, len(v.Diagnoses))
	for i, d := range v.Diagnoses {
		codes[i] = dto.ICDCodeInputDTO{Code: d.ICDCodeID, Comment: d.Comment}
	}
	return dto.VisitRequest{
		AppointmentID: v.AppointmentID,
		PatientID:     v.PatientID,
		DoctorID:      v.DoctorID,
		Complaints:    v.Complaints,
		Treatment:     v.Treatment,
		Manipulations: quantities(v.Services),
		Materials:     quantities(v.Materials),
		ICDCodes:      codes,
	}
}

func CompletedVisitsToEntities(cs []dto.CompletedVisitDTO) []entity.CompletedVisit {
	out := make([]entity.CompletedVisit, len(cs))
	for i, c := range cs {
		items := make([]entity.VisitItem, len(c.MaterialsAndServices))
		for j, it := range c.MaterialsAndServices {
			items[j] = entity.VisitItem(it)
		}
		out[i] = entity.CompletedVisit{
			VisitID:   c.VisitID,
			Doctor:    c.Doctor,
			Patient:   c.Patient,
			CreatedAt: c.CreatedAt,
			Price:     c.Price,
			Items:     items,
		}
	}
	return out
}
