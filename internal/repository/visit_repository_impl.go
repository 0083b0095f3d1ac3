package repository

import (
	"context"
	"fmt"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"

	"github.com/shopspring/decimal"
)

type visitRepository struct {
	api API
}

func NewVisitRepository(api API) domainRepo.VisitRepository {
	return &visitRepository{api: api}
}

func (r *visitRepository) Create(ctx context.Context, v entity.VisitRecord) error {
	return r.api.Post(ctx, "/api/visits", converter.VisitToRequest(v), nil)
}

func (r *visitRepository) FindNotes(ctx context.Context, patientID int) ([]entity.PatientNote, error) {
	var resp []dto.PatientNoteDTO
	if err := r.api.Get(ctx, fmt.Sprintf("/api/patient-notes/%d", patientID), &resp); err != nil {
		return nil, err
	}
	return converter.PatientNotesToEntities(resp), nil
}

func (r *visitRepository) AddNotes(ctx context.Context, patientID int, notes []entity.PatientNote) error {
	return r.api.Post(ctx, fmt.Sprintf("/api/patient-notes/%d", patientID), converter.PatientNotesToDTOs(notes), nil)
}

func (r *visitRepository) FindPastVisits(ctx context.Context, patientID int) ([]entity.PastVisit, error) {
	var resp []dto.PastVisitDTO
	if err := r.api.Get(ctx, fmt.Sprintf("/api/patient-history/%d", patientID), &resp); err != nil {
		return nil, err
	}
	return converter.PastVisitsToEntities(resp), nil
}

func (r *visitRepository) FindPatientDocuments(ctx context.Context, patientID int) ([]entity.Document, error) {
	return r.findDocuments(ctx, fmt.Sprintf("/api/doctor/consultation/patient-tests/%d", patientID))
}

func (r *visitRepository) FindOwnHistory(ctx context.Context) ([]entity.HistoryEntry, error) {
	var resp []dto.HistoryEntryDTO
	if err := r.api.Get(ctx, "/api/patient/history", &resp); err != nil {
		return nil, err
	}
	return converter.HistoryToEntities(resp), nil
}

func (r *visitRepository) FindOwnDocuments(ctx context.Context) ([]entity.Document, error) {
	return r.findDocuments(ctx, "/api/patient/tests")
}

func (r *visitRepository) findDocuments(ctx context.Context, path string) ([]entity.Document, error) {
	var resp []dto.DocumentDTO
	if err := r.api.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return converter.DocumentsToEntities(resp), nil
}

func (r *visitRepository) FindCompleted(ctx context.Context) ([]entity.CompletedVisit, error) {
	var resp []dto.CompletedVisitDTO
	if err := r.api.Get(ctx, "/api/completed-visits", &resp); err != nil {
		return nil, err
	}
	return converter.CompletedVisitsToEntities(resp), nil
}

func (r *visitRepository) ConfirmPayment(ctx context.Context, visitID int, price decimal.Decimal) error {
	body := dto.ConfirmVisitRequest{Price: price.Round(0).IntPart(), Status: "confirmed"}
	return r.api.Put(ctx, fmt.Sprintf("/api/completed-visits/%d", visitID), body, nil)
}
