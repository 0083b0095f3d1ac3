package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"

	"github.com/shopspring/decimal"
)

type VisitRepository interface {
	Create(ctx context.Context, v entity.VisitRecord) error
	FindNotes(ctx context.Context, patientID int) ([]entity.PatientNote, error)
	AddNotes(ctx context.Context, patientID int, notes []entity.PatientNote) error
	FindPastVisits(ctx context.Context, patientID int) ([]entity.PastVisit, error)
	FindPatientDocuments(ctx context.Context, patientID int) ([]entity.Document, error)

	FindOwnHistory(ctx context.Context) ([]entity.HistoryEntry, error)
	FindOwnDocuments(ctx context.Context) ([]entity.Document, error)

	FindCompleted(ctx context.Context) ([]entity.CompletedVisit, error)
	ConfirmPayment(ctx context.Context, visitID int, price decimal.Decimal) error
}
