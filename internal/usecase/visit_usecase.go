package usecase

import (
	"context"
	"strconv"
	"strings"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"

	"github.com/sirupsen/logrus"
)

// MsgFixErrors heads the alert listing consultation problems.
const MsgFixErrors = "Пожалуйста, исправьте ошибки:"

// DraftError lists why a consultation draft cannot be submitted.
type DraftError struct {
	Problems []string
}

func (e *DraftError) Error() string {
	return MsgFixErrors + "\n\n" + strings.Join(e.Problems, "\n")
}

type VisitUsecase interface {
	GetNotes(ctx context.Context, patientID int) ([]entity.PatientNote, error)
	GetPastVisits(ctx context.Context, patientID int) ([]entity.PastVisit, error)
	GetPatientDocuments(ctx context.Context, patientID int) ([]entity.Document, error)
	SubmitConsultation(ctx context.Context, appt entity.AppointmentDetails, doctorID int, draft *ConsultationDraft) error

	GetOwnHistory(ctx context.Context) ([]entity.HistoryEntry, error)
	GetOwnDocuments(ctx context.Context) ([]entity.Document, error)

	GetCompletedVisits(ctx context.Context) ([]entity.CompletedVisit, error)
	ConfirmVisit(ctx context.Context, visit entity.CompletedVisit) error
}

type visitUsecase struct {
	log       *logrus.Logger
	visitRepo repository.VisitRepository
	audit     service.AuditService
}

func NewVisitUsecase(
	log *logrus.Logger,
	visitRepo repository.VisitRepository,
	audit service.AuditService,
) VisitUsecase {
	return &visitUsecase{
		log:       log,
		visitRepo: visitRepo,
		audit:     audit,
	}
}

func (u *visitUsecase) GetNotes(ctx context.Context, patientID int) ([]entity.PatientNote, error) {
	notes, err := u.visitRepo.FindNotes(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find notes of patient %d: %+v", patientID, err)
		return []entity.PatientNote{}, err
	}
	return notes, nil
}

func (u *visitUsecase) GetPastVisits(ctx context.Context, patientID int) ([]entity.PastVisit, error) {
	visits, err := u.visitRepo.FindPastVisits(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find past visits of patient %d: %+v", patientID, err)
		return []entity.PastVisit{}, err
	}
	return visits, nil
}

func (u *visitUsecase) GetPatientDocuments(ctx context.Context, patientID int) ([]entity.Document, error) {
	docs, err := u.visitRepo.FindPatientDocuments(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find documents of patient %d: %+v", patientID, err)
		return []entity.Document{}, err
	}
	return docs, nil
}

// SubmitConsultation saves the visit and then the notes queued on the
// draft. A failure to store the notes is logged and does not undo the visit.
func (u *visitUsecase) SubmitConsultation(ctx context.Context, appt entity.AppointmentDetails, doctorID int, draft *ConsultationDraft) error {
	if problems := draft.Problems(); len(problems) > 0 {
		return &DraftError{Problems: problems}
	}

	record := draft.Record(appt.ID, appt.PatientID, doctorID)
	if err := u.visitRepo.Create(ctx, record); err != nil {
		u.log.Warnf("Failed to create visit for appointment %d: %+v", appt.ID, err)
		return err
	}
	_ = u.audit.LogCreate(ctx, entity.AuditActionVisitCreate, "visit", strconv.Itoa(appt.ID), record)

	if notes := draft.NewNotes(); len(notes) > 0 {
		if err := u.visitRepo.AddNotes(ctx, appt.PatientID, notes); err != nil {
			u.log.Warnf("Failed to add notes of patient %d: %+v", appt.PatientID, err)
		}
	}
	return nil
}

func (u *visitUsecase) GetOwnHistory(ctx context.Context) ([]entity.HistoryEntry, error) {
	history, err := u.visitRepo.FindOwnHistory(ctx)
	if err != nil {
		u.log.Warnf("Failed to find visit history: %+v", err)
		return []entity.HistoryEntry{}, err
	}
	return history, nil
}

func (u *visitUsecase) GetOwnDocuments(ctx context.Context) ([]entity.Document, error) {
	docs, err := u.visitRepo.FindOwnDocuments(ctx)
	if err != nil {
		u.log.Warnf("Failed to find tests: %+v", err)
		return []entity.Document{}, err
	}
	return docs, nil
}

func (u *visitUsecase) GetCompletedVisits(ctx context.Context) ([]entity.CompletedVisit, error) {
	visits, err := u.visitRepo.FindCompleted(ctx)
	if err != nil {
		u.log.Warnf("Failed to find completed visits: %+v", err)
		return []entity.CompletedVisit{}, err
	}
	return visits, nil
}

func (u *visitUsecase) ConfirmVisit(ctx context.Context, visit entity.CompletedVisit) error {
	if err := u.visitRepo.ConfirmPayment(ctx, visit.VisitID, visit.Price); err != nil {
		u.log.Warnf("Failed to confirm visit %d: %+v", visit.VisitID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionVisitConfirm, "visit", strconv.Itoa(visit.VisitID), nil, visit.Price.String())
	return nil
}
