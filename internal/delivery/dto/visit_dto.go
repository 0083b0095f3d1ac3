package dto

import "github.com/shopspring/decimal"

type PatientNoteDTO struct {
	Type  string `json:"type" validate:"oneof=allergy chronic"`
	Title string `json:"title" validate:"required"`
}

type DiagnosisDTO struct {
	ICDCode string `json:"icd_code"`
	Notes   string `json:"notes"`
}

// PastVisitDTO is an item of /api/patient-history/{patientId}.
type PastVisitDTO struct {
	ID         int            `json:"id"`
	Doctor     string         `json:"doctor"`
	Complaints string         `json:"complaints"`
	Treatment  string         `json:"treatment"`
	CreatedAt  string         `json:"created_at"`
	Diagnoses  []DiagnosisDTO `json:"diagnoses"`
}

// HistoryEntryDTO is an item of /api/patient/history.
type HistoryEntryDTO struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	DoctorID  int    `json:"doctor_id"`
	Doctor    string `json:"doctor"`
	Diagnose  string `json:"diagnose"`
	Treatment string `json:"treatment"`
}

type DocumentDTO struct {
	ID          string `json:"id" validate:"required"`
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type ItemQuantityDTO struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

type ICDCodeInputDTO struct {
	Code    int    `json:"code"`
	Comment string `json:"comment"`
}

// VisitRequest is the body of POST /api/visits.
type VisitRequest struct {
	AppointmentID int               `json:"appointment_id"`
	PatientID     int               `json:"patient_id"`
	DoctorID      int               `json:"doctor_id"`
	Complaints    string            `json:"complaints"`
	Treatment     string            `json:"treatment"`
	Manipulations []ItemQuantityDTO `json:"manipulations"`
	Materials     []ItemQuantityDTO `json:"materials"`
	ICDCodes      []ICDCodeInputDTO `json:"icd_codes"`
}

// VisitItemDTO keeps the API's Go-default field names.
type VisitItemDTO struct {
	ID       int    `json:"ID"`
	VisitID  int    `json:"VisitID"`
	Item     string `json:"Item"`
	Quantity int    `json:"Quantity"`
}

type CompletedVisitDTO struct {
	VisitID              int             `json:"visit_id" validate:"required"`
	Doctor               string          `json:"doctor"`
	Patient              string          `json:"patient"`
	CreatedAt            string          `json:"created_at"`
	Price                decimal.Decimal `json:"price"`
	MaterialsAndServices []VisitItemDTO  `json:"materials_and_services"`
}

type ConfirmVisitRequest struct {
	Price  int64  `json:"price"`
	Status string `json:"status"`
}
