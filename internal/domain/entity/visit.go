package entity

import "github.com/shopspring/decimal"

type NoteType string

const (
	NoteAllergy NoteType = "allergy"
	NoteChronic NoteType = "chronic"
)

// PatientNote is an allergy or chronic condition on the patient's card.
type PatientNote struct {
	Type  NoteType
	Title string
}

type Diagnosis struct {
	ICDCode string
	Notes   string
}

// PastVisit is a finished consultation from the patient's anamnesis.
type PastVisit struct {
	ID         int
	CreatedAt  string
	Doctor     string
	Complaints string
	Treatment  string
	Diagnoses  []Diagnosis
}

// HistoryEntry is a past visit as the patient sees it in their account.
type HistoryEntry struct {
	ID        int
	Date      string
	DoctorID  int
	Doctor    string
	Diagnosis string
	Treatment string
}

type Document struct {
	ID          string
	FileName    string
	Description string
	CreatedAt   string
}

type ItemQuantity struct {
	ID       int
	Quantity int
}

type DiagnosisInput struct {
	ICDCodeID int
	Comment   string
}

// VisitRecord is the consultation the doctor submits.
type VisitRecord struct {
	AppointmentID int
	PatientID     int
	DoctorID      int
	Complaints    string
	Treatment     string
	Services      []ItemQuantity
	Materials     []ItemQuantity
	Diagnoses     []DiagnosisInput
}

type VisitItem struct {
	ID       int
	VisitID  int
	Item     string
	Quantity int
}

// CompletedVisit is a finished visit waiting for the admin to confirm payment.
type CompletedVisit struct {
	VisitID   int
	Doctor    string
	Patient   string
	CreatedAt string
	Price     decimal.Decimal
	Items     []VisitItem
}
