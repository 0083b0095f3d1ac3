package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-portal/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAge(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		birth string
		want  int
		ok    bool
	}{
		{"10.06.1990", 35, true},
		{"11.06.1990", 34, true},
		{"1990-06-09", 35, true},
		{"", 0, false},
		{"1990/06/09", 0, false},
	}
	for _, tt := range tests {
		age, ok := Age(tt.birth, now)
		assert.Equal(t, tt.ok, ok, tt.birth)
		assert.Equal(t, tt.want, age, tt.birth)
	}
}

func TestYearWord(t *testing.T) {
	words := map[int]string{
		1: "год", 2: "года", 4: "года", 5: "лет", 11: "лет", 14: "лет",
		21: "год", 22: "года", 25: "лет", 111: "лет", 101: "год",
	}
	for n, want := range words {
		assert.Equal(t, want, YearWord(n), n)
	}
}

func TestDraftNotesAreDeduplicated(t *testing.T) {
	existing := []entity.PatientNote{{Type: entity.NoteAllergy, Title: "Пенициллин"}}
	d := &ConsultationDraft{}

	assert.False(t, d.AddNote(entity.NoteAllergy, "Пенициллин", existing))
	assert.False(t, d.AddNote(entity.NoteAllergy, "   ", existing))
	assert.True(t, d.AddNote(entity.NoteAllergy, " Пыльца ", existing))
	assert.False(t, d.AddNote(entity.NoteAllergy, "Пыльца", existing))
	assert.True(t, d.AddNote(entity.NoteChronic, "Пенициллин", existing))

	assert.Equal(t, []string{"Пыльца"}, d.NewAllergies)
	assert.Equal(t, []string{"Пенициллин"}, d.NewChronics)

	d.RemoveNote(entity.NoteAllergy, "Пыльца")
	assert.Empty(t, d.NewAllergies)
	assert.Equal(t, []entity.PatientNote{{Type: entity.NoteChronic, Title: "Пенициллин"}}, d.NewNotes())
}

func TestDraftTotal(t *testing.T) {
	services := []entity.Service{
		{ID: 1, Price: decimal.NewFromInt(1000)},
		{ID: 2, Price: decimal.RequireFromString("250.50")},
	}
	materials := []entity.Material{{ID: 7, Price: decimal.NewFromInt(30)}}

	d := &ConsultationDraft{}
	d.SelectService(1)
	d.SelectService(2)
	d.SelectService(1)
	d.SelectMaterial(7)
	require.True(t, d.SetMaterialQuantity(7, 3))
	d.SelectMaterial(99)

	assert.Equal(t, "1340.5", d.Total(services, materials).String())

	d.RemoveService(2)
	d.RemoveMaterial(7)
	assert.Equal(t, "1000", d.Total(services, materials).String())
}

func TestDraftProblems(t *testing.T) {
	d := &ConsultationDraft{Complaints: " "}
	d.SelectMaterial(1)
	d.SetMaterialQuantity(1, 0)

	assert.Equal(t, []string{
		MsgComplaintsRequired,
		MsgTreatmentRequired,
		MsgServiceRequired,
		MsgMaterialQuantity,
	}, d.Problems())

	d.Complaints = "Кашель"
	d.Treatment = "Покой"
	d.SelectService(1)
	d.SetMaterialQuantity(1, 2)
	assert.Empty(t, d.Problems())
}

func TestDraftICD(t *testing.T) {
	d := &ConsultationDraft{}
	code := entity.ICDCode{ID: 10, Code: "J06.9", Name: "ОРВИ"}
	d.AddICD(code)
	d.AddICD(code)
	require.Len(t, d.ICD, 1)

	assert.True(t, d.SetICDComment(10, "лёгкая форма"))
	assert.False(t, d.SetICDComment(11, "нет такого"))

	record := d.Record(19, 4, 8)
	assert.Equal(t, []entity.DiagnosisInput{{ICDCodeID: 10, Comment: "лёгкая форма"}}, record.Diagnoses)

	d.RemoveICD(10)
	assert.Empty(t, d.ICD)
}

func TestSubmitConsultation(t *testing.T) {
	appt := entity.AppointmentDetails{ID: 19, PatientID: 4}

	t.Run("incomplete draft", func(t *testing.T) {
		repo := &fakeVisitRepo{}
		uc := NewVisitUsecase(quietLogger(), repo, &fakeAudit{})

		err := uc.SubmitConsultation(context.Background(), appt, 8, &ConsultationDraft{})
		var draftErr *DraftError
		require.True(t, errors.As(err, &draftErr))
		assert.Len(t, draftErr.Problems, 3)
		assert.Contains(t, err.Error(), MsgFixErrors)
		assert.Empty(t, repo.created)
	})

	t.Run("visit then notes", func(t *testing.T) {
		repo := &fakeVisitRepo{}
		uc := NewVisitUsecase(quietLogger(), repo, &fakeAudit{})
		d := &ConsultationDraft{Complaints: "Кашель", Treatment: "Покой"}
		d.SelectService(1)
		d.AddNote(entity.NoteAllergy, "Пыльца", nil)

		require.NoError(t, uc.SubmitConsultation(context.Background(), appt, 8, d))
		require.Len(t, repo.created, 1)
		assert.Equal(t, 19, repo.created[0].AppointmentID)
		assert.Equal(t, 4, repo.created[0].PatientID)
		assert.Equal(t, 8, repo.created[0].DoctorID)
		assert.Equal(t, []entity.ItemQuantity{{ID: 1, Quantity: 1}}, repo.created[0].Services)
		assert.Equal(t, []entity.PatientNote{{Type: entity.NoteAllergy, Title: "Пыльца"}}, repo.notes[4])
	})

	t.Run("notes failure keeps the visit", func(t *testing.T) {
		repo := &fakeVisitRepo{notesErr: errors.New("down")}
		uc := NewVisitUsecase(quietLogger(), repo, &fakeAudit{})
		d := &ConsultationDraft{Complaints: "a", Treatment: "b", Services: []int{1}, NewChronics: []string{"Астма"}}

		assert.NoError(t, uc.SubmitConsultation(context.Background(), appt, 8, d))
		assert.Len(t, repo.created, 1)
	})
}
