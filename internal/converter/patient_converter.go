package converter

import (
	"strings"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/pkg/phone"
)

// PatientToEntity keeps only the date part of birthDate.
func PatientToEntity(p dto.PatientDTO) entity.Patient {
	birth, _, _ := strings.Cut(p.BirthDate, "T")
	return entity.Patient{
		ID: p.UserID,
		Person: entity.Person{
			FirstName:  p.FirstName,
			SecondName: p.SecondName,
			Surname:    deref(p.Surname),
			Gender:     p.Gender,
			BirthDate:  birth,
			Phone:      deref(p.Phone),
			Email:      deref(p.Email),
		},
	}
}

func PatientsToEntities(ps []dto.PatientDTO) []entity.Patient {
	out := make([]entity.Patient, len(ps))
	for i, p := range ps {
		out[i] = PatientToEntity(p)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func PatientToDTO(p entity.Patient) dto.PatientDTO {
	return dto.PatientDTO{
		UserID:     p.ID,
		FirstName:  p.FirstName,
		SecondName: p.SecondName,
		Surname:    optional(p.Surname),
		Phone:      optional(phone.Digits(p.Phone)),
		Email:      optional(p.Email),
		BirthDate:  p.BirthDate,
		Gender:     p.Gender,
	}
}

func PatientFromPayload(p dto.PatientFormPayload) entity.Patient {
	return entity.Patient{
		ID: p.UserID,
		Person: entity.Person{
			FirstName:  p.FirstName,
			SecondName: p.SecondName,
			Surname:    p.Surname,
			Gender:     p.Gender,
			BirthDate:  p.BirthDate,
			Phone:      p.Phone,
			Email:      p.Email,
		},
	}
}

// PatientToRegisterRequest sends the phone as digits; empty optional
// fields go as null.
func PatientToRegisterRequest(p entity.Patient) dto.RegisterPatientRequest {
	return dto.RegisterPatientRequest{
		SecondName: p.SecondName,
		FirstName:  p.FirstName,
		Surname:    optional(p.Surname),
		Gender:     p.Gender,
		BirthDate:  p.BirthDate,
		Phone:      optional(phone.Digits(p.Phone)),
		Email:      optional(p.Email),
	}
}

func PatientFromRegistration(p dto.RegistrationFormPayload) entity.Patient {
	return entity.Patient{
		Person: entity.Person{
			FirstName:  p.FirstName,
			SecondName: p.SecondName,
			Surname:    p.Surname,
			Gender:     p.Gender,
			BirthDate:  p.BirthDate,
			Phone:      p.Phone,
			Email:      p.Email,
		},
	}
}
