package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/phone"

	"github.com/sirupsen/logrus"
)

// Messages of the phone confirmation dialog.
const (
	MsgCodeSent        = "Код отправлен на номер."
	MsgCodeSendFailed  = "Ошибка при отправке кода."
	MsgCodeRequired    = "Введите код"
	MsgPhoneVerified   = "Телефон подтвержден!"
	MsgCodeInvalid     = "Неверный код."
	MsgPhoneUnverified = "Номер не подтвержден."
)

const MsgBirthDateRequired = "Укажите дату рождения"

var (
	ErrCodeRequired    = errors.New("verification code is required")
	ErrPhoneUnverified = errors.New("phone number is not verified")
)

type PatientUsecase interface {
	GetPatients(ctx context.Context) ([]entity.Patient, error)
	// RegisterPatient creates a patient at the front desk and returns the user id.
	RegisterPatient(ctx context.Context, patient entity.Patient) (int, error)
	UpdatePatient(ctx context.Context, patient entity.Patient) error
	DeletePatient(ctx context.Context, patient entity.Patient) error

	// RequestCode sends an SMS code to number and returns its digits.
	RequestCode(ctx context.Context, number string) (string, error)
	VerifyCode(ctx context.Context, digits, code string) error
	// ChangeLogin requires number to be the one verified last.
	ChangeLogin(ctx context.Context, id int, number, verifiedDigits string) error
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	audit       service.AuditService
	now         func() time.Time
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	audit service.AuditService,
	now func() time.Time,
) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
		audit:       audit,
		now:         now,
	}
}

func (u *patientUsecase) GetPatients(ctx context.Context) ([]entity.Patient, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return []entity.Patient{}, err
	}
	return patients, nil
}

// RegisterPatient field errors use the registration form's payload names.
func (u *patientUsecase) RegisterPatient(ctx context.Context, patient entity.Patient) (int, error) {
	patient.Email = strings.TrimSpace(patient.Email)

	check := formCheck{}
	check.notBlank("secondName", patient.SecondName, MsgSecondNameRequired)
	check.notBlank("firstName", patient.FirstName, MsgFirstNameRequired)
	check.strictEmail("email", patient.Email)
	check.optionalPhone("phone", patient.Phone)
	if patient.BirthDate == "" {
		check.set("birthDate", MsgBirthDateRequired)
	} else {
		earliest, latest := BirthDateBounds(u.now())
		if patient.BirthDate < earliest || patient.BirthDate > latest {
			check.set("birthDate", MsgBirthDateRange)
		}
	}
	if err := check.err(); err != nil {
		return 0, err
	}

	id, err := u.patientRepo.Register(ctx, patient)
	if err != nil {
		u.log.Warnf("Failed to register patient: %+v", err)
		return 0, err
	}

	_ = u.audit.LogCreate(ctx, entity.AuditActionPatientRegister, "patient", strconv.Itoa(id), patient.FullName())
	return id, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, patient entity.Patient) error {
	check := formCheck{}
	check.notBlank("secondName", patient.SecondName, MsgSecondNameRequired)
	check.notBlank("firstName", patient.FirstName, MsgFirstNameRequired)
	check.email("email", patient.Email, MsgEmailFormat)
	if err := check.err(); err != nil {
		return err
	}

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient %d: %+v", patient.ID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionPatientUpdate, "patient", strconv.Itoa(patient.ID), nil, patient)
	return nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, patient entity.Patient) error {
	if err := u.patientRepo.Delete(ctx, patient.ID); err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", patient.ID, err)
		return err
	}

	_ = u.audit.LogDelete(ctx, entity.AuditActionPatientDelete, "patient", strconv.Itoa(patient.ID), patient.FullName())
	return nil
}

func (u *patientUsecase) RequestCode(ctx context.Context, number string) (string, error) {
	if !phone.Valid(number) {
		return "", &FormError{Fields: map[string]string{"phone": phone.MsgInvalid}}
	}

	digits := phone.Digits(number)
	if err := u.patientRepo.RequestCode(ctx, digits); err != nil {
		u.log.Warnf("Failed to request code for %s: %+v", digits, err)
		return "", err
	}
	return digits, nil
}

func (u *patientUsecase) VerifyCode(ctx context.Context, digits, code string) error {
	code = strings.TrimSpace(code)
	if code == "" || digits == "" {
		return ErrCodeRequired
	}

	if err := u.patientRepo.VerifyCode(ctx, digits, code); err != nil {
		u.log.Warnf("Failed to verify code for %s: %+v", digits, err)
		return err
	}
	return nil
}

func (u *patientUsecase) ChangeLogin(ctx context.Context, id int, number, verifiedDigits string) error {
	digits := phone.Digits(number)
	if !phone.Valid(number) || verifiedDigits == "" || digits != verifiedDigits {
		return ErrPhoneUnverified
	}

	if err := u.patientRepo.ChangeLogin(ctx, id, digits); err != nil {
		u.log.Warnf("Failed to change login of patient %d: %+v", id, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionLoginChange, "patient", strconv.Itoa(id), nil, digits)
	return nil
}
