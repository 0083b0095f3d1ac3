package usecase

import (
	"context"
	"strconv"
	"strings"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/validator"

	"github.com/sirupsen/logrus"
)

// MsgLoginEmail is shown when a staff login change has no usable email.
const MsgLoginEmail = "Некорректный email"

type DoctorUsecase interface {
	GetDoctors(ctx context.Context) ([]entity.Doctor, error)
	GetStaffDoctors(ctx context.Context) ([]entity.Doctor, error)
	GetDoctorsBySpecialty(ctx context.Context, specialtyID int) ([]entity.Doctor, error)
	GetSpecialties(ctx context.Context) ([]entity.Specialty, error)
	SaveDoctor(ctx context.Context, doctor entity.Doctor) error
	ChangeLogin(ctx context.Context, id int, email string) error
	DeleteDoctor(ctx context.Context, doctor entity.Doctor) error
}

type doctorUsecase struct {
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	audit      service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	audit service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:        log,
		doctorRepo: doctorRepo,
		audit:      audit,
	}
}

func (u *doctorUsecase) GetDoctors(ctx context.Context) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return []entity.Doctor{}, err
	}
	return doctors, nil
}

func (u *doctorUsecase) GetStaffDoctors(ctx context.Context) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.FindStaff(ctx)
	if err != nil {
		u.log.Warnf("Failed to find staff doctors: %+v", err)
		return []entity.Doctor{}, err
	}
	return doctors, nil
}

func (u *doctorUsecase) GetDoctorsBySpecialty(ctx context.Context, specialtyID int) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.FindBySpecialty(ctx, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to find doctors of specialty %d: %+v", specialtyID, err)
		return []entity.Doctor{}, err
	}
	return doctors, nil
}

func (u *doctorUsecase) GetSpecialties(ctx context.Context) ([]entity.Specialty, error) {
	specialties, err := u.doctorRepo.FindSpecialties(ctx)
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return []entity.Specialty{}, err
	}
	return specialties, nil
}

// SaveDoctor creates or updates a doctor. Field errors use the doctor
// form's payload names.
func (u *doctorUsecase) SaveDoctor(ctx context.Context, doctor entity.Doctor) error {
	check := formCheck{}
	check.notBlank("secondName", doctor.SecondName, MsgSecondNameRequired)
	check.notBlank("firstName", doctor.FirstName, MsgFirstNameRequired)
	check.phone("phone", doctor.Phone)
	check.email("email", doctor.Email, MsgEmailFormat)
	if len(doctor.Specialties) == 0 {
		check.set("specialty", MsgSpecialtyRequired)
	}
	if err := check.err(); err != nil {
		return err
	}

	if err := u.doctorRepo.Save(ctx, doctor); err != nil {
		u.log.Warnf("Failed to save doctor %d: %+v", doctor.UserID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionDoctorSave, "doctor", strconv.Itoa(doctor.UserID), nil, doctor)
	return nil
}

func (u *doctorUsecase) ChangeLogin(ctx context.Context, id int, email string) error {
	email = strings.TrimSpace(email)
	if !validator.ValidEmail(email) {
		return &FormError{Fields: map[string]string{"email": MsgLoginEmail}}
	}

	if err := u.doctorRepo.ChangeLogin(ctx, id, email); err != nil {
		u.log.Warnf("Failed to change login of doctor %d: %+v", id, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionLoginChange, "doctor", strconv.Itoa(id), nil, email)
	return nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, doctor entity.Doctor) error {
	if err := u.doctorRepo.Delete(ctx, doctor.UserID); err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", doctor.UserID, err)
		return err
	}

	_ = u.audit.LogDelete(ctx, entity.AuditActionDoctorDelete, "doctor", strconv.Itoa(doctor.UserID), doctor.FullName())
	return nil
}
