package usecase

import (
	"context"
	"strconv"
	"strings"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/validator"

	"github.com/sirupsen/logrus"
)

// Messages of the profile dialogs.
const (
	MsgNewEmailFormat   = "Некорректный формат email."
	MsgPasswordWeak     = "Пароль должен содержать минимум 8 символов, включая латинские буквы и цифры."
	MsgPasswordMismatch = "Пароли не совпадают."
)

// ProfileUsecase lets staff read and edit their own account.
type ProfileUsecase interface {
	GetAdminProfile(ctx context.Context) (*entity.Admin, error)
	GetDoctorProfile(ctx context.Context) (*entity.Doctor, error)
	UpdateAdminProfile(ctx context.Context, admin entity.Admin) error
	ChangeEmail(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, password, confirm string) error
}

type profileUsecase struct {
	log         *logrus.Logger
	profileRepo repository.ProfileRepository
	audit       service.AuditService
}

func NewProfileUsecase(
	log *logrus.Logger,
	profileRepo repository.ProfileRepository,
	audit service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		log:         log,
		profileRepo: profileRepo,
		audit:       audit,
	}
}

func selfID(ctx context.Context) string {
	id, _ := jwt.UserIDFromContext(ctx)
	return strconv.Itoa(id)
}

func (u *profileUsecase) GetAdminProfile(ctx context.Context) (*entity.Admin, error) {
	admin, err := u.profileRepo.FindAdmin(ctx)
	if err != nil {
		u.log.Warnf("Failed to find admin profile: %+v", err)
		return nil, err
	}
	return admin, nil
}

func (u *profileUsecase) GetDoctorProfile(ctx context.Context) (*entity.Doctor, error) {
	doctor, err := u.profileRepo.FindDoctor(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	return doctor, nil
}

func (u *profileUsecase) UpdateAdminProfile(ctx context.Context, admin entity.Admin) error {
	admin.Email = strings.TrimSpace(admin.Email)

	check := formCheck{}
	check.notBlank("secondName", admin.SecondName, MsgSecondNameRequired)
	check.notBlank("firstName", admin.FirstName, MsgFirstNameRequired)
	check.optionalPhone("phone", admin.Phone)
	check.strictEmail("email", admin.Email)
	if err := check.err(); err != nil {
		return err
	}

	if err := u.profileRepo.UpdateAdmin(ctx, admin); err != nil {
		u.log.Warnf("Failed to update admin profile: %+v", err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionProfileUpdate, "admin", selfID(ctx), nil, admin)
	return nil
}

func (u *profileUsecase) ChangeEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validator.ValidStrictEmail(email) {
		return &FormError{Fields: map[string]string{"email": MsgNewEmailFormat}}
	}

	if err := u.profileRepo.ChangeEmail(ctx, email); err != nil {
		u.log.Warnf("Failed to change email: %+v", err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionEmailChange, "user", selfID(ctx), nil, email)
	return nil
}

// ChangePassword never logs or audits the password itself.
func (u *profileUsecase) ChangePassword(ctx context.Context, password, confirm string) error {
	check := formCheck{}
	if !validator.StrongPassword(password) {
		check.set("password", MsgPasswordWeak)
	}
	if confirm != password {
		check.set("confirm", MsgPasswordMismatch)
	}
	if err := check.err(); err != nil {
		return err
	}

	if err := u.profileRepo.ChangePassword(ctx, password); err != nil {
		u.log.Warnf("Failed to change password: %+v", err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionPasswordChange, "user", selfID(ctx), nil, nil)
	return nil
}
