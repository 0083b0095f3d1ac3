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

type AdminUsecase interface {
	GetAdmins(ctx context.Context) ([]entity.Admin, error)
	GetRoles(ctx context.Context) ([]entity.RoleOption, error)
	SaveAdmin(ctx context.Context, admin entity.Admin) error
	ChangeLogin(ctx context.Context, id int, email string) error
	DeleteAdmin(ctx context.Context, admin entity.Admin) error
}

type adminUsecase struct {
	log       *logrus.Logger
	adminRepo repository.AdminRepository
	audit     service.AuditService
}

func NewAdminUsecase(
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	audit service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		log:       log,
		adminRepo: adminRepo,
		audit:     audit,
	}
}

func (u *adminUsecase) GetAdmins(ctx context.Context) ([]entity.Admin, error) {
	admins, err := u.adminRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find staff admins: %+v", err)
		return []entity.Admin{}, err
	}
	return admins, nil
}

func (u *adminUsecase) GetRoles(ctx context.Context) ([]entity.RoleOption, error) {
	roles, err := u.adminRepo.FindRoles(ctx)
	if err != nil {
		u.log.Warnf("Failed to find roles: %+v", err)
		return []entity.RoleOption{}, err
	}
	return roles, nil
}

// SaveAdmin field errors use the snake_case names of the admin form.
func (u *adminUsecase) SaveAdmin(ctx context.Context, admin entity.Admin) error {
	check := formCheck{}
	check.notBlank("second_name", admin.SecondName, MsgSecondNameRequired)
	check.notBlank("first_name", admin.FirstName, MsgFirstNameRequired)
	check.phone("phone", admin.Phone)
	check.email("email", admin.Email, MsgEmailFormat)
	if err := check.err(); err != nil {
		return err
	}

	if err := u.adminRepo.Save(ctx, admin); err != nil {
		u.log.Warnf("Failed to save admin %d: %+v", admin.ID, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionAdminSave, "admin", strconv.Itoa(admin.ID), nil, admin)
	return nil
}

func (u *adminUsecase) ChangeLogin(ctx context.Context, id int, email string) error {
	email = strings.TrimSpace(email)
	if !validator.ValidEmail(email) {
		return &FormError{Fields: map[string]string{"email": MsgLoginEmail}}
	}

	if err := u.adminRepo.ChangeLogin(ctx, id, email); err != nil {
		u.log.Warnf("Failed to change login of admin %d: %+v", id, err)
		return err
	}

	_ = u.audit.LogUpdate(ctx, entity.AuditActionLoginChange, "admin", strconv.Itoa(id), nil, email)
	return nil
}

func (u *adminUsecase) DeleteAdmin(ctx context.Context, admin entity.Admin) error {
	if err := u.adminRepo.Delete(ctx, admin.ID); err != nil {
		u.log.Warnf("Failed to delete admin %d: %+v", admin.ID, err)
		return err
	}

	_ = u.audit.LogDelete(ctx, entity.AuditActionAdminDelete, "admin", strconv.Itoa(admin.ID), admin.FullName())
	return nil
}
