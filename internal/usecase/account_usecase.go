package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/infrastructure/cache"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/phone"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidLogin = errors.New("login and password are required")
	ErrUnknownRole  = errors.New("user has no known role")
)

// TokenParser reads the claims of a session token.
type TokenParser interface {
	Parse(token string) (*jwt.Claims, error)
}

type AccountUsecase interface {
	Login(ctx context.Context, login, password string) (*repository.Session, error)
	// ResolveRole returns the role of userID, asking the */me endpoints on
	// a cache miss. ctx must carry the user's session.
	ResolveRole(ctx context.Context, userID int) (entity.Role, error)
	GetIdentity(ctx context.Context, role entity.Role) (*entity.Identity, error)
	GetPatientProfile(ctx context.Context) (*entity.Patient, error)
}

type accountUsecase struct {
	log         *logrus.Logger
	accountRepo repository.AccountRepository
	parser      TokenParser
	store       cache.Store
	roleTTL     time.Duration
	audit       service.AuditService
}

func NewAccountUsecase(
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	parser TokenParser,
	store cache.Store,
	roleTTL time.Duration,
	audit service.AuditService,
) AccountUsecase {
	return &accountUsecase{
		log:         log,
		accountRepo: accountRepo,
		parser:      parser,
		store:       store,
		roleTTL:     roleTTL,
		audit:       audit,
	}
}

func roleKey(userID int) string {
	return fmt.Sprintf("role:%d", userID)
}

// NormalizeLogin trims an email login and reduces a phone login to digits.
func NormalizeLogin(login string) string {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		return login
	}
	return phone.Digits(login)
}

func (u *accountUsecase) Login(ctx context.Context, login, password string) (*repository.Session, error) {
	login = NormalizeLogin(login)
	if login == "" || password == "" {
		return nil, ErrInvalidLogin
	}

	session, err := u.accountRepo.Login(ctx, login, password)
	if err != nil {
		u.log.Warnf("Failed to login %s: %+v", login, err)
		return nil, err
	}

	claims, err := u.parser.Parse(session.Token)
	if err != nil {
		u.log.Warnf("Failed to parse session token: %+v", err)
		return session, nil
	}

	if session.Role.Valid() {
		u.rememberRole(ctx, claims.UserID, session.Role)
	}
	_ = u.audit.LogCreate(jwt.WithUserID(ctx, claims.UserID), entity.AuditActionUserLogin, "session", login, string(session.Role))
	return session, nil
}

func (u *accountUsecase) rememberRole(ctx context.Context, userID int, role entity.Role) {
	if u.store == nil {
		return
	}
	if err := u.store.Set(ctx, roleKey(userID), string(role), u.roleTTL); err != nil {
		u.log.Warnf("Failed to cache role of user %d: %+v", userID, err)
	}
}

func (u *accountUsecase) ResolveRole(ctx context.Context, userID int) (entity.Role, error) {
	if u.store != nil {
		var cached string
		found, err := u.store.Get(ctx, roleKey(userID), &cached)
		if err != nil {
			u.log.Warnf("Failed to read cached role of user %d: %+v", userID, err)
		}
		if found && entity.Role(cached).Valid() {
			return entity.Role(cached), nil
		}
	}

	role, err := u.lookupRole(ctx)
	if err != nil {
		return "", err
	}
	u.rememberRole(ctx, userID, role)
	return role, nil
}

// lookupRole asks the staff endpoints first; the last error seen is returned
// when none of them accepts the session.
func (u *accountUsecase) lookupRole(ctx context.Context) (entity.Role, error) {
	var lastErr error
	finders := []func(context.Context) (*entity.Identity, error){
		u.accountRepo.FindAdmin,
		u.accountRepo.FindDoctor,
		u.accountRepo.FindPatient,
	}
	for _, find := range finders {
		identity, err := find(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if identity != nil && identity.Role.Valid() {
			return identity.Role, nil
		}
	}
	if lastErr != nil {
		u.log.Warnf("Failed to resolve role: %+v", lastErr)
		return "", errors.Join(ErrUnknownRole, lastErr)
	}
	return "", ErrUnknownRole
}

func (u *accountUsecase) GetIdentity(ctx context.Context, role entity.Role) (*entity.Identity, error) {
	var (
		identity *entity.Identity
		err      error
	)
	switch role {
	case entity.RoleAdmin, entity.RoleSuperadmin:
		identity, err = u.accountRepo.FindAdmin(ctx)
	case entity.RoleDoctor:
		identity, err = u.accountRepo.FindDoctor(ctx)
	case entity.RolePatient:
		identity, err = u.accountRepo.FindPatient(ctx)
	default:
		return nil, ErrUnknownRole
	}
	if err != nil {
		u.log.Warnf("Failed to find %s identity: %+v", role, err)
		return nil, err
	}
	return identity, nil
}

func (u *accountUsecase) GetPatientProfile(ctx context.Context) (*entity.Patient, error) {
	patient, err := u.accountRepo.FindPatientProfile(ctx)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	return patient, nil
}
