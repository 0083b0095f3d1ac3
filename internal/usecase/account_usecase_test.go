package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCachesRole(t *testing.T) {
	repo := &fakeAccountRepo{session: &repository.Session{Role: entity.RoleDoctor, Token: "t"}}
	store := cache.NewMemoryStore(time.Minute, time.Minute)
	audit := &fakeAudit{}
	uc := NewAccountUsecase(quietLogger(), repo, fakeParser{userID: 42}, store, time.Hour, audit)
	ctx := context.Background()

	_, err := uc.Login(ctx, " ", "x")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	session, err := uc.Login(ctx, "doc@clinic.ru", "secret")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, session.Role)

	role, err := uc.ResolveRole(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, role)
	assert.Zero(t, repo.adminCalls)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, 42, audit.entries[0].UserID)
}

func TestLoginNormalizesPhone(t *testing.T) {
	repo := &fakeAccountRepo{session: &repository.Session{Role: entity.RolePatient, Token: "t"}}
	uc := NewAccountUsecase(quietLogger(), repo, fakeParser{userID: 7}, nil, time.Hour, &fakeAudit{})

	_, err := uc.Login(context.Background(), "+7 (999) 123-45-67", "secret")
	require.NoError(t, err)
	_, err = uc.Login(context.Background(), " doc@clinic.ru ", "secret")
	require.NoError(t, err)

	assert.Equal(t, []string{"79991234567", "doc@clinic.ru"}, repo.logins)
}

func TestResolveRoleProbes(t *testing.T) {
	denied := errors.New("forbidden")
	repo := &fakeAccountRepo{
		deniedErr: denied,
		doctor:    &entity.Identity{UserID: 9, Role: entity.RoleDoctor},
	}
	store := cache.NewMemoryStore(time.Minute, time.Minute)
	uc := NewAccountUsecase(quietLogger(), repo, fakeParser{}, store, time.Hour, &fakeAudit{})

	role, err := uc.ResolveRole(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, role)
	assert.Equal(t, 1, repo.adminCalls)

	_, err = uc.ResolveRole(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.doctorCalls)

	nobody := &fakeAccountRepo{deniedErr: denied}
	uc = NewAccountUsecase(quietLogger(), nobody, fakeParser{}, nil, time.Hour, &fakeAudit{})
	_, err = uc.ResolveRole(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.ErrorIs(t, err, denied)
}

func TestGetIdentityByRole(t *testing.T) {
	repo := &fakeAccountRepo{admin: &entity.Identity{UserID: 1, Role: entity.RoleSuperadmin}}
	uc := NewAccountUsecase(quietLogger(), repo, fakeParser{}, nil, time.Hour, &fakeAudit{})

	identity, err := uc.GetIdentity(context.Background(), entity.RoleSuperadmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperadmin, identity.Role)

	_, err = uc.GetIdentity(context.Background(), entity.Role("guest"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}
