package viewmodel

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(env *testEnv) *Registry {
	return NewRegistry(env.deps, time.Minute, env.deps.Log, nil)
}

func TestRegistryMountAccess(t *testing.T) {
	env := newTestEnv()
	reg := newTestRegistry(env)
	defer reg.Close()
	ctx := context.Background()

	tests := []struct {
		name    string
		kind    Kind
		session Session
		wantErr error
	}{
		{"unknown kind", Kind("nope"), staffSession(), ErrUnknownKind},
		{"anonymous staff page", KindPriceList, Session{}, ErrUnauthorized},
		{"patient on staff page", KindPriceList, Session{UserID: 5, Role: entity.RolePatient}, ErrForbidden},
		{"admin on superadmin page", KindAdminList, staffSession(), ErrForbidden},
		{"admin on statistics", KindStatistics, staffSession(), ErrForbidden},
		{"patient registering patients", KindPatientRegistration, Session{UserID: 5, Role: entity.RolePatient}, ErrForbidden},
		{"anonymous booking", KindAppointment, Session{}, nil},
		{"admin on price list", KindPriceList, staffSession(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, view, err := reg.Mount(ctx, tt.kind, tt.session)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, id)
			assert.NotNil(t, view)
		})
	}
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryPagesBelongToTheirUser(t *testing.T) {
	env := newTestEnv()
	reg := newTestRegistry(env)
	defer reg.Close()

	id, _, err := reg.Mount(context.Background(), KindPriceList, staffSession())
	require.NoError(t, err)

	_, err = reg.View(id, 2)
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = reg.View(id, 1)
	assert.NoError(t, err)

	require.NoError(t, reg.Unmount(id, 1))
	_, err = reg.View(id, 1)
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.ErrorIs(t, reg.Unmount(id, 1), ErrPageNotFound)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryPopover(t *testing.T) {
	env := newTestEnv()
	env.account.identity = &entity.Identity{UserID: 1, Role: entity.RoleAdmin, Person: entity.Person{FirstName: "Анна", SecondName: "Петрова"}}
	reg := newTestRegistry(env)
	defer reg.Close()

	id, view, err := reg.Mount(context.Background(), KindPriceList, staffSession())
	require.NoError(t, err)
	header := view.(PriceListView).Header
	assert.Equal(t, "Анна Петрова", header.FullName)
	assert.Equal(t, "admin-profile", header.PopoverID)
	assert.False(t, header.PopoverVisible)

	view, err = reg.Dispatch(context.Background(), id, 1, "toggle_popover", nil)
	require.NoError(t, err)
	assert.True(t, view.(PriceListView).PopoverVisible)

	view, err = reg.Event(id, 1, ui.Event{Type: "click", Path: []string{"avatar", "admin-profile", "body"}})
	require.NoError(t, err)
	assert.True(t, view.(PriceListView).PopoverVisible)

	view, err = reg.Event(id, 1, ui.Event{Type: "click", Path: []string{"services-table", "body"}})
	require.NoError(t, err)
	assert.False(t, view.(PriceListView).PopoverVisible)
}

func TestRegistryDispatchErrors(t *testing.T) {
	env := newTestEnv()
	reg := newTestRegistry(env)
	defer reg.Close()
	ctx := context.Background()

	id, _, err := reg.Mount(ctx, KindPriceList, staffSession())
	require.NoError(t, err)

	_, err = reg.Dispatch(ctx, id, 1, "launch_rocket", nil)
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = reg.Dispatch(ctx, id, 1, "delete_service", json.RawMessage(`{"id":"x"}`))
	var payloadErr *PayloadError
	assert.ErrorAs(t, err, &payloadErr)

	_, err = reg.Dispatch(ctx, id, 1, "delete_service", json.RawMessage(`{}`))
	require.ErrorAs(t, err, &payloadErr)
	assert.Contains(t, payloadErr.Fields, "id")

	_, err = reg.Dispatch(ctx, "missing", 1, "set_tab", nil)
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestRegistryExpiresIdlePages(t *testing.T) {
	env := newTestEnv()
	reg := NewRegistry(env.deps, 20*time.Millisecond, env.deps.Log, nil)
	defer reg.Close()

	id, _, err := reg.Mount(context.Background(), KindAppointment, Session{})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := reg.View(id, 0)
		return err != nil
	}, time.Second, 10*time.Millisecond)
}
