package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func clinicWeek() entity.WeeklySchedule {
	days := []entity.WeekdaySchedule{}
	for _, w := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		days = append(days, entity.WeekdaySchedule{Weekday: w, StartTime: "09:00", EndTime: "18:00", Working: true})
	}
	return entity.WeeklySchedule{Days: schedule.NormalizeWeek(days), SlotMinutes: 30}
}

func newScheduleUsecase(repo *fakeScheduleRepo, audit *fakeAudit) ScheduleUsecase {
	return NewScheduleUsecase(quietLogger(), repo, audit, func() time.Time { return fixedNow })
}

func TestSaveClinicSchedule(t *testing.T) {
	t.Run("slot out of range", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		week := clinicWeek()
		week.SlotMinutes = 3

		err := newScheduleUsecase(repo, &fakeAudit{}).SaveClinicSchedule(context.Background(), week)
		assert.ErrorIs(t, err, ErrInvalidSlot)
		assert.Nil(t, repo.savedClinic)
	})

	t.Run("day shorter than a slot", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		week := entity.WeeklySchedule{
			Days:        []entity.WeekdaySchedule{{Weekday: time.Monday, StartTime: "09:00", EndTime: "09:20", Working: true}},
			SlotMinutes: 30,
		}

		err := newScheduleUsecase(repo, &fakeAudit{}).SaveClinicSchedule(context.Background(), week)
		require.ErrorIs(t, err, ErrInvalidClinicDays)

		var daysErr *InvalidDaysError
		require.True(t, errors.As(err, &daysErr))
		assert.Equal(t, []time.Weekday{time.Monday}, daysErr.Days)
		assert.Nil(t, repo.savedClinic)
	})

	t.Run("valid week is normalized and audited", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		audit := &fakeAudit{}
		week := entity.WeeklySchedule{
			Days:        []entity.WeekdaySchedule{{Weekday: time.Friday, StartTime: "10:00", EndTime: "14:00", Working: true}},
			SlotMinutes: 20,
		}

		require.NoError(t, newScheduleUsecase(repo, audit).SaveClinicSchedule(context.Background(), week))
		require.NotNil(t, repo.savedClinic)
		assert.Len(t, repo.savedClinic.Days, 7)
		assert.Equal(t, time.Monday, repo.savedClinic.Days[0].Weekday)
		assert.Equal(t, []string{entity.AuditActionScheduleUpdate}, audit.actions())
	})

	t.Run("upstream failure", func(t *testing.T) {
		upstream := errors.New("boom")
		repo := &fakeScheduleRepo{err: upstream}

		err := newScheduleUsecase(repo, &fakeAudit{}).SaveClinicSchedule(context.Background(), clinicWeek())
		assert.ErrorIs(t, err, ErrScheduleSaveFailed)
		assert.ErrorIs(t, err, upstream)
	})
}

func TestSaveDoctorSchedule(t *testing.T) {
	uc := newScheduleUsecase(&fakeScheduleRepo{}, &fakeAudit{})
	doctorWeek := entity.WeeklySchedule{
		Days: []entity.WeekdaySchedule{
			{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00", Working: true},
			{Weekday: time.Tuesday, StartTime: "10:00", EndTime: "12:00", Working: true},
			{Weekday: time.Sunday, StartTime: "10:00", EndTime: "12:00", Working: true},
		},
		SlotMinutes: 30,
	}

	err := uc.SaveDoctorSchedule(context.Background(), 0, doctorWeek, clinicWeek())
	assert.ErrorIs(t, err, ErrDoctorNotSelected)

	err = uc.SaveDoctorSchedule(context.Background(), 7, doctorWeek, clinicWeek())
	var daysErr *InvalidDaysError
	require.True(t, errors.As(err, &daysErr))
	assert.ErrorIs(t, err, ErrInvalidDoctorDays)
	assert.Equal(t, []time.Weekday{time.Monday, time.Sunday}, daysErr.Days)
}

func TestClinicOverride(t *testing.T) {
	repo := &fakeScheduleRepo{overrides: map[string]entity.Override{
		"2025-06-12": {Date: "2025-06-12", Type: entity.OverrideWork, StartTime: "10:00", EndTime: "12:00"},
	}}
	uc := newScheduleUsecase(repo, &fakeAudit{})
	ctx := context.Background()

	o, err := uc.GetClinicOverride(ctx, "2025-06-11")
	require.NoError(t, err)
	assert.Equal(t, entity.EmptyOverride(nil, "2025-06-11"), o)

	o, err = uc.GetClinicOverride(ctx, "2025-06-12")
	require.NoError(t, err)
	assert.Equal(t, entity.OverrideWork, o.Type)

	err = uc.SaveClinicOverride(ctx, entity.Override{Date: "2025-09-11", Type: entity.OverrideOff})
	assert.ErrorIs(t, err, schedule.ErrOverrideDate)

	doctorID := 3
	err = uc.SaveClinicOverride(ctx, entity.Override{DoctorID: &doctorID, Date: "2025-09-10", Type: entity.OverrideOff})
	require.NoError(t, err)
	require.NotNil(t, repo.savedOverride)
	assert.Nil(t, repo.savedOverride.DoctorID)
}

func TestDoctorOverride(t *testing.T) {
	repo := &fakeScheduleRepo{}
	uc := newScheduleUsecase(repo, &fakeAudit{})
	ctx := context.Background()
	doctorID := 5

	err := uc.SaveDoctorOverride(ctx, entity.Override{Date: "2025-06-11", Type: entity.OverrideOff}, clinicWeek())
	assert.ErrorIs(t, err, ErrDoctorNotSelected)

	sunday := entity.Override{DoctorID: &doctorID, Date: "2025-06-15", Type: entity.OverrideWork, StartTime: "10:00", EndTime: "12:00"}
	assert.ErrorIs(t, uc.SaveDoctorOverride(ctx, sunday, clinicWeek()), schedule.ErrClinicClosed)

	early := entity.Override{DoctorID: &doctorID, Date: "2025-06-16", Type: entity.OverrideWork, StartTime: "08:00", EndTime: "12:00"}
	assert.ErrorIs(t, uc.SaveDoctorOverride(ctx, early, clinicWeek()), schedule.ErrOutsideClinic)

	ok := entity.Override{DoctorID: &doctorID, Date: "2025-06-16", Type: entity.OverrideWork, StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, uc.SaveDoctorOverride(ctx, ok, clinicWeek()))
	assert.Equal(t, ok, *repo.savedOverride)

	empty, err := uc.GetDoctorOverride(ctx, doctorID, "2025-06-20")
	require.NoError(t, err)
	require.NotNil(t, empty.DoctorID)
	assert.Equal(t, doctorID, *empty.DoctorID)
	assert.Equal(t, entity.OverrideOff, empty.Type)
}
