package viewmodel

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/schedule"
	"clinic-portal/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mount(t *testing.T, env *testEnv, kind Kind, s Session) Page {
	t.Helper()
	sp, ok := defaultSpecs()[kind]
	require.True(t, ok)
	page := sp.build(env.deps)
	require.NoError(t, page.Mount(context.Background(), s))
	t.Cleanup(page.Unmount)
	return page
}

func dispatch(t *testing.T, page Page, action, payload string) {
	t.Helper()
	require.NoError(t, page.Dispatch(context.Background(), action, json.RawMessage(payload)))
}

func TestScheduleManagementAlerts(t *testing.T) {
	tests := []struct {
		name    string
		saveErr error
		want    string
	}{
		{"saved", nil, msgClinicScheduleSaved},
		{"slot out of range", usecase.ErrInvalidSlot, msgSlotRange},
		{"invalid days", &usecase.InvalidDaysError{Kind: usecase.ErrInvalidClinicDays, Days: []time.Weekday{time.Tuesday}}, msgCheckClinicSchedule},
		{"upstream failure", usecase.ErrScheduleSaveFailed, msgClinicScheduleFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.schedule.saveErr = tt.saveErr
			page := mount(t, env, KindScheduleManagement, staffSession())

			dispatch(t, page, "save_clinic_schedule", `{"days":[{"weekday":2,"start_time":"09:00","end_time":"18:00","working":true}],"slot_minutes":30}`)
			v := page.View().(ScheduleManagementView)
			assert.Equal(t, tt.want, v.Alert)

			var tuesday WeekdayView
			for _, d := range v.Clinic.Days {
				if d.Weekday == int(time.Tuesday) {
					tuesday = d
				}
			}
			_, invalid := tt.saveErr.(*usecase.InvalidDaysError)
			assert.Equal(t, invalid, tuesday.Invalid)
		})
	}
}

func TestScheduleManagementWeekIsMondayFirst(t *testing.T) {
	env := newTestEnv()
	env.schedule.clinic = entity.WeeklySchedule{Days: schedule.NormalizeWeek(nil), SlotMinutes: 30}
	page := mount(t, env, KindScheduleManagement, staffSession())

	v := page.View().(ScheduleManagementView)
	require.Len(t, v.Clinic.Days, 7)
	assert.Equal(t, "Понедельник", v.Clinic.Days[0].Name)
	assert.Equal(t, "Воскресенье", v.Clinic.Days[6].Name)
	assert.Equal(t, "2025-06-10", v.OverrideMinDate)
	assert.Equal(t, "2025-09-10", v.OverrideMaxDate)
}

func TestScheduleManagementOverrides(t *testing.T) {
	env := newTestEnv()
	page := mount(t, env, KindScheduleManagement, staffSession())

	dispatch(t, page, "save_doctor_override", `{"date":"2025-06-12","type":"off"}`)
	assert.Equal(t, msgSelectDoctor, page.View().(ScheduleManagementView).Alert)

	env.schedule.saveErr = schedule.ErrOverrideDate
	dispatch(t, page, "save_clinic_override", `{"date":"2026-01-01","type":"off"}`)
	assert.Equal(t, msgOverrideDate, page.View().(ScheduleManagementView).Alert)

	env.schedule.saveErr = nil
	dispatch(t, page, "select_doctor", `{"id":7}`)
	dispatch(t, page, "save_doctor_override", `{"date":"2025-06-12","type":"work","start_time":"10:00","end_time":"12:00"}`)
	v := page.View().(ScheduleManagementView)
	assert.Equal(t, msgOverrideSaved, v.Alert)
	require.Len(t, env.schedule.overrides, 1)
	require.NotNil(t, env.schedule.overrides[0].DoctorID)
	assert.Equal(t, 7, *env.schedule.overrides[0].DoctorID)
	assert.Equal(t, "work", v.DoctorOverride.Type)
}

func TestAppointmentWizardBooksSelectedSlot(t *testing.T) {
	env := newTestEnv()
	env.doctors.specialties = []entity.Specialty{{ID: 3, Name: "Терапевт"}}
	env.doctors.doctors = []entity.Doctor{{UserID: 11, Specialties: []int{3}, Person: entity.Person{FirstName: "Иван", SecondName: "Иванов"}}}
	env.appointments.slots = []entity.DaySlots{
		{Label: "10.06.2025\nВт", Slots: []string{"09:00", "09:30"}},
		{Label: "11.06.2025\nСр", Slots: []string{}},
	}
	page := mount(t, env, KindAppointment, Session{})

	dispatch(t, page, "select_specialty", `{"id":3}`)
	v := page.View().(AppointmentView)
	require.Len(t, v.Booking.Doctors, 1)
	assert.Equal(t, "Иванов Иван", v.Booking.Doctors[0].Name)

	dispatch(t, page, "select_doctor", `{"id":11}`)
	v = page.View().(AppointmentView)
	assert.Equal(t, 2, v.Booking.Schedule.MaxSlots)
	assert.Equal(t, 1, v.Booking.Schedule.TotalPages)

	err := page.Dispatch(context.Background(), "select_slot", json.RawMessage(`{"label":"11.06.2025\nСр","time":"09:00"}`))
	assert.ErrorIs(t, err, ErrUnknownSlot)

	dispatch(t, page, "select_slot", `{"label":"10.06.2025\nВт","time":"09:30"}`)
	assert.Equal(t, 2, page.View().(AppointmentView).Booking.Step)

	dispatch(t, page, "submit", `{"secondName":"Сидоров","firstName":"Пётр","phone":"+7 (999) 123-45-67","birthDate":"1990-01-01"}`)
	v = page.View().(AppointmentView)
	assert.Equal(t, msgBookingCreated, v.Alert)
	assert.Equal(t, redirectHome, v.Redirect)
	require.Len(t, env.appointments.booked, 1)
	b := env.appointments.booked[0]
	assert.Equal(t, "10.06.2025", b.Date)
	assert.Equal(t, "09:30", b.Time)
	assert.Equal(t, 11, b.DoctorID)
	assert.Nil(t, b.PatientID)
}

func TestAppointmentWizardRequiresSlot(t *testing.T) {
	env := newTestEnv()
	page := mount(t, env, KindAppointment, Session{})

	dispatch(t, page, "submit", `{"secondName":"Сидоров","firstName":"Пётр"}`)
	v := page.View().(AppointmentView)
	assert.Equal(t, usecase.MsgSelectDoctorAndTime, v.Alert)
	assert.Empty(t, v.Redirect)
	assert.Equal(t, "1915-06-10", v.Booking.BirthDateMin)
	assert.Equal(t, "2007-06-10", v.Booking.BirthDateMax)
}

func TestAppointmentPrefillsSignedInPatient(t *testing.T) {
	env := newTestEnv()
	env.account.identity = &entity.Identity{UserID: 42, Role: entity.RolePatient}
	env.account.profile = &entity.Patient{ID: 42, Person: entity.Person{FirstName: "Ольга", SecondName: "Смирнова", Phone: "79991234567"}}
	page := mount(t, env, KindAppointment, Session{UserID: 42, Role: entity.RolePatient})

	v := page.View().(AppointmentView)
	assert.True(t, v.Booking.Authenticated)
	assert.Equal(t, "Ольга", v.Booking.Form.FirstName)
}

func TestPriceListFilterAndEdit(t *testing.T) {
	env := newTestEnv()
	env.catalog.categories = []entity.ServiceCategory{{ID: 1, Name: "Терапия"}, {ID: 2, Name: "Хирургия"}}
	env.catalog.services = []entity.Service{
		{ID: 1, Name: "Осмотр терапевта", Price: price("1500"), CategoryID: 1},
		{ID: 2, Name: "Перевязка", Price: price("800"), CategoryID: 2},
	}
	env.catalog.materials = []entity.Material{{ID: 5, Name: "Бинт", Price: price("50")}}
	page := mount(t, env, KindPriceList, staffSession())

	v := page.View().(PriceListView)
	assert.Equal(t, TabServices, v.Tab)
	assert.Len(t, v.Services, 2)
	assert.Equal(t, "Терапия", v.Services[0].CategoryName)

	dispatch(t, page, "set_filter", `{"search":"","category_id":2}`)
	v = page.View().(PriceListView)
	require.Len(t, v.Services, 1)
	assert.Equal(t, "Перевязка", v.Services[0].Name)
	assert.Len(t, v.Materials, 1)

	dispatch(t, page, "update_service_price", `{"id":2,"price":"-5"}`)
	v = page.View().(PriceListView)
	assert.Equal(t, usecase.MsgPriceNegative, v.Errors["price"])
	assert.Empty(t, env.catalog.updated)

	dispatch(t, page, "update_service_price", `{"id":2,"price":"900,50"}`)
	assert.Equal(t, usecase.MsgPriceWhole, page.View().(PriceListView).Errors["price"])
	assert.Empty(t, env.catalog.updated)

	dispatch(t, page, "update_service_price", `{"id":2,"price":"900"}`)
	assert.Empty(t, page.View().(PriceListView).Errors)
	assert.Equal(t, []string{"Перевязка=900"}, env.catalog.updated)

	err := page.Dispatch(context.Background(), "delete_material", json.RawMessage(`{"id":99}`))
	assert.ErrorIs(t, err, ErrUnknownElement)

	env.catalog.err = errUpstream
	dispatch(t, page, "delete_material", `{"id":5}`)
	assert.Equal(t, msgMaterialDeleteFailed, page.View().(PriceListView).Alert)
}

func consultationEnv() *testEnv {
	env := newTestEnv()
	env.account.identity = &entity.Identity{UserID: 9, Role: entity.RoleDoctor}
	env.appointments.appointment = &entity.AppointmentDetails{
		ID: 19, PatientID: 4, Date: "2025-06-10", Time: "10:00",
		Person: entity.Person{FirstName: "Мария", SecondName: "Кузнецова", BirthDate: "1990-06-11"},
	}
	env.catalog.services = []entity.Service{{ID: 1, Name: "Осмотр", Price: price("1000")}}
	env.catalog.materials = []entity.Material{{ID: 2, Name: "Шприц", Price: price("25.50")}}
	env.catalog.icd = []entity.ICDCode{{ID: 3, Code: "J06.9", Name: "ОРВИ"}}
	env.visits.notes = []entity.PatientNote{{Type: entity.NoteAllergy, Title: "Пенициллин"}}
	return env
}

func TestConsultationRequiresAppointment(t *testing.T) {
	env := newTestEnv()
	page := defaultSpecs()[KindConsultation].build(env.deps)
	err := page.Mount(context.Background(), Session{UserID: 9, Role: entity.RoleDoctor})
	assert.ErrorIs(t, err, ErrNoAppointment)
}

func TestConsultationDraftAndSubmit(t *testing.T) {
	env := consultationEnv()
	page := mount(t, env, KindConsultation, Session{UserID: 9, Role: entity.RoleDoctor, AppointmentID: 19})

	v := page.View().(ConsultationView)
	assert.Equal(t, "34 года", v.Age)
	require.Len(t, v.Allergies, 1)

	dispatch(t, page, "submit", `{}`)
	v = page.View().(ConsultationView)
	assert.True(t, strings.HasPrefix(v.Alert, usecase.MsgFixErrors))
	assert.Contains(t, v.Alert, usecase.MsgServiceRequired)
	assert.Empty(t, env.visits.records)

	dispatch(t, page, "add_allergy", `{"title":"Пенициллин"}`)
	dispatch(t, page, "add_allergy", `{"title":"Лактоза"}`)
	dispatch(t, page, "select_service", `{"id":1}`)
	dispatch(t, page, "select_material", `{"id":2}`)
	dispatch(t, page, "set_material_quantity", `{"id":2,"quantity":3}`)
	dispatch(t, page, "add_icd", `{"id":3}`)
	dispatch(t, page, "set_icd_comment", `{"id":3,"comment":"лёгкое течение"}`)
	dispatch(t, page, "set_field", `{"field":"complaints","value":"кашель"}`)
	dispatch(t, page, "set_field", `{"field":"treatment","value":"покой"}`)

	v = page.View().(ConsultationView)
	assert.True(t, price("1076.5").Equal(v.Total))
	require.Len(t, v.Allergies, 2)
	assert.True(t, v.Allergies[1].New)
	require.Len(t, v.SelectedICD, 1)
	assert.Equal(t, "лёгкое течение", v.SelectedICD[0].Comment)

	dispatch(t, page, "submit", `{}`)
	v = page.View().(ConsultationView)
	assert.Equal(t, msgVisitSaved, v.Alert)
	assert.Equal(t, redirectDoctorAfter, v.Redirect)
	require.Len(t, env.visits.records, 1)
	rec := env.visits.records[0]
	assert.Equal(t, 19, rec.AppointmentID)
	assert.Equal(t, 4, rec.PatientID)
	assert.Equal(t, 9, rec.DoctorID)
	assert.Equal(t, []entity.ItemQuantity{{ID: 2, Quantity: 3}}, rec.Materials)
}

func TestConsultationRejectsUnknownItems(t *testing.T) {
	env := consultationEnv()
	page := mount(t, env, KindConsultation, Session{UserID: 9, Role: entity.RoleDoctor, AppointmentID: 19})

	err := page.Dispatch(context.Background(), "select_service", json.RawMessage(`{"id":77}`))
	assert.ErrorIs(t, err, ErrUnknownElement)

	err = page.Dispatch(context.Background(), "set_material_quantity", json.RawMessage(`{"id":2,"quantity":1}`))
	assert.ErrorIs(t, err, ErrNothingChosen)

	var payloadErr *PayloadError
	err = page.Dispatch(context.Background(), "set_field", json.RawMessage(`{"field":"diagnosis","value":"x"}`))
	assert.ErrorAs(t, err, &payloadErr)
}

func TestPatientRegistration(t *testing.T) {
	env := newTestEnv()
	page := mount(t, env, KindPatientRegistration, staffSession())

	v := page.View().(PatientRegistrationView)
	assert.Equal(t, "1915-06-10", v.BirthDateMin)
	assert.Equal(t, "2007-06-10", v.BirthDateMax)

	err := page.Dispatch(context.Background(), "register", json.RawMessage(`{"birthDate":"10.06.1990"}`))
	var payloadErr *PayloadError
	require.ErrorAs(t, err, &payloadErr)

	dispatch(t, page, "register", `{"firstName":"Анна","birthDate":"1990-01-01"}`)
	v = page.View().(PatientRegistrationView)
	assert.Equal(t, usecase.MsgSecondNameRequired, v.Errors["secondName"])
	assert.Equal(t, "Анна", v.Form.FirstName)
	assert.Empty(t, v.Redirect)

	env.patients.err = &apiclient.APIError{Status: 409, Message: "телефон уже зарегистрирован"}
	form := `{"secondName":"Петрова","firstName":"Анна","birthDate":"1990-01-01","phone":"+7 999 123-45-67"}`
	dispatch(t, page, "register", form)
	assert.Equal(t, "Ошибка регистрации: телефон уже зарегистрирован", page.View().(PatientRegistrationView).Alert)

	env.patients.err = errUpstream
	dispatch(t, page, "register", form)
	assert.Equal(t, msgRegistrationFailed, page.View().(PatientRegistrationView).Alert)

	env.patients.err = nil
	dispatch(t, page, "register", form)
	v = page.View().(PatientRegistrationView)
	assert.Equal(t, msgRegistered, v.Alert)
	assert.Equal(t, redirectPatientList, v.Redirect)
	assert.Empty(t, v.Form.SecondName)
	require.Len(t, env.patients.registered, 1)
	assert.Equal(t, "Петрова", env.patients.registered[0].SecondName)
}

func TestAdministratorProfile(t *testing.T) {
	env := newTestEnv()
	env.profiles.admin = &entity.Admin{ID: 3, Role: "admin", Person: entity.Person{
		FirstName: "Ольга", SecondName: "Смирнова", Email: "olga@clinic.ru",
	}}
	page := mount(t, env, KindAdministratorProfile, staffSession())

	v := page.View().(AdministratorProfileView)
	assert.Equal(t, "Ольга", v.Profile.FirstName)
	assert.Equal(t, "admin", v.Role)

	dispatch(t, page, "edit", ``)
	assert.True(t, page.View().(AdministratorProfileView).Editing)
	dispatch(t, page, "save_profile", `{"firstName":"Ольга","secondName":"Иванова","email":"olga@clinic.ru"}`)
	v = page.View().(AdministratorProfileView)
	assert.False(t, v.Editing)
	assert.Equal(t, "Иванова", v.Profile.SecondName)

	err := page.Dispatch(context.Background(), "open_dialog", json.RawMessage(`{"dialog":"phone"}`))
	var payloadErr *PayloadError
	require.ErrorAs(t, err, &payloadErr)

	dispatch(t, page, "open_dialog", `{"dialog":"email"}`)
	dispatch(t, page, "change_email", `{"email":"olga@clinic.r"}`)
	v = page.View().(AdministratorProfileView)
	assert.Equal(t, usecase.MsgNewEmailFormat, v.Errors["email"])
	assert.Equal(t, "email", v.Dialog)

	dispatch(t, page, "change_email", `{"email":"olga@mail.ru"}`)
	v = page.View().(AdministratorProfileView)
	assert.Empty(t, v.Dialog)
	assert.Equal(t, "olga@mail.ru", v.Profile.Email)

	dispatch(t, page, "open_dialog", `{"dialog":"password"}`)
	dispatch(t, page, "change_password", `{"password":"secret123","confirm":"secret124"}`)
	assert.Equal(t, usecase.MsgPasswordMismatch, page.View().(AdministratorProfileView).Errors["confirm"])

	env.profiles.err = errUpstream
	dispatch(t, page, "change_password", `{"password":"secret123","confirm":"secret123"}`)
	assert.Equal(t, msgPasswordChangeFailed, page.View().(AdministratorProfileView).Alert)
	dispatch(t, page, "save_profile", `{"firstName":"Ольга","secondName":"Иванова"}`)
	assert.Equal(t, msgProfileSaveFailed, page.View().(AdministratorProfileView).Alert)

	env.profiles.err = nil
	dispatch(t, page, "change_password", `{"password":"secret123","confirm":"secret123"}`)
	v = page.View().(AdministratorProfileView)
	assert.Equal(t, msgPasswordChanged, v.Message)
	assert.Empty(t, v.Dialog)
	assert.Equal(t, []string{"secret123"}, env.profiles.passwords)
}

func TestDoctorProfilePasswordErrorsStayInline(t *testing.T) {
	env := newTestEnv()
	env.profiles.doctor = &entity.Doctor{UserID: 7, Education: "ПСПбГМУ", Experience: 12,
		Person: entity.Person{FirstName: "Иван", SecondName: "Петров"}}
	page := mount(t, env, KindDoctorProfile, Session{UserID: 7, Role: entity.RoleDoctor})

	v := page.View().(DoctorProfileView)
	assert.Equal(t, "ПСПбГМУ", v.Education)
	assert.Equal(t, 12, v.Experience)

	dispatch(t, page, "open_dialog", `{"dialog":"password"}`)
	env.profiles.err = errUpstream
	dispatch(t, page, "change_password", `{"password":"secret123","confirm":"secret123"}`)
	v = page.View().(DoctorProfileView)
	assert.Empty(t, v.Alert)
	assert.Equal(t, msgPasswordChangeFailed+".", v.Errors["password"])
	assert.Equal(t, "password", v.Dialog)

	dispatch(t, page, "close_dialog", ``)
	assert.Empty(t, page.View().(DoctorProfileView).Dialog)
}

func TestDoctorProfileLoadFailure(t *testing.T) {
	env := newTestEnv()
	page := mount(t, env, KindDoctorProfile, Session{UserID: 7, Role: entity.RoleDoctor})
	assert.Equal(t, msgProfileLoadFailed, page.View().(DoctorProfileView).Alert)
}

func TestStatisticsDashboard(t *testing.T) {
	env := newTestEnv()
	env.statistics.err = errUpstream
	page := mount(t, env, KindStatistics, Session{UserID: 1, Role: entity.RoleSuperadmin})

	v := page.View().(StatisticsView)
	assert.Equal(t, msgStatisticsFailed, v.Alert)
	assert.False(t, v.Loaded)
	assert.NotNil(t, v.TopServices)
	assert.NotNil(t, v.AgeGroups)

	env.statistics.err = nil
	env.statistics.stats = &entity.ClinicStats{
		TotalPatients:       40,
		TotalVisits:         90,
		AvgVisitsPerPatient: price("2.25"),
		TotalIncome:         price("123456.789"),
		TopServices:         []entity.ServiceUsage{{Name: "Осмотр", Count: 30}},
		DoctorChecks:        []entity.DoctorFigure{{Doctor: "Петров И.", Value: price("1333.333")}},
		AgeGroups:           []entity.AgeGroupShare{{Group: "18-30", Percent: price("37.5")}},
	}
	dispatch(t, page, "refresh", ``)
	v = page.View().(StatisticsView)
	assert.True(t, v.Loaded)
	assert.Empty(t, v.Alert)
	assert.Equal(t, "2.25", v.AvgVisitsPerPatient)
	assert.Equal(t, "123456.79", v.TotalIncome)
	assert.Equal(t, "0.00", v.MonthlyIncome)
	assert.Equal(t, []CountView{{Label: "Осмотр", Count: 30}}, v.TopServices)
	assert.Equal(t, []FigureView{{Label: "Петров И.", Value: "1333.33"}}, v.DoctorChecks)
	assert.Equal(t, []FigureView{{Label: "18-30", Value: "37.50"}}, v.AgeGroups)
	assert.Empty(t, v.DoctorLoad)
	assert.NotNil(t, v.DoctorLoad)
}
