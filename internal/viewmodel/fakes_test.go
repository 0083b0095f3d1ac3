package viewmodel

import (
	"context"
	"errors"
	"io"
	"time"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

var errUpstream = errors.New("upstream failed")

// The fakes embed the usecase interfaces; pages calling anything not
// overridden here panic, which flags an unexpected call in a test.

type fakeAccount struct {
	usecase.AccountUsecase
	identity *entity.Identity
	profile  *entity.Patient
}

func (f *fakeAccount) GetIdentity(context.Context, entity.Role) (*entity.Identity, error) {
	if f.identity == nil {
		return nil, errUpstream
	}
	return f.identity, nil
}

func (f *fakeAccount) GetPatientProfile(context.Context) (*entity.Patient, error) {
	return f.profile, nil
}

type fakeSchedule struct {
	usecase.ScheduleUsecase
	clinic    entity.WeeklySchedule
	saveErr   error
	saved     []entity.WeeklySchedule
	overrides []entity.Override
}

func (f *fakeSchedule) GetClinicSchedule(context.Context) (*entity.WeeklySchedule, error) {
	week := f.clinic
	return &week, nil
}

func (f *fakeSchedule) GetDoctorSchedule(context.Context, int) (*entity.WeeklySchedule, error) {
	week := f.clinic
	return &week, nil
}

func (f *fakeSchedule) SaveClinicSchedule(_ context.Context, week entity.WeeklySchedule) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, week)
	return nil
}

func (f *fakeSchedule) SaveDoctorSchedule(_ context.Context, _ int, week, _ entity.WeeklySchedule) error {
	return f.SaveClinicSchedule(context.Background(), week)
}

func (f *fakeSchedule) SaveClinicOverride(_ context.Context, o entity.Override) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.overrides = append(f.overrides, o)
	return nil
}

func (f *fakeSchedule) SaveDoctorOverride(_ context.Context, o entity.Override, _ entity.WeeklySchedule) error {
	if o.DoctorID == nil {
		return usecase.ErrDoctorNotSelected
	}
	return f.SaveClinicOverride(context.Background(), o)
}

type fakeCatalog struct {
	usecase.CatalogUsecase
	services   []entity.Service
	materials  []entity.Material
	categories []entity.ServiceCategory
	icd        []entity.ICDCode
	err        error
	updated    []string
	deleted    []int
}

func (f *fakeCatalog) GetServices(context.Context) ([]entity.Service, error) {
	return f.services, nil
}

func (f *fakeCatalog) GetMaterials(context.Context) ([]entity.Material, error) {
	return f.materials, nil
}

func (f *fakeCatalog) GetCategories(context.Context) ([]entity.ServiceCategory, error) {
	return f.categories, nil
}

func (f *fakeCatalog) GetICDCodes(context.Context) ([]entity.ICDCode, error) {
	return f.icd, nil
}

func (f *fakeCatalog) UpdateServicePrice(_ context.Context, s entity.Service, raw string) error {
	if _, msg := usecase.ParsePrice(raw); msg != "" {
		return &usecase.FormError{Fields: map[string]string{"price": msg}}
	}
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, s.Name+"="+raw)
	return nil
}

func (f *fakeCatalog) DeleteService(_ context.Context, s entity.Service) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, s.ID)
	return nil
}

func (f *fakeCatalog) DeleteMaterial(_ context.Context, m entity.Material) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, m.ID)
	return nil
}

type fakeDoctors struct {
	usecase.DoctorUsecase
	doctors     []entity.Doctor
	specialties []entity.Specialty
}

func (f *fakeDoctors) GetDoctors(context.Context) ([]entity.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeDoctors) GetSpecialties(context.Context) ([]entity.Specialty, error) {
	return f.specialties, nil
}

func (f *fakeDoctors) GetDoctorsBySpecialty(_ context.Context, specialtyID int) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range f.doctors {
		for _, s := range d.Specialties {
			if s == specialtyID {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

type fakeAppointments struct {
	usecase.AppointmentUsecase
	slots       []entity.DaySlots
	appointment *entity.AppointmentDetails
	bookErr     error
	booked      []entity.Booking
}

func (f *fakeAppointments) GetFreeSlots(context.Context, int) ([]entity.DaySlots, error) {
	return f.slots, nil
}

func (f *fakeAppointments) Book(_ context.Context, b entity.Booking) error {
	if b.DoctorID == 0 || b.Date == "" || b.Time == "" {
		return usecase.ErrSlotNotSelected
	}
	if f.bookErr != nil {
		return f.bookErr
	}
	f.booked = append(f.booked, b)
	return nil
}

func (f *fakeAppointments) GetAppointment(context.Context, int) (*entity.AppointmentDetails, error) {
	if f.appointment == nil {
		return nil, errUpstream
	}
	return f.appointment, nil
}

type fakeVisits struct {
	usecase.VisitUsecase
	notes     []entity.PatientNote
	records   []entity.VisitRecord
	submitErr error
}

func (f *fakeVisits) GetNotes(context.Context, int) ([]entity.PatientNote, error) {
	return f.notes, nil
}

func (f *fakeVisits) GetPastVisits(context.Context, int) ([]entity.PastVisit, error) {
	return []entity.PastVisit{}, nil
}

func (f *fakeVisits) GetPatientDocuments(context.Context, int) ([]entity.Document, error) {
	return []entity.Document{}, nil
}

func (f *fakeVisits) SubmitConsultation(_ context.Context, appt entity.AppointmentDetails, doctorID int, draft *usecase.ConsultationDraft) error {
	if problems := draft.Problems(); len(problems) > 0 {
		return &usecase.DraftError{Problems: problems}
	}
	if f.submitErr != nil {
		return f.submitErr
	}
	f.records = append(f.records, draft.Record(appt.ID, appt.PatientID, doctorID))
	return nil
}

type fakePatients struct {
	usecase.PatientUsecase
	err        error
	registered []entity.Patient
}

func (f *fakePatients) RegisterPatient(_ context.Context, patient entity.Patient) (int, error) {
	if patient.SecondName == "" {
		return 0, &usecase.FormError{Fields: map[string]string{"secondName": usecase.MsgSecondNameRequired}}
	}
	if f.err != nil {
		return 0, f.err
	}
	f.registered = append(f.registered, patient)
	return len(f.registered), nil
}

type fakeProfiles struct {
	usecase.ProfileUsecase
	admin     *entity.Admin
	doctor    *entity.Doctor
	err       error
	emails    []string
	passwords []string
}

func (f *fakeProfiles) GetAdminProfile(context.Context) (*entity.Admin, error) {
	if f.admin == nil {
		return nil, errUpstream
	}
	admin := *f.admin
	return &admin, nil
}

func (f *fakeProfiles) GetDoctorProfile(context.Context) (*entity.Doctor, error) {
	if f.doctor == nil {
		return nil, errUpstream
	}
	return f.doctor, nil
}

func (f *fakeProfiles) UpdateAdminProfile(_ context.Context, admin entity.Admin) error {
	if f.err != nil {
		return f.err
	}
	f.admin.Person = admin.Person
	return nil
}

func (f *fakeProfiles) ChangeEmail(_ context.Context, email string) error {
	if !validator.ValidStrictEmail(email) {
		return &usecase.FormError{Fields: map[string]string{"email": usecase.MsgNewEmailFormat}}
	}
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, email)
	f.admin.Email = email
	return nil
}

func (f *fakeProfiles) ChangePassword(_ context.Context, password, confirm string) error {
	if password != confirm {
		return &usecase.FormError{Fields: map[string]string{"confirm": usecase.MsgPasswordMismatch}}
	}
	if f.err != nil {
		return f.err
	}
	f.passwords = append(f.passwords, password)
	return nil
}

type fakeStatistics struct {
	usecase.StatisticsUsecase
	stats *entity.ClinicStats
	err   error
}

func (f *fakeStatistics) GetStatistics(context.Context) (*entity.ClinicStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

type testEnv struct {
	deps         *Deps
	account      *fakeAccount
	schedule     *fakeSchedule
	catalog      *fakeCatalog
	doctors      *fakeDoctors
	appointments *fakeAppointments
	visits       *fakeVisits
	patients     *fakePatients
	profiles     *fakeProfiles
	statistics   *fakeStatistics
}

func newTestEnv() *testEnv {
	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		account:      &fakeAccount{},
		schedule:     &fakeSchedule{},
		catalog:      &fakeCatalog{},
		doctors:      &fakeDoctors{},
		appointments: &fakeAppointments{},
		visits:       &fakeVisits{},
		patients:     &fakePatients{},
		profiles:     &fakeProfiles{},
		statistics:   &fakeStatistics{},
	}
	env.deps = &Deps{
		Log:         log,
		Validator:   validator.NewValidator(),
		Now:         func() time.Time { return fixedNow },
		Account:     env.account,
		Schedule:    env.schedule,
		Catalog:     env.catalog,
		Doctors:     env.doctors,
		Appointment: env.appointments,
		Visits:      env.visits,
		Patients:    env.patients,
		Profiles:    env.profiles,
		Statistics:  env.statistics,
	}
	return env
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func staffSession() Session { return Session{UserID: 1, Role: entity.RoleAdmin} }
