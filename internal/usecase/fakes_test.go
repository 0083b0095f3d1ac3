package usecase

import (
	"context"
	"io"
	"sync"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/pkg/jwt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type auditEntry struct {
	Action string
	UserID int
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *fakeAudit) add(ctx context.Context, action string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, _ := jwt.UserIDFromContext(ctx)
	a.entries = append(a.entries, auditEntry{Action: action, UserID: id})
	return nil
}

func (a *fakeAudit) LogCreate(ctx context.Context, action, _, _ string, _ interface{}) error {
	return a.add(ctx, action)
}

func (a *fakeAudit) LogUpdate(ctx context.Context, action, _, _ string, _, _ interface{}) error {
	return a.add(ctx, action)
}

func (a *fakeAudit) LogDelete(ctx context.Context, action, _, _ string, _ interface{}) error {
	return a.add(ctx, action)
}

func (a *fakeAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Action
	}
	return out
}

type fakeScheduleRepo struct {
	clinic        *entity.WeeklySchedule
	savedClinic   *entity.WeeklySchedule
	savedDoctor   map[int]entity.WeeklySchedule
	overrides     map[string]entity.Override
	savedOverride *entity.Override
	err           error
}

func (r *fakeScheduleRepo) FindClinicSchedule(context.Context) (*entity.WeeklySchedule, error) {
	if r.err != nil {
		return nil, r.err
	}
	c := *r.clinic
	return &c, nil
}

func (r *fakeScheduleRepo) SaveClinicSchedule(_ context.Context, week entity.WeeklySchedule) error {
	if r.err != nil {
		return r.err
	}
	r.savedClinic = &week
	return nil
}

func (r *fakeScheduleRepo) FindDoctorSchedule(context.Context, int) (*entity.WeeklySchedule, error) {
	return &entity.WeeklySchedule{}, r.err
}

func (r *fakeScheduleRepo) SaveDoctorSchedule(_ context.Context, doctorID int, week entity.WeeklySchedule) error {
	if r.err != nil {
		return r.err
	}
	if r.savedDoctor == nil {
		r.savedDoctor = map[int]entity.WeeklySchedule{}
	}
	r.savedDoctor[doctorID] = week
	return nil
}

func (r *fakeScheduleRepo) FindClinicOverride(_ context.Context, date string) (*entity.Override, error) {
	if o, ok := r.overrides[date]; ok {
		return &o, nil
	}
	return nil, r.err
}

func (r *fakeScheduleRepo) SaveClinicOverride(_ context.Context, o entity.Override) error {
	r.savedOverride = &o
	return r.err
}

func (r *fakeScheduleRepo) FindDoctorOverride(_ context.Context, _ int, date string) (*entity.Override, error) {
	return r.FindClinicOverride(context.Background(), date)
}

func (r *fakeScheduleRepo) SaveDoctorOverride(_ context.Context, o entity.Override) error {
	r.savedOverride = &o
	return r.err
}

type fakeCatalogRepo struct {
	services        []entity.Service
	createdServices []entity.Service
	updatedServices []entity.Service
	materials       []entity.Material
	deleted         []int
	err             error
}

func (r *fakeCatalogRepo) FindServices(context.Context) ([]entity.Service, error) {
	return r.services, r.err
}

func (r *fakeCatalogRepo) FindMaterials(context.Context) ([]entity.Material, error) {
	return nil, r.err
}

func (r *fakeCatalogRepo) FindCategories(context.Context) ([]entity.ServiceCategory, error) {
	return nil, r.err
}

func (r *fakeCatalogRepo) FindICDCodes(context.Context) ([]entity.ICDCode, error) {
	return nil, r.err
}

func (r *fakeCatalogRepo) CreateService(_ context.Context, s entity.Service) error {
	r.createdServices = append(r.createdServices, s)
	return r.err
}

func (r *fakeCatalogRepo) UpdateService(_ context.Context, s entity.Service) error {
	r.updatedServices = append(r.updatedServices, s)
	return r.err
}

func (r *fakeCatalogRepo) DeleteService(_ context.Context, id int) error {
	r.deleted = append(r.deleted, id)
	return r.err
}

func (r *fakeCatalogRepo) CreateMaterial(_ context.Context, m entity.Material) error {
	r.materials = append(r.materials, m)
	return r.err
}

func (r *fakeCatalogRepo) UpdateMaterial(_ context.Context, m entity.Material) error {
	r.materials = append(r.materials, m)
	return r.err
}

func (r *fakeCatalogRepo) DeleteMaterial(_ context.Context, id int) error {
	r.deleted = append(r.deleted, id)
	return r.err
}

type fakeAppointmentRepo struct {
	today     []entity.TodayAppointment
	created   []entity.Booking
	transfers []entity.Transfer
	err       error
}

func (r *fakeAppointmentRepo) FindFreeSlots(context.Context, int) ([]entity.DaySlots, error) {
	return nil, r.err
}

func (r *fakeAppointmentRepo) Create(_ context.Context, b entity.Booking) error {
	r.created = append(r.created, b)
	return r.err
}

func (r *fakeAppointmentRepo) Transfer(_ context.Context, t entity.Transfer) error {
	r.transfers = append(r.transfers, t)
	return r.err
}

func (r *fakeAppointmentRepo) Cancel(context.Context, int) error { return r.err }

func (r *fakeAppointmentRepo) FindByID(_ context.Context, id int) (*entity.AppointmentDetails, error) {
	return &entity.AppointmentDetails{ID: id}, r.err
}

func (r *fakeAppointmentRepo) FindUpcoming(context.Context) ([]entity.UpcomingAppointment, error) {
	return nil, r.err
}

func (r *fakeAppointmentRepo) FindToday(context.Context) ([]entity.TodayAppointment, error) {
	return r.today, r.err
}

func (r *fakeAppointmentRepo) FindDoctorTable(context.Context) (*entity.DoctorScheduleTable, error) {
	return &entity.DoctorScheduleTable{}, r.err
}

func (r *fakeAppointmentRepo) FindScheduleGrid(context.Context) (*entity.ScheduleGrid, error) {
	return &entity.ScheduleGrid{}, r.err
}

func (r *fakeAppointmentRepo) FindUnconfirmed(context.Context) ([]entity.UnconfirmedAppointment, error) {
	return nil, r.err
}

func (r *fakeAppointmentRepo) Confirm(context.Context, entity.UnconfirmedAppointment) error {
	return r.err
}

type fakeVisitRepo struct {
	created  []entity.VisitRecord
	notes    map[int][]entity.PatientNote
	notesErr error
	err      error
}

func (r *fakeVisitRepo) Create(_ context.Context, v entity.VisitRecord) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, v)
	return nil
}

func (r *fakeVisitRepo) FindNotes(_ context.Context, patientID int) ([]entity.PatientNote, error) {
	return r.notes[patientID], nil
}

func (r *fakeVisitRepo) AddNotes(_ context.Context, patientID int, notes []entity.PatientNote) error {
	if r.notesErr != nil {
		return r.notesErr
	}
	if r.notes == nil {
		r.notes = map[int][]entity.PatientNote{}
	}
	r.notes[patientID] = append(r.notes[patientID], notes...)
	return nil
}

func (r *fakeVisitRepo) FindPastVisits(context.Context, int) ([]entity.PastVisit, error) {
	return nil, r.err
}

func (r *fakeVisitRepo) FindPatientDocuments(context.Context, int) ([]entity.Document, error) {
	return nil, r.err
}

func (r *fakeVisitRepo) FindOwnHistory(context.Context) ([]entity.HistoryEntry, error) {
	return nil, r.err
}

func (r *fakeVisitRepo) FindOwnDocuments(context.Context) ([]entity.Document, error) {
	return nil, r.err
}

func (r *fakeVisitRepo) FindCompleted(context.Context) ([]entity.CompletedVisit, error) {
	return nil, r.err
}

func (r *fakeVisitRepo) ConfirmPayment(context.Context, int, decimal.Decimal) error {
	return r.err
}

type fakeAccountRepo struct {
	session     *repository.Session
	admin       *entity.Identity
	doctor      *entity.Identity
	patient     *entity.Identity
	deniedErr   error
	adminCalls  int
	doctorCalls int
	logins      []string
}

func (r *fakeAccountRepo) Login(_ context.Context, login, _ string) (*repository.Session, error) {
	r.logins = append(r.logins, login)
	return r.session, nil
}

func (r *fakeAccountRepo) FindAdmin(context.Context) (*entity.Identity, error) {
	r.adminCalls++
	if r.admin == nil {
		return nil, r.deniedErr
	}
	return r.admin, nil
}

func (r *fakeAccountRepo) FindDoctor(context.Context) (*entity.Identity, error) {
	r.doctorCalls++
	if r.doctor == nil {
		return nil, r.deniedErr
	}
	return r.doctor, nil
}

func (r *fakeAccountRepo) FindPatient(context.Context) (*entity.Identity, error) {
	if r.patient == nil {
		return nil, r.deniedErr
	}
	return r.patient, nil
}

func (r *fakeAccountRepo) FindPatientProfile(context.Context) (*entity.Patient, error) {
	if r.patient == nil {
		return nil, r.deniedErr
	}
	return &entity.Patient{ID: r.patient.UserID, Person: r.patient.Person}, nil
}

type fakePatientRepo struct {
	loginChanges map[int]string
	registered   []entity.Patient
	err          error
}

func (r *fakePatientRepo) FindAll(context.Context) ([]entity.Patient, error) { return nil, r.err }

func (r *fakePatientRepo) Register(_ context.Context, p entity.Patient) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.registered = append(r.registered, p)
	return 100 + len(r.registered), nil
}

func (r *fakePatientRepo) Update(context.Context, entity.Patient) error { return r.err }

func (r *fakePatientRepo) Delete(context.Context, int) error { return r.err }

func (r *fakePatientRepo) ChangeLogin(_ context.Context, id int, digits string) error {
	if r.loginChanges == nil {
		r.loginChanges = map[int]string{}
	}
	r.loginChanges[id] = digits
	return r.err
}

func (r *fakePatientRepo) RequestCode(context.Context, string) error { return r.err }

func (r *fakePatientRepo) VerifyCode(context.Context, string, string) error { return r.err }

type fakeDoctorRepo struct {
	saved []entity.Doctor
	err   error
}

func (r *fakeDoctorRepo) FindAll(context.Context) ([]entity.Doctor, error) { return nil, r.err }

func (r *fakeDoctorRepo) FindStaff(context.Context) ([]entity.Doctor, error) { return nil, r.err }

func (r *fakeDoctorRepo) FindBySpecialty(context.Context, int) ([]entity.Doctor, error) {
	return nil, r.err
}

func (r *fakeDoctorRepo) FindSpecialties(context.Context) ([]entity.Specialty, error) {
	return nil, r.err
}

func (r *fakeDoctorRepo) Save(_ context.Context, d entity.Doctor) error {
	r.saved = append(r.saved, d)
	return r.err
}

func (r *fakeDoctorRepo) Delete(context.Context, int) error { return r.err }

func (r *fakeDoctorRepo) ChangeLogin(context.Context, int, string) error { return r.err }

type fakeParser struct {
	userID int
}

func (p fakeParser) Parse(string) (*jwt.Claims, error) {
	return &jwt.Claims{UserID: p.userID}, nil
}

type fakeProfileRepo struct {
	admin     *entity.Admin
	updated   []entity.Admin
	emails    []string
	passwords []string
	err       error
}

func (r *fakeProfileRepo) FindAdmin(context.Context) (*entity.Admin, error) { return r.admin, r.err }

func (r *fakeProfileRepo) FindDoctor(context.Context) (*entity.Doctor, error) {
	return &entity.Doctor{UserID: 9}, r.err
}

func (r *fakeProfileRepo) UpdateAdmin(_ context.Context, a entity.Admin) error {
	r.updated = append(r.updated, a)
	return r.err
}

func (r *fakeProfileRepo) ChangeEmail(_ context.Context, email string) error {
	r.emails = append(r.emails, email)
	return r.err
}

func (r *fakeProfileRepo) ChangePassword(_ context.Context, password string) error {
	r.passwords = append(r.passwords, password)
	return r.err
}
