package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/usecase"
)

const (
	msgUserDeleted       = "Пользователь удалён."
	msgUserDeleteFailed  = "Ошибка при удалении пользователя."
	msgSaveFailed        = "Ошибка при сохранении."
	msgLoginChangeFailed = "Ошибка при смене email"
	msgPhoneChangeFailed = "Ошибка при смене номера."
	msgLoginChanged      = "Логин изменён."
)

// saveFailure is the dialog text for a rejected staff save.
func saveFailure(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Ошибка при сохранении (код %d)", apiErr.Status)
	}
	return msgSaveFailed
}

func personMatches(p entity.Person, f entity.ListFilter, extra ...string) bool {
	return f.Matches(append([]string{p.FullName(), p.Email}, extra...)...)
}

type DoctorView struct {
	UserID      int    `json:"user_id"`
	Specialties []int  `json:"specialties"`
	Specialty   string `json:"specialty_names"`
	Experience  int    `json:"experience"`
	Education   string `json:"education"`
	PersonView
}

type DoctorListView struct {
	Header
	Feedback
	Search      string       `json:"search"`
	SpecialtyID int          `json:"specialty_id"`
	Specialties []OptionView `json:"specialties"`
	Doctors     []DoctorView `json:"doctors"`
}

type doctorListPage struct {
	base
	specialties []entity.Specialty
	doctors     *usecase.ListView[entity.Doctor]
}

func newDoctorListPage(deps *Deps) Page {
	p := &doctorListPage{
		base: newBase(deps, KindDoctorList, "admin-profile"),
		doctors: usecase.NewListView(func(d entity.Doctor, f entity.ListFilter) bool {
			if f.CategoryID != 0 && !containsInt(d.Specialties, f.CategoryID) {
				return false
			}
			return personMatches(d.Person, f)
		}),
	}
	p.on("set_filter", p.setFilter)
	p.on("save", p.save)
	p.on("change_login", p.changeLogin)
	p.on("delete", p.delete)
	return p
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func (p *doctorListPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.specialties, _ = p.deps.Doctors.GetSpecialties(ctx)
	p.reload(ctx)
	return nil
}

func (p *doctorListPage) reload(ctx context.Context) {
	doctors, _ := p.deps.Doctors.GetStaffDoctors(ctx)
	p.doctors.Set(doctors)
}

func (p *doctorListPage) setFilter(_ context.Context, payload json.RawMessage) error {
	var in dto.FilterPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	p.doctors.SetFilter(entity.ListFilter{Search: in.Search, CategoryID: in.CategoryID})
	return nil
}

func (p *doctorListPage) save(ctx context.Context, payload json.RawMessage) error {
	var in dto.DoctorFormPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	doctor := converter.DoctorFromPayload(in)
	if err := p.deps.Doctors.SaveDoctor(ctx, doctor); err != nil {
		p.fail(err, saveFailure(err))
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *doctorListPage) changeLogin(ctx context.Context, payload json.RawMessage) error {
	var in dto.LoginChangePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if err := p.deps.Doctors.ChangeLogin(ctx, in.ID, in.Email); err != nil {
		p.fail(err, msgLoginChangeFailed)
		return nil
	}
	p.alert = msgLoginChanged
	p.reload(ctx)
	return nil
}

func (p *doctorListPage) delete(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	doctor, ok := p.doctors.Find(func(d entity.Doctor) bool { return d.UserID == in.ID })
	if !ok {
		return ErrUnknownElement
	}
	if err := p.deps.Doctors.DeleteDoctor(ctx, doctor); err != nil {
		p.alert = msgUserDeleteFailed
		return nil
	}
	p.alert = msgUserDeleted
	p.reload(ctx)
	return nil
}

func (p *doctorListPage) View() interface{} {
	names := make(map[int]string, len(p.specialties))
	for _, s := range p.specialties {
		names[s.ID] = s.Name
	}

	filtered := p.doctors.Filtered()
	doctors := make([]DoctorView, len(filtered))
	for i, d := range filtered {
		specialty := make([]string, 0, len(d.Specialties))
		for _, id := range d.Specialties {
			if n, ok := names[id]; ok {
				specialty = append(specialty, n)
			}
		}
		doctors[i] = DoctorView{
			UserID:      d.UserID,
			Specialties: d.Specialties,
			Specialty:   strings.Join(specialty, ", "),
			Experience:  d.Experience,
			Education:   d.Education,
			PersonView:  personView(d.Person),
		}
	}

	f := p.doctors.Filter()
	return DoctorListView{
		Header:      p.header(),
		Feedback:    p.feedback(),
		Search:      f.Search,
		SpecialtyID: f.CategoryID,
		Specialties: specialtyOptions(p.specialties),
		Doctors:     doctors,
	}
}

type AdminView struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
	PersonView
}

type AdminListView struct {
	Header
	Feedback
	Search string       `json:"search"`
	Roles  []OptionView `json:"roles"`
	Admins []AdminView  `json:"admins"`
}

type adminListPage struct {
	base
	roles  []entity.RoleOption
	admins *usecase.ListView[entity.Admin]
}

func newAdminListPage(deps *Deps) Page {
	p := &adminListPage{
		base: newBase(deps, KindAdminList, "admin-profile"),
		admins: usecase.NewListView(func(a entity.Admin, f entity.ListFilter) bool {
			return personMatches(a.Person, f)
		}),
	}
	p.on("set_filter", p.setFilter)
	p.on("save", p.save)
	p.on("change_login", p.changeLogin)
	p.on("delete", p.delete)
	return p
}

func (p *adminListPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.roles, _ = p.deps.Admins.GetRoles(ctx)
	p.reload(ctx)
	return nil
}

func (p *adminListPage) reload(ctx context.Context) {
	admins, _ := p.deps.Admins.GetAdmins(ctx)
	p.admins.Set(admins)
}

func (p *adminListPage) setFilter(_ context.Context, payload json.RawMessage) error {
	var in dto.FilterPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	p.admins.SetFilter(entity.ListFilter{Search: in.Search})
	return nil
}

func (p *adminListPage) save(ctx context.Context, payload json.RawMessage) error {
	var in dto.AdminFormPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	admin := converter.AdminFromPayload(in)
	if err := p.deps.Admins.SaveAdmin(ctx, admin); err != nil {
		p.fail(err, saveFailure(err))
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *adminListPage) changeLogin(ctx context.Context, payload json.RawMessage) error {
	var in dto.LoginChangePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if err := p.deps.Admins.ChangeLogin(ctx, in.ID, in.Email); err != nil {
		p.fail(err, msgLoginChangeFailed)
		return nil
	}
	p.alert = msgLoginChanged
	p.reload(ctx)
	return nil
}

func (p *adminListPage) delete(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	admin, ok := p.admins.Find(func(a entity.Admin) bool { return a.ID == in.ID })
	if !ok {
		return ErrUnknownElement
	}
	if err := p.deps.Admins.DeleteAdmin(ctx, admin); err != nil {
		p.alert = msgUserDeleteFailed
		return nil
	}
	p.alert = msgUserDeleted
	p.reload(ctx)
	return nil
}

func (p *adminListPage) View() interface{} {
	roles := make([]OptionView, len(p.roles))
	for i, r := range p.roles {
		roles[i] = OptionView{ID: r.ID, Name: r.Name}
	}
	filtered := p.admins.Filtered()
	admins := make([]AdminView, len(filtered))
	for i, a := range filtered {
		admins[i] = AdminView{ID: a.ID, Role: a.Role, PersonView: personView(a.Person)}
	}
	return AdminListView{
		Header:   p.header(),
		Feedback: p.feedback(),
		Search:   p.admins.Filter().Search,
		Roles:    roles,
		Admins:   admins,
	}
}

type PatientView struct {
	ID int `json:"id"`
	PersonView
}

type PatientListView struct {
	Header
	Feedback
	Search        string        `json:"search"`
	Patients      []PatientView `json:"patients"`
	VerifiedPhone string        `json:"verified_phone,omitempty"`
}

// patientListPage also runs the SMS check a patient's new phone login
// must pass before it can be changed.
type patientListPage struct {
	base
	patients *usecase.ListView[entity.Patient]
	codeSent string
	verified string
}

func newPatientListPage(deps *Deps) Page {
	p := &patientListPage{
		base: newBase(deps, KindPatientList, "admin-profile"),
		patients: usecase.NewListView(func(pt entity.Patient, f entity.ListFilter) bool {
			return f.Matches(pt.FullName(), pt.Phone)
		}),
	}
	p.on("set_filter", p.setFilter)
	p.on("save", p.save)
	p.on("request_code", p.requestCode)
	p.on("verify_code", p.verifyCode)
	p.on("change_login", p.changeLogin)
	p.on("delete", p.delete)
	return p
}

func (p *patientListPage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.reload(ctx)
	return nil
}

func (p *patientListPage) reload(ctx context.Context) {
	patients, _ := p.deps.Patients.GetPatients(ctx)
	p.patients.Set(patients)
}

func (p *patientListPage) setFilter(_ context.Context, payload json.RawMessage) error {
	var in dto.FilterPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	p.patients.SetFilter(entity.ListFilter{Search: in.Search})
	return nil
}

func (p *patientListPage) save(ctx context.Context, payload json.RawMessage) error {
	var in dto.PatientFormPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	patient := converter.PatientFromPayload(in)
	if err := p.deps.Patients.UpdatePatient(ctx, patient); err != nil {
		p.fail(err, saveFailure(err))
		return nil
	}
	p.reload(ctx)
	return nil
}

func (p *patientListPage) requestCode(ctx context.Context, payload json.RawMessage) error {
	var in dto.VerifyCodePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	p.verified = ""
	digits, err := p.deps.Patients.RequestCode(ctx, in.Phone)
	if err != nil {
		p.fail(err, "")
		if p.errors == nil {
			p.message = usecase.MsgCodeSendFailed
		}
		return nil
	}
	p.codeSent = digits
	p.message = usecase.MsgCodeSent
	return nil
}

func (p *patientListPage) verifyCode(ctx context.Context, payload json.RawMessage) error {
	var in dto.VerifyCodePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	err := p.deps.Patients.VerifyCode(ctx, p.codeSent, in.Code)
	switch {
	case err == nil:
		p.verified = p.codeSent
		p.message = usecase.MsgPhoneVerified
	case errors.Is(err, usecase.ErrCodeRequired):
		p.message = usecase.MsgCodeRequired
	default:
		p.message = usecase.MsgCodeInvalid
	}
	return nil
}

func (p *patientListPage) changeLogin(ctx context.Context, payload json.RawMessage) error {
	var in dto.LoginChangePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	err := p.deps.Patients.ChangeLogin(ctx, in.ID, in.Phone, p.verified)
	switch {
	case err == nil:
		p.alert = msgLoginChanged
		p.codeSent, p.verified, p.message = "", "", ""
		p.reload(ctx)
	case errors.Is(err, usecase.ErrPhoneUnverified):
		p.alert = usecase.MsgPhoneUnverified
	default:
		p.alert = msgPhoneChangeFailed
	}
	return nil
}

func (p *patientListPage) delete(ctx context.Context, payload json.RawMessage) error {
	var in dto.IDPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	patient, ok := p.patients.Find(func(pt entity.Patient) bool { return pt.ID == in.ID })
	if !ok {
		return ErrUnknownElement
	}
	if err := p.deps.Patients.DeletePatient(ctx, patient); err != nil {
		p.alert = msgUserDeleteFailed
		return nil
	}
	p.alert = msgUserDeleted
	p.reload(ctx)
	return nil
}

func (p *patientListPage) View() interface{} {
	filtered := p.patients.Filtered()
	patients := make([]PatientView, len(filtered))
	for i, pt := range filtered {
		patients[i] = PatientView{ID: pt.ID, PersonView: personView(pt.Person)}
	}
	return PatientListView{
		Header:        p.header(),
		Feedback:      p.feedback(),
		Search:        p.patients.Filter().Search,
		Patients:      patients,
		VerifiedPhone: p.verified,
	}
}
