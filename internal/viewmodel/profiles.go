package viewmodel

import (
	"context"
	"encoding/json"
	"errors"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/usecase"
)

const (
	msgProfileSaveFailed    = "Ошибка при сохранении профиля"
	msgPasswordChangeFailed = "Ошибка при смене пароля"
	msgPasswordChanged      = "Пароль изменён."
	msgProfileLoadFailed    = "Ошибка загрузки профиля"
)

// profileDialogs is the open/close state of the email and password modals.
type profileDialogs struct {
	page *base
	open string
}

func (d *profileDialogs) register() {
	d.page.on("open_dialog", func(_ context.Context, payload json.RawMessage) error {
		var in dto.DialogPayload
		if err := d.page.decode(payload, &in); err != nil {
			return err
		}
		d.open = in.Dialog
		return nil
	})
	d.page.on("close_dialog", func(context.Context, json.RawMessage) error {
		d.open = ""
		return nil
	})
}

// changePassword reports whether the password was changed.
func (d *profileDialogs) changePassword(ctx context.Context, payload json.RawMessage, failure func(error)) (bool, error) {
	var in dto.PasswordPayload
	if err := d.page.decode(payload, &in); err != nil {
		return false, err
	}
	if err := d.page.deps.Profiles.ChangePassword(ctx, in.Password, in.Confirm); err != nil {
		failure(err)
		return false, nil
	}
	d.open = ""
	d.page.message = msgPasswordChanged
	return true, nil
}

type AdministratorProfileView struct {
	Header
	Feedback
	Profile PersonView `json:"profile"`
	Role    string     `json:"role"`
	Editing bool       `json:"editing"`
	Dialog  string     `json:"dialog,omitempty"`
}

type administratorProfilePage struct {
	base
	profile *entity.Admin
	editing bool
	dialogs *profileDialogs
}

func newAdministratorProfilePage(deps *Deps) Page {
	p := &administratorProfilePage{base: newBase(deps, KindAdministratorProfile, "admin-profile")}
	p.dialogs = &profileDialogs{page: &p.base}
	p.dialogs.register()
	p.on("edit", func(context.Context, json.RawMessage) error { p.editing = true; return nil })
	p.on("cancel_edit", func(context.Context, json.RawMessage) error { p.editing = false; return nil })
	p.on("save_profile", p.saveProfile)
	p.on("change_email", p.changeEmail)
	p.on("change_password", func(ctx context.Context, payload json.RawMessage) error {
		_, err := p.dialogs.changePassword(ctx, payload, func(err error) { p.fail(err, msgPasswordChangeFailed) })
		return err
	})
	return p
}

func (p *administratorProfilePage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	p.reload(ctx)
	return nil
}

func (p *administratorProfilePage) reload(ctx context.Context) {
	admin, err := p.deps.Profiles.GetAdminProfile(ctx)
	if err != nil {
		p.alert = msgProfileLoadFailed
		return
	}
	p.profile = admin
}

func (p *administratorProfilePage) saveProfile(ctx context.Context, payload json.RawMessage) error {
	var in dto.AdminProfilePayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if err := p.deps.Profiles.UpdateAdminProfile(ctx, converter.AdminFromProfilePayload(in)); err != nil {
		p.fail(err, msgProfileSaveFailed)
		return nil
	}
	p.editing = false
	p.reload(ctx)
	p.loadIdentity(ctx)
	return nil
}

func (p *administratorProfilePage) changeEmail(ctx context.Context, payload json.RawMessage) error {
	var in dto.EmailPayload
	if err := p.decode(payload, &in); err != nil {
		return err
	}
	if err := p.deps.Profiles.ChangeEmail(ctx, in.Email); err != nil {
		p.fail(err, msgLoginChangeFailed)
		return nil
	}
	p.dialogs.open = ""
	p.reload(ctx)
	return nil
}

func (p *administratorProfilePage) View() interface{} {
	v := AdministratorProfileView{
		Header:   p.header(),
		Feedback: p.feedback(),
		Editing:  p.editing,
		Dialog:   p.dialogs.open,
	}
	if p.profile != nil {
		v.Profile = personView(p.profile.Person)
		v.Role = p.profile.Role
	}
	return v
}

type DoctorProfileView struct {
	Header
	Feedback
	Profile    PersonView `json:"profile"`
	Education  string     `json:"education"`
	Experience int        `json:"experience"`
	Dialog     string     `json:"dialog,omitempty"`
}

type doctorProfilePage struct {
	base
	profile *entity.Doctor
	dialogs *profileDialogs
}

func newDoctorProfilePage(deps *Deps) Page {
	p := &doctorProfilePage{base: newBase(deps, KindDoctorProfile, "doctor-profile")}
	p.dialogs = &profileDialogs{page: &p.base}
	p.dialogs.register()
	p.on("change_password", p.changePassword)
	return p
}

func (p *doctorProfilePage) Mount(ctx context.Context, s Session) error {
	p.attach(s)
	p.loadIdentity(ctx)
	doctor, err := p.deps.Profiles.GetDoctorProfile(ctx)
	if err != nil {
		p.alert = msgProfileLoadFailed
		return nil
	}
	p.profile = doctor
	return nil
}

// changePassword shows every failure under the password field.
func (p *doctorProfilePage) changePassword(ctx context.Context, payload json.RawMessage) error {
	_, err := p.dialogs.changePassword(ctx, payload, func(err error) {
		var formErr *usecase.FormError
		if errors.As(err, &formErr) {
			p.errors = formErr.Fields
			return
		}
		p.errors = map[string]string{"password": msgPasswordChangeFailed + "."}
	})
	return err
}

func (p *doctorProfilePage) View() interface{} {
	v := DoctorProfileView{
		Header:   p.header(),
		Feedback: p.feedback(),
		Dialog:   p.dialogs.open,
	}
	if p.profile != nil {
		v.Profile = personView(p.profile.Person)
		v.Education = p.profile.Education
		v.Experience = p.profile.Experience
	}
	return v
}
