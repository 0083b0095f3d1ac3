package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/pkg/phone"
)

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// DoctorToEntity converts a doctor row; null columns become zero values.
func DoctorToEntity(d dto.DoctorDTO) entity.Doctor {
	return entity.Doctor{
		UserID:      d.UserID,
		Specialties: append([]int(nil), d.Specialty...),
		Experience:  deref(d.Experience),
		Education:   deref(d.Education),
		Person: entity.Person{
			FirstName:  d.FirstName,
			SecondName: d.SecondName,
			Surname:    deref(d.Surname),
			Gender:     d.Gender,
			Phone:      deref(d.Phone),
			Email:      d.Email,
		},
	}
}

func DoctorsToEntities(ds []dto.DoctorDTO) []entity.Doctor {
	out := make([]entity.Doctor, len(ds))
	for i, d := range ds {
		out[i] = DoctorToEntity(d)
	}
	return out
}

// DoctorToSaveRequest sends the phone as digits only.
func DoctorToSaveRequest(d entity.Doctor) dto.SaveDoctorRequest {
	return dto.SaveDoctorRequest{
		UserID:     d.UserID,
		FirstName:  d.FirstName,
		SecondName: d.SecondName,
		Surname:    d.Surname,
		Phone:      phone.Digits(d.Phone),
		Email:      d.Email,
		Specialty:  d.Specialties,
		Experience: d.Experience,
		Education:  d.Education,
		Gender:     d.Gender,
	}
}

func DoctorFromPayload(p dto.DoctorFormPayload) entity.Doctor {
	return entity.Doctor{
		UserID:      p.UserID,
		Specialties: p.Specialty,
		Experience:  p.Experience,
		Education:   p.Education,
		Person: entity.Person{
			FirstName:  p.FirstName,
			SecondName: p.SecondName,
			Surname:    p.Surname,
			Gender:     p.Gender,
			Phone:      p.Phone,
			Email:      p.Email,
		},
	}
}

func AdminToEntity(a dto.StaffAdminDTO) entity.Admin {
	return entity.Admin{
		ID:   a.ID,
		Role: a.Role,
		Person: entity.Person{
			FirstName:  a.FirstName,
			SecondName: a.SecondName,
			Surname:    a.Surname,
			Gender:     a.Gender,
			Phone:      a.Phone,
			Email:      a.Email,
		},
	}
}

func AdminsToEntities(as []dto.StaffAdminDTO) []entity.Admin {
	out := make([]entity.Admin, len(as))
	for i, a := range as {
		out[i] = AdminToEntity(a)
	}
	return out
}

func AdminToDTO(a entity.Admin) dto.StaffAdminDTO {
	return dto.StaffAdminDTO{
		ID:         a.ID,
		FirstName:  a.FirstName,
		SecondName: a.SecondName,
		Surname:    a.Surname,
		Phone:      phone.Digits(a.Phone),
		Email:      a.Email,
		Gender:     a.Gender,
		Role:       a.Role,
	}
}

func AdminFromPayload(p dto.AdminFormPayload) entity.Admin {
	return AdminToEntity(dto.StaffAdminDTO(p))
}

func SpecialtiesToEntities(ss []dto.SpecialtyDTO) []entity.Specialty {
	out := make([]entity.Specialty, len(ss))
	for i, s := range ss {
		out[i] = entity.Specialty{ID: s.ID, Name: s.Name}
	}
	return out
}

func RolesToEntities(rs []dto.RoleDTO) []entity.RoleOption {
	out := make([]entity.RoleOption, len(rs))
	for i, r := range rs {
		out[i] = entity.RoleOption{ID: r.ID, Name: r.Name}
	}
	return out
}

func AdminMeToIdentity(a dto.AdminMeDTO) *entity.Identity {
	role := entity.Role(a.Role)
	if role == "" {
		role = entity.RoleAdmin
	}
	return &entity.Identity{
		UserID: a.UserID,
		Role:   role,
		Person: entity.Person{
			FirstName:  a.FirstName,
			SecondName: a.SecondName,
			Surname:    a.Surname,
			Gender:     a.Gender,
			Phone:      a.Phone,
			Email:      a.Email,
		},
	}
}

func DoctorMeToIdentity(d dto.DoctorDTO) *entity.Identity {
	doc := DoctorToEntity(d)
	return &entity.Identity{UserID: doc.UserID, Role: entity.RoleDoctor, Person: doc.Person}
}

// IdentityToResponse renders the popover block. The popover shows
// "first second".
func IdentityToResponse(i *entity.Identity) *dto.IdentityResponse {
	if i == nil {
		return nil
	}
	return &dto.IdentityResponse{
		UserID:   i.UserID,
		Role:     string(i.Role),
		FullName: i.ShortName(),
	}
}

// AdminMeToEntity keeps the profile fields of /api/admin/me.
func AdminMeToEntity(a dto.AdminMeDTO) *entity.Admin {
	identity := AdminMeToIdentity(a)
	return &entity.Admin{ID: identity.UserID, Role: string(identity.Role), Person: identity.Person}
}

func AdminToProfileRequest(a entity.Admin) dto.AdminProfileRequest {
	return dto.AdminProfileRequest{
		FirstName:  a.FirstName,
		SecondName: a.SecondName,
		Surname:    a.Surname,
		Gender:     a.Gender,
		Phone:      phone.Digits(a.Phone),
		Email:      a.Email,
	}
}

func AdminFromProfilePayload(p dto.AdminProfilePayload) entity.Admin {
	return entity.Admin{Person: entity.Person{
		FirstName:  p.FirstName,
		SecondName: p.SecondName,
		Surname:    p.Surname,
		Gender:     p.Gender,
		Phone:      p.Phone,
		Email:      p.Email,
	}}
}
