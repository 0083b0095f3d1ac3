package dto

// StaffAdminDTO is a row of /api/staff-admins and the body of /api/save-admin.
// Unlike doctors, admins use snake_case name keys.
type StaffAdminDTO struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Gender     string `json:"gender"`
	Role       string `json:"role"`
}

type RoleDTO struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// AdminMeDTO is /api/admin/me.
type AdminMeDTO struct {
	UserID     int    `json:"user_id" validate:"required"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Gender     string `json:"gender"`
	Role       string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

// AdminProfileRequest is the body of POST /api/update-admin-profile.
type AdminProfileRequest struct {
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Surname    string `json:"surname"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}
