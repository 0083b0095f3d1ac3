package dto

// DoctorDTO is a doctor as returned by /api/doctors, /api/doctors/{specialty},
// /api/staff-doctors and /api/doctor/me. Nullable columns arrive as null.
type DoctorDTO struct {
	UserID     int     `json:"user_id" validate:"required"`
	FirstName  string  `json:"firstName"`
	SecondName string  `json:"secondName"`
	Surname    *string `json:"surname"`
	Phone      *string `json:"phone"`
	Email      string  `json:"email"`
	Education  *string `json:"education"`
	Experience *int    `json:"experience"`
	Gender     string  `json:"gender"`
	Specialty  []int   `json:"specialty,omitempty"`
}

// SaveDoctorRequest is the body of POST /api/save-doctor. Phone is digits only.
type SaveDoctorRequest struct {
	UserID     int    `json:"user_id,omitempty"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Specialty  []int  `json:"specialty"`
	Experience int    `json:"experience"`
	Education  string `json:"education"`
	Gender     string `json:"gender"`
}

type SpecialtyDTO struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type EmailLoginRequest struct {
	Email string `json:"email"`
}

type PhoneLoginRequest struct {
	Phone string `json:"phone"`
}
