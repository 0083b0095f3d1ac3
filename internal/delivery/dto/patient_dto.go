package dto

// PatientDTO is a row of /api/patients, /api/patient/me and the body of
// PUT /api/patients/{id}. BirthDate may carry a time part.
type PatientDTO struct {
	UserID     int     `json:"user_id" validate:"required"`
	FirstName  string  `json:"firstName"`
	SecondName string  `json:"secondName"`
	Surname    *string `json:"surname"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	BirthDate  string  `json:"birthDate"`
	Gender     string  `json:"gender"`
}

type RequestCodeRequest struct {
	Phone string `json:"phone"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// RegisterPatientRequest is the body of POST /api/register-in-clinic. The
// patient gets no password; the phone becomes the login.
type RegisterPatientRequest struct {
	SecondName string  `json:"secondName"`
	FirstName  string  `json:"firstName"`
	Surname    *string `json:"surname"`
	Gender     string  `json:"gender"`
	BirthDate  string  `json:"birthDate"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
}

type RegisterPatientResponse struct {
	UserID int `json:"user_id"`
}
