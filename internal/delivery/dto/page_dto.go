package dto

// Request DTOs of the /ui/pages routes. Action payloads are decoded by the
// page that owns the action.

type MountRequest struct {
	AppointmentID int `json:"appointment_id" validate:"gte=0"`
}

type MountResponse struct {
	PageID string      `json:"page_id"`
	Kind   string      `json:"kind"`
	View   interface{} `json:"view"`
}

// EventRequest is a DOM event. Path lists the element ids from the target
// up to the document root.
type EventRequest struct {
	Type string   `json:"type" validate:"required"`
	Path []string `json:"path"`
}

type IDPayload struct {
	ID int `json:"id" validate:"required"`
}

type TabPayload struct {
	Tab string `json:"tab" validate:"required"`
}

type FilterPayload struct {
	Search     string `json:"search"`
	CategoryID int    `json:"category_id" validate:"gte=0"`
}

type WeekdayInput struct {
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime   string `json:"end_time" validate:"omitempty,hhmm"`
	Working   bool   `json:"working"`
}

type WeeklySchedulePayload struct {
	Days        []WeekdayInput `json:"days" validate:"required,max=7,dive"`
	SlotMinutes int            `json:"slot_minutes"`
}

type DatePayload struct {
	Date string `json:"date" validate:"required,isodate"`
}

type OverridePayload struct {
	Date      string `json:"date" validate:"required,isodate"`
	Type      string `json:"type" validate:"required,oneof=work off"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PricePayload carries the raw text of a price input.
type PricePayload struct {
	ID    int    `json:"id" validate:"required"`
	Price string `json:"price"`
}

type NewItemPayload struct {
	Kind       string `json:"kind" validate:"required,oneof=service material"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	CategoryID int    `json:"category_id"`
}

type DoctorFormPayload struct {
	UserID     int    `json:"user_id"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Specialty  []int  `json:"specialty"`
	Experience int    `json:"experience" validate:"gte=0"`
	Education  string `json:"education"`
	Gender     string `json:"gender"`
}

type AdminFormPayload struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Gender     string `json:"gender"`
	Role       string `json:"role"`
}

type PatientFormPayload struct {
	UserID     int    `json:"user_id" validate:"required"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	BirthDate  string `json:"birthDate"`
	Gender     string `json:"gender"`
}

type LoginChangePayload struct {
	ID    int    `json:"id" validate:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VerifyCodePayload struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type SlotPayload struct {
	Label string `json:"label" validate:"required"`
	Time  string `json:"time" validate:"required,hhmm"`
}

type BookingFormPayload struct {
	SecondName string `json:"secondName"`
	FirstName  string `json:"firstName"`
	Surname    string `json:"surname"`
	BirthDate  string `json:"birthDate" validate:"omitempty,isodate"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
}

type NotePayload struct {
	Title string `json:"title"`
}

type QuantityPayload struct {
	ID       int `json:"id" validate:"required"`
	Quantity int `json:"quantity"`
}

type ICDCommentPayload struct {
	ID      int    `json:"id" validate:"required"`
	Comment string `json:"comment"`
}

type FieldPayload struct {
	Field string `json:"field" validate:"required,oneof=complaints treatment"`
	Value string `json:"value"`
}

// RegistrationFormPayload is the in-clinic patient registration form.
type RegistrationFormPayload struct {
	SecondName string `json:"secondName"`
	FirstName  string `json:"firstName"`
	Surname    string `json:"surname"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birthDate" validate:"omitempty,isodate"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type AdminProfilePayload struct {
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Surname    string `json:"surname"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type EmailPayload struct {
	Email string `json:"email"`
}

type PasswordPayload struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type DialogPayload struct {
	Dialog string `json:"dialog" validate:"required,oneof=email password"`
}
