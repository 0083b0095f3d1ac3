package viewmodel

import (
	"clinic-portal/internal/domain/entity"
	"clinic-portal/pkg/phone"

	"github.com/shopspring/decimal"
)

// Header is the account popover every page shows.
type Header struct {
	UserID         int    `json:"user_id,omitempty"`
	FullName       string `json:"full_name"`
	Role           string `json:"role,omitempty"`
	PopoverID      string `json:"popover_id"`
	PopoverVisible bool   `json:"popover_visible"`
}

// Feedback is what the last action left for the user.
type Feedback struct {
	Alert   string            `json:"alert,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
}

// AlertText is promoted into every page view.
func (f Feedback) AlertText() string { return f.Alert }

type PersonView struct {
	FullName   string `json:"full_name"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Surname    string `json:"surname"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birth_date"`
	Phone      string `json:"phone"`
	PhoneText  string `json:"phone_display"`
	Email      string `json:"email"`
}

func personView(p entity.Person) PersonView {
	return PersonView{
		FullName:   p.FullName(),
		FirstName:  p.FirstName,
		SecondName: p.SecondName,
		Surname:    p.Surname,
		Gender:     p.Gender,
		BirthDate:  p.BirthDate,
		Phone:      p.Phone,
		PhoneText:  phone.Format(p.Phone),
		Email:      p.Email,
	}
}

type OptionView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func specialtyOptions(ss []entity.Specialty) []OptionView {
	out := make([]OptionView, len(ss))
	for i, s := range ss {
		out[i] = OptionView{ID: s.ID, Name: s.Name}
	}
	return out
}

func categoryOptions(cs []entity.ServiceCategory) []OptionView {
	out := make([]OptionView, len(cs))
	for i, c := range cs {
		out[i] = OptionView{ID: c.ID, Name: c.Name}
	}
	return out
}

type PriceItemView struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   int             `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
}

func serviceViews(ss []entity.Service, categories []entity.ServiceCategory) []PriceItemView {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	out := make([]PriceItemView, len(ss))
	for i, s := range ss {
		out[i] = PriceItemView{ID: s.ID, Name: s.Name, Price: s.Price, CategoryID: s.CategoryID, CategoryName: names[s.CategoryID]}
	}
	return out
}

func materialViews(ms []entity.Material) []PriceItemView {
	out := make([]PriceItemView, len(ms))
	for i, m := range ms {
		out[i] = PriceItemView{ID: m.ID, Name: m.Name, Price: m.Price}
	}
	return out
}

type DocumentView struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func documentViews(ds []entity.Document) []DocumentView {
	out := make([]DocumentView, len(ds))
	for i, d := range ds {
		date := d.CreatedAt
		if date == "" {
			date = "—"
		}
		out[i] = DocumentView{ID: d.ID, FileName: d.FileName, Description: d.Description, Date: date}
	}
	return out
}
