package entity

import "strings"

// Person holds the name and contact fields shared by patients and staff.
// BirthDate keeps whatever textual form the API produced for the endpoint.
type Person struct {
	FirstName  string
	SecondName string
	Surname    string
	Gender     string
	BirthDate  string
	Phone      string
	Email      string
}

// FullName is "second first surname" with empty parts dropped.
func (p Person) FullName() string {
	return joinNonEmpty(p.SecondName, p.FirstName, p.Surname)
}

// ShortName is "first second", used in account popovers.
func (p Person) ShortName() string {
	return joinNonEmpty(p.FirstName, p.SecondName)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Identity is the signed-in user as returned by the */me endpoints.
type Identity struct {
	UserID int
	Role   Role
	Person
}

type Doctor struct {
	UserID      int
	Specialties []int
	Experience  int
	Education   string
	Person
}

type Admin struct {
	ID   int
	Role string
	Person
}

type Patient struct {
	ID int
	Person
}
