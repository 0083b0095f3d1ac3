package entity

type OverrideType string

const (
	OverrideWork OverrideType = "work"
	OverrideOff  OverrideType = "off"
)

// Override replaces the recurring schedule for one date. DoctorID is nil
// for clinic-wide overrides. Date is YYYY-MM-DD.
type Override struct {
	DoctorID  *int
	Date      string
	Type      OverrideType
	StartTime string
	EndTime   string
}

// EmptyOverride is what the form shows for a date with nothing stored.
func EmptyOverride(doctorID *int, date string) Override {
	return Override{DoctorID: doctorID, Date: date, Type: OverrideOff}
}
