// Package phone normalizes and formats Russian mobile numbers.
package phone

import "strings"

// MsgInvalid is the form message for a malformed number.
const MsgInvalid = "Неверный формат телефона"

// Digits strips everything but ASCII digits from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether s holds exactly 11 digits starting with 7.
// Formatting characters are ignored.
func Valid(s string) bool {
	d := Digits(s)
	return len(d) == 11 && d[0] == '7'
}

// Format renders s as "+7 (XXX) XXX-XX-XX". A leading 8 is treated as 7.
// Anything that is not an 11 digit number starting with 7 or 8 is returned as is.
func Format(s string) string {
	d := Digits(s)
	if len(d) != 11 || (d[0] != '7' && d[0] != '8') {
		return s
	}
	return "+7 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:9] + "-" + d[9:11]
}

// Error returns the form message for an invalid phone, or "" when s is empty or valid.
func Error(s string) string {
	if Digits(s) == "" || Valid(s) {
		return ""
	}
	return MsgInvalid
}
