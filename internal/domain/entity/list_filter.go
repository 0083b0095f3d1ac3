package entity

import "strings"

// ListFilter is the search box plus the optional category drop-down of a
// list page. CategoryID 0 means any.
type ListFilter struct {
	Search     string
	CategoryID int
}

// Matches reports whether any of the haystacks contains the search text,
// case-insensitively. An empty search matches everything.
func (f ListFilter) Matches(haystacks ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
