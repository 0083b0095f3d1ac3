// Package pagination slices day lists into fixed-size pages.
package pagination

// DaysPerPage is the page size used by every weekly view.
const DaysPerPage = 7

// Pager tracks the current page over a list of a known length.
// The zero value is not usable, create one with NewPager.
type Pager struct {
	size    int
	total   int
	current int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = DaysPerPage
	}
	return &Pager{size: size}
}

// SetTotal updates the list length and resets the pager to the first page.
func (p *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.current = 0
}

// Current returns the zero-based current page.
func (p *Pager) Current() int { return p.current }

// TotalPages is ceil(total / size).
func (p *Pager) TotalPages() int {
	return (p.total + p.size - 1) / p.size
}

// Next moves forward unless already on the last page.
func (p *Pager) Next() {
	if p.current < p.TotalPages()-1 {
		p.current++
	}
}

// Prev moves back unless already on the first page.
func (p *Pager) Prev() {
	if p.current > 0 {
		p.current--
	}
}

// Bounds returns the half-open index range of the current page.
func (p *Pager) Bounds() (start, end int) {
	start = p.current * p.size
	end = start + p.size
	if start > p.total {
		start = p.total
	}
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Page returns the items of the current page.
func Page[T any](p *Pager, items []T) []T {
	start, end := p.Bounds()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end]
}

// Window is a sliding start index over a list, moved by whole steps.
// It never points past the last full step.
type Window struct {
	Step  int
	Start int
}

func (w *Window) Next(total int) {
	if w.Start+w.Step < total {
		w.Start += w.Step
	}
}

func (w *Window) Prev() {
	w.Start -= w.Step
	if w.Start < 0 {
		w.Start = 0
	}
}

// Slice returns items[Start:Start+Step] clamped to the list.
func Slice[T any](w Window, items []T) []T {
	start := w.Start
	if start > len(items) {
		start = len(items)
	}
	end := start + w.Step
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
