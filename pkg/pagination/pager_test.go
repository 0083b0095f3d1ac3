package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPagerPages(t *testing.T) {
	list := items(10)
	p := NewPager(DaysPerPage)
	p.SetTotal(len(list))

	assert.Equal(t, 2, p.TotalPages())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, Page(p, list))

	p.Next()
	assert.Equal(t, 1, p.Current())
	assert.Equal(t, []int{7, 8, 9}, Page(p, list))

	p.Next()
	assert.Equal(t, 1, p.Current(), "next on last page is a no-op")

	p.Prev()
	p.Prev()
	assert.Equal(t, 0, p.Current(), "prev on first page is a no-op")
}

func TestPagerEmpty(t *testing.T) {
	p := NewPager(0)
	p.SetTotal(0)
	p.Next()
	assert.Equal(t, 0, p.Current())
	assert.Empty(t, Page(p, []string{}))
}

func TestSetTotalResetsPage(t *testing.T) {
	p := NewPager(7)
	p.SetTotal(20)
	p.Next()
	p.Next()
	p.SetTotal(3)
	assert.Equal(t, 0, p.Current())
}

func TestWindow(t *testing.T) {
	list := items(16)
	w := Window{Step: 7}

	assert.Equal(t, items(7), Slice(w, list))
	w.Next(len(list))
	w.Next(len(list))
	assert.Equal(t, 14, w.Start)
	assert.Equal(t, []int{14, 15}, Slice(w, list))

	w.Next(len(list))
	assert.Equal(t, 14, w.Start)

	w.Prev()
	w.Prev()
	w.Prev()
	assert.Equal(t, 0, w.Start)
}
