package stats

import (
	"sort"
	"time"
)

// dated is the ordering key shared by PR records and WOD results.
type dated struct {
	date      time.Time
	createdAt time.Time
	id        uint
}

func (a dated) before(b dated) bool {
	if !a.date.Equal(b.date) {
		return a.date.Before(b.date)
	}
	if !a.createdAt.Equal(b.createdAt) {
		return a.createdAt.Before(b.createdAt)
	}
	return a.id < b.id
}

// chronological sorts idx by key(i) ascending, ties broken by creation time then id.
func chronological(n int, key func(i int) dated) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return key(idx[a]).before(key(idx[b]))
	})
	return idx
}
