package usecase

import "clinic-portal/internal/domain/entity"

// ListView is a fetched collection plus the filter the list page applies
// to it. It is not safe for concurrent use; pages serialize access.
type ListView[T any] struct {
	items  []T
	filter entity.ListFilter
	match  func(T, entity.ListFilter) bool
}

func NewListView[T any](match func(T, entity.ListFilter) bool) *ListView[T] {
	return &ListView[T]{match: match}
}

// Set replaces the collection after a (re)fetch.
func (l *ListView[T]) Set(items []T) {
	l.items = items
}

func (l *ListView[T]) Items() []T { return l.items }

func (l *ListView[T]) SetFilter(f entity.ListFilter) { l.filter = f }

func (l *ListView[T]) Filter() entity.ListFilter { return l.filter }

// Filtered returns the items matching the current filter, never nil.
func (l *ListView[T]) Filtered() []T {
	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if l.match == nil || l.match(it, l.filter) {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the first item satisfying pred.
func (l *ListView[T]) Find(pred func(T) bool) (T, bool) {
	for _, it := range l.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}
