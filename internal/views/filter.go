package views

import (
	"sort"
	"time"

	"github.com/sandeepkv93/zend/internal/model"
)

// Tab selects a derived subset of the reminder collection.
type Tab string

const (
	TabAll       Tab = "all"
	TabPending   Tab = "pending"
	TabToday     Tab = "today"
	TabCompleted Tab = "completed"
	TabOverdue   Tab = "overdue"
)

func Tabs() []Tab {
	return []Tab{TabAll, TabPending, TabToday, TabCompleted, TabOverdue}
}

func (t Tab) IsValid() bool {
	switch t {
	case TabAll, TabPending, TabToday, TabCompleted, TabOverdue:
		return true
	default:
		return false
	}
}

// Filter returns the subset of items the tab selects, evaluated against
// now. It never mutates its input.
func Filter(items []model.Reminder, tab Tab, now time.Time) []model.Reminder {
	out := make([]model.Reminder, 0, len(items))
	for _, item := range items {
		if matches(item, tab, now) {
			out = append(out, item)
		}
	}
	return out
}

func matches(r model.Reminder, tab Tab, now time.Time) bool {
	switch tab {
	case TabPending:
		return !r.IsCompleted
	case TabCompleted:
		return r.IsCompleted
	case TabOverdue:
		return !r.IsCompleted && r.DueAt.Before(now)
	case TabToday:
		return sameDay(r.DueAt, now)
	default:
		return true
	}
}

// SortByDueTime returns a copy sorted ascending by due time, the default
// display order.
func SortByDueTime(items []model.Reminder) []model.Reminder {
	out := make([]model.Reminder, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}

// Counts are the summary numbers shown above the list. They are always
// computed over the full collection, whatever tab is selected.
type Counts struct {
	Total     int
	Pending   int
	Completed int
	Today     int
	Overdue   int
}

func Summarize(items []model.Reminder, now time.Time) Counts {
	c := Counts{Total: len(items)}
	for _, item := range items {
		if item.IsCompleted {
			c.Completed++
		} else {
			c.Pending++
			if item.DueAt.Before(now) {
				c.Overdue++
			}
		}
		if sameDay(item.DueAt, now) {
			c.Today++
		}
	}
	return c
}

// sameDay compares calendar dates in the local time zone of each value.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
