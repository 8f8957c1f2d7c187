package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("model: reminder title is required")
	ErrMissingDueTime  = errors.New("model: reminder due time is required")
	ErrInvalidCategory = errors.New("model: invalid reminder category")
	ErrInvalidPriority = errors.New("model: invalid reminder priority")
)

type Category string

const (
	CategoryWork        Category = "work"
	CategoryPersonal    Category = "personal"
	CategoryHealth      Category = "health"
	CategoryShopping    Category = "shopping"
	CategoryAppointment Category = "appointment"
	CategoryOther       Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryShopping, CategoryAppointment, CategoryOther:
		return true
	default:
		return false
	}
}

func Categories() []Category {
	return []Category{
		CategoryWork, CategoryPersonal, CategoryHealth,
		CategoryShopping, CategoryAppointment, CategoryOther,
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Reminder is the sole entity of the app: one user-scheduled alert with a
// due time, category, priority and completion flag. ID and CreatedAt are
// assigned by the store at creation and never change afterwards.
type Reminder struct {
	ID          string
	Title       string
	Description string
	DueAt       time.Time
	Category    Category
	Priority    Priority
	IsCompleted bool
	CreatedAt   time.Time
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.DueAt.IsZero() {
		return ErrMissingDueTime
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, r.Priority)
	}
	if r.CreatedAt.IsZero() {
		return errors.New("model: reminder created_at is required")
	}
	return nil
}

// Draft carries the user-supplied fields of a new reminder. The store
// fills in ID, CreatedAt and IsCompleted. Future-ness of the due time is
// the add form's concern, not the draft's.
type Draft struct {
	Title       string
	Description string
	DueAt       time.Time
	Category    Category
	Priority    Priority
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if d.DueAt.IsZero() {
		return ErrMissingDueTime
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, d.Category)
	}
	if !d.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}
	return nil
}
