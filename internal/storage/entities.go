package storage

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/zend/internal/model"
)

// Reminder is the on-disk shape of a reminder. Field names match the JSON
// the web and mobile clients wrote, so an existing zen-reminders payload
// loads unchanged. Timestamps are RFC 3339 strings.
type Reminder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueAt       string `json:"datetime"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	IsCompleted bool   `json:"isCompleted"`
	CreatedAt   string `json:"createdAt"`
}

func toEntity(r model.Reminder) Reminder {
	return Reminder{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueAt:       r.DueAt.Format(time.RFC3339Nano),
		Category:    string(r.Category),
		Priority:    string(r.Priority),
		IsCompleted: r.IsCompleted,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339Nano),
	}
}

func toModel(e Reminder) (model.Reminder, error) {
	dueAt, err := time.Parse(time.RFC3339Nano, e.DueAt)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("parse datetime of %s: %w", e.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, e.CreatedAt)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("parse createdAt of %s: %w", e.ID, err)
	}
	return model.Reminder{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		DueAt:       dueAt,
		Category:    model.Category(e.Category),
		Priority:    model.Priority(e.Priority),
		IsCompleted: e.IsCompleted,
		CreatedAt:   createdAt,
	}, nil
}
