package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/zend/internal/model"
)

// RemindersKey is the durable slot holding the serialized collection. The
// name is shared with the earlier clients of this app.
const RemindersKey = "zen-reminders"

// Changes holds the optional fields of a partial update; nil means leave
// the field alone.
type Changes struct {
	Title       *string
	Description *string
	DueAt       *time.Time
	Category    *model.Category
	Priority    *model.Priority
}

// Store owns the authoritative in-memory reminder collection and mirrors
// every mutation into the durable slot. It is single-writer: all calls
// happen on the event loop, so there is no locking.
type Store struct {
	kv    KV
	log   zerolog.Logger
	now   func() time.Time
	items []model.Reminder
}

func NewStore(kv KV, log zerolog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: log,
		now: time.Now,
	}
}

// Load reads the durable slot. An absent key or a malformed payload both
// yield an empty collection; records that fail to parse or validate are
// logged and skipped. Nothing here is fatal.
func (s *Store) Load(ctx context.Context) {
	s.items = nil

	data, err := s.kv.Get(ctx, RemindersKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error().Err(err).Msg("failed to load reminders")
		}
		return
	}

	var entities []Reminder
	if err := json.Unmarshal(data, &entities); err != nil {
		s.log.Error().Err(err).Msg("failed to parse stored reminders")
		return
	}

	items := make([]model.Reminder, 0, len(entities))
	for _, e := range entities {
		item, convErr := toModel(e)
		if convErr != nil {
			s.log.Error().Err(convErr).Str("reminder", e.ID).Msg("skipping unreadable stored reminder")
			continue
		}
		if err := item.Validate(); err != nil {
			s.log.Error().Err(err).Str("reminder", e.ID).Msg("skipping invalid stored reminder")
			continue
		}
		items = append(items, item)
	}
	s.items = items
}

// Add validates the draft, assigns a fresh id and creation stamp, appends
// the reminder and persists the collection.
func (s *Store) Add(ctx context.Context, draft model.Draft) (model.Reminder, error) {
	if err := draft.Validate(); err != nil {
		return model.Reminder{}, err
	}
	item := model.Reminder{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		DueAt:       draft.DueAt,
		Category:    draft.Category,
		Priority:    draft.Priority,
		IsCompleted: false,
		CreatedAt:   s.now(),
	}
	s.items = append(s.items, item)
	s.persist(ctx)
	return item, nil
}

// Update merges the given changes into the matching reminder. Unknown ids
// are a silent no-op.
func (s *Store) Update(ctx context.Context, id string, changes Changes) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	item := &s.items[idx]
	if changes.Title != nil {
		item.Title = *changes.Title
	}
	if changes.Description != nil {
		item.Description = *changes.Description
	}
	if changes.DueAt != nil {
		item.DueAt = *changes.DueAt
	}
	if changes.Category != nil {
		item.Category = *changes.Category
	}
	if changes.Priority != nil {
		item.Priority = *changes.Priority
	}
	s.persist(ctx)
}

// Delete removes the matching reminder. Unknown ids are a silent no-op.
// Cancelling its notifications is the caller's job.
func (s *Store) Delete(ctx context.Context, id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persist(ctx)
}

// ToggleComplete flips the completion flag in either direction. Unknown
// ids are a silent no-op.
func (s *Store) ToggleComplete(ctx context.Context, id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.items[idx].IsCompleted = !s.items[idx].IsCompleted
	s.persist(ctx)
}

func (s *Store) Get(id string) (model.Reminder, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Reminder{}, false
	}
	return s.items[idx], true
}

// List returns a copy of the full collection in insertion order.
func (s *Store) List() []model.Reminder {
	out := make([]model.Reminder, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist rewrites the whole slot. A write failure is logged and swallowed:
// the in-memory collection stays mutated and the next successful write
// catches the slot up.
func (s *Store) persist(ctx context.Context) {
	entities := make([]Reminder, 0, len(s.items))
	for _, item := range s.items {
		entities = append(entities, toEntity(item))
	}
	data, err := json.Marshal(entities)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to serialize reminders")
		return
	}
	if err := s.kv.Set(ctx, RemindersKey, data); err != nil {
		s.log.Error().Err(err).Msg("failed to save reminders")
	}
}
