package notify

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/zend/internal/model"
)

// Lead-time offsets ahead of the due time. Compile-time constants, not
// user-configurable.
const (
	leadHour       = time.Hour
	leadHalfHour   = 30 * time.Minute
	leadTenMinutes = 10 * time.Minute
)

// baseIDSpace bounds the derived base identifier to 8 decimal digits, the
// range the earlier clients used for platform notification ids.
const baseIDSpace = 100_000_000

type AlertKind string

const (
	AlertMain       AlertKind = "main"
	AlertOneHour    AlertKind = "1h"
	AlertHalfHour   AlertKind = "30m"
	AlertTenMinutes AlertKind = "10m"
)

// Trigger is one derived alert for a reminder: its identifier offset from
// the base id, its display title and its fire time.
type Trigger struct {
	Offset int
	Kind   AlertKind
	Title  string
	At     time.Time
}

// Settings is the alert behavior handed to the scheduler at construction.
type Settings struct {
	Sound bool
}

// Scheduler translates one reminder's due time into zero or more timed
// alerts against the notification capability, and cancels them when the
// reminder is resolved or removed. Capability failures are logged and
// never surface to the store mutation that triggered the call.
type Scheduler struct {
	notifier Notifier
	settings Settings
	log      zerolog.Logger
}

func NewScheduler(notifier Notifier, settings Settings, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		settings: settings,
		log:      log,
	}
}

// BaseID derives the root of a reminder's notification identifier space
// from its string id: the first 8 digits found in the id, or a FNV-1a
// hash truncated to the same range for ids without digits. Distinct
// reminder ids can collide; that is a tolerated limitation.
func BaseID(reminderID string) int {
	var digits strings.Builder
	for _, r := range reminderID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 8 {
				break
			}
		}
	}
	if digits.Len() > 0 {
		if n, err := strconv.Atoi(digits.String()); err == nil {
			return n
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(reminderID))
	return int(h.Sum32() % baseIDSpace)
}

// PlanTriggers computes the alerts for a reminder due at r.DueAt as seen
// at now: the main alert at the due time plus 1h/30m/10m lead alerts,
// each included only while its fire time is still strictly in the future.
func PlanTriggers(r model.Reminder, now time.Time) []Trigger {
	candidates := []Trigger{
		{Offset: 0, Kind: AlertMain, Title: r.Title, At: r.DueAt},
		{Offset: 1, Kind: AlertOneHour, Title: r.Title + " - 1 Hour Reminder", At: r.DueAt.Add(-leadHour)},
		{Offset: 2, Kind: AlertHalfHour, Title: r.Title + " - 30 Min Reminder", At: r.DueAt.Add(-leadHalfHour)},
		{Offset: 3, Kind: AlertTenMinutes, Title: r.Title + " - 10 Min Reminder", At: r.DueAt.Add(-leadTenMinutes)},
	}
	out := make([]Trigger, 0, len(candidates))
	for _, c := range candidates {
		if c.At.After(now) {
			out = append(out, c)
		}
	}
	return out
}

// Schedule issues the planned alerts for the reminder and returns how many
// were accepted. Individual failures are logged and skipped.
func (s *Scheduler) Schedule(ctx context.Context, r model.Reminder, now time.Time) int {
	if !s.notifier.Available() {
		s.log.Warn().Str("reminder", r.ID).Msg("notification capability unavailable")
		return 0
	}

	base := BaseID(r.ID)
	body := r.Description
	if strings.TrimSpace(body) == "" {
		body = "Reminder notification"
	}

	scheduled := 0
	for _, trigger := range PlanTriggers(r, now) {
		req := Request{
			ID:        base + trigger.Offset,
			Title:     trigger.Title,
			Body:      body,
			Sound:     s.settings.Sound,
			TriggerAt: trigger.At,
			Extra: map[string]string{
				"reminderId": r.ID,
				"alert":      string(trigger.Kind),
			},
		}
		if err := s.notifier.Schedule(ctx, req); err != nil {
			s.log.Error().Err(err).Str("reminder", r.ID).Int("notification", req.ID).Msg("failed to schedule notification")
			continue
		}
		scheduled++
	}
	return scheduled
}

// Cancel recomputes the base identifier and cancels all four slots,
// whether or not each was actually scheduled.
func (s *Scheduler) Cancel(ctx context.Context, reminderID string) {
	base := BaseID(reminderID)
	ids := []int{base, base + 1, base + 2, base + 3}
	if err := s.notifier.Cancel(ctx, ids); err != nil {
		s.log.Error().Err(err).Str("reminder", reminderID).Msg("failed to cancel notifications")
	}
}
