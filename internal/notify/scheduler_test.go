package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/zend/internal/model"
)

type fakeNotifier struct {
	available bool
	scheduled []Request
	cancelled [][]int
	failWith  error
}

func (f *fakeNotifier) Available() bool { return f.available }

func (f *fakeNotifier) Schedule(ctx context.Context, req Request) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.scheduled = append(f.scheduled, req)
	return nil
}

func (f *fakeNotifier) Cancel(ctx context.Context, ids []int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.cancelled = append(f.cancelled, ids)
	return nil
}

func reminderDueAt(due time.Time) model.Reminder {
	return model.Reminder{
		ID:        "rem-20260314",
		Title:     "Team sync",
		DueAt:     due,
		Category:  model.CategoryWork,
		Priority:  model.PriorityMedium,
		CreatedAt: due.Add(-24 * time.Hour),
	}
}

func TestPlanTriggersAllFourWhenFarOut(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r := reminderDueAt(now.Add(2 * time.Hour))

	triggers := PlanTriggers(r, now)
	if len(triggers) != 4 {
		t.Fatalf("expected 4 triggers, got %d", len(triggers))
	}
	if triggers[0].Kind != AlertMain || !triggers[0].At.Equal(r.DueAt) {
		t.Fatalf("unexpected main trigger: %+v", triggers[0])
	}
	if !triggers[1].At.Equal(r.DueAt.Add(-time.Hour)) ||
		!triggers[2].At.Equal(r.DueAt.Add(-30*time.Minute)) ||
		!triggers[3].At.Equal(r.DueAt.Add(-10*time.Minute)) {
		t.Fatalf("unexpected lead trigger times: %+v", triggers)
	}
	if triggers[1].Title != "Team sync - 1 Hour Reminder" {
		t.Fatalf("unexpected lead title: %q", triggers[1].Title)
	}
}

func TestPlanTriggersOmitsPassedLeadTimes(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r := reminderDueAt(now.Add(5 * time.Minute))

	triggers := PlanTriggers(r, now)
	if len(triggers) != 1 {
		t.Fatalf("expected only the main trigger, got %d", len(triggers))
	}
	if triggers[0].Kind != AlertMain {
		t.Fatalf("expected main trigger, got %+v", triggers[0])
	}
}

func TestPlanTriggersPartialWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r := reminderDueAt(now.Add(20 * time.Minute))

	// only main and the 10-minute lead are still ahead
	triggers := PlanTriggers(r, now)
	if len(triggers) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(triggers))
	}
	if triggers[1].Kind != AlertTenMinutes {
		t.Fatalf("expected 10m lead, got %+v", triggers[1])
	}
}

func TestBaseIDExtractsDigits(t *testing.T) {
	if got := BaseID("rem-20260314-1200"); got != 20260314 {
		t.Fatalf("expected 20260314, got %d", got)
	}
	if got := BaseID("42"); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestBaseIDDeterministicWithoutDigits(t *testing.T) {
	first := BaseID("no-digits-here")
	second := BaseID("no-digits-here")
	if first != second {
		t.Fatalf("base id not deterministic: %d vs %d", first, second)
	}
	if first < 0 || first >= 100_000_000 {
		t.Fatalf("base id out of range: %d", first)
	}
}

func TestScheduleAssignsOffsetsAndPayload(t *testing.T) {
	notifier := &fakeNotifier{available: true}
	sched := NewScheduler(notifier, Settings{Sound: true}, zerolog.Nop())

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r := reminderDueAt(now.Add(2 * time.Hour))

	if got := sched.Schedule(context.Background(), r, now); got != 4 {
		t.Fatalf("expected 4 scheduled, got %d", got)
	}
	base := BaseID(r.ID)
	for i, req := range notifier.scheduled {
		if req.ID != base+i {
			t.Fatalf("request %d has id %d, want %d", i, req.ID, base+i)
		}
		if req.Extra["reminderId"] != r.ID {
			t.Fatalf("request %d missing reminder link: %+v", i, req.Extra)
		}
		if !req.Sound {
			t.Fatalf("request %d lost sound setting", i)
		}
	}
	if notifier.scheduled[0].Body != "Reminder notification" {
		t.Fatalf("expected default body, got %q", notifier.scheduled[0].Body)
	}
}

func TestScheduleToleratesCapabilityFailure(t *testing.T) {
	notifier := &fakeNotifier{available: true, failWith: errors.New("permission denied")}
	sched := NewScheduler(notifier, Settings{}, zerolog.Nop())

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if got := sched.Schedule(context.Background(), reminderDueAt(now.Add(time.Hour)), now); got != 0 {
		t.Fatalf("expected 0 scheduled on failure, got %d", got)
	}
}

func TestScheduleSkipsUnavailableCapability(t *testing.T) {
	notifier := &fakeNotifier{available: false}
	sched := NewScheduler(notifier, Settings{}, zerolog.Nop())

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if got := sched.Schedule(context.Background(), reminderDueAt(now.Add(time.Hour)), now); got != 0 {
		t.Fatalf("expected 0 scheduled when unavailable, got %d", got)
	}
	if len(notifier.scheduled) != 0 {
		t.Fatalf("unavailable capability still received requests")
	}
}

func TestCancelIssuesAllFourSlots(t *testing.T) {
	notifier := &fakeNotifier{available: true}
	sched := NewScheduler(notifier, Settings{}, zerolog.Nop())

	sched.Cancel(context.Background(), "rem-20260314-1200")
	if len(notifier.cancelled) != 1 {
		t.Fatalf("expected one cancel call, got %d", len(notifier.cancelled))
	}
	ids := notifier.cancelled[0]
	base := BaseID("rem-20260314-1200")
	want := []int{base, base + 1, base + 2, base + 3}
	if len(ids) != 4 {
		t.Fatalf("expected 4 ids, got %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("cancel ids %v, want %v", ids, want)
		}
	}
}
