package notify

import (
	"context"
	"time"
)

// Request is one timed alert handed to the notification capability. ID is
// the integer identifier the capability schedules and cancels by; Extra
// links the alert back to the reminder that produced it.
type Request struct {
	ID        int
	Title     string
	Body      string
	Sound     bool
	TriggerAt time.Time
	Extra     map[string]string
}

// Notifier is the platform notification capability: schedule a timed
// alert, cancel by identifier, and report whether the capability is
// usable at all. Cancelling an id that was never scheduled is a no-op.
type Notifier interface {
	Available() bool
	Schedule(ctx context.Context, req Request) error
	Cancel(ctx context.Context, ids []int) error
}
