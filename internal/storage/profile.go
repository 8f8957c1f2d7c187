package storage

import (
	"context"
	"errors"
	"strings"
)

// Slots for the greeting flow, shared with the earlier clients.
const (
	UserNameKey = "zen-notify-username"
	QuoteKey    = "zen-notify-quote"
)

// Profile persists the display name and the optional background quote.
type Profile struct {
	kv KV
}

func NewProfile(kv KV) *Profile {
	return &Profile{kv: kv}
}

// Name returns the persisted display name, or "" when none has been set
// yet (the first-run case).
func (p *Profile) Name(ctx context.Context) (string, error) {
	data, err := p.kv.Get(ctx, UserNameKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (p *Profile) SetName(ctx context.Context, name string) error {
	return p.kv.Set(ctx, UserNameKey, []byte(strings.TrimSpace(name)))
}

func (p *Profile) Quote(ctx context.Context) (string, error) {
	data, err := p.kv.Get(ctx, QuoteKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (p *Profile) SetQuote(ctx context.Context, quote string) error {
	return p.kv.Set(ctx, QuoteKey, []byte(strings.TrimSpace(quote)))
}
