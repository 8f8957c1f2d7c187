package update

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/zend/internal/model"
	"github.com/sandeepkv93/zend/internal/notify"
	"github.com/sandeepkv93/zend/internal/storage"
	"github.com/sandeepkv93/zend/internal/views"
)

type recordingNotifier struct {
	scheduled []notify.Request
	cancelled [][]int
}

func (r *recordingNotifier) Available() bool { return true }

func (r *recordingNotifier) Schedule(_ context.Context, req notify.Request) error {
	r.scheduled = append(r.scheduled, req)
	return nil
}

func (r *recordingNotifier) Cancel(_ context.Context, ids []int) error {
	r.cancelled = append(r.cancelled, ids)
	return nil
}

func newTestModel(t *testing.T, userName string) (Model, *recordingNotifier) {
	t.Helper()
	kv, err := storage.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	store := storage.NewStore(kv, zerolog.Nop())
	store.Load(context.Background())
	notifier := &recordingNotifier{}
	m := NewModel(Deps{
		Store:     store,
		Profile:   storage.NewProfile(kv),
		Scheduler: notify.NewScheduler(notifier, notify.Settings{}, zerolog.Nop()),
		Sender:    notify.NoopSender{},
		Log:       zerolog.Nop(),
		UserName:  userName,
	})
	m.now = func() time.Time {
		return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	}
	return m, notifier
}

func (m *Model) seed(t *testing.T, title string, due time.Time, completed bool) model.Reminder {
	t.Helper()
	created, err := m.store.Add(context.Background(), model.Draft{
		Title:    title,
		DueAt:    due,
		Category: model.CategoryOther,
		Priority: model.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Add %s: %v", title, err)
	}
	if completed {
		m.store.ToggleComplete(context.Background(), created.ID)
	}
	return created
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, "Sam")
	if m.Tab != views.TabAll {
		t.Fatalf("expected default tab %q, got %q", views.TabAll, m.Tab)
	}
	if m.Greeting.Phase != PhaseGreeted {
		t.Fatalf("expected greeted phase for a named user, got %q", m.Greeting.Phase)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestGreetingFirstRunPersistsName(t *testing.T) {
	m, _ := newTestModel(t, "")
	if m.Greeting.Phase != PhaseFirstRun {
		t.Fatalf("expected first-run phase, got %q", m.Greeting.Phase)
	}

	updated, _ := m.Update(keyRunes("Ada"))
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Greeting.Phase != PhaseGreeted {
		t.Fatalf("expected greeted phase, got %q", next.Greeting.Phase)
	}
	if next.UserName != "Ada" {
		t.Fatalf("expected user name Ada, got %q", next.UserName)
	}
	name, err := next.profile.Name(context.Background())
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if name != "Ada" {
		t.Fatalf("expected persisted name Ada, got %q", name)
	}
}

func TestGreetingPicksAndPersistsQuote(t *testing.T) {
	m, _ := newTestModel(t, "")
	updated, _ := m.Update(keyRunes("Ada"))
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Quote == "" {
		t.Fatal("expected a quote to be picked with the name")
	}
	found := false
	for _, q := range timeQuotes {
		if q == next.Quote {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("quote %q is not from the quote list", next.Quote)
	}

	quote, err := next.profile.Quote(context.Background())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote != next.Quote {
		t.Fatalf("expected persisted quote %q, got %q", next.Quote, quote)
	}
	if !strings.Contains(next.renderHeader(), next.Quote) {
		t.Fatalf("expected header to surface the quote, got %q", next.renderHeader())
	}
}

func TestGreetingEnterWithBlankNameStaysPut(t *testing.T) {
	m, _ := newTestModel(t, "")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if next.Greeting.Phase != PhaseFirstRun {
		t.Fatalf("expected to remain on first-run phase, got %q", next.Greeting.Phase)
	}
}

func TestUpdateKeySwitchesTabAndResetsCursor(t *testing.T) {
	m, _ := newTestModel(t, "Sam")
	now := m.now()
	m.seed(t, "one", now.Add(time.Hour), false)
	m.seed(t, "two", now.Add(2*time.Hour), false)
	m.Cursor = 1

	updated, _ := m.Update(keyRunes("4"))
	next := updated.(Model)
	if next.Tab != views.TabCompleted {
		t.Fatalf("expected completed tab, got %q", next.Tab)
	}
	if next.Cursor != 0 {
		t.Fatalf("expected cursor reset, got %d", next.Cursor)
	}

	updated, _ = next.Update(keyRunes("5"))
	next = updated.(Model)
	if next.Tab != views.TabOverdue {
		t.Fatalf("expected overdue tab, got %q", next.Tab)
	}
}

func TestToggleCancelsAlertsOnlyWhenCompleting(t *testing.T) {
	m, notifier := newTestModel(t, "Sam")
	created := m.seed(t, "call dentist", m.now().Add(2*time.Hour), false)

	m.toggleReminder(created.ID)
	if len(notifier.cancelled) != 1 {
		t.Fatalf("expected one cancel batch, got %d", len(notifier.cancelled))
	}
	if got := len(notifier.cancelled[0]); got != 4 {
		t.Fatalf("expected 4 cancelled ids, got %d", got)
	}
	stored, ok := m.store.Get(created.ID)
	if !ok || !stored.IsCompleted {
		t.Fatalf("expected reminder completed, got %+v ok=%v", stored, ok)
	}

	m.toggleReminder(created.ID)
	if len(notifier.cancelled) != 1 {
		t.Fatalf("reopening must not cancel again, got %d batches", len(notifier.cancelled))
	}
	if len(notifier.scheduled) != 0 {
		t.Fatalf("reopening must not reschedule, got %d requests", len(notifier.scheduled))
	}
}

func TestDeleteCancelsBeforeRemoving(t *testing.T) {
	m, notifier := newTestModel(t, "Sam")
	created := m.seed(t, "water plants", m.now().Add(time.Hour), false)

	m.deleteReminder(created.ID)
	if len(notifier.cancelled) != 1 {
		t.Fatalf("expected cancel before delete, got %d batches", len(notifier.cancelled))
	}
	if _, ok := m.store.Get(created.ID); ok {
		t.Fatal("expected reminder removed")
	}
}

func TestDeleteUnknownIDIsSilent(t *testing.T) {
	m, notifier := newTestModel(t, "Sam")
	m.deleteReminder("missing")
	if len(notifier.cancelled) != 0 {
		t.Fatalf("expected no cancels for unknown id, got %d", len(notifier.cancelled))
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
}

func TestFormSubmitAddsAndSchedules(t *testing.T) {
	m, notifier := newTestModel(t, "Sam")
	m.openForm()
	m.Form.Title.SetValue("team standup")
	m.Form.DueAt.SetValue(m.now().Add(3 * time.Hour).Format(dueTimeLayout))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)

	if next.Form.Active {
		t.Fatal("expected form closed after submit")
	}
	items := next.store.List()
	if len(items) != 1 || items[0].Title != "team standup" {
		t.Fatalf("unexpected store contents: %+v", items)
	}
	if len(notifier.scheduled) != 4 {
		t.Fatalf("expected 4 scheduled alerts, got %d", len(notifier.scheduled))
	}
	if !strings.Contains(next.Status.Text, "notification scheduled") {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
}

func TestFormRejectsPastDueTime(t *testing.T) {
	m, _ := newTestModel(t, "Sam")
	m.openForm()
	m.Form.Title.SetValue("too late")
	m.Form.DueAt.SetValue(m.now().Add(-time.Hour).Format(dueTimeLayout))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)

	if !next.Form.Active {
		t.Fatal("expected form to stay open on a validation error")
	}
	if next.Form.Err == "" {
		t.Fatal("expected a form error message")
	}
	if got := len(next.store.List()); got != 0 {
		t.Fatalf("expected no reminder added, got %d", got)
	}
}

func TestPaletteShowSwitchesTab(t *testing.T) {
	m, _ := newTestModel(t, "Sam")
	m.runPaletteCommand("/show overdue")
	if m.Tab != views.TabOverdue {
		t.Fatalf("expected overdue tab, got %q", m.Tab)
	}

	m.runPaletteCommand("/show nonsense")
	if !m.Status.IsError {
		t.Fatalf("expected error status for unknown tab, got %+v", m.Status)
	}
}

func TestPaletteQuickAdd(t *testing.T) {
	m, notifier := newTestModel(t, "Sam")
	m.runPaletteCommand("/add Buy milk")
	items := m.store.List()
	if len(items) != 1 || items[0].Title != "Buy milk" {
		t.Fatalf("unexpected store contents: %+v", items)
	}
	if want := m.now().Add(time.Hour); !items[0].DueAt.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, items[0].DueAt)
	}
	if len(notifier.scheduled) == 0 {
		t.Fatal("expected quick add to schedule alerts")
	}
}

func TestResolveIDPrefix(t *testing.T) {
	m, _ := newTestModel(t, "Sam")
	created := m.seed(t, "unique", m.now().Add(time.Hour), false)

	id, err := m.resolveID(created.ID[:8])
	if err != nil {
		t.Fatalf("resolveID: %v", err)
	}
	if id != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, id)
	}

	if _, err := m.resolveID("zzzz"); err == nil {
		t.Fatal("expected an error for an unmatched target")
	}
}

func TestAlertFiredUpdatesStatusAndRearms(t *testing.T) {
	ch := make(chan notify.Request, 1)
	m, _ := newTestModel(t, "Sam")
	m.alerts = ch

	updated, cmd := m.Update(AlertFiredMsg{Request: notify.Request{ID: 7, Title: "call dentist"}})
	next := updated.(Model)
	if !strings.Contains(next.Status.Text, "call dentist") {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
	if cmd == nil {
		t.Fatal("expected the loop to re-arm the alert wait")
	}
}

func TestStatusMessages(t *testing.T) {
	m, _ := newTestModel(t, "Sam")
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", next.Status)
	}
}
