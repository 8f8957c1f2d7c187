package update

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/zend/internal/model"
	"github.com/sandeepkv93/zend/internal/notify"
	"github.com/sandeepkv93/zend/internal/storage"
	"github.com/sandeepkv93/zend/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	All       string
	Pending   string
	Today     string
	Completed string
	Overdue   string
	Add       string
	Toggle    string
	Delete    string
	Palette   string
	Help      string
	Quit      string
}

// GreetingPhase is the tiny first-run state machine: the name prompt is
// shown until a display name has been persisted, then never again.
type GreetingPhase string

const (
	PhaseFirstRun GreetingPhase = "first-run"
	PhaseGreeted  GreetingPhase = "greeted"
)

type GreetingState struct {
	Phase GreetingPhase
	Input textinput.Model
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldDueAt
	FieldCategory
	FieldPriority
)

const formFieldCount = 5

// FormState is the add-reminder form: three text inputs plus two cycling
// enum selectors.
type FormState struct {
	Active      bool
	Focus       FormField
	Title       textinput.Model
	Description textinput.Model
	DueAt       textinput.Model
	Category    int
	Priority    int
	Err         string
}

type PaletteState struct {
	Active bool
	Input  textinput.Model
}

type Model struct {
	store     *storage.Store
	profile   *storage.Profile
	scheduler *notify.Scheduler
	alerts    <-chan notify.Request
	sender    notify.Sender
	log       zerolog.Logger
	now       func() time.Time

	Tab            views.Tab
	Cursor         int
	UserName       string
	Quote          string
	Greeting       GreetingState
	Form           FormState
	Palette        PaletteState
	HelpVisible    bool
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
}

type AlertFiredMsg struct {
	Request notify.Request
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// Deps carries everything the event loop needs; all collaborators are
// injected, nothing is ambient.
type Deps struct {
	Store          *storage.Store
	Profile        *storage.Profile
	Scheduler      *notify.Scheduler
	Alerts         <-chan notify.Request
	Sender         notify.Sender
	Log            zerolog.Logger
	DesktopEnabled bool
	UserName       string
	Quote          string
}

func NewModel(deps Deps) Model {
	m := Model{
		store:          deps.Store,
		profile:        deps.Profile,
		scheduler:      deps.Scheduler,
		alerts:         deps.Alerts,
		sender:         deps.Sender,
		log:            deps.Log,
		now:            time.Now,
		Tab:            views.TabAll,
		UserName:       deps.UserName,
		Quote:          deps.Quote,
		DesktopEnabled: deps.DesktopEnabled,
		Keys: GlobalKeyMap{
			All:       "1",
			Pending:   "2",
			Today:     "3",
			Completed: "4",
			Overdue:   "5",
			Add:       "a",
			Toggle:    "x",
			Delete:    "d",
			Palette:   "/",
			Help:      "?",
			Quit:      "q",
		},
	}
	if m.sender == nil {
		m.sender = notify.NoopSender{}
	}

	m.Greeting = newGreetingState(deps.UserName)
	m.Form = newFormState()
	m.Palette = newPaletteState()
	return m
}

func newPaletteState() PaletteState {
	input := textinput.New()
	input.Placeholder = "add Buy milk | show overdue | done <id> | delete <id> | name <you>"
	input.CharLimit = 200
	return PaletteState{Input: input}
}

// visible returns the reminders the current tab shows, in display order.
func (m Model) visible() []model.Reminder {
	return views.SortByDueTime(views.Filter(m.store.List(), m.Tab, m.now()))
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if n == 0 {
		m.Cursor = 0
		return
	}
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selected() (model.Reminder, bool) {
	items := m.visible()
	if len(items) == 0 || m.Cursor < 0 || m.Cursor >= len(items) {
		return model.Reminder{}, false
	}
	return items[m.Cursor], true
}
