package update

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zend/internal/model"
)

const dueTimeLayout = "2006-01-02 15:04"

var errDueNotFuture = errors.New("due time must be in the future")

func newFormState() FormState {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120

	description := textinput.New()
	description.Placeholder = "Description (optional)"
	description.CharLimit = 300

	dueAt := textinput.New()
	dueAt.Placeholder = dueTimeLayout
	dueAt.CharLimit = len(dueTimeLayout)

	return FormState{
		Title:       title,
		Description: description,
		DueAt:       dueAt,
	}
}

func (m *Model) openForm() {
	m.Form = newFormState()
	m.Form.Active = true
	m.Form.Focus = FieldTitle
	m.Form.Title.Focus()
	m.Form.DueAt.SetValue(m.now().Add(time.Hour).Format(dueTimeLayout))
}

func (m *Model) closeForm() {
	m.Form.Active = false
	m.Form.Title.Blur()
	m.Form.Description.Blur()
	m.Form.DueAt.Blur()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "enter":
		draft, err := m.Form.buildDraft(m.now())
		if err != nil {
			m.Form.Err = err.Error()
			return m, nil
		}
		m.closeForm()
		m.addReminder(draft)
		return m, nil
	case "tab", "down":
		m.moveFormFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFormFocus(-1)
		return m, nil
	case "left":
		m.cycleEnumField(-1)
		return m, nil
	case "right":
		m.cycleEnumField(1)
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

func (m *Model) moveFormFocus(delta int) {
	m.Form.Focus = FormField((int(m.Form.Focus) + delta + formFieldCount) % formFieldCount)
	m.Form.Title.Blur()
	m.Form.Description.Blur()
	m.Form.DueAt.Blur()
	switch m.Form.Focus {
	case FieldTitle:
		m.Form.Title.Focus()
	case FieldDescription:
		m.Form.Description.Focus()
	case FieldDueAt:
		m.Form.DueAt.Focus()
	}
}

func (m *Model) cycleEnumField(delta int) {
	switch m.Form.Focus {
	case FieldCategory:
		n := len(model.Categories())
		m.Form.Category = (m.Form.Category + delta + n) % n
	case FieldPriority:
		n := len(model.Priorities())
		m.Form.Priority = (m.Form.Priority + delta + n) % n
	}
}

func (m Model) updateFocusedInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Form.Focus {
	case FieldTitle:
		m.Form.Title, cmd = m.Form.Title.Update(msg)
	case FieldDescription:
		m.Form.Description, cmd = m.Form.Description.Update(msg)
	case FieldDueAt:
		m.Form.DueAt, cmd = m.Form.DueAt.Update(msg)
	}
	return m, cmd
}

// buildDraft validates the form and produces a store draft. The form is
// where future-ness of the due time is enforced; the store only checks
// presence.
func (f FormState) buildDraft(now time.Time) (model.Draft, error) {
	title := strings.TrimSpace(f.Title.Value())
	if title == "" {
		return model.Draft{}, model.ErrEmptyTitle
	}
	dueAt, err := time.ParseInLocation(dueTimeLayout, strings.TrimSpace(f.DueAt.Value()), time.Local)
	if err != nil {
		return model.Draft{}, model.ErrMissingDueTime
	}
	if !dueAt.After(now) {
		return model.Draft{}, errDueNotFuture
	}
	return model.Draft{
		Title:       title,
		Description: strings.TrimSpace(f.Description.Value()),
		DueAt:       dueAt,
		Category:    model.Categories()[f.Category],
		Priority:    model.Priorities()[f.Priority],
	}, nil
}
