package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zend/internal/notify"
	"github.com/sandeepkv93/zend/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.alerts != nil {
		return waitForAlertCmd(m.alerts)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Greeting.Phase == PhaseFirstRun {
			return m.handleGreetingKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleGlobalKey(typed)
	case AlertFiredMsg:
		m.onAlertFired(typed.Request)
		if m.alerts != nil {
			return m, waitForAlertCmd(m.alerts)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.All:
		m.switchTab(views.TabAll)
	case m.Keys.Pending:
		m.switchTab(views.TabPending)
	case m.Keys.Today:
		m.switchTab(views.TabToday)
	case m.Keys.Completed:
		m.switchTab(views.TabCompleted)
	case m.Keys.Overdue:
		m.switchTab(views.TabOverdue)
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.visible())-1 {
			m.Cursor++
		}
	case m.Keys.Add:
		m.openForm()
	case m.Keys.Toggle:
		if selected, ok := m.selected(); ok {
			m.toggleReminder(selected.ID)
		}
	case m.Keys.Delete:
		if selected, ok := m.selected(); ok {
			m.deleteReminder(selected.ID)
		}
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input.SetValue("")
		m.Palette.Input.Focus()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) switchTab(tab views.Tab) {
	m.Tab = tab
	m.Cursor = 0
}

// onAlertFired surfaces a fired alert on the status bar and, when
// enabled, forwards it to the desktop. Delivery failures are logged only.
func (m *Model) onAlertFired(req notify.Request) {
	m.Status = StatusBar{Text: fmt.Sprintf("Reminder due: %s", req.Title), IsError: false}
	if m.DesktopEnabled {
		if err := m.sender.Send(req); err != nil {
			m.log.Error().Err(err).Int("notification", req.ID).Msg("failed to deliver desktop notification")
		}
	}
}

func waitForAlertCmd(ch <-chan notify.Request) tea.Cmd {
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return AlertFiredMsg{Request: req}
	}
}
