package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/zend/internal/model"
	"github.com/sandeepkv93/zend/internal/views"
)

func (m Model) View() string {
	if m.Quitting {
		return "Goodbye!\n"
	}
	if m.Greeting.Phase == PhaseFirstRun {
		return views.RenderApp(views.AppData{
			Header:     "zend",
			List:       m.renderGreeting(),
			StatusLine: m.Status.Text,
		})
	}

	data := views.AppData{
		Header:     m.renderHeader(),
		TabBar:     m.renderTabBar(),
		Stats:      m.renderStats(),
		List:       m.renderList(),
		StatusLine: m.Status.Text,
		Footer:     "1-5 tabs  a add  x done  d delete  / command  ? help  q quit",
	}
	switch {
	case m.Form.Active:
		data.SidePane = m.renderForm()
	case m.Palette.Active:
		data.SidePane = m.renderPalette()
	case m.HelpVisible:
		data.SidePane = m.renderHelp()
	}
	return views.RenderApp(data)
}

func (m Model) renderHeader() string {
	if m.UserName == "" {
		return "zend"
	}
	header := fmt.Sprintf("zend | Hello, %s", m.UserName)
	if m.Quote != "" {
		header += "  " + m.Quote
	}
	return header
}

func (m Model) renderGreeting() string {
	var b strings.Builder
	b.WriteString("Welcome to zend!\n\n")
	b.WriteString("Tell us your name and press enter.\n\n")
	b.WriteString(m.Greeting.Input.View())
	return b.String()
}

func (m Model) renderTabBar() string {
	counts := views.Summarize(m.store.List(), m.now())
	parts := make([]string, 0, len(views.Tabs()))
	for _, tab := range views.Tabs() {
		label := fmt.Sprintf("%s (%d)", tab, tabCount(tab, counts))
		if tab == m.Tab {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func tabCount(tab views.Tab, c views.Counts) int {
	switch tab {
	case views.TabPending:
		return c.Pending
	case views.TabCompleted:
		return c.Completed
	case views.TabToday:
		return c.Today
	case views.TabOverdue:
		return c.Overdue
	default:
		return c.Total
	}
}

func (m Model) renderStats() string {
	c := views.Summarize(m.store.List(), m.now())
	return fmt.Sprintf("total %d · pending %d · completed %d · today %d · overdue %d",
		c.Total, c.Pending, c.Completed, c.Today, c.Overdue)
}

func (m Model) renderList() string {
	items := m.visible()
	if len(items) == 0 {
		return "Nothing here. Press a to add a reminder."
	}
	now := m.now()
	var b strings.Builder
	for i, item := range items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}
		b.WriteString(cursor + renderRow(item, now))
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderRow(r model.Reminder, now time.Time) string {
	check := "[ ]"
	if r.IsCompleted {
		check = "[x]"
	}
	due := r.DueAt.Format("Jan 2 15:04")
	if !r.IsCompleted && r.DueAt.Before(now) {
		due += " (overdue)"
	}
	return fmt.Sprintf("%s %s  %s  %s/%s", check, r.Title, due, r.Category, r.Priority)
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString("New reminder\n\n")
	b.WriteString(formLabel("Title", m.Form.Focus == FieldTitle) + m.Form.Title.View() + "\n")
	b.WriteString(formLabel("Notes", m.Form.Focus == FieldDescription) + m.Form.Description.View() + "\n")
	b.WriteString(formLabel("Due", m.Form.Focus == FieldDueAt) + m.Form.DueAt.View() + "\n")
	b.WriteString(formLabel("Category", m.Form.Focus == FieldCategory) + string(model.Categories()[m.Form.Category]) + "\n")
	b.WriteString(formLabel("Priority", m.Form.Focus == FieldPriority) + string(model.Priorities()[m.Form.Priority]) + "\n")
	if m.Form.Err != "" {
		b.WriteString("\n! " + m.Form.Err + "\n")
	}
	b.WriteString("\ntab next · left/right cycle · enter save · esc cancel")
	return b.String()
}

func formLabel(name string, focused bool) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	return fmt.Sprintf("%s%-10s", marker, name)
}

func (m Model) renderPalette() string {
	return "Command\n\n" + m.Palette.Input.View() + "\n\nenter run · esc close"
}
