package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/zend/internal/commands"
	"github.com/sandeepkv93/zend/internal/model"
	"github.com/sandeepkv93/zend/internal/views"
)

// addReminder appends the draft and schedules its alerts. Notification
// failures degrade the status message but never undo the add.
func (m *Model) addReminder(draft model.Draft) {
	ctx := context.Background()
	created, err := m.store.Add(ctx, draft)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to add reminder")
		m.Status = StatusBar{Text: "failed to add reminder", IsError: true}
		return
	}

	now := m.now()
	if m.scheduler != nil && created.DueAt.After(now) {
		if scheduled := m.scheduler.Schedule(ctx, created, now); scheduled > 0 {
			m.Status = StatusBar{Text: "Reminder added and notification scheduled!", IsError: false}
			return
		}
	}
	m.Status = StatusBar{Text: "Reminder added!", IsError: false}
}

// deleteReminder cancels pending alerts first, then removes the reminder.
func (m *Model) deleteReminder(id string) {
	ctx := context.Background()
	if _, ok := m.store.Get(id); !ok {
		return
	}
	if m.scheduler != nil {
		m.scheduler.Cancel(ctx, id)
	}
	m.store.Delete(ctx, id)
	m.clampCursor()
	m.Status = StatusBar{Text: "Reminder deleted!", IsError: false}
}

// toggleReminder flips completion. Completing a reminder cancels its
// pending alerts; marking it incomplete again does not restore them.
func (m *Model) toggleReminder(id string) {
	ctx := context.Background()
	current, ok := m.store.Get(id)
	if !ok {
		return
	}
	if !current.IsCompleted && m.scheduler != nil {
		m.scheduler.Cancel(ctx, id)
	}
	m.store.ToggleComplete(ctx, id)
	if current.IsCompleted {
		m.Status = StatusBar{Text: "Reminder reopened", IsError: false}
	} else {
		m.Status = StatusBar{Text: "Reminder completed", IsError: false}
	}
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input.Blur()
		return m, nil
	case "enter":
		input := m.Palette.Input.Value()
		m.Palette.Active = false
		m.Palette.Input.Blur()
		m.Palette.Input.SetValue("")
		m.runPaletteCommand(input)
		return m, nil
	default:
		var cmd tea.Cmd
		m.Palette.Input, cmd = m.Palette.Input.Update(msg)
		return m, cmd
	}
}

func (m *Model) runPaletteCommand(input string) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	result, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if result.Message != "" {
		m.Status = StatusBar{Text: result.Message, IsError: false}
	}
}

func (m *Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			// quick add: due in one hour with neutral metadata
			m.addReminder(model.Draft{
				Title:    args.Title,
				DueAt:    m.now().Add(time.Hour),
				Category: model.CategoryOther,
				Priority: model.PriorityMedium,
			})
			return commands.Result{}, nil
		},
		Show: func(args commands.ShowArgs) (commands.Result, error) {
			tab := views.Tab(args.Tab)
			if !tab.IsValid() {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("unknown tab: %s", args.Tab),
				}
			}
			m.Tab = tab
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("showing %s", tab)}, nil
		},
		Done: func(args commands.DoneArgs) (commands.Result, error) {
			id, err := m.resolveID(args.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.toggleReminder(id)
			return commands.Result{}, nil
		},
		Delete: func(args commands.DeleteArgs) (commands.Result, error) {
			id, err := m.resolveID(args.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.deleteReminder(id)
			return commands.Result{}, nil
		},
		Name: func(args commands.NameArgs) (commands.Result, error) {
			m.setUserName(args.Name)
			return commands.Result{}, nil
		},
	}
}

// resolveID matches a full id or a unique id prefix against the store.
func (m *Model) resolveID(target string) (string, error) {
	target = strings.TrimSpace(target)
	matches := make([]string, 0, 1)
	for _, item := range m.store.List() {
		if item.ID == target {
			return item.ID, nil
		}
		if strings.HasPrefix(item.ID, target) {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no reminder matches %s", target)}
	default:
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is ambiguous (%d matches)", target, len(matches))}
	}
}
