package update

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// timeQuotes are the motivational quotes shown with the greeting; one is
// picked at random when the display name is set and persisted alongside it.
var timeQuotes = []string{
	"always remember that time is the most valuable thing you can spend.",
	"time flies when you're making the most of every moment.",
	"the best time to plant a tree was 20 years ago. The second best time is now.",
	"time is what we want most, but what we use worst.",
	"your time is limited, don't waste it living someone else's life.",
	"time is the coin of your life. It is the only coin you have, and you can determine how it will be spent.",
	"yesterday is history, tomorrow is a mystery, today is a gift - that's why it's called the present.",
	"time waits for no one, but it rewards those who use it wisely.",
	"every second is a chance to turn your life around.",
	"time is free, but it's priceless. You can't own it, but you can use it.",
}

func newGreetingState(userName string) GreetingState {
	input := textinput.New()
	input.Placeholder = "What should we call you?"
	input.CharLimit = 60
	state := GreetingState{Phase: PhaseGreeted, Input: input}
	if strings.TrimSpace(userName) == "" {
		state.Phase = PhaseFirstRun
		state.Input.Focus()
	}
	return state
}

func (m Model) handleGreetingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.Greeting.Input.Value())
		if name == "" {
			return m, nil
		}
		m.setUserName(name)
		return m, nil
	default:
		var cmd tea.Cmd
		m.Greeting.Input, cmd = m.Greeting.Input.Update(msg)
		return m, cmd
	}
}

func (m *Model) setUserName(name string) {
	ctx := context.Background()
	if err := m.profile.SetName(ctx, name); err != nil {
		m.log.Error().Err(err).Msg("failed to save display name")
		m.Status = StatusBar{Text: "failed to save your name", IsError: true}
		return
	}

	quote := timeQuotes[rand.IntN(len(timeQuotes))]
	if err := m.profile.SetQuote(ctx, quote); err != nil {
		m.log.Error().Err(err).Msg("failed to save greeting quote")
	} else {
		m.Quote = quote
	}

	m.UserName = name
	m.Greeting.Phase = PhaseGreeted
	m.Greeting.Input.Blur()
	m.Status = StatusBar{Text: fmt.Sprintf("Welcome, %s!", name), IsError: false}
}
