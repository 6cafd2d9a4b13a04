package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hadil1-h/pfe/internal/cli/formatter"
)

// answerMsg carries a resolved answer back into the update loop.
type answerMsg struct {
	query string
	text  string
}

type errMsg struct{ err error }

// shellModel is the bubbletea Model for the interactive shell REPL.
type shellModel struct {
	app     *App
	input   textinput.Model
	history []string
	waiting bool
}

func newShellModel(app *App) shellModel {
	input := textinput.New()
	input.Placeholder = "Posez une question (exit pour quitter)"
	input.Prompt = formatter.StyleHeader.Render("pfe> ")
	input.Focus()
	return shellModel{
		app:   app,
		input: input,
	}
}

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			if query == "exit" || query == "quit" {
				return m, tea.Quit
			}
			m.input.Reset()
			m.waiting = true
			return m, m.resolve(query)
		}
	case answerMsg:
		m.waiting = false
		m.history = append(m.history,
			formatter.StyleDim.Render("? "+msg.query),
			msg.text)
		return m, nil
	case errMsg:
		m.waiting = false
		m.history = append(m.history, formatter.StyleRed.Render("erreur : "+msg.err.Error()))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	var b strings.Builder
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.waiting {
		b.WriteString(formatter.StyleDim.Render("…"))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

// resolve answers a single query against the stored dataset.
func (m shellModel) resolve(query string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		req, err := loadDataset(ctx, app)
		if err != nil {
			return errMsg{err}
		}
		req.Query = query

		result, err := app.Analyze.Resolve(ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return answerMsg{query: query, text: formatter.FormatAnswer(result)}
	}
}
