package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Hadil1-h/pfe/internal/analysis"
	"github.com/Hadil1-h/pfe/internal/config"
	"github.com/Hadil1-h/pfe/internal/domain"
	"github.com/Hadil1-h/pfe/internal/llm"
)

type fakeRepo struct{}

func (fakeRepo) ListProjects(context.Context, bool) ([]domain.ProjectRecord, error) {
	return []domain.ProjectRecord{{ID: 1, Name: "Refonte CRM", Budget: 1000}}, nil
}
func (fakeRepo) ListTasks(context.Context) ([]domain.TaskRecord, error)   { return nil, nil }
func (fakeRepo) ListAgents(context.Context) ([]domain.AgentRecord, error) { return nil, nil }
func (fakeRepo) ListTeams(context.Context) ([]domain.TeamRecord, error)   { return nil, nil }

type fakeGenerator struct{}

func (fakeGenerator) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Text: "ok"}, nil
}
func (fakeGenerator) Available(context.Context) bool { return true }

func newTestApp() *App {
	logger := zap.NewNop()
	return &App{
		Analyze: analysis.NewAnalyzeService(fakeGenerator{}, logger),
		Suggest: analysis.NewSuggestService(fakeGenerator{}, logger),
		Repo:    fakeRepo{},
		Config:  config.Default(),
		Logger:  logger,
	}
}

func typeString(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestShellAnswersQuestion(t *testing.T) {
	var m tea.Model = newShellModel(newTestApp())

	m = typeString(m, "Quel est le budget total ?")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	answer, ok := msg.(answerMsg)
	require.True(t, ok, "expected an answer, got %T", msg)
	assert.Contains(t, answer.text, "Le budget total des projets est de 1000.00 $.")

	m, _ = m.Update(msg)
	view := m.View()
	assert.Contains(t, view, "Quel est le budget total ?")
	assert.Contains(t, view, "1000.00 $")
}

func TestShellEmptyInputIsIgnored(t *testing.T) {
	var m tea.Model = newShellModel(newTestApp())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestShellExitQuits(t *testing.T) {
	var m tea.Model = newShellModel(newTestApp())

	m = typeString(m, "exit")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestShellCtrlCQuits(t *testing.T) {
	var m tea.Model = newShellModel(newTestApp())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
