package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hadil1-h/pfe/internal/domain"
)

func TestNormalizeProject_FullRecord(t *testing.T) {
	raw := `{
		"id": 7,
		"nomProjet": "Refonte CRM",
		"dateDebut": "2024-01-01",
		"dateFin": "2024-12-31",
		"statutProjet": {"nom": "En cours"},
		"budget": 1200.50,
		"archived": false,
		"societe": {"raisonSociale": "Acme SARL"},
		"equipe_id": 3
	}`
	var ext ExternalProject
	require.NoError(t, json.Unmarshal([]byte(raw), &ext))

	rec := NormalizeProject(ext)

	assert.Equal(t, 7, rec.ID)
	assert.Equal(t, "Refonte CRM", rec.Name)
	assert.Equal(t, "2024-01-01", rec.StartDate)
	assert.Equal(t, "2024-12-31", rec.EndDate)
	assert.Equal(t, domain.StatusInProgress, rec.Status)
	assert.Equal(t, 1200.50, rec.Budget)
	assert.Equal(t, "Acme SARL", rec.Company)
	require.NotNil(t, rec.TeamID)
	assert.Equal(t, 3, *rec.TeamID)
}

func TestNormalizeProject_MissingOptionals(t *testing.T) {
	var ext ExternalProject
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "nomProjet": "Minimal"}`), &ext))

	rec := NormalizeProject(ext)

	assert.Equal(t, "Minimal", rec.Name)
	assert.Empty(t, rec.StartDate)
	assert.Empty(t, rec.EndDate)
	assert.Empty(t, rec.Status)
	assert.Zero(t, rec.Budget)
	assert.False(t, rec.Archived)
	assert.Empty(t, rec.Company)
	assert.Nil(t, rec.TeamID)
}

func TestNormalizeProject_EmptyStatusObject(t *testing.T) {
	var ext ExternalProject
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "nomProjet": "X", "statutProjet": {}}`), &ext))

	rec := NormalizeProject(ext)

	assert.Empty(t, rec.Status)
}

func TestNormalizeTask(t *testing.T) {
	raw := `{"id": 4, "idProjet": 7, "dateFin": "2024-06-01", "idStatutTache": 3, "assigne": "a.martin", "titre": "Migration données"}`
	var ext ExternalTask
	require.NoError(t, json.Unmarshal([]byte(raw), &ext))

	rec := NormalizeTask(ext)

	assert.Equal(t, 4, rec.ID)
	assert.Equal(t, 7, rec.ProjectID)
	assert.Equal(t, "2024-06-01", rec.EndDate)
	assert.Equal(t, domain.TaskStatusDone, rec.Status)
	assert.Equal(t, "a.martin", rec.Assignee)
	assert.Equal(t, "Migration données", rec.Title)
}

func TestNormalizeAgentAndTeam(t *testing.T) {
	var agent ExternalAgent
	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "nom": "Martin", "prenom": "Alice"}`), &agent))
	rec := NormalizeAgent(agent)
	assert.Equal(t, "Alice Martin", rec.FullName())
	assert.Empty(t, rec.Email)

	var team ExternalTeam
	require.NoError(t, json.Unmarshal([]byte(`{"nom": "Équipe Web"}`), &team))
	teamRec := NormalizeTeam(team)
	assert.Zero(t, teamRec.ID)
	assert.Equal(t, "Équipe Web", teamRec.Name)
	assert.Nil(t, teamRec.ResponsibleID)
}

func TestNormalizeSlices(t *testing.T) {
	projects := NormalizeProjects([]ExternalProject{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	assert.Len(t, projects, 2)

	assert.Empty(t, NormalizeTasks(nil))
	assert.Empty(t, NormalizeAgents(nil))
	assert.Empty(t, NormalizeTeams(nil))
}
