package server

import (
	"github.com/Hadil1-h/pfe/internal/analysis"
	"github.com/Hadil1-h/pfe/internal/domain"
)

// AnalyzeRequest is the body of POST /ai/analyze. The record slices use
// the frontend's shapes and key names.
type AnalyzeRequest struct {
	Query        string                     `json:"query" example:"Quel est le budget total ?"`
	Projects     []analysis.ExternalProject `json:"projects,omitempty"`
	Tasks        []analysis.ExternalTask    `json:"tasks,omitempty"`
	Agents       []analysis.ExternalAgent   `json:"agents,omitempty"`
	Teams        []analysis.ExternalTeam    `json:"equipes,omitempty"`
	FilterPeriod string                     `json:"filterPeriod,omitempty"`
	Language     string                     `json:"language,omitempty" example:"fr"`
}

// AnalyzeResponse always carries a response string; structured_data is
// null when the answer has no machine-readable payload.
type AnalyzeResponse struct {
	Response       string                  `json:"response"`
	StructuredData analysis.StructuredData `json:"structured_data"`
}

// SuggestRequest is the body of POST /ai/suggest-questions.
type SuggestRequest struct {
	Projects []analysis.ExternalProject `json:"projects,omitempty"`
	Tasks    []analysis.ExternalTask    `json:"tasks,omitempty"`
	Agents   []analysis.ExternalAgent   `json:"agents,omitempty"`
	Teams    []analysis.ExternalTeam    `json:"equipes,omitempty"`
	Language string                     `json:"language,omitempty" example:"fr"`
}

// SuggestResponse lists candidate questions, most relevant first.
type SuggestResponse struct {
	Questions []string `json:"questions"`
}

// ProjectResponse mirrors the frontend project shape for GET /projects.
type ProjectResponse struct {
	ID       int      `json:"id"`
	Name     string   `json:"nomProjet"`
	Start    string   `json:"dateDebut,omitempty"`
	End      string   `json:"dateFin,omitempty"`
	Status   string   `json:"statut,omitempty"`
	Budget   float64  `json:"budget"`
	Archived bool     `json:"archived"`
	Company  string   `json:"societe,omitempty"`
	TeamID   *int     `json:"equipe_id,omitempty"`
	Tasks    []string `json:"taches,omitempty"`
}

func toProjectResponse(p domain.ProjectRecord, taskTitles []string) ProjectResponse {
	return ProjectResponse{
		ID:       p.ID,
		Name:     p.Name,
		Start:    p.StartDate,
		End:      p.EndDate,
		Status:   p.Status,
		Budget:   p.Budget,
		Archived: p.Archived,
		Company:  p.Company,
		TeamID:   p.TeamID,
		Tasks:    taskTitles,
	}
}
