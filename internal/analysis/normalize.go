package analysis

import (
	"github.com/Hadil1-h/pfe/internal/domain"
)

// Externally-shaped records as the frontend sends them: nested status and
// company objects, camelCase keys, optional everything. Normalization maps
// them onto the flat internal records; absent optionals become zero values
// rather than errors.

// ExternalStatus is the nested project status object.
type ExternalStatus struct {
	Name *string `json:"nom,omitempty"`
}

// ExternalCompany is the nested owning-organization object.
type ExternalCompany struct {
	LegalName *string `json:"raisonSociale,omitempty"`
}

// ExternalProject is a project as shipped by the frontend.
type ExternalProject struct {
	ID        int              `json:"id"`
	Name      string           `json:"nomProjet"`
	StartDate *string          `json:"dateDebut,omitempty"`
	EndDate   *string          `json:"dateFin,omitempty"`
	Status    *ExternalStatus  `json:"statutProjet,omitempty"`
	Budget    *float64         `json:"budget,omitempty"`
	Archived  *bool            `json:"archived,omitempty"`
	Company   *ExternalCompany `json:"societe,omitempty"`
	TeamID    *int             `json:"equipe_id,omitempty"`
}

// ExternalTask is a task as shipped by the frontend.
type ExternalTask struct {
	ID        int     `json:"id"`
	ProjectID int     `json:"idProjet"`
	StartDate *string `json:"dateDebut,omitempty"`
	EndDate   *string `json:"dateFin,omitempty"`
	Status    *int    `json:"idStatutTache,omitempty"`
	Assignee  *string `json:"assigne,omitempty"`
	Title     *string `json:"titre,omitempty"`
}

// ExternalAgent is an agent as shipped by the frontend.
type ExternalAgent struct {
	ID        *int    `json:"id,omitempty"`
	LastName  *string `json:"nom,omitempty"`
	FirstName *string `json:"prenom,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ExternalTeam is a team as shipped by the frontend.
type ExternalTeam struct {
	ID            *int    `json:"id,omitempty"`
	Name          *string `json:"nom,omitempty"`
	ResponsibleID *int    `json:"responsable_id,omitempty"`
}

// NormalizeProject flattens an external project into the internal record.
func NormalizeProject(p ExternalProject) domain.ProjectRecord {
	rec := domain.ProjectRecord{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: domain.StrFromPtr(p.StartDate),
		EndDate:   domain.StrFromPtr(p.EndDate),
		Budget:    domain.Float64FromPtrWithDefault(0, p.Budget),
		Archived:  domain.BoolFromPtrWithDefault(false, p.Archived),
		TeamID:    p.TeamID,
	}
	if p.Status != nil {
		rec.Status = domain.StrFromPtr(p.Status.Name)
	}
	if p.Company != nil {
		rec.Company = domain.StrFromPtr(p.Company.LegalName)
	}
	return rec
}

// NormalizeTask flattens an external task into the internal record.
func NormalizeTask(t ExternalTask) domain.TaskRecord {
	return domain.TaskRecord{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		StartDate: domain.StrFromPtr(t.StartDate),
		EndDate:   domain.StrFromPtr(t.EndDate),
		Status:    domain.IntFromPtrWithDefault(0, t.Status),
		Assignee:  domain.StrFromPtr(t.Assignee),
		Title:     domain.StrFromPtr(t.Title),
	}
}

// NormalizeAgent flattens an external agent into the internal record.
func NormalizeAgent(a ExternalAgent) domain.AgentRecord {
	return domain.AgentRecord{
		ID:        domain.IntFromPtrWithDefault(0, a.ID),
		FirstName: domain.StrFromPtr(a.FirstName),
		LastName:  domain.StrFromPtr(a.LastName),
		Email:     domain.StrFromPtr(a.Email),
	}
}

// NormalizeTeam flattens an external team into the internal record.
func NormalizeTeam(e ExternalTeam) domain.TeamRecord {
	return domain.TeamRecord{
		ID:            domain.IntFromPtrWithDefault(0, e.ID),
		Name:          domain.StrFromPtr(e.Name),
		ResponsibleID: e.ResponsibleID,
	}
}

// NormalizeProjects maps a slice of external projects.
func NormalizeProjects(in []ExternalProject) []domain.ProjectRecord {
	out := make([]domain.ProjectRecord, 0, len(in))
	for _, p := range in {
		out = append(out, NormalizeProject(p))
	}
	return out
}

// NormalizeTasks maps a slice of external tasks.
func NormalizeTasks(in []ExternalTask) []domain.TaskRecord {
	out := make([]domain.TaskRecord, 0, len(in))
	for _, t := range in {
		out = append(out, NormalizeTask(t))
	}
	return out
}

// NormalizeAgents maps a slice of external agents.
func NormalizeAgents(in []ExternalAgent) []domain.AgentRecord {
	out := make([]domain.AgentRecord, 0, len(in))
	for _, a := range in {
		out = append(out, NormalizeAgent(a))
	}
	return out
}

// NormalizeTeams maps a slice of external teams.
func NormalizeTeams(in []ExternalTeam) []domain.TeamRecord {
	out := make([]domain.TeamRecord, 0, len(in))
	for _, e := range in {
		out = append(out, NormalizeTeam(e))
	}
	return out
}
