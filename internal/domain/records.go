package domain

// ProjectRecord is the internal flat shape of a project, rebuilt fresh for
// every request from caller-supplied data and never mutated afterwards.
// Dates are ISO "2006-01-02" strings; an empty string means unknown.
type ProjectRecord struct {
	ID        int
	Name      string
	StartDate string
	EndDate   string
	Status    string // status label, e.g. "En cours", "Terminé"; empty when unknown
	Budget    float64
	Archived  bool
	Company   string
	TeamID    *int
}

// TaskRecord is the internal flat shape of a task. ProjectID may dangle:
// a task referencing no known project still counts toward totals.
type TaskRecord struct {
	ID        int
	ProjectID int
	StartDate string
	EndDate   string
	Status    int // status code; TaskStatusDone marks completion, 0 means unknown
	Assignee  string
	Title     string
}

// AgentRecord identifies a person. Used only for descriptive context strings.
type AgentRecord struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
}

// TeamRecord identifies a team and its responsible agent.
type TeamRecord struct {
	ID            int
	Name          string
	ResponsibleID *int
}
