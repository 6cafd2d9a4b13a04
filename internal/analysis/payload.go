package analysis

// Payload type tags carried in the "type" field of structured data.
const (
	PayloadText          = "text"
	PayloadTaskCount     = "task_count"
	PayloadBudget        = "budget"
	PayloadProjectBudget = "project_budget"
	PayloadBar           = "bar"
	PayloadCount         = "count"
	PayloadList          = "list"
)

// StructuredData is the machine-readable payload that accompanies a
// human-readable response. A nil value means "no structured data".
// Exactly one variant exists per payload tag, except "task_count" which the
// dataset contract uses both for per-project counts and for the delayed-task
// total.
type StructuredData interface {
	isPayload()
}

// TextData carries a canned textual answer, optionally bound to a project.
type TextData struct {
	ProjectName string `json:"project_name,omitempty"`
	Type        string `json:"type"`
	Response    string `json:"response,omitempty"`
}

// TaskCountData carries the task count of a single project.
type TaskCountData struct {
	ProjectName string `json:"project_name"`
	TaskCount   int    `json:"task_count"`
	Type        string `json:"type"`
}

// DelayedTasksData carries the number of tasks past their end date.
type DelayedTasksData struct {
	DelayedTasks int    `json:"delayed_tasks"`
	Type         string `json:"type"`
}

// TotalBudgetData carries the budget summed over every project.
type TotalBudgetData struct {
	TotalBudget float64 `json:"total_budget"`
	Type        string  `json:"type"`
}

// ProjectBudgetData carries the budget of a single project.
type ProjectBudgetData struct {
	ProjectName string  `json:"project_name"`
	Budget      float64 `json:"budget"`
	Type        string  `json:"type"`
}

// DelayedProjectsData carries the delayed projects, shaped for a bar chart.
type DelayedProjectsData struct {
	DelayedProjects int      `json:"delayed_projects"`
	ProjectNames    []string `json:"project_names"`
	Type            string   `json:"type"`
}

// TeamCountData carries the number of active teams.
type TeamCountData struct {
	TeamCount int    `json:"equipe_count"`
	Type      string `json:"type"`
}

// CompletedProjectsData lists the projects whose status is the completed label.
type CompletedProjectsData struct {
	CompletedProjects int      `json:"completed_projects"`
	ProjectNames      []string `json:"project_names"`
	Type              string   `json:"type"`
}

func (TextData) isPayload()              {}
func (TaskCountData) isPayload()         {}
func (DelayedTasksData) isPayload()      {}
func (TotalBudgetData) isPayload()       {}
func (ProjectBudgetData) isPayload()     {}
func (DelayedProjectsData) isPayload()   {}
func (TeamCountData) isPayload()         {}
func (CompletedProjectsData) isPayload() {}
