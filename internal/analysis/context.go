package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Hadil1-h/pfe/internal/domain"
)

// DateLayout is the ISO date format used across the dataset.
const DateLayout = "2006-01-02"

// generalContext opens every analysis prompt. Kept byte-identical across
// requests so the fine-tuned model sees a stable preamble.
const generalContext = "Contexte général : Gestion de projet avec méthodologies Agile (itérations courtes, collaboration client) " +
	"et Waterfall (planification linéaire). Importance de la communication, gestion des risques, motivation des équipes, et suivi des jalons."

// ProjectTaskCount pairs a project name with its number of tasks.
type ProjectTaskCount struct {
	Name      string
	TaskCount int
}

// AggregateContext holds every derived statistic computed for one request.
// It feeds both the deterministic rules and the generative prompt, and is
// discarded once the response is produced.
type AggregateContext struct {
	CurrentDate  string
	FilterPeriod string

	Projects          []domain.ProjectRecord
	TotalProjects     int
	ActiveProjects    int
	CompletedProjects []domain.ProjectRecord
	DelayedProjects   []domain.ProjectRecord

	TotalTasks   int
	DelayedTasks []domain.TaskRecord

	// TaskCounts maps project id to the number of tasks referencing it.
	TaskCounts map[int]int
	// Ranked lists every project by task count, descending, stable on ties.
	Ranked []ProjectTaskCount

	TotalBudget float64

	TeamInfo    string
	AgentInfo   string
	TotalTeams  int
	TotalAgents int
}

// BuildContext computes the aggregate context for one request. It never
// fails: missing dates, budgets, and dangling task references all degrade
// to zero values.
func BuildContext(projects []domain.ProjectRecord, tasks []domain.TaskRecord,
	agents []domain.AgentRecord, teams []domain.TeamRecord,
	currentDate, filterPeriod string) *AggregateContext {

	agg := &AggregateContext{
		CurrentDate:   currentDate,
		FilterPeriod:  filterPeriod,
		Projects:      projects,
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
		TaskCounts:    make(map[int]int, len(projects)),
		TotalTeams:    len(teams),
		TotalAgents:   len(agents),
	}

	for _, p := range projects {
		if !p.Archived {
			agg.ActiveProjects++
		}
		if p.IsCompleted() {
			agg.CompletedProjects = append(agg.CompletedProjects, p)
		}
		if p.IsDelayed(currentDate) {
			agg.DelayedProjects = append(agg.DelayedProjects, p)
		}
		agg.TotalBudget += p.Budget
	}

	for _, t := range tasks {
		agg.TaskCounts[t.ProjectID]++
		if t.IsDelayed(currentDate) {
			agg.DelayedTasks = append(agg.DelayedTasks, t)
		}
	}

	agg.Ranked = make([]ProjectTaskCount, 0, len(projects))
	for _, p := range projects {
		agg.Ranked = append(agg.Ranked, ProjectTaskCount{
			Name:      p.Name,
			TaskCount: agg.TaskCounts[p.ID],
		})
	}
	// Stable keeps the original input order between equal counts.
	sort.SliceStable(agg.Ranked, func(i, j int) bool {
		return agg.Ranked[i].TaskCount > agg.Ranked[j].TaskCount
	})

	agg.TeamInfo = describeTeams(teams)
	agg.AgentInfo = describeAgents(agents)

	return agg
}

// ProjectByName finds a project by display name, case-insensitively and
// after trimming. No fuzzy matching: the trimmed names must be equal.
func (a *AggregateContext) ProjectByName(name string) (domain.ProjectRecord, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, p := range a.Projects {
		if strings.ToLower(strings.TrimSpace(p.Name)) == needle {
			return p, true
		}
	}
	return domain.ProjectRecord{}, false
}

// TopProjects returns the n projects with the most tasks.
func (a *AggregateContext) TopProjects(n int) []ProjectTaskCount {
	if n > len(a.Ranked) {
		n = len(a.Ranked)
	}
	return a.Ranked[:n]
}

// Serialize renders the context block fed to the generation model. The
// layout is fixed; any change here shifts the distribution the model was
// fine-tuned on.
func (a *AggregateContext) Serialize() string {
	var b strings.Builder
	b.WriteString(generalContext)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Date actuelle : %s\n", a.CurrentDate)
	fmt.Fprintf(&b, "Période de filtre : %s\n", a.FilterPeriod)
	fmt.Fprintf(&b, "Total des projets : %d\n", a.TotalProjects)
	fmt.Fprintf(&b, "Projets actifs : %d\n", a.ActiveProjects)
	fmt.Fprintf(&b, "Projets terminés : %d\n", len(a.CompletedProjects))
	fmt.Fprintf(&b, "Projets en retard : %d\n", len(a.DelayedProjects))
	fmt.Fprintf(&b, "Total des tâches : %d\n", a.TotalTasks)
	fmt.Fprintf(&b, "Tâches en retard : %d\n", len(a.DelayedTasks))
	fmt.Fprintf(&b, "Équipes : %s\n", a.TeamInfo)
	fmt.Fprintf(&b, "Agents : %s\n", a.AgentInfo)
	fmt.Fprintf(&b, "Projets avec le plus de tâches : %s\n", a.topProjectsInfo())
	fmt.Fprintf(&b, "Budget total : %.2f $\n", a.TotalBudget)
	fmt.Fprintf(&b, "Total des équipes : %d équipes actives\n", a.TotalTeams)
	return b.String()
}

// SerializeShort renders the compact context block used by the
// question-suggestion prompt.
func (a *AggregateContext) SerializeShort() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date actuelle : %s\n", a.CurrentDate)
	fmt.Fprintf(&b, "Total des projets : %d\n", a.TotalProjects)
	fmt.Fprintf(&b, "Projets terminés : %d\n", len(a.CompletedProjects))
	fmt.Fprintf(&b, "Projets en retard : %d\n", len(a.DelayedProjects))
	fmt.Fprintf(&b, "Total des tâches : %d\n", a.TotalTasks)
	fmt.Fprintf(&b, "Tâches en retard : %d\n", len(a.DelayedTasks))
	fmt.Fprintf(&b, "Total des agents : %d\n", a.TotalAgents)
	fmt.Fprintf(&b, "Total des équipes : %d\n", a.TotalTeams)
	return b.String()
}

func (a *AggregateContext) topProjectsInfo() string {
	top := a.TopProjects(3)
	if len(top) == 0 {
		return "Aucun"
	}
	parts := make([]string, 0, len(top))
	for _, p := range top {
		parts = append(parts, fmt.Sprintf("%s (%d tâches)", p.Name, p.TaskCount))
	}
	return strings.Join(parts, ", ")
}

// describeTeams joins team descriptions, or the literal "Aucune" placeholder
// when there are none. The placeholder matters for prompt stability.
func describeTeams(teams []domain.TeamRecord) string {
	if len(teams) == 0 {
		return "Aucune"
	}
	parts := make([]string, 0, len(teams))
	for _, e := range teams {
		respID := 0
		if e.ResponsibleID != nil {
			respID = *e.ResponsibleID
		}
		parts = append(parts, fmt.Sprintf("%s (Responsable ID: %d)", e.Name, respID))
	}
	return strings.Join(parts, ", ")
}

func describeAgents(agents []domain.AgentRecord) string {
	if len(agents) == 0 {
		return "Aucun"
	}
	parts := make([]string, 0, len(agents))
	for _, a := range agents {
		parts = append(parts, a.FullName())
	}
	return strings.Join(parts, ", ")
}
