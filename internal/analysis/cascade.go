package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Canned answers for the deterministic rules. The wording is part of the
// product contract with the frontend; keep it stable.
const (
	adviceMotivateAgents = "Pour motiver les agents, organisez des réunions régulières, reconnaissez leurs efforts, " +
		"fixez des objectifs clairs, et offrez des opportunités de développement professionnel."
	faqAgile = "Les principes Agile incluent des itérations courtes, une collaboration étroite avec le client, et une livraison continue."
	faqProductivity = "Pour améliorer la productivité d'une équipe sur un projet en retard, planifiez des sprints courts, " +
		"utilisez des outils de suivi comme Trello, et motivez l'équipe avec des objectifs clairs."
)

// Entity capture tolerates accents, digits, hyphens, dots, and swallows a
// trailing question mark plus surrounding whitespace.
var (
	reMotivateTeam   = regexp.MustCompile(`(?i)comment\s+(?:motiver|encourager)\s+(?:l'équipe|l equipe|les\s+agents)\s*(?:du\s+projet|pour\s+le\s+projet)\s+([\p{L}\p{N}_\s.-]+?)(?:\s*\?|$)`)
	reManageDelays   = regexp.MustCompile(`(?i)comment\s+(?:gérer|gerer|résoudre|resoudre)\s+(?:les\s+)?retards?\s*(?:du\s+projet|pour\s+le\s+projet)\s+([\p{L}\p{N}_\s.-]+?)(?:\s*\?|$)`)
	reMotivateAgents = regexp.MustCompile(`(?i)comment\s+(?:motiver|encourager)\s+(?:les\s+)?agents(?:\s*\?|$)`)
	reTaskCount      = regexp.MustCompile(`(?i)combien\s+(?:de\s+)?(?:tâches|taches)\s*(?:sont\s+)?(?:associées?\s*(?:à|a)|pour)?\s*(?:le\s+)?projet\s+([\p{L}\p{N}_\s.-]+?)(?:\s*\?|$)`)
	reProjectBudget  = regexp.MustCompile(`(?i)budget\s+(?:total\s+)?pour\s+(?:le\s+)?projet\s+([\p{L}\p{N}_\s]+?)(?:\s*\?|$)`)
	reForProject     = regexp.MustCompile(`(?i)pour\s+(?:le\s+)?projet`)
)

// Match is the outcome of a cascade rule: which rule fired, the entity it
// extracted (if any), and the answer plus machine-readable payload.
type Match struct {
	Rule     string
	Entity   string
	Response string
	Data     StructuredData
}

// rule pairs an identifier with a pure matcher over (query, context).
type rule struct {
	name  string
	apply func(query string, agg *AggregateContext) *Match
}

// Cascade tries deterministic pattern rules in a fixed priority order.
// The first rule whose pattern matches wins; nothing after it runs,
// including the generative fallback. A rule that extracts a project name
// matching no project still terminates the cascade with a "not found"
// answer rather than falling through.
type Cascade struct {
	rules  []rule
	logger *zap.Logger
}

// NewCascade builds the cascade with its rules in priority order.
func NewCascade(logger *zap.Logger) *Cascade {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cascade{
		logger: logger,
		rules: []rule{
			{name: "motivate_team", apply: matchMotivateTeam},
			{name: "manage_delays", apply: matchManageDelays},
			{name: "motivate_agents", apply: matchMotivateAgents},
			{name: "task_count", apply: matchTaskCount},
			{name: "total_budget", apply: matchTotalBudget},
			{name: "project_budget", apply: matchProjectBudget},
			{name: "delayed_projects", apply: matchDelayedProjects},
			{name: "delayed_tasks", apply: matchDelayedTasks},
			{name: "team_count", apply: matchTeamCount},
			{name: "faq_agile", apply: matchFAQAgile},
			{name: "faq_productivity", apply: matchFAQProductivity},
		},
	}
}

// Resolve runs the cascade over a lower-cased, trimmed query. It returns
// nil when no rule matched, in which case the caller falls back to
// generation. Evaluation is side-effect free apart from logging.
func (c *Cascade) Resolve(query string, agg *AggregateContext) *Match {
	for _, r := range c.rules {
		m := r.apply(query, agg)
		if m == nil {
			continue
		}
		m.Rule = r.name
		c.logger.Debug("intent matched",
			zap.String("rule", m.Rule),
			zap.String("entity", m.Entity))
		return m
	}
	c.logger.Debug("no intent matched", zap.String("query", query))
	return nil
}

func notFound(name string) *Match {
	return &Match{
		Entity:   name,
		Response: fmt.Sprintf("Aucun projet nommé '%s' trouvé.", name),
	}
}

func matchMotivateTeam(query string, agg *AggregateContext) *Match {
	groups := reMotivateTeam.FindStringSubmatch(query)
	if groups == nil {
		return nil
	}
	name := strings.TrimSpace(groups[1])
	p, ok := agg.ProjectByName(name)
	if !ok {
		return notFound(name)
	}
	response := fmt.Sprintf(
		"Pour motiver l'équipe du projet %s, organisez des réunions régulières, "+
			"reconnaissez leurs efforts, fixez des objectifs clairs, et encouragez la collaboration.", p.Name)
	return &Match{
		Entity:   p.Name,
		Response: response,
		Data:     TextData{ProjectName: p.Name, Type: PayloadText, Response: response},
	}
}

func matchManageDelays(query string, agg *AggregateContext) *Match {
	groups := reManageDelays.FindStringSubmatch(query)
	if groups == nil {
		return nil
	}
	name := strings.TrimSpace(groups[1])
	p, ok := agg.ProjectByName(name)
	if !ok {
		return notFound(name)
	}
	response := fmt.Sprintf(
		"Pour gérer les retards du projet %s, priorisez les tâches critiques, "+
			"augmentez la communication avec l'équipe, réallouez les ressources si nécessaire, "+
			"et utilisez des outils de suivi comme Trello.", p.Name)
	return &Match{
		Entity:   p.Name,
		Response: response,
		Data:     TextData{ProjectName: p.Name, Type: PayloadText, Response: response},
	}
}

func matchMotivateAgents(query string, _ *AggregateContext) *Match {
	if !reMotivateAgents.MatchString(query) {
		return nil
	}
	return &Match{
		Response: adviceMotivateAgents,
		Data:     TextData{Type: PayloadText, Response: adviceMotivateAgents},
	}
}

func matchTaskCount(query string, agg *AggregateContext) *Match {
	groups := reTaskCount.FindStringSubmatch(query)
	if groups == nil {
		return nil
	}
	name := strings.TrimSpace(groups[1])
	p, ok := agg.ProjectByName(name)
	if !ok {
		return notFound(name)
	}
	count := agg.TaskCounts[p.ID]
	return &Match{
		Entity:   p.Name,
		Response: fmt.Sprintf("Le projet %s a %d tâche(s).", p.Name, count),
		Data:     TaskCountData{ProjectName: p.Name, TaskCount: count, Type: PayloadTaskCount},
	}
}

// matchTotalBudget guards against the per-project budget question: a query
// that also says "pour le projet" belongs to the project_budget rule below.
func matchTotalBudget(query string, agg *AggregateContext) *Match {
	if !strings.Contains(query, "budget total") || reForProject.MatchString(query) {
		return nil
	}
	return &Match{
		Response: fmt.Sprintf("Le budget total des projets est de %.2f $.", agg.TotalBudget),
		Data:     TotalBudgetData{TotalBudget: agg.TotalBudget, Type: PayloadBudget},
	}
}

func matchProjectBudget(query string, agg *AggregateContext) *Match {
	groups := reProjectBudget.FindStringSubmatch(query)
	if groups == nil {
		return nil
	}
	name := strings.TrimSpace(groups[1])
	p, ok := agg.ProjectByName(name)
	if !ok {
		return notFound(name)
	}
	return &Match{
		Entity:   p.Name,
		Response: fmt.Sprintf("Le budget du projet %s est de %.2f $.", p.Name, p.Budget),
		Data:     ProjectBudgetData{ProjectName: p.Name, Budget: p.Budget, Type: PayloadProjectBudget},
	}
}

func matchDelayedProjects(query string, agg *AggregateContext) *Match {
	if !strings.Contains(query, "projets en retard") {
		return nil
	}
	names := make([]string, 0, len(agg.DelayedProjects))
	for _, p := range agg.DelayedProjects {
		names = append(names, p.Name)
	}
	return &Match{
		Response: fmt.Sprintf("Il y a %d projet(s) en retard.", len(agg.DelayedProjects)),
		Data:     DelayedProjectsData{DelayedProjects: len(agg.DelayedProjects), ProjectNames: names, Type: PayloadBar},
	}
}

func matchDelayedTasks(query string, agg *AggregateContext) *Match {
	if !strings.Contains(query, "tâches en retard") && !strings.Contains(query, "taches en retard") {
		return nil
	}
	return &Match{
		Response: fmt.Sprintf("Il y a %d tâche(s) en retard.", len(agg.DelayedTasks)),
		Data:     DelayedTasksData{DelayedTasks: len(agg.DelayedTasks), Type: PayloadTaskCount},
	}
}

func matchTeamCount(query string, agg *AggregateContext) *Match {
	if !strings.Contains(query, "nombre total des equipes") && !strings.Contains(query, "nombre d'équipes") {
		return nil
	}
	return &Match{
		Response: fmt.Sprintf("Il y a %d équipe(s) active(s).", agg.TotalTeams),
		Data:     TeamCountData{TeamCount: agg.TotalTeams, Type: PayloadCount},
	}
}

func matchFAQAgile(query string, _ *AggregateContext) *Match {
	if !strings.Contains(query, "principes agile") {
		return nil
	}
	return &Match{
		Response: faqAgile,
		Data:     TextData{Type: PayloadText},
	}
}

func matchFAQProductivity(query string, _ *AggregateContext) *Match {
	if !strings.Contains(query, "améliorer la productivité") && !strings.Contains(query, "productivité d'une équipe") {
		return nil
	}
	return &Match{
		Response: faqProductivity,
		Data:     TextData{Type: PayloadText},
	}
}
