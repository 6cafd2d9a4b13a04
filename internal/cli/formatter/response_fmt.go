package formatter

import (
	"fmt"
	"strings"

	"github.com/Hadil1-h/pfe/internal/analysis"
)

// FormatAnswer renders a resolved answer: the response line, then the
// structured payload when one is attached.
func FormatAnswer(result *analysis.Result) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(result.Response))
	b.WriteString("\n")

	if detail := formatPayload(result.Data); detail != "" {
		b.WriteString(detail)
	}
	return b.String()
}

func formatPayload(data analysis.StructuredData) string {
	switch d := data.(type) {
	case analysis.TaskCountData:
		return StyleDim.Render(fmt.Sprintf("  %s · %d tâche(s)", d.ProjectName, d.TaskCount)) + "\n"
	case analysis.TotalBudgetData:
		return StyleGreen.Render(fmt.Sprintf("  Budget total : %.2f $", d.TotalBudget)) + "\n"
	case analysis.ProjectBudgetData:
		return StyleGreen.Render(fmt.Sprintf("  %s · %.2f $", d.ProjectName, d.Budget)) + "\n"
	case analysis.DelayedProjectsData:
		return formatNameList("En retard", d.ProjectNames, StyleRed)
	case analysis.CompletedProjectsData:
		return formatNameList("Terminés", d.ProjectNames, StyleGreen)
	case analysis.DelayedTasksData:
		return StyleYellow.Render(fmt.Sprintf("  %d tâche(s) en retard", d.DelayedTasks)) + "\n"
	case analysis.TeamCountData:
		return StyleBlue.Render(fmt.Sprintf("  %d équipe(s)", d.TeamCount)) + "\n"
	default:
		return ""
	}
}

func formatNameList(label string, names []string, style interface{ Render(...string) string }) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleDim.Render("  " + label + " :"))
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString("    ")
		b.WriteString(style.Render("• " + name))
		b.WriteString("\n")
	}
	return b.String()
}
