package domain

// Project status labels as stored in the dataset. The comparison against
// StatusCompleted is intentionally a label comparison while task completion
// is a numeric code; the two must not be unified.
const (
	StatusInProgress = "En cours"
	StatusCompleted  = "Terminé"
	StatusPending    = "En attente"
)

// TaskStatusDone is the task status code meaning "completed".
const TaskStatusDone = 3

// IsDelayed reports whether the project has a past end date and is not
// completed. Date comparison is lexicographic over ISO date strings.
func (p ProjectRecord) IsDelayed(currentDate string) bool {
	return p.EndDate != "" && p.Status != StatusCompleted && p.EndDate < currentDate
}

// IsCompleted reports whether the project carries the completed status label.
func (p ProjectRecord) IsCompleted() bool {
	return p.Status == StatusCompleted
}

// IsDelayed reports whether the task has a past end date and is not done.
func (t TaskRecord) IsDelayed(currentDate string) bool {
	return t.EndDate != "" && t.Status != TaskStatusDone && t.EndDate < currentDate
}

// FullName renders "Prenom Nom" for context strings.
func (a AgentRecord) FullName() string {
	return a.FirstName + " " + a.LastName
}
