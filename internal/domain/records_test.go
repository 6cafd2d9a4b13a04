package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectRecord_IsDelayed(t *testing.T) {
	today := "2025-06-15"

	tests := []struct {
		name    string
		project ProjectRecord
		want    bool
	}{
		{
			name:    "past end date and in progress",
			project: ProjectRecord{EndDate: "2025-01-01", Status: StatusInProgress},
			want:    true,
		},
		{
			name:    "past end date but completed",
			project: ProjectRecord{EndDate: "2025-01-01", Status: StatusCompleted},
			want:    false,
		},
		{
			name:    "no end date",
			project: ProjectRecord{Status: StatusInProgress},
			want:    false,
		},
		{
			name:    "end date in the future",
			project: ProjectRecord{EndDate: "2025-12-31", Status: StatusInProgress},
			want:    false,
		},
		{
			name:    "end date equals current date",
			project: ProjectRecord{EndDate: today, Status: StatusInProgress},
			want:    false,
		},
		{
			name:    "missing status counts as not completed",
			project: ProjectRecord{EndDate: "2025-01-01"},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.project.IsDelayed(today))
		})
	}
}

func TestTaskRecord_IsDelayed(t *testing.T) {
	today := "2025-06-15"

	assert.True(t, TaskRecord{EndDate: "2025-06-01", Status: 1}.IsDelayed(today))
	assert.False(t, TaskRecord{EndDate: "2025-06-01", Status: TaskStatusDone}.IsDelayed(today))
	assert.False(t, TaskRecord{Status: 1}.IsDelayed(today))
	// Unknown status code (zero) is not the done sentinel, so a past task is late.
	assert.True(t, TaskRecord{EndDate: "2025-06-01"}.IsDelayed(today))
}

func TestAgentRecord_FullName(t *testing.T) {
	a := AgentRecord{FirstName: "Sami", LastName: "Ben Ali"}
	assert.Equal(t, "Sami Ben Ali", a.FullName())
}
