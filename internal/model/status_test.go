package model

import "testing"

func TestTaskStatusLifecycle(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		name     string
		active   bool
		finished bool
	}{
		{TaskStatusPending, "Pending", false, false},
		{TaskStatusWriting, "Writing", true, false},
		{TaskStatusCompleted, "Completed", false, true},
		{TaskStatusError, "Error", false, true},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.name {
			t.Errorf("String() = %q, expected %q", got, tt.name)
		}
		if got := tt.status.IsActive(); got != tt.active {
			t.Errorf("%s.IsActive() = %v, expected %v", tt.status, got, tt.active)
		}
		if got := tt.status.IsFinished(); got != tt.finished {
			t.Errorf("%s.IsFinished() = %v, expected %v", tt.status, got, tt.finished)
		}
	}
}
