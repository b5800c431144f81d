package model

import (
	"testing"
	"time"
)

func TestExportTask_GetDisplayName(t *testing.T) {
	tests := []struct {
		key      string
		location string
		id       string
		expected string
	}{
		{"filtered_data_2025-04-28_18-31-04.951296.tsv", "", "x", "filtered_data_2025-04-28_18-31-04.951296.tsv"},
		{"", "/home/user/out/filtered_data_a.tsv", "x", "filtered_data_a.tsv"},
		{"", `C:\data\filtered_data_b.tsv`, "x", "filtered_data_b.tsv"},
		{"", "", "export_1", "export_1"},
	}

	for _, test := range tests {
		task := &ExportTask{ID: test.id, Key: test.key, Location: test.location}
		result := task.GetDisplayName()
		if result != test.expected {
			t.Errorf("GetDisplayName() with key=%q location=%q = %s, expected %s", test.key, test.location, result, test.expected)
		}
	}
}

func TestExportTask_Duration(t *testing.T) {
	start := time.Date(2025, 4, 28, 18, 31, 4, 0, time.UTC)

	task := &ExportTask{StartedAt: start}
	if task.Duration() != 0 {
		t.Errorf("Duration() of unfinished task = %v, expected 0", task.Duration())
	}

	task.FinishedAt = start.Add(1500 * time.Millisecond)
	if task.Duration() != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, expected %v", task.Duration(), 1500*time.Millisecond)
	}
}

func TestExportTask_Succeeded(t *testing.T) {
	task := &ExportTask{Status: TaskStatusCompleted}
	if !task.Succeeded() {
		t.Error("Succeeded() = false, expected true for completed task")
	}

	task.Status = TaskStatusError
	if task.Succeeded() {
		t.Error("Succeeded() = true, expected false for failed task")
	}
}
