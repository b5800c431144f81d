package model

// TaskStatus represents the status of a snapshot export task
type TaskStatus string

const (
	// TaskStatusPending means the save was requested but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusWriting means the snapshot is being written
	TaskStatusWriting TaskStatus = "Writing"

	// TaskStatusCompleted means the snapshot was stored successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the snapshot could not be stored
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is still writing
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusWriting
}

// IsFinished returns true if the task completed or failed
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
