package tasks

import (
	"io"
	"time"
)

// Task is a remote-owned task record. The client holds only transient
// copies for rendering.
type Task struct {
	ID          string     `json:"id,omitempty"`          // Unique identifier for the task
	Title       string     `json:"title,omitempty"`       // Short task title
	Description string     `json:"description,omitempty"` // Longer task description
	AssignedTo  string     `json:"assignedTo,omitempty"`  // ID of the assignee
	Completed   bool       `json:"completed,omitempty"`   // Whether the assignee marked the task done
	Note        string     `json:"note,omitempty"`        // Completion note left by the assignee
	Images      []string   `json:"images,omitempty"`      // Server URLs of uploaded evidence photos
	CreatedAt   time.Time  `json:"createdAt,omitempty"`   // When the task was created
	CompletedAt *time.Time `json:"completedAt,omitempty"` // When the task was completed
}

// Image is a local photo attached as completion evidence. The contents are
// an opaque blob forwarded to the server as-is.
type Image struct {
	Name   string
	Reader io.Reader
}
