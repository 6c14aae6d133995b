package domain

import (
	"bytes"
	"time"
)

const (
	StatusActive = "active"
	StatusDone   = "done"
)

// DefaultCategory is assigned when a task is created without one.
const DefaultCategory = "General"

type Task struct {
	ID          int64      `db:"id" json:"id"`
	OwnerID     int64      `db:"owner_id" json:"ownerId"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	Status      string     `db:"status" json:"status"`
	DueAt       *time.Time `db:"due_at" json:"dueAt"`
	Archived    bool       `db:"archived" json:"archived"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// TaskPatch carries a partial update. Nil pointer means the field was
// absent from the request and must be left untouched.
type TaskPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Status      *string  `json:"status"`
	Archived    *bool    `json:"archived"`
	DueAt       NullTime `json:"dueAt"`
}

// NullTime distinguishes an absent JSON field from an explicit null.
// {"dueAt": null} clears the due date; omitting the key keeps it.
type NullTime struct {
	Set   bool
	Valid bool
	Time  time.Time
}

func (n *NullTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Valid = false
		return nil
	}
	if err := n.Time.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// TaskFilter narrows and orders a List query. Status empty means no
// status filter. Sort is "asc" or "desc" on created_at.
type TaskFilter struct {
	Status string
	Sort   string
	Offset int
	Limit  int
}
