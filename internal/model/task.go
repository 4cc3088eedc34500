package model

import (
	"time"
)

// Task statuses. The overdue predicate depends on StatusDone, so the set is closed.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Task is the single schedulable work item: a date range with status, progress and
// an optional assignee. Segment is a free-text grouping label, not a foreign key.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Segment     string    `gorm:"not null;default:General" json:"segment"`
	StartDate   time.Time `gorm:"column:start_date;not null" json:"startDate"`
	EndDate     time.Time `gorm:"column:end_date;not null" json:"endDate"`
	Progress    int       `gorm:"not null;default:0" json:"progress"`
	Status      string    `gorm:"not null;default:todo" json:"status"`
	Description *string   `json:"description"`
	Assignee    *string   `json:"assignee"`

	// IsOverdue is derived state. The column exists for schema compatibility but is
	// never trusted on read: list responses recompute it via OverdueAt.
	IsOverdue bool `gorm:"column:is_overdue;default:false" json:"isOverdue"`
}

// OverdueAt reports whether the task is overdue at the given instant: its end date
// has passed and it is not done.
func (t *Task) OverdueAt(now time.Time) bool {
	return t.EndDate.Before(now) && t.Status != StatusDone
}

// ValidStatus reports whether s is one of the supported task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}
