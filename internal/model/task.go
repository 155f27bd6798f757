package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
)

type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "待办"
	case StatusDoing:
		return "进行中"
	case StatusDone:
		return "已完成"
	default:
		return string(s)
	}
}

// Next cycles todo -> doing -> done -> todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusDoing
	case StatusDoing:
		return StatusDone
	default:
		return StatusTodo
	}
}

func Statuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "高"
	case PriorityMedium:
		return "中"
	case PriorityLow:
		return "低"
	default:
		return string(p)
	}
}

func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Task is the persisted task record. Field names match the stored JSON layout.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline"`
	Status      Status   `json:"status"`
	Description string   `json:"description"`
	CreateTime  string   `json:"createTime"`
}

// EntityID lets storage address tasks generically.
func (t Task) EntityID() string { return t.ID }

// CheckEnums reports the first enum field that holds an unknown value.
// Form-level validation with user messages lives in the validator package.
func (t Task) CheckEnums() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// TaskPatch carries a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Description *string   `json:"description,omitempty"`
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Category == nil && p.Priority == nil &&
		p.Deadline == nil && p.Status == nil && p.Description == nil
}
