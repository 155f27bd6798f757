// Package validator checks task form fields and reports user-facing messages.
package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

const (
	MsgTitleEmpty         = "任务名称不能为空"
	MsgTitleTooLong       = "任务名称不能超过100个字符"
	MsgDeadlineEmpty      = "截止日期不能为空"
	MsgDeadlineInvalid    = "截止日期格式无效"
	MsgDeadlineTooEarly   = "截止日期不能早于今天"
	MsgDescriptionTooLong = "任务描述不能超过500个字符"
	MsgPriorityInvalid    = "优先级必须是高、中或低"
	MsgStatusInvalid      = "状态必须是待办、进行中或已完成"
)

const (
	FieldTitle       = "title"
	FieldDeadline    = "deadline"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldStatus      = "status"
)

type Result struct {
	IsValid bool
	Message string
}

type FormResult struct {
	IsValid bool
	Errors  map[string]string
}

// TaskForm is the editable subset of a task as submitted by a form.
type TaskForm struct {
	Title       string
	Deadline    string
	Description string
	Priority    string
	Status      string
	Category    string
}

func FormFromTask(t model.Task) TaskForm {
	return TaskForm{
		Title:       t.Title,
		Deadline:    t.Deadline,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Category:    t.Category,
	}
}

type Validator struct {
	clock dateutil.Clock
}

func New(clock dateutil.Clock) *Validator {
	return &Validator{clock: clock}
}

var std = New(dateutil.System())

func ok() Result { return Result{IsValid: true} }

func fail(msg string) Result { return Result{IsValid: false, Message: msg} }

func ValidateTaskTitle(title string) Result {
	if strings.TrimSpace(title) == "" {
		return fail(MsgTitleEmpty)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fail(MsgTitleTooLong)
	}
	return ok()
}

func ValidateTaskDescription(description string) Result {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fail(MsgDescriptionTooLong)
	}
	return ok()
}

func ValidateTaskPriority(priority string) Result {
	if !model.Priority(priority).IsValid() {
		return fail(MsgPriorityInvalid)
	}
	return ok()
}

func ValidateTaskStatus(status string) Result {
	if !model.Status(status).IsValid() {
		return fail(MsgStatusInvalid)
	}
	return ok()
}

func ValidateDeadline(deadline string) Result {
	return std.ValidateDeadline(deadline)
}

func ValidateTaskForm(form TaskForm) FormResult {
	return std.ValidateTaskForm(form)
}

// ValidateDeadline accepts today or any later day.
func (v *Validator) ValidateDeadline(deadline string) Result {
	if strings.TrimSpace(deadline) == "" {
		return fail(MsgDeadlineEmpty)
	}
	d := v.clock.Parse(deadline)
	if d.IsZero() {
		return fail(MsgDeadlineInvalid)
	}
	if v.clock.IsOverdue(d) {
		return fail(MsgDeadlineTooEarly)
	}
	return ok()
}

// ValidateTaskForm runs every field check, without stopping at the first
// failure, and keys each failing message by field name.
func (v *Validator) ValidateTaskForm(form TaskForm) FormResult {
	checks := []struct {
		field  string
		result Result
	}{
		{FieldTitle, ValidateTaskTitle(form.Title)},
		{FieldDeadline, v.ValidateDeadline(form.Deadline)},
		{FieldDescription, ValidateTaskDescription(form.Description)},
		{FieldPriority, ValidateTaskPriority(form.Priority)},
		{FieldStatus, ValidateTaskStatus(form.Status)},
	}

	out := FormResult{IsValid: true, Errors: make(map[string]string)}
	for _, c := range checks {
		if !c.result.IsValid {
			out.Errors[c.field] = c.result.Message
			out.IsValid = false
		}
	}
	return out
}
