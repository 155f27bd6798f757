package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
)

func fixedValidator() *Validator {
	return New(dateutil.Fixed(time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)))
}

func TestValidateTaskTitle(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		msg   string
	}{
		{"", false, MsgTitleEmpty},
		{"   \t", false, MsgTitleEmpty},
		{strings.Repeat("a", 101), false, MsgTitleTooLong},
		{strings.Repeat("a", 100), true, ""},
		{strings.Repeat("任", 100), true, ""},
		{strings.Repeat("任", 101), false, MsgTitleTooLong},
		{"Write report", true, ""},
	}
	for _, tc := range cases {
		got := ValidateTaskTitle(tc.in)
		if got.IsValid != tc.valid || got.Message != tc.msg {
			t.Fatalf("ValidateTaskTitle(%q) = %+v, want valid=%v msg=%q", tc.in, got, tc.valid, tc.msg)
		}
	}
}

func TestValidateDeadline(t *testing.T) {
	v := fixedValidator()
	cases := []struct {
		in    string
		valid bool
		msg   string
	}{
		{"", false, MsgDeadlineEmpty},
		{"2026-10-18", false, MsgDeadlineTooEarly},
		{"2026-10-19", true, ""},
		{"2026-10-20", true, ""},
		{"someday", false, MsgDeadlineInvalid},
	}
	for _, tc := range cases {
		got := v.ValidateDeadline(tc.in)
		if got.IsValid != tc.valid || got.Message != tc.msg {
			t.Fatalf("ValidateDeadline(%q) = %+v, want valid=%v msg=%q", tc.in, got, tc.valid, tc.msg)
		}
	}
}

func TestValidateDeadlineSystemClock(t *testing.T) {
	today := dateutil.FormatDate(time.Now())
	yesterday := dateutil.FormatDate(time.Now().AddDate(0, 0, -1))
	if !ValidateDeadline(today).IsValid {
		t.Fatalf("today %s should be valid", today)
	}
	if ValidateDeadline(yesterday).IsValid {
		t.Fatalf("yesterday %s should be invalid", yesterday)
	}
}

func TestValidateDescription(t *testing.T) {
	if !ValidateTaskDescription("").IsValid {
		t.Fatal("empty description is allowed")
	}
	if !ValidateTaskDescription(strings.Repeat("x", 500)).IsValid {
		t.Fatal("500 chars is allowed")
	}
	got := ValidateTaskDescription(strings.Repeat("x", 501))
	if got.IsValid || got.Message != MsgDescriptionTooLong {
		t.Fatalf("unexpected result for 501 chars: %+v", got)
	}
}

func TestValidateEnums(t *testing.T) {
	for _, p := range []string{"high", "medium", "low"} {
		if !ValidateTaskPriority(p).IsValid {
			t.Fatalf("priority %q should be valid", p)
		}
	}
	for _, p := range []string{"", "High", "urgent"} {
		got := ValidateTaskPriority(p)
		if got.IsValid || got.Message != MsgPriorityInvalid {
			t.Fatalf("priority %q: %+v", p, got)
		}
	}
	for _, s := range []string{"todo", "doing", "done"} {
		if !ValidateTaskStatus(s).IsValid {
			t.Fatalf("status %q should be valid", s)
		}
	}
	for _, s := range []string{"", "Done", "blocked"} {
		got := ValidateTaskStatus(s)
		if got.IsValid || got.Message != MsgStatusInvalid {
			t.Fatalf("status %q: %+v", s, got)
		}
	}
}

func TestValidateTaskFormAllValid(t *testing.T) {
	v := fixedValidator()
	got := v.ValidateTaskForm(TaskForm{
		Title:    "Write report",
		Deadline: "2026-10-25",
		Priority: "high",
		Status:   "todo",
		Category: "1",
	})
	if !got.IsValid || len(got.Errors) != 0 {
		t.Fatalf("expected valid form, got %+v", got)
	}
}

func TestValidateTaskFormCollectsEveryFailure(t *testing.T) {
	v := fixedValidator()
	got := v.ValidateTaskForm(TaskForm{
		Title:    "",
		Deadline: "2026-10-25",
		Priority: "urgent",
		Status:   "todo",
	})
	if got.IsValid {
		t.Fatal("expected invalid form")
	}
	if len(got.Errors) != 2 {
		t.Fatalf("expected exactly title and priority errors, got %+v", got.Errors)
	}
	if got.Errors[FieldTitle] != MsgTitleEmpty || got.Errors[FieldPriority] != MsgPriorityInvalid {
		t.Fatalf("unexpected errors: %+v", got.Errors)
	}

	all := v.ValidateTaskForm(TaskForm{Description: strings.Repeat("x", 501)})
	for _, field := range []string{FieldTitle, FieldDeadline, FieldDescription, FieldPriority, FieldStatus} {
		if _, ok := all.Errors[field]; !ok {
			t.Fatalf("missing error for %s: %+v", field, all.Errors)
		}
	}
}

func TestFormFromTask(t *testing.T) {
	form := FormFromTask(model.Task{
		Title:    "t",
		Deadline: "2026-10-20",
		Priority: model.PriorityLow,
		Status:   model.StatusDoing,
		Category: "2",
	})
	if form.Priority != "low" || form.Status != "doing" || form.Category != "2" {
		t.Fatalf("unexpected form: %+v", form)
	}
}
