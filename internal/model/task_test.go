package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTaskCheckEnumsSuccess(t *testing.T) {
	task := Task{
		ID:       "task-1",
		Title:    "Write report",
		Priority: PriorityHigh,
		Status:   StatusTodo,
		Deadline: "2026-10-20",
	}
	if err := task.CheckEnums(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskCheckEnumsInvalid(t *testing.T) {
	task := Task{ID: "task-1", Priority: PriorityLow, Status: Status("blocked")}
	err := task.CheckEnums()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusDone
	task.Priority = Priority("urgent")
	err = task.CheckEnums()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.ID = "  "
	if err := task.CheckEnums(); err == nil {
		t.Fatal("expected error for blank id")
	}
}

func TestStatusNextCycles(t *testing.T) {
	s := StatusTodo
	want := []Status{StatusDoing, StatusDone, StatusTodo}
	for _, w := range want {
		s = s.Next()
		if s != w {
			t.Fatalf("next = %s, want %s", s, w)
		}
	}
	if Status("bogus").Next() != StatusTodo {
		t.Fatal("unknown status should restart at todo")
	}
}

func TestLabels(t *testing.T) {
	if PriorityHigh.Label() != "高" || PriorityLow.Label() != "低" {
		t.Fatalf("unexpected priority labels")
	}
	if StatusDoing.Label() != "进行中" {
		t.Fatalf("unexpected status label: %s", StatusDoing.Label())
	}
}

func TestTaskJSONFieldNames(t *testing.T) {
	task := Task{
		ID:          "t1",
		Title:       "Title",
		Category:    "1",
		Priority:    PriorityMedium,
		Deadline:    "2026-10-20",
		Status:      StatusDoing,
		Description: "desc",
		CreateTime:  "2026-10-19T08:00:00Z",
	}
	raw, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"id", "title", "category", "priority", "deadline", "status", "description", "createTime"} {
		if _, ok := fields[k]; !ok {
			t.Fatalf("missing json field %q in %s", k, raw)
		}
	}
	if len(fields) != 8 {
		t.Fatalf("unexpected field count %d: %s", len(fields), raw)
	}
}

func TestTaskPatchOmitsUnsetFields(t *testing.T) {
	done := StatusDone
	raw, err := json.Marshal(TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"status":"done"}` {
		t.Fatalf("unexpected patch encoding: %s", raw)
	}
	if (TaskPatch{}).IsEmpty() != true || (TaskPatch{Status: &done}).IsEmpty() {
		t.Fatal("IsEmpty mismatch")
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) != 5 {
		t.Fatalf("expected 5 default categories, got %d", len(cats))
	}
	if cats[0].ID != "1" || cats[4].Name != "个人计划" {
		t.Fatalf("unexpected defaults: %#v", cats)
	}
	for _, c := range cats {
		if err := c.Validate(); err != nil {
			t.Fatalf("default category invalid: %v", err)
		}
	}
}
