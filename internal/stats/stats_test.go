package stats

import (
	"math"
	"testing"
	"time"

	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
)

// Wednesday 2026-10-21; week is 10-19..10-25, month is 10-01..10-31.
var clock = dateutil.Fixed(time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC))

func fixture() []model.Task {
	return []model.Task{
		{ID: "1", Category: "1", Priority: model.PriorityHigh, Status: model.StatusTodo, Deadline: "2026-10-18"},
		{ID: "2", Category: "1", Priority: model.PriorityLow, Status: model.StatusDone, Deadline: "2026-10-10"},
		{ID: "3", Category: "个人计划", Priority: model.PriorityMedium, Status: model.StatusDoing, Deadline: "2026-10-24"},
		{ID: "4", Category: "gym", Priority: model.PriorityHigh, Status: model.StatusTodo, Deadline: "2026-11-03"},
		{ID: "5", Category: "", Priority: model.PriorityLow, Status: model.StatusDone, Deadline: ""},
	}
}

func TestCompute(t *testing.T) {
	s := Compute(fixture(), clock)
	if s.Total != 5 {
		t.Fatalf("total = %d", s.Total)
	}
	if s.ByStatus[model.StatusTodo] != 2 || s.ByStatus[model.StatusDoing] != 1 || s.ByStatus[model.StatusDone] != 2 {
		t.Fatalf("unexpected status counts: %v", s.ByStatus)
	}
	if s.ByPriority[model.PriorityHigh] != 2 || s.ByPriority[model.PriorityLow] != 2 {
		t.Fatalf("unexpected priority counts: %v", s.ByPriority)
	}
	if s.Overdue != 1 {
		t.Fatalf("only the undone past task is overdue, got %d", s.Overdue)
	}
	if s.DueThisWeek != 1 {
		t.Fatalf("due this week = %d, want 1", s.DueThisWeek)
	}
	if s.DueThisMonth != 3 {
		t.Fatalf("due this month = %d, want 3", s.DueThisMonth)
	}
	if math.Abs(s.CompletionRate-0.4) > 1e-9 {
		t.Fatalf("completion rate = %v", s.CompletionRate)
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, clock)
	if s.Total != 0 || s.CompletionRate != 0 || s.Overdue != 0 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
}

func TestCategoriesUsesNames(t *testing.T) {
	s := Compute(fixture(), clock)
	got := s.Categories(model.DefaultCategories())
	if len(got) != 4 {
		t.Fatalf("expected 4 category rows, got %+v", got)
	}
	if got[0].Name != "ASP.NET程序设计" || got[0].Count != 2 {
		t.Fatalf("busiest category first, got %+v", got[0])
	}
	names := map[string]bool{}
	for _, c := range got {
		names[c.Name] = true
	}
	for _, want := range []string{"个人计划", "gym", "-"} {
		if !names[want] {
			t.Fatalf("missing category %q in %+v", want, got)
		}
	}
}

func TestFilter(t *testing.T) {
	tasks := fixture()
	cases := map[string][]string{
		"all":     {"1", "2", "3", "4", "5"},
		"":        {"1", "2", "3", "4", "5"},
		"week":    {"3"},
		"month":   {"1", "2", "3"},
		"overdue": {"1"},
		"todo":    {"1", "4"},
		"doing":   {"3"},
		"done":    {"2", "5"},
	}
	for subject, want := range cases {
		got := Filter(tasks, subject, clock)
		if len(got) != len(want) {
			t.Fatalf("filter %q = %d tasks, want %v", subject, len(got), want)
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("filter %q = %+v, want ids %v", subject, got, want)
			}
		}
	}
}
