// Package stats summarizes a task collection for the statistics screen.
package stats

import (
	"sort"

	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
)

type Summary struct {
	Total          int
	ByStatus       map[model.Status]int
	ByPriority     map[model.Priority]int
	ByCategory     map[string]int
	Overdue        int
	DueThisWeek    int
	DueThisMonth   int
	CompletionRate float64
}

type CategoryCount struct {
	Category string
	Name     string
	Count    int
}

// Compute counts tasks by status, priority and category. A task is overdue
// when it is not done and its deadline day has passed.
func Compute(tasks []model.Task, clock dateutil.Clock) Summary {
	out := Summary{
		Total:      len(tasks),
		ByStatus:   make(map[model.Status]int),
		ByPriority: make(map[model.Priority]int),
		ByCategory: make(map[string]int),
	}
	week := clock.ThisWeekRange()
	month := clock.ThisMonthRange()

	for _, t := range tasks {
		out.ByStatus[t.Status]++
		out.ByPriority[t.Priority]++
		out.ByCategory[t.Category]++
		if t.Status != model.StatusDone && clock.IsOverdue(clock.Parse(t.Deadline)) {
			out.Overdue++
		}
		if week.Contains(t.Deadline) {
			out.DueThisWeek++
		}
		if month.Contains(t.Deadline) {
			out.DueThisMonth++
		}
	}
	if out.Total > 0 {
		out.CompletionRate = float64(out.ByStatus[model.StatusDone]) / float64(out.Total)
	}
	return out
}

// Categories lists per-category counts, busiest first. Category values that
// match a known id or name are labelled with the category name.
func (s Summary) Categories(known []model.Category) []CategoryCount {
	names := make(map[string]string, len(known)*2)
	for _, c := range known {
		names[c.ID] = c.Name
		names[c.Name] = c.Name
	}
	out := make([]CategoryCount, 0, len(s.ByCategory))
	for cat, n := range s.ByCategory {
		name, ok := names[cat]
		if !ok {
			name = cat
		}
		if name == "" {
			name = "-"
		}
		out = append(out, CategoryCount{Category: cat, Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Filter keeps the tasks matching subject: all, week, month, overdue, or a
// status name.
func Filter(tasks []model.Task, subject string, clock dateutil.Clock) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	week := clock.ThisWeekRange()
	month := clock.ThisMonthRange()
	for _, t := range tasks {
		keep := false
		switch subject {
		case "", "all":
			keep = true
		case "week":
			keep = week.Contains(t.Deadline)
		case "month":
			keep = month.Contains(t.Deadline)
		case "overdue":
			keep = t.Status != model.StatusDone && clock.IsOverdue(clock.Parse(t.Deadline))
		default:
			keep = string(t.Status) == subject
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}
