package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/stats"
	"github.com/sandeepkv93/taskboard/internal/views"
)

// reload re-reads both collections. A failed read keeps the previous data
// and reports the error on the status bar.
func (m *Model) reload() {
	tasks, err := m.store.Tasks()
	if err != nil {
		m.fail("load tasks", err)
		return
	}
	cats, err := m.store.Categories()
	if err != nil {
		m.fail("load categories", err)
		return
	}
	m.Tasks = tasks
	m.Categories = cats
	m.clampCursor()
	m.syncBubbleData()
}

func (m *Model) fail(action string, err error) {
	m.LastError = err
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %v", action, err), IsError: true}
	m.logger.Error(action+" failed", "err", err)
}

func (m Model) visibleTasks() []model.Task {
	return stats.Filter(m.Tasks, m.Filter, m.clock)
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if t, ok := m.currentTask(); ok {
		m.SelectedTaskID = t.ID
	} else {
		m.SelectedTaskID = ""
	}
}

func (m Model) currentTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m Model) categoryName(value string) string {
	for _, c := range m.Categories {
		if c.ID == value || c.Name == value {
			return c.Name
		}
	}
	if value == "" {
		return "-"
	}
	return value
}

func (m Model) taskRow(t model.Task) views.TaskRowData {
	deadline := "-"
	if d := m.clock.Parse(t.Deadline); !d.IsZero() {
		deadline = m.clock.RelativeDateLabel(d)
	}
	return views.TaskRowData{
		ID:       t.ID,
		Title:    t.Title,
		Priority: t.Priority.Label(),
		Status:   t.Status.Label(),
		Category: m.categoryName(t.Category),
		Deadline: deadline,
		Overdue:  t.Status != model.StatusDone && m.clock.IsOverdue(m.clock.Parse(t.Deadline)),
	}
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.clampCursor()
	case "down", "j":
		m.Cursor++
		m.clampCursor()
	case "n":
		m.openForm(nil)
	case "enter":
		if t, ok := m.currentTask(); ok {
			m.openForm(&t)
		}
	case " ":
		t, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		next := t.Status.Next()
		if err := m.store.UpdateTaskStatus(t.ID, next); err != nil {
			m.fail("update status", err)
			return m, nil
		}
		m.logger.Info("task status changed", "id", t.ID, "status", next)
		m.Status = StatusBar{Text: fmt.Sprintf("%s → %s", t.Title, next.Label())}
		m.reload()
	case "x":
		t, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		if err := m.store.DeleteTask(t.ID); err != nil {
			m.fail("delete task", err)
			return m, nil
		}
		m.logger.Info("task deleted", "id", t.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("已删除: %s", t.Title)}
		m.reload()
	case "f":
		m.Filter = nextFilter(m.Filter)
		m.Cursor = 0
		m.clampCursor()
		m.syncBubbleData()
	}
	return m, nil
}

var homeFilters = []string{"all", "todo", "doing", "done", "overdue", "week", "month"}

func nextFilter(current string) string {
	for i, f := range homeFilters {
		if f == current {
			return homeFilters[(i+1)%len(homeFilters)]
		}
	}
	return homeFilters[0]
}

func (m *Model) syncTaskList() {
	visible := m.visibleTasks()
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		row := m.taskRow(t)
		desc := strings.Join([]string{row.Priority, row.Status, row.Deadline, row.Category}, " · ")
		items = append(items, listItem{title: views.RenderTaskTitle(row), description: desc})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(m.Cursor)
	}
}

func (m Model) renderHomeView() string {
	return views.RenderHomePanel(views.HomePanelData{
		Filter:   m.Filter,
		ListView: m.taskList.View(),
		Total:    len(m.Tasks),
		Shown:    len(m.visibleTasks()),
	})
}

func (m Model) renderTaskMeta() string {
	t, ok := m.currentTask()
	if !ok {
		return views.RenderTaskMeta(views.TaskMetaData{})
	}
	row := m.taskRow(t)
	row.Deadline = t.Deadline
	if d := m.clock.Parse(t.Deadline); !d.IsZero() {
		row.Deadline = dateutil.FormatDateFriendly(d)
	}
	return views.RenderTaskMeta(views.TaskMetaData{
		Task:        &row,
		CreateTime:  t.CreateTime,
		Description: views.RenderMarkdown(t.Description, m.theme),
	})
}
