package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID       string
	Title    string
	Priority string
	Status   string
	Category string
	Deadline string
	Overdue  bool
}

type HomePanelData struct {
	Filter   string
	ListView string
	Total    int
	Shown    int
}

type TaskMetaData struct {
	Task        *TaskRowData
	CreateTime  string
	Description string
}

type FormFieldData struct {
	Label   string
	View    string
	Error   string
	Focused bool
}

type DetailPanelData struct {
	Editing bool
	TaskID  string
	Fields  []FormFieldData
}

type StatisticsPanelData struct {
	TableView      string
	CompletionRate float64
	Total          int
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
	HelpView string
}

func RenderHomePanel(data HomePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: %d/%d | filter: %s\n", data.Shown, data.Total, data.Filter))
	b.WriteString("actions: [n]new [enter]edit [space]status [x]delete [/]cmd\n")
	if data.Shown == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

// RenderTaskMeta is the side pane of the home screen.
func RenderTaskMeta(data TaskMetaData) string {
	if data.Task == nil {
		return "task:\n(no selection)"
	}
	t := data.Task
	var b strings.Builder
	b.WriteString("task:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", t.ID))
	b.WriteString(fmt.Sprintf("priority: %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("status: %s\n", t.Status))
	b.WriteString(fmt.Sprintf("category: %s\n", t.Category))
	deadline := t.Deadline
	if t.Overdue {
		deadline = overdueStyle.Render(deadline + " (已逾期)")
	}
	b.WriteString(fmt.Sprintf("deadline: %s\n", deadline))
	if data.CreateTime != "" {
		b.WriteString(fmt.Sprintf("created: %s\n", data.CreateTime))
	}
	if data.Description != "" {
		b.WriteString("\n" + data.Description)
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskTitle(row TaskRowData) string {
	if row.Overdue {
		return overdueStyle.Render("! ") + row.Title
	}
	return row.Title
}

func RenderDetailPanel(data DetailPanelData) string {
	var b strings.Builder
	if data.Editing {
		b.WriteString(fmt.Sprintf("edit task %s\n", data.TaskID))
	} else {
		b.WriteString("new task\n")
	}
	b.WriteString("keys: [tab]next field [←/→]choose [ctrl+s]save [esc]back\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n%s\n", cursor, labelStyle.Render(f.Label), f.View))
		if f.Error != "" {
			b.WriteString(fieldErrStyle.Render("  "+f.Error) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderPreview(md string) string {
	if strings.TrimSpace(md) == "" {
		return "preview:\n(empty description)"
	}
	return "preview:\n" + md
}

func RenderStatisticsPanel(data StatisticsPanelData) string {
	var b strings.Builder
	b.WriteString("statistics:\n")
	b.WriteString(fmt.Sprintf("completion: %s %.0f%%\n", progressBar(data.CompletionRate, 20), data.CompletionRate*100))
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s:\n%s\n%s",
		strings.ToLower(data.Screen),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func progressBar(rate float64, width int) string {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	filled := int(rate * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
