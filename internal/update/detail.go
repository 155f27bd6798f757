package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/validator"
	"github.com/sandeepkv93/taskboard/internal/views"
)

// openForm switches to the detail screen. A nil task starts a new one with
// today's date, medium priority and todo status.
func (m *Model) openForm(t *model.Task) {
	m.Screen = ScreenDetail
	m.Form = FormState{
		Focus:    fieldTitle,
		Priority: model.PriorityMedium,
		Status:   model.StatusTodo,
		Errors:   map[string]string{},
	}
	title, deadline, category, desc := "", dateutil.FormatDate(m.clock.Today()), "", ""
	if t != nil {
		m.Form.TaskID = t.ID
		m.Form.CreateTime = t.CreateTime
		m.Form.Priority = t.Priority
		m.Form.Status = t.Status
		title, deadline, category, desc = t.Title, t.Deadline, t.Category, t.Description
	}
	m.titleInput.SetValue(title)
	m.deadlineInput.SetValue(deadline)
	m.categoryInput.SetValue(category)
	m.descArea.SetValue(desc)
	m.focusField()
	m.syncPreview()
}

func (m *Model) closeForm() {
	m.titleInput.Blur()
	m.deadlineInput.Blur()
	m.categoryInput.Blur()
	m.descArea.Blur()
	m.Screen = ScreenHome
}

func (m *Model) focusField() {
	m.titleInput.Blur()
	m.deadlineInput.Blur()
	m.categoryInput.Blur()
	m.descArea.Blur()
	switch m.Form.Focus {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldDeadline:
		m.deadlineInput.Focus()
	case fieldCategory:
		m.categoryInput.Focus()
	case fieldDescription:
		m.descArea.Focus()
	}
}

func (m Model) form() validator.TaskForm {
	return validator.TaskForm{
		Title:       m.titleInput.Value(),
		Deadline:    strings.TrimSpace(m.deadlineInput.Value()),
		Description: m.descArea.Value(),
		Priority:    string(m.Form.Priority),
		Status:      string(m.Form.Status),
		Category:    strings.TrimSpace(m.categoryInput.Value()),
	}
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "已取消"}
		return m, nil
	case "ctrl+s":
		m.submitForm()
		return m, nil
	case "tab":
		m.Form.Focus = (m.Form.Focus + 1) % fieldCount
		m.focusField()
		return m, nil
	case "shift+tab":
		m.Form.Focus = (m.Form.Focus + fieldCount - 1) % fieldCount
		m.focusField()
		return m, nil
	case "enter":
		if m.Form.Focus != fieldDescription {
			m.submitForm()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.Form.Focus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldDeadline:
		m.deadlineInput, cmd = m.deadlineInput.Update(msg)
	case fieldCategory:
		m.categoryInput, cmd = m.categoryInput.Update(msg)
	case fieldDescription:
		m.descArea, cmd = m.descArea.Update(msg)
		m.syncPreview()
	case fieldPriority:
		m.Form.Priority = cyclePriority(m.Form.Priority, msg.String())
	case fieldStatus:
		m.Form.Status = cycleStatus(m.Form.Status, msg.String())
	}
	return m, cmd
}

func step(key string) int {
	switch key {
	case "left", "h":
		return -1
	case "right", "l", " ":
		return 1
	default:
		return 0
	}
}

func cyclePriority(p model.Priority, key string) model.Priority {
	all := model.Priorities()
	return all[rotate(indexOf(all, p), step(key), len(all))]
}

func cycleStatus(s model.Status, key string) model.Status {
	all := model.Statuses()
	return all[rotate(indexOf(all, s), step(key), len(all))]
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}

func rotate(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// submitForm validates every field and saves only when all pass. Field
// errors stay on the form until the next submit.
func (m *Model) submitForm() {
	form := m.form()
	res := m.validator.ValidateTaskForm(form)
	m.Form.Errors = res.Errors
	if !res.IsValid {
		m.Status = StatusBar{Text: fmt.Sprintf("表单有 %d 处错误", len(res.Errors)), IsError: true}
		return
	}

	task := model.Task{
		ID:          m.Form.TaskID,
		Title:       strings.TrimSpace(form.Title),
		Category:    form.Category,
		Priority:    m.Form.Priority,
		Deadline:    form.Deadline,
		Status:      m.Form.Status,
		Description: form.Description,
		CreateTime:  m.Form.CreateTime,
	}
	if task.ID == "" {
		task.ID = m.newID()
		task.CreateTime = m.clock.Now().Format(time.RFC3339)
		if err := m.store.SaveTask(task); err != nil {
			m.fail("save task", err)
			return
		}
		m.logger.Info("task created", "id", task.ID, "title", task.Title)
		m.Status = StatusBar{Text: "已添加: " + task.Title}
	} else {
		if err := m.store.UpdateTask(task); err != nil {
			m.fail("update task", err)
			return
		}
		m.logger.Info("task updated", "id", task.ID)
		m.Status = StatusBar{Text: "已保存: " + task.Title}
	}
	m.SelectedTaskID = task.ID
	m.closeForm()
	m.reload()
	m.selectTask(task.ID)
}

func (m *Model) selectTask(id string) {
	for i, t := range m.visibleTasks() {
		if t.ID == id {
			m.Cursor = i
			m.clampCursor()
			m.syncBubbleData()
			return
		}
	}
}

func (m *Model) syncPreview() {
	m.preview.SetContent(views.RenderMarkdown(m.descArea.Value(), m.theme))
}

func (m Model) renderDetailView() string {
	fields := []views.FormFieldData{
		{Label: "任务名称", View: m.titleInput.View(), Error: m.Form.Errors[validator.FieldTitle]},
		{Label: "截止日期", View: m.deadlineInput.View(), Error: m.Form.Errors[validator.FieldDeadline]},
		{Label: "优先级", View: choice(model.Priorities(), m.Form.Priority, model.Priority.Label), Error: m.Form.Errors[validator.FieldPriority]},
		{Label: "状态", View: choice(model.Statuses(), m.Form.Status, model.Status.Label), Error: m.Form.Errors[validator.FieldStatus]},
		{Label: "分类", View: m.categoryInput.View() + "\n" + m.categoryHint()},
		{Label: "任务描述", View: m.descArea.View(), Error: m.Form.Errors[validator.FieldDescription]},
	}
	fields[m.Form.Focus].Focused = true
	return views.RenderDetailPanel(views.DetailPanelData{
		Editing: m.Form.TaskID != "",
		TaskID:  m.Form.TaskID,
		Fields:  fields,
	})
}

func (m Model) categoryHint() string {
	names := make([]string, 0, len(m.Categories))
	for _, c := range m.Categories {
		names = append(names, c.ID+"="+c.Name)
	}
	return "  " + strings.Join(names, " ")
}

func choice[T comparable](all []T, selected T, label func(T) string) string {
	parts := make([]string, 0, len(all))
	for _, v := range all {
		if v == selected {
			parts = append(parts, "["+label(v)+"]")
			continue
		}
		parts = append(parts, " "+label(v)+" ")
	}
	return "  " + strings.Join(parts, " ")
}
