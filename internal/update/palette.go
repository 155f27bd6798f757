package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/commands"
	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/validator"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) taskIDs() []string {
	ids := make([]string, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func (m *Model) setStatus(target string, status model.Status) (commands.Result, error) {
	id, err := commands.ResolvePrefix(m.taskIDs(), target)
	if err != nil {
		return commands.Result{}, err
	}
	if err := m.store.UpdateTaskStatus(id, status); err != nil {
		return commands.Result{}, err
	}
	m.logger.Info("task status changed", "id", id, "status", status)
	return commands.Result{Message: fmt.Sprintf("%s → %s", id, status.Label())}, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task := model.Task{
				ID:         m.newID(),
				Title:      a.Title,
				Category:   a.Category,
				Priority:   model.PriorityMedium,
				Deadline:   a.Deadline,
				Status:     model.StatusTodo,
				CreateTime: m.clock.Now().Format(time.RFC3339),
			}
			if task.Deadline == "" {
				task.Deadline = dateutil.FormatDate(m.clock.Today())
			}
			if a.Priority != "" {
				task.Priority = model.Priority(a.Priority)
			}
			check := m.validator.ValidateTaskForm(validator.FormFromTask(task))
			if !check.IsValid {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: joinErrors(check.Errors)}
			}
			if err := m.store.SaveTask(task); err != nil {
				return commands.Result{}, err
			}
			m.logger.Info("task created", "id", task.ID, "title", task.Title)
			return commands.Result{Message: "已添加: " + task.Title}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			return m.setStatus(t.Target, model.StatusDone)
		},
		Start: func(t commands.TargetArgs) (commands.Result, error) {
			return m.setStatus(t.Target, model.StatusDoing)
		},
		Remove: func(t commands.TargetArgs) (commands.Result, error) {
			id, err := commands.ResolvePrefix(m.taskIDs(), t.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.store.DeleteTask(id); err != nil {
				return commands.Result{}, err
			}
			m.logger.Info("task deleted", "id", id)
			return commands.Result{Message: "已删除: " + id}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			m.Filter = s.Subject
			m.Cursor = 0
			m.Screen = ScreenHome
			return commands.Result{Message: fmt.Sprintf("show %s", s.Subject)}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			// Persist the shown list first so a first-run save does not
			// drop the seeded defaults.
			for _, shown := range m.Categories {
				if err := m.store.UpsertCategory(shown); err != nil {
					return commands.Result{}, err
				}
			}
			cat := model.Category{ID: m.newID(), Name: c.Name}
			if err := m.store.SaveCategory(cat); err != nil {
				return commands.Result{}, err
			}
			m.logger.Info("category created", "id", cat.ID, "name", cat.Name)
			return commands.Result{Message: "已添加分类: " + cat.Name}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("command failed", "input", raw, "err", err)
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.reload()
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

// joinErrors lists field messages in form order.
func joinErrors(errs map[string]string) string {
	order := []string{validator.FieldTitle, validator.FieldDeadline, validator.FieldDescription, validator.FieldPriority, validator.FieldStatus}
	out := make([]string, 0, len(errs))
	for _, f := range order {
		if msg, ok := errs[f]; ok {
			out = append(out, msg)
		}
	}
	return strings.Join(out, "; ")
}
