package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskboard/internal/views"
)

// bindingSet adapts grouped bindings to help.KeyMap.
type bindingSet [][]key.Binding

func (b bindingSet) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, group := range b {
		out = append(out, group...)
	}
	return out
}

func (b bindingSet) FullHelp() [][]key.Binding { return b }

func bind(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	set := bindingSet{m.globalBindings(), m.screenBindings()}
	lines := make([]string, 0, len(set[1]))
	for _, b := range set[1] {
		lines = append(lines, fmt.Sprintf("- %s: %s", b.Help().Key, b.Help().Desc))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Screen:   string(m.Screen),
		Bindings: lines,
		HelpView: m.helpModel.View(set),
	})
}

func (m Model) globalBindings() []key.Binding {
	return []key.Binding{
		bind(m.Keys.Home, "task list"),
		bind(m.Keys.Statistics, "statistics"),
		bind("/", "command palette"),
		bind(m.Keys.Help, "toggle help"),
		bind(m.Keys.Quit, "quit"),
	}
}

func (m Model) screenBindings() []key.Binding {
	switch m.Screen {
	case ScreenHome:
		return []key.Binding{
			bind("j/k", "move selection"),
			bind("n", "new task"),
			bind("enter", "edit task"),
			bind("space", "cycle status"),
			bind("x", "delete task"),
			bind("f", "cycle filter"),
		}
	case ScreenDetail:
		return []key.Binding{
			bind("tab/shift+tab", "next/previous field"),
			bind("←/→", "choose priority or status"),
			bind("ctrl+s", "save"),
			bind("esc", "back without saving"),
		}
	case ScreenStatistics:
		return []key.Binding{bind("j/k", "scroll table")}
	}
	return nil
}
