package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(typed)
		next.syncBubbleData()
		return next, cmd
	case SwitchScreenMsg:
		if isKnownScreen(typed.Screen) && typed.Screen != ScreenDetail {
			m.Screen = typed.Screen
		}
		m.syncBubbleData()
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("app error", "err", typed.Err)
		}
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	case tea.WindowSizeMsg:
		m.taskList.SetSize(max(min(typed.Width/2-4, 56), 20), max(typed.Height-10, 6))
		m.statsTable.SetHeight(max(typed.Height-10, 6))
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}
	// The form owns every key so text fields can receive digits and q.
	if m.Screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}

	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case m.Keys.Home:
		m.Screen = ScreenHome
		return m, nil
	case m.Keys.Statistics:
		m.Screen = ScreenStatistics
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Screen {
	case ScreenHome:
		return m.handleHomeKey(msg)
	case ScreenStatistics:
		var cmd tea.Cmd
		m.statsTable, cmd = m.statsTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncBubbleData() {
	m.syncTaskList()
	m.syncStatsTable()
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.Screen {
	case ScreenHome:
		leftPane = m.renderHomeView()
		rightPane = m.renderTaskMeta()
	case ScreenDetail:
		leftPane = m.renderDetailView()
		rightPane = views.RenderPreview(m.preview.View())
	case ScreenStatistics:
		leftPane = m.renderStatisticsView()
	}
	rightPane = joinNonEmpty(rightPane, views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()), m.renderHelpIfVisible())

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskboard | screen: %s | selected: %s", m.Screen, m.SelectedTaskID),
		Tabs:       []string{string(ScreenHome), string(ScreenDetail), string(ScreenStatistics)},
		ActiveTab:  string(m.Screen),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     fmt.Sprintf("keys: %s home | %s stats | / cmd | %s help | %s quit", m.Keys.Home, m.Keys.Statistics, m.Keys.Help, m.Keys.Quit),
	})
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func isKnownScreen(s Screen) bool {
	switch s {
	case ScreenHome, ScreenDetail, ScreenStatistics:
		return true
	default:
		return false
	}
}
