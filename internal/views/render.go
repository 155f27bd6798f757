package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Tabs       []string
	ActiveTab  string
	LeftPane   string
	RightPane  string
	StatusLine string
	IsError    bool
	Footer     string
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	fieldErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	labelStyle     = lipgloss.NewStyle().Bold(true)
)

func RenderApp(data AppData) string {
	panes := []string{panelStyle.Width(58).Render(data.LeftPane)}
	if strings.TrimSpace(data.RightPane) != "" {
		panes = append(panes, panelStyle.Width(58).Render(data.RightPane))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	lines := []string{headerStyle.Render(data.Header)}
	if len(data.Tabs) > 0 {
		lines = append(lines, renderTabs(data.Tabs, data.ActiveTab))
	}
	lines = append(lines, row)
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func renderTabs(tabs []string, active string) string {
	rendered := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab == active {
			rendered = append(rendered, activeTabStyle.Render(tab))
			continue
		}
		rendered = append(rendered, tabStyle.Render(tab))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderMarkdown renders md with the named glamour style. On any render
// failure the source is returned unchanged.
func RenderMarkdown(md, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
