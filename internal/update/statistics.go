package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/stats"
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) summary() stats.Summary {
	return stats.Compute(m.Tasks, m.clock)
}

func statisticsRows(s stats.Summary, known []model.Category) []table.Row {
	rows := []table.Row{
		{"总任务数", fmt.Sprint(s.Total)},
	}
	for _, st := range model.Statuses() {
		rows = append(rows, table.Row{st.Label(), fmt.Sprint(s.ByStatus[st])})
	}
	for _, p := range model.Priorities() {
		rows = append(rows, table.Row{"优先级 " + p.Label(), fmt.Sprint(s.ByPriority[p])})
	}
	rows = append(rows,
		table.Row{"已逾期", fmt.Sprint(s.Overdue)},
		table.Row{"本周到期", fmt.Sprint(s.DueThisWeek)},
		table.Row{"本月到期", fmt.Sprint(s.DueThisMonth)},
		table.Row{"完成率", fmt.Sprintf("%.0f%%", s.CompletionRate*100)},
	)
	for _, c := range s.Categories(known) {
		rows = append(rows, table.Row{"分类 " + c.Name, fmt.Sprint(c.Count)})
	}
	return rows
}

func (m *Model) syncStatsTable() {
	m.statsTable.SetRows(statisticsRows(m.summary(), m.Categories))
}

func (m Model) renderStatisticsView() string {
	s := m.summary()
	return views.RenderStatisticsPanel(views.StatisticsPanelData{
		TableView:      m.statsTable.View(),
		CompletionRate: s.CompletionRate,
		Total:          s.Total,
	})
}
