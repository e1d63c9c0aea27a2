// Package dashui provides the Bubble Tea dashboard interface.
package dashui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yoni-ui/solar-challenge-week0/internal/aggregate"
	"github.com/yoni-ui/solar-challenge-week0/internal/dataset"
	"github.com/yoni-ui/solar-challenge-week0/internal/model"
	"github.com/yoni-ui/solar-challenge-week0/internal/plot"
)

const (
	tabTimeSeries = iota
	tabDistribution
	tabRanking
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	loader    *dataset.Loader
	available []string
	cfg       model.DashConfig

	report aggregate.Report
	loaded bool
	errMsg string

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	rankTable  table.Model
	rankLayout tableLayout

	width  int
	height int

	filterMode    bool
	filterCursor  int
	filterChecked map[string]bool
	filterGran    model.Granularity
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a dashboard model. The loader's datasets are read once
// up front; later reloads happen only on explicit refresh.
func NewModel(loader *dataset.Loader, cfg model.DashConfig) *Model {
	m := &Model{
		loader:    loader,
		available: loader.Countries(),
		cfg:       cfg,
		tabs:      []string{"Time Series", "Distribution", "Ranking"},
	}
	m.initViewports()
	m.initRankTable()
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.activeTab == tabRanking {
			m.rankTable.Focus()
		} else {
			m.rankTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "d":
			m.setGranularity(model.Daily)
			return m, nil
		case "w":
			m.setGranularity(model.Weekly)
			return m, nil
		case "m":
			m.setGranularity(model.Monthly)
			return m, nil
		case "r":
			m.refreshData()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabRanking {
				m.rankTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabRanking {
				m.rankTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabRanking {
				var cmd tea.Cmd
				m.rankTable, cmd = m.rankTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.filterMode {
		return fitLines(m.renderFilterModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initRankTable() {
	m.rankTable = table.New(
		table.WithColumns(rankColumns()),
		table.WithHeight(1),
	)
	m.rankTable.SetStyles(rankTableStyles())
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setRankTableSize(m.width, vpHeight)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabRanking {
		m.rankTable.Focus()
	} else {
		m.rankTable.Blur()
	}
}

func (m *Model) setGranularity(g model.Granularity) {
	if m.cfg.Granularity == g {
		return
	}
	m.cfg.Granularity = g
	m.recompute()
}

// refreshData is the only path that re-reads datasets from disk. On failure
// the previous report stays displayed and the error shows in the footer.
func (m *Model) refreshData() {
	if _, err := m.loader.Refresh(); err != nil {
		m.errMsg = err.Error()
		m.updateLayout()
		return
	}
	m.recompute()
}

// recompute rebuilds every view from the cached readings. One synchronous
// recomputation per user interaction; readings are never mutated.
func (m *Model) recompute() {
	readings, err := m.loader.Readings()
	if err != nil {
		m.errMsg = err.Error()
		if !m.loaded {
			for i := range m.viewports {
				m.viewports[i].SetContent("Failed to load datasets.")
			}
		}
		m.updateLayout()
		return
	}
	m.errMsg = ""
	m.report = aggregate.BuildReport(readings, m.cfg.Countries, m.cfg.Granularity)
	m.loaded = true
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyRankTable(width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || !m.loaded {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabTimeSeries].SetContent(renderTimeSeries(m.report, width))
	m.viewports[tabDistribution].SetContent(renderDistribution(m.report, width))
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	settings := padLines(m.renderSettingsSummary(), m.width)
	return tabs + "\n" + settings
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderSettingsSummary() string {
	countries := "none"
	if len(m.cfg.Countries) > 0 {
		countries = strings.Join(m.cfg.Countries, ", ")
	}
	summary := fmt.Sprintf("Settings: countries=%s  granularity=%s  data=%s",
		countries, m.cfg.Granularity, m.cfg.DataDir)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderFooter() string {
	help := "Nav: left/right  Granularity: d/w/m  Countries: /  Refresh: r  Scroll: up/down  Quit: q"
	if m.errMsg != "" {
		return headerStyle.Render(help) + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return headerStyle.Render(help)
}

func (m *Model) renderBody() string {
	_, bodyHeight, _ := m.layoutHeights()
	if m.activeTab == tabRanking {
		if !m.loaded {
			return fitLines("Failed to load datasets.", m.width, bodyHeight)
		}
		if len(m.report.Ranking) == 0 {
			return fitLines("No datasets loaded.", m.width, bodyHeight)
		}
		view := tableMutedStyle.Render(m.rankTable.View())
		return fitLines(view, m.width, bodyHeight)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
}

func renderTimeSeries(report aggregate.Report, width int) string {
	if len(report.Selection) == 0 {
		return "No countries selected. Press / to choose countries."
	}
	if len(report.Series) == 0 {
		return "No data for the selected countries."
	}
	cards := renderSummaryCards(report, width)
	chart := renderSeriesChart(report, width)
	return strings.TrimRight(cards+"\n\n"+chart, "\n")
}

func renderSummaryCards(report aggregate.Report, width int) string {
	readings := 0
	for _, d := range report.Distributions {
		readings += len(d.Values)
	}
	top := "-"
	peak := "-"
	if len(report.Ranking) > 0 {
		top = report.Ranking[0].Country
		peak = fmt.Sprintf("%.1f", report.Ranking[0].MeanGHI)
	}
	cards := []string{
		metricCard("Countries", fmt.Sprintf("%d", len(report.Distributions))),
		metricCard("Readings", fmt.Sprintf("%d", readings)),
		metricCard("Top Country", top),
		metricCard("Top Mean GHI", peak),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderSeriesChart(report aggregate.Report, width int) string {
	countries, buckets, values := aggregate.SeriesByCountry(report.Series)
	series := make([]plot.Series, 0, len(countries))
	for _, c := range countries {
		series = append(series, plot.Series{Name: c, Values: values[c]})
	}
	var buf bytes.Buffer
	title := fmt.Sprintf("Mean GHI Over Time (%s)", report.Granularity)
	if err := plot.PlotSeriesWithColor(&buf, title, series, plot.PlotWidthFor(width), plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	if len(buckets) > 0 {
		first := time.Unix(buckets[0], 0).UTC().Format("2006-01-02")
		last := time.Unix(buckets[len(buckets)-1], 0).UTC().Format("2006-01-02")
		out += "\n" + headerStyle.Render(fmt.Sprintf("Buckets: %s .. %s (%d %s buckets)", first, last, len(buckets), report.Granularity))
	}
	return out
}

func renderDistribution(report aggregate.Report, width int) string {
	if len(report.Selection) == 0 {
		return "No countries selected. Press / to choose countries."
	}
	boxes := make([]plot.BoxStat, 0, len(report.Distributions))
	for _, d := range report.Distributions {
		summary, ok := aggregate.Quartiles(d.Values)
		if !ok {
			continue
		}
		boxes = append(boxes, plot.BoxStat{
			Name:   d.Country,
			Min:    summary.Min,
			Q1:     summary.Q1,
			Median: summary.Median,
			Q3:     summary.Q3,
			Max:    summary.Max,
		})
	}
	if len(boxes) == 0 {
		return "No data for the selected countries."
	}
	var buf bytes.Buffer
	if err := plot.RenderBoxes(&buf, "GHI Distribution by Country", boxes, width); err != nil {
		return fmt.Sprintf("Failed to render distribution: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func rankColumns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Country", Width: 16},
		{Title: "Mean GHI (W/m²)", Width: 16},
		{Title: "Readings", Width: 9},
	}
}

func (m *Model) applyRankTable(width, height int) {
	counts := make(map[string]int, len(m.report.Distributions))
	for _, d := range m.report.Distributions {
		counts[d.Country] = len(d.Values)
	}
	rows := make([]table.Row, 0, len(m.report.Ranking))
	for i, r := range m.report.Ranking {
		count := "-"
		if n, ok := counts[r.Country]; ok {
			count = fmt.Sprintf("%d", n)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			r.Country,
			fmt.Sprintf("%.2f", r.MeanGHI),
			count,
		})
	}
	m.rankTable.SetColumns(rankColumns())
	m.rankTable.SetRows(rows)
	m.rankLayout.rowCount = len(rows)
	m.setRankTableSize(width, height)
}

func (m *Model) setRankTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.rankLayout.width == width && m.rankLayout.height == viewportHeight {
		return
	}
	m.rankLayout.width = width
	m.rankLayout.height = viewportHeight
	m.rankTable.SetWidth(width)
	m.rankTable.SetHeight(viewportHeight)
}

func rankTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
