package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"racc/internal/driver"
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []stageItem
	index   map[driver.Stage]int
	width   int
	done    bool
}

type stageItem struct {
	stage  driver.Stage
	status driver.Status
	detail string
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders one line per stage.
func NewProgressModel(title string, stages []driver.Stage, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]stageItem, 0, len(stages))
	index := make(map[driver.Stage]int, len(stages))
	for i, st := range stages {
		items = append(items, stageItem{stage: st, status: driver.StatusQueued})
		index[st] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	detailWidth := m.width - 12 - 12 - 6
	if detailWidth < 20 {
		detailWidth = 20
	}
	for _, item := range m.items {
		label := statusLabel(item.stage, item.status)
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", label))
		line := fmt.Sprintf("  %s %-10s %s", status, item.stage, truncate(item.detail, detailWidth))
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.Stage]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.status = ev.Status
	switch {
	case ev.Err != nil:
		item.detail = ev.Err.Error()
	case ev.Detail != "":
		item.detail = ev.Detail
	}
	return m.prog.SetPercent(m.fraction())
}

// fraction is the share of stages that reached a final status.
func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	finished := 0.0
	for _, item := range m.items {
		switch item.status {
		case driver.StatusDone, driver.StatusError, driver.StatusSkipped:
			finished++
		case driver.StatusWorking:
			finished += 0.5
		}
	}
	return finished / float64(len(m.items))
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	if status == driver.StatusWorking {
		return stageLabel(stage)
	}
	return string(status)
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "reading"
	case driver.StageValidate:
		return "validating"
	case driver.StageTables:
		return "packing"
	case driver.StageSerialize, driver.StageBinary:
		return "writing"
	case driver.StageReport:
		return "reporting"
	default:
		return "working"
	}
}

func styleStatus(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
