package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"susc/internal/buildpipeline"
)

// Per stage: what a working root shows and how much of the root is
// considered done while it is in that stage.
var stageInfo = map[buildpipeline.Stage]struct {
	verb   string
	weight float64
}{
	buildpipeline.StageLoad:  {"loading", 0.1},
	buildpipeline.StageParse: {"parsing", 0.3},
	buildpipeline.StageLink:  {"linking", 0.8},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusColors = map[string]lipgloss.Color{
		string(buildpipeline.StatusDone):  "2",
		string(buildpipeline.StatusError): "1",
	}
)

const statusWidth = 10

type rootItem struct {
	path   string
	status string
	stage  buildpipeline.Stage
	final  bool
}

type progressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	prog    progress.Model
	items   []rootItem
	byPath  map[string]int
	width   int
	done    bool
}

type (
	eventMsg buildpipeline.Event
	doneMsg  struct{}
)

// NewProgressModel returns a Bubble Tea model that shows one line per
// project root. It quits once events is closed.
func NewProgressModel(title string, roots []string, events <-chan buildpipeline.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		prog:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		byPath:  make(map[string]int, len(roots)),
		width:   80,
	}
	for _, root := range roots {
		m.byPath[root] = len(m.items)
		m.items = append(m.items, rootItem{path: root, status: string(buildpipeline.StatusQueued)})
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(buildpipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var pm tea.Model
		pm, cmd = m.prog.Update(msg)
		m.prog = pm.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		label := fmt.Sprintf("%*s", statusWidth, item.status)
		fmt.Fprintf(&b, "  %s %s\n", statusStyle(item.status).Render(label), truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	bar := m.prog.View()
	if m.done {
		bar = m.prog.ViewAs(1)
	}
	b.WriteString(bar)
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header() string {
	finished := 0
	for _, item := range m.items {
		if item.final {
			finished++
		}
	}
	counts := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.items))
	if m.done {
		return "done: " + counts
	}
	return m.spinner.View() + " " + counts
}

// next waits for one event; the closed channel becomes doneMsg.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

// applyEvent updates the root's line and animates the bar. Events for roots
// the model was not created with are dropped.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[i]
	item.stage = ev.Stage
	item.final = ev.Status.Final()
	switch ev.Status {
	case buildpipeline.StatusWorking:
		item.status = stageInfo[ev.Stage].verb
	default:
		item.status = string(ev.Status)
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	var sum float64
	for _, item := range m.items {
		if item.final {
			sum++
		} else {
			sum += stageInfo[item.stage].weight
		}
	}
	return sum / float64(len(m.items))
}

func statusStyle(status string) lipgloss.Style {
	c, ok := statusColors[status]
	if !ok {
		c = "7"
		if status != string(buildpipeline.StatusQueued) {
			c = "6"
		}
	}
	return lipgloss.NewStyle().Foreground(c)
}

// truncate cuts value to width display cells, ending in "..." when there
// is room for it.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
