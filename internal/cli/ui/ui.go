// Package ui renders the live solve monitor behind the --monitor flag:
// a Bubble Tea program showing attempt progress, phase timings, host
// load, and the solver log stream.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	psutil "github.com/shirou/gopsutil/v3/cpu"
	psmem "github.com/shirou/gopsutil/v3/mem"

	"cuckatoo/pkg/cuckatoo/core"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	foundStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	noneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// AttemptStartMsg announces a new solve attempt.
type AttemptStartMsg struct {
	Attempt int
	Nonce   uint64
}

// AttemptDoneMsg carries a finished attempt's result.
type AttemptDoneMsg struct {
	Nonce  uint64
	Result *core.Result
}

// AppendLogMsg appends one line to the log pane.
type AppendLogMsg struct {
	Line string
}

// RunDoneMsg signals that all attempts have completed.
type RunDoneMsg struct{}

type statsTickMsg struct {
	cpuPercent float64
	memPercent float64
}

// Model is the Bubble Tea model for the solve monitor.
type Model struct {
	EdgeBits uint32
	Rounds   uint32

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool

	attempt    int
	nonce      uint64
	solutions  int
	lastResult *core.Result
	done       bool

	cpuPercent float64
	memPercent float64

	logLines []string
}

// NewModel creates the monitor model for a run at the given graph size.
func NewModel(edgeBits, rounds uint32) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		EdgeBits: edgeBits,
		Rounds:   rounds,
		spinner:  sp,
	}
}

// Init starts the spinner and the host stats ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, sampleStats())
}

func sampleStats() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		var msg statsTickMsg
		if cpu, err := psutil.Percent(0, false); err == nil && len(cpu) > 0 {
			msg.cpuPercent = cpu[0]
		}
		if vm, err := psmem.VirtualMemory(); err == nil {
			msg.memPercent = vm.UsedPercent
		}
		return msg
	})
}

// Update handles UI and solver events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := 7
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight
		}
		m.viewport.SetContent(strings.Join(m.logLines, "\n"))

	case AttemptStartMsg:
		m.attempt = msg.Attempt
		m.nonce = msg.Nonce

	case AttemptDoneMsg:
		m.lastResult = msg.Result
		if msg.Result.Found {
			m.solutions++
		}

	case AppendLogMsg:
		m.logLines = append(m.logLines, msg.Line)
		if m.ready {
			m.viewport.SetContent(strings.Join(m.logLines, "\n"))
			m.viewport.GotoBottom()
		}

	case RunDoneMsg:
		m.done = true

	case statsTickMsg:
		m.cpuPercent = msg.cpuPercent
		m.memPercent = msg.memPercent
		return m, sampleStats()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the monitor.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Cuckatoo Solver"))
	b.WriteString("\n")

	status := fmt.Sprintf("edge bits %d · %d rounds · cpu %.0f%% · mem %.0f%%",
		m.EdgeBits, m.Rounds, m.cpuPercent, m.memPercent)
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.done {
		b.WriteString(fmt.Sprintf("done · %d solution(s) · press q to quit", m.solutions))
	} else {
		b.WriteString(fmt.Sprintf("%s attempt %d · nonce %d", m.spinner.View(), m.attempt, m.nonce))
	}
	b.WriteString("\n")

	if r := m.lastResult; r != nil {
		line := fmt.Sprintf("survivors %d · trim %.3fs · search %.3fs",
			r.SurvivingEdges, r.Timings.Trimming, r.Timings.Searching)
		if r.Found {
			b.WriteString(foundStyle.Render("cycle found · " + line))
		} else {
			b.WriteString(noneStyle.Render("no cycle · " + line))
		}
		b.WriteString("\n")
	}

	if m.ready {
		b.WriteString(borderStyle.Render(m.viewport.View()))
	}
	return b.String()
}
