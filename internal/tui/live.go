// Package tui provides an interactive terminal view for watching a
// scenario sweep run: scenarios execute one at a time and their
// concentration curves are plotted as they complete.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cancelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type outcomeMsg struct {
	idx int
	out *sim.Outcome
}

// Model drives the sweep view: a scenario list on the left and the
// selected scenario's concentration curve on the right.
type Model struct {
	network  *kinetics.Model
	cfg      sim.RunConfig
	scens    []sim.Scenario
	outcomes []*sim.Outcome

	ctx    context.Context
	cancel context.CancelFunc

	species    []string
	speciesSel int
	selected   int
	started    time.Time
	done       bool
}

// NewModel prepares a sweep view over the given scenarios. Scenarios run
// sequentially so the plot updates as each one lands.
func NewModel(network *kinetics.Model, cfg sim.RunConfig, scens []sim.Scenario) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		network:  network,
		cfg:      cfg,
		scens:    scens,
		outcomes: make([]*sim.Outcome, len(scens)),
		ctx:      ctx,
		cancel:   cancel,
		species:  network.SpeciesIDs(),
		started:  time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.scens) == 0 {
		return tea.Quit
	}
	return m.runScenario(0)
}

func (m Model) runScenario(idx int) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{idx: idx, out: sim.RunOne(m.ctx, m.network, m.cfg, m.scens[idx])}
	}
}

// Update handles key input and completed-scenario results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.scens)-1 {
				m.selected++
			}
		case "tab", "right", "l":
			m.speciesSel = (m.speciesSel + 1) % len(m.species)
		case "shift+tab", "left", "h":
			m.speciesSel = (m.speciesSel + len(m.species) - 1) % len(m.species)
		}
	case outcomeMsg:
		m.outcomes[msg.idx] = msg.out
		if msg.out.Status == sim.StatusCompleted {
			m.selected = msg.idx
		}
		if msg.idx+1 < len(m.scens) {
			return m, m.runScenario(msg.idx + 1)
		}
		m.done = true
	}
	return m, nil
}

// View renders the scenario list alongside the selected curve.
func (m Model) View() string {
	var list strings.Builder
	list.WriteString(headerStyle.Render(strings.ToUpper(m.network.Name())) + "\n")
	for i, sc := range m.scens {
		line := fmt.Sprintf("%-18s %s", sc.ID, m.statusLabel(i))
		if i == m.selected {
			list.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			list.WriteString("  " + line + "\n")
		}
	}
	list.WriteString("\n")
	list.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(fmt.Sprintf("%.1fs", time.Since(m.started).Seconds())) + "\n")
	done := 0
	for _, out := range m.outcomes {
		if out != nil {
			done++
		}
	}
	list.WriteString(labelStyle.Render("Progress") + valueStyle.Render(fmt.Sprintf("%d/%d", done, len(m.scens))) + "\n")
	list.WriteString(helpStyle.Render("↑↓:Scenario  Tab:Species  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, list.String(), panelStyle.Render(m.plot()))
}

func (m Model) statusLabel(idx int) string {
	out := m.outcomes[idx]
	if out == nil {
		return pendingStyle.Render("...")
	}
	switch out.Status {
	case sim.StatusCompleted:
		return okStyle.Render("done")
	case sim.StatusCancelled:
		return cancelStyle.Render("cancelled")
	default:
		return failStyle.Render("failed")
	}
}

func (m Model) plot() string {
	out := m.outcomes[m.selected]
	if out == nil {
		return pendingStyle.Render("running...")
	}
	if out.Status != sim.StatusCompleted {
		return failStyle.Render(out.Reason)
	}
	id := m.species[m.speciesSel]
	series, ok := out.Series.Series(id)
	if !ok || len(series) < 2 {
		return pendingStyle.Render("no samples")
	}
	chart := asciigraph.Plot(series,
		asciigraph.Height(14),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("%s  [%s]  t=%.0f..%.0f h", id, out.Scenario.ID, out.Series.Times[0], out.Series.Times[len(out.Series.Times)-1])),
	)
	var b strings.Builder
	b.WriteString(graphStyle.Render(chart) + "\n")
	b.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", out.Stats.StepsAccepted)) + "\n")
	b.WriteString(labelStyle.Render("Rejected") + valueStyle.Render(fmt.Sprintf("%d", out.Stats.StepsRejected)) + "\n")
	b.WriteString(labelStyle.Render("Rate evals") + valueStyle.Render(fmt.Sprintf("%d", out.Stats.RateEvals)) + "\n")
	return b.String()
}

// Run starts the sweep view and blocks until the user quits or every
// scenario has finished and the user exits.
func Run(network *kinetics.Model, cfg sim.RunConfig, scens []sim.Scenario) error {
	p := tea.NewProgram(NewModel(network, cfg, scens))
	_, err := p.Run()
	return err
}
