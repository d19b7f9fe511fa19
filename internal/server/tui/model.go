// Package tui renders the live connection monitor in the terminal: one row
// per open connection with the last requested URI, transfer progress and a
// smoothed speed estimate.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"httpshare/internal/server/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	addrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tickMsg time.Time

// Model is the bubbletea model for the monitor. It polls the stats set on a
// fixed interval and redraws.
type Model struct {
	set      *stats.Set
	dir      string
	addr     string
	interval time.Duration

	rows []stats.Snapshot
}

func NewModel(set *stats.Set, dir, addr string, interval time.Duration) Model {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return Model{set: set, dir: dir, addr: addr, interval: interval}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.rows = m.set.Snapshot()
		return m, m.tick()
	}
	return m, nil
}

// mib converts a byte count to mebibytes.
func mib(n int64) float64 { return float64(n) / (1024 * 1024) }

func renderRow(row stats.Snapshot, _ int) string {
	moved := row.Sent
	if row.Received > moved {
		moved = row.Received
	}
	return fmt.Sprintf("%s %s %.2f/%.2f MiB (%d%%) %.2f MiB/s",
		addrStyle.Render(row.Addr),
		row.LastURI,
		mib(moved), mib(row.Requested),
		row.Percent,
		row.Speed/(1024*1024))
}

func (m Model) View() string {
	s := headerStyle.Render(fmt.Sprintf("Serving %s on %s", m.dir, m.addr)) + "\n"

	if len(m.rows) == 0 {
		return s + dimStyle.Render("no open connections") + "\n" +
			dimStyle.Render("press q to quit") + "\n"
	}

	for _, line := range lo.Map(m.rows, renderRow) {
		s += line + "\n"
	}
	return s + dimStyle.Render("press q to quit") + "\n"
}
