package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpshare/internal/server/stats"
)

func TestView_NoConnections(t *testing.T) {
	m := NewModel(stats.NewSet(), "/srv/files", "127.0.0.1:8080", time.Second)

	view := m.View()
	assert.Contains(t, view, "Serving /srv/files on 127.0.0.1:8080")
	assert.Contains(t, view, "no open connections")
	assert.Contains(t, view, "press q to quit")
}

func TestUpdate_TickRefreshesRows(t *testing.T) {
	set := stats.NewSet()
	conn := set.Register("10.0.0.5:1234")
	conn.SetLastURI("/report.pdf")
	conn.AddRequested(2 * 1024 * 1024)
	conn.AddSent(1024 * 1024)

	m := NewModel(set, ".", "127.0.0.1:8080", time.Second)
	updated, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)

	view := updated.View()
	assert.Contains(t, view, "10.0.0.5:1234")
	assert.Contains(t, view, "/report.pdf")
	assert.Contains(t, view, "(50%)")
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := NewModel(stats.NewSet(), ".", "127.0.0.1:8080", time.Second)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}
