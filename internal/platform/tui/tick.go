// Package tui hosts the zombie arena in a terminal: the Bubble Tea loop,
// input mapping, menus, the scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// At becomes the host time of the tick. Gen identifies the tick chain so a
// model ignores ticks left over from a previous game.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick chain id.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
