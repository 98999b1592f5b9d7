// internal/ui/model_messages.go
// Message types for the Bubble Tea Update cycle
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg is the idle tick. It changes nothing and only causes a redraw,
// so the screen keeps refreshing when no key arrives.
type frameMsg time.Time

// frameTick schedules the next frameMsg
func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
