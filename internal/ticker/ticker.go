// Package ticker schedules periodic ticks on the Bubble Tea event loop.
//
// Each Timer stamps its messages with an id and a tag. Start and Stop bump
// the tag, so ticks already in flight for a previous run are rejected by
// Accept. That is what makes a restart atomic: there is never more than one
// live tick chain per timer.
package ticker

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg is delivered once per interval while the timer runs.
type TickMsg struct {
	ID   int
	Time time.Time
	tag  int
}

type Timer struct {
	id       int
	tag      int
	interval time.Duration
	running  bool
}

func New(interval time.Duration) *Timer {
	return &Timer{id: nextID(), interval: interval}
}

func (t *Timer) ID() int                 { return t.id }
func (t *Timer) Interval() time.Duration { return t.interval }
func (t *Timer) Running() bool           { return t.running }

// SetInterval changes the cadence for the next Start.
func (t *Timer) SetInterval(d time.Duration) {
	t.interval = d
}

// Start begins a fresh tick chain and invalidates any previous one.
func (t *Timer) Start() tea.Cmd {
	t.tag++
	t.running = true
	return t.tick()
}

// Stop invalidates the current chain. Calling it twice is harmless.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.tag++
	t.running = false
}

// Accept reports whether msg belongs to the live chain of this timer.
func (t *Timer) Accept(msg TickMsg) bool {
	return t.running && msg.ID == t.id && msg.tag == t.tag
}

// Next schedules the following tick of the live chain, or nothing when
// stopped.
func (t *Timer) Next() tea.Cmd {
	if !t.running {
		return nil
	}
	return t.tick()
}

func (t *Timer) tick() tea.Cmd {
	id, tag := t.id, t.tag
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{ID: id, Time: now, tag: tag}
	})
}
