package shell

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// timerFiredMsg reports that a scheduled callback is due.
type timerFiredMsg struct {
	id uint64
}

// tickScheduler runs layout timers through the Bubble Tea loop, so callbacks
// always execute inside Update. After only queues a tick; Drain hands the
// queued ticks to the program and Fire runs a callback when its tick lands.
type tickScheduler struct {
	seq     uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{pending: map[uint64]func(){}}
}

func (s *tickScheduler) After(d time.Duration, fire func()) func() {
	s.seq++
	id := s.seq
	s.pending[id] = fire
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return func() { delete(s.pending, id) }
}

// Fire runs the callback for id. Cancelled or already fired timers are
// ignored.
func (s *tickScheduler) Fire(id uint64) bool {
	fire, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fire()
	return true
}

// Pending reports how many timers are armed.
func (s *tickScheduler) Pending() int {
	return len(s.pending)
}

// Last returns the id of the most recently scheduled timer.
func (s *tickScheduler) Last() uint64 {
	return s.seq
}

func (s *tickScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
