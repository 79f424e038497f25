package rotation

import (
	"time"

	"floating-note/src/reminder"
)

// State is the reminder sequence plus the index currently on screen.
// It is owned by the event loop goroutine.
type State struct {
	entries []reminder.Entry
	index   int
}

// New copies entries into a fresh state at index 0. An empty sequence gets a
// single placeholder entry so Current never fails.
func New(entries []reminder.Entry) *State {
	s := &State{entries: make([]reminder.Entry, len(entries))}
	copy(s.entries, entries)
	if len(s.entries) == 0 {
		s.entries = append(s.entries, reminder.Placeholder())
	}
	return s
}

func (s *State) Len() int   { return len(s.entries) }
func (s *State) Index() int { return s.index }

func (s *State) Current() reminder.Entry { return s.entries[s.index] }

// Rotates reports whether advancing can ever change the visible text.
func (s *State) Rotates() bool { return len(s.entries) > 1 }

// Advance moves to the next entry, wrapping, and returns its message.
func (s *State) Advance() string {
	s.index = (s.index + 1) % len(s.entries)
	return s.entries[s.index].Message
}

// Interval is how long the current entry stays up, never less than a second.
func (s *State) Interval() time.Duration {
	secs := s.entries[s.index].DurationSeconds
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}
