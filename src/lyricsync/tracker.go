package lyricsync

import (
	"errors"
	"fmt"
)

const (
	ConnectingText = "Connecting to Spotify..."
	WaitingText    = "Waiting for Sync Server..."
	pausedFormat   = "⏸ Paused: %s"
)

// DisplayText is what the note shows for a snapshot.
func DisplayText(s Snapshot) string {
	if !s.IsPlaying {
		return PausedText(s.Track)
	}
	return s.CurrentLyric
}

func PausedText(track string) string { return fmt.Sprintf(pausedFormat, track) }

// OutcomeKind classifies one poll.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeFailed
	OutcomeIgnored
)

type Outcome struct {
	Kind     OutcomeKind
	Snapshot Snapshot
	Err      error
}

// Classify maps a Fetch result to an outcome. Replies that arrived but carry
// no usable status are ignored; every other error is a failure.
func Classify(snap Snapshot, err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Kind: OutcomeOK, Snapshot: snap}
	case errors.Is(err, ErrUnexpectedStatus), errors.Is(err, ErrEmptyPayload):
		return Outcome{Kind: OutcomeIgnored, Err: err}
	default:
		return Outcome{Kind: OutcomeFailed, Err: err}
	}
}

// Tracker decides whether a poll outcome should change the note. It keeps
// the text chosen at decision time; the event loop reads Cached at the fade
// midpoint.
type Tracker struct {
	cached string
}

func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) Cached() string { return t.cached }

// Observe returns the new text and true when a transition should fire.
func (t *Tracker) Observe(o Outcome) (string, bool) {
	var next string
	switch o.Kind {
	case OutcomeOK:
		next = DisplayText(o.Snapshot)
	case OutcomeFailed:
		next = WaitingText
	default:
		return t.cached, false
	}
	if next == t.cached {
		return t.cached, false
	}
	t.cached = next
	return next, true
}
