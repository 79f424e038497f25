package display

import (
	"floating-note/src/lyricsync"
	"floating-note/src/reminder"
)

// Session is the mode a note window runs in, chosen when the window is
// created: either RotationSession or LyricSession.
type Session interface {
	Name() string
	InitialText() string
	isSession()
}

// RotationSession cycles through timed reminders.
type RotationSession struct {
	Entries []reminder.Entry
}

func (RotationSession) Name() string { return "rotation" }

func (s RotationSession) InitialText() string {
	if len(s.Entries) == 0 {
		return reminder.PlaceholderMessage
	}
	return s.Entries[0].Message
}

func (RotationSession) isSession() {}

// LyricSession mirrors the companion's current lyric.
type LyricSession struct {
	Endpoint string
}

func (LyricSession) Name() string        { return "lyric-sync" }
func (LyricSession) InitialText() string { return lyricsync.ConnectingText }
func (LyricSession) isSession()          {}

// Settings are the visual options shared by both modes.
type Settings struct {
	FontSize float32
	Glow     bool
}
