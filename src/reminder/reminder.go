package reminder

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDurationSeconds is used when the duration text does not parse.
	DefaultDurationSeconds = 5

	PlaceholderMessage         = "No messages."
	PlaceholderDurationSeconds = 10
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrInvalidDuration = errors.New("duration must be at least 1 second")
)

// Entry is one timed message. Entries are never mutated once a session starts.
type Entry struct {
	ID              string `yaml:"-"`
	Message         string `yaml:"message"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%ds)", e.Message, e.DurationSeconds)
}

// NewEntry validates user input and assigns a fresh ID.
func NewEntry(message string, durationSeconds int) (Entry, error) {
	if strings.TrimSpace(message) == "" {
		return Entry{}, ErrEmptyMessage
	}
	if durationSeconds < 1 {
		return Entry{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationSeconds)
	}
	return Entry{ID: uuid.NewString(), Message: message, DurationSeconds: durationSeconds}, nil
}

// Placeholder is shown when a rotation session is started without entries.
func Placeholder() Entry {
	return Entry{ID: uuid.NewString(), Message: PlaceholderMessage, DurationSeconds: PlaceholderDurationSeconds}
}

// ParseDuration reads the seconds field typed by the user. Text that is not a
// number falls back to DefaultDurationSeconds; a number below 1 is rejected.
func ParseDuration(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return DefaultDurationSeconds, nil
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDuration, n)
	}
	return n, nil
}

// splitSpec splits the command-line form "message=seconds". Only an integer
// after the last "=" is taken as the duration, so "E=mc2" stays a message.
func splitSpec(spec string) (message, secs string) {
	i := strings.LastIndex(spec, "=")
	if i < 0 {
		return strings.TrimSpace(spec), ""
	}
	if _, err := strconv.Atoi(strings.TrimSpace(spec[i+1:])); err != nil {
		return strings.TrimSpace(spec), ""
	}
	return strings.TrimSpace(spec[:i]), spec[i+1:]
}

func entryFromInput(message, durationText string) (Entry, error) {
	d, err := ParseDuration(durationText)
	if err != nil {
		return Entry{}, err
	}
	return NewEntry(message, d)
}

type fileFormat struct {
	Reminders []Entry `yaml:"reminders"`
}

// LoadFile reads a YAML reminders file:
//
//	reminders:
//	  - message: Drink water
//	    duration_seconds: 30
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reminders file: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse reminders file %s: %w", path, err)
	}
	entries := make([]Entry, 0, len(f.Reminders))
	for i, r := range f.Reminders {
		if r.DurationSeconds == 0 {
			r.DurationSeconds = DefaultDurationSeconds
		}
		e, err := NewEntry(r.Message, r.DurationSeconds)
		if err != nil {
			return nil, fmt.Errorf("reminders file %s entry %d: %w", path, i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
