package reminder

import "fmt"

// List is the ordered set of reminders collected before a session starts.
// It is not safe for concurrent use.
type List struct {
	entries []Entry
}

// NewList returns a list holding the given entries in order.
func NewList(entries ...Entry) *List {
	l := &List{}
	l.entries = append(l.entries, entries...)
	return l
}

// DefaultList is what the note rotates through when nothing was configured.
func DefaultList() *List {
	welcome, _ := NewEntry("Welcome to your new dashboard! ✨", 5)
	hint, _ := NewEntry("Add your own messages below 👇", 8)
	return NewList(welcome, hint)
}

// Add appends a reminder built from user-typed fields.
func (l *List) Add(message, durationText string) (Entry, error) {
	e, err := entryFromInput(message, durationText)
	if err != nil {
		return Entry{}, err
	}
	l.entries = append(l.entries, e)
	return e, nil
}

// AddSpec appends a reminder given as "message=seconds".
func (l *List) AddSpec(spec string) (Entry, error) {
	e, err := l.Add(splitSpec(spec))
	if err != nil {
		return Entry{}, fmt.Errorf("reminder %q: %w", spec, err)
	}
	return e, nil
}

func (l *List) Len() int { return len(l.entries) }

// Entries returns a snapshot; later additions do not affect it.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
