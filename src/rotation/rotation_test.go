package rotation

import (
	"testing"
	"time"

	"floating-note/src/reminder"
)

func entries(t *testing.T, specs ...string) []reminder.Entry {
	t.Helper()
	l := reminder.NewList()
	for _, s := range specs {
		if _, err := l.AddSpec(s); err != nil {
			t.Fatalf("AddSpec(%q): %v", s, err)
		}
	}
	return l.Entries()
}

func TestAdvanceIsCyclic(t *testing.T) {
	for n := 1; n <= 5; n++ {
		specs := make([]string, n)
		for i := range specs {
			specs[i] = string(rune('a'+i)) + "=1"
		}
		s := New(entries(t, specs...))
		for start := 0; start < n; start++ {
			for s.Index() != start {
				s.Advance()
			}
			for i := 0; i < n; i++ {
				s.Advance()
			}
			if s.Index() != start {
				t.Errorf("n=%d: expected index %d after a full cycle, got %d", n, start, s.Index())
			}
		}
	}
}

func TestAdvanceReturnsNextMessage(t *testing.T) {
	s := New(entries(t, "one=1", "two=2", "three=3"))
	want := []string{"two", "three", "one", "two"}
	for i, w := range want {
		if got := s.Advance(); got != w {
			t.Errorf("advance %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestSingleEntryNeverChanges(t *testing.T) {
	s := New(entries(t, "only=4"))
	if s.Rotates() {
		t.Error("Single entry should not rotate")
	}
	for i := 0; i < 10; i++ {
		if got := s.Advance(); got != "only" {
			t.Fatalf("Expected 'only', got %q", got)
		}
	}
}

func TestEmptyGetsPlaceholder(t *testing.T) {
	s := New(nil)
	if s.Len() != 1 {
		t.Fatalf("Expected placeholder entry, got len %d", s.Len())
	}
	if s.Current().Message != reminder.PlaceholderMessage {
		t.Errorf("Unexpected placeholder: %+v", s.Current())
	}
	if s.Interval() != reminder.PlaceholderDurationSeconds*time.Second {
		t.Errorf("Unexpected placeholder interval: %v", s.Interval())
	}
}

func TestIntervalFollowsCurrentEntryAndClamps(t *testing.T) {
	s := New([]reminder.Entry{
		{Message: "a", DurationSeconds: 3},
		{Message: "b", DurationSeconds: 0},
	})
	if s.Interval() != 3*time.Second {
		t.Errorf("Expected 3s, got %v", s.Interval())
	}
	s.Advance()
	if s.Interval() != time.Second {
		t.Errorf("Expected clamp to 1s, got %v", s.Interval())
	}
}

func TestNewCopiesEntries(t *testing.T) {
	in := entries(t, "a=1", "b=1")
	s := New(in)
	in[0].Message = "changed"
	if s.Current().Message != "a" {
		t.Error("State should not alias caller slice")
	}
}
