package logutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\nbreak`},
		{"tab\there", `tab\there`},
		{"bell\x07", "bell?"},
		{"⏸ Paused: Foo", "⏸ Paused: Foo"},
		{strings.Repeat("x", 150), strings.Repeat("x", 100) + "..."},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)
	for i, content := range []string{"current", "one", "two", "three"} {
		name := path
		if i > 0 {
			name = archiveName(path, i)
		}
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rotate(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected base log to be moved away, stat err=%v", err)
	}
	for n, want := range map[int]string{1: "current", 2: "one", 3: "two"} {
		got, err := os.ReadFile(archiveName(path, n))
		if err != nil {
			t.Fatalf("read archive %d: %v", n, err)
		}
		if string(got) != want {
			t.Errorf("archive %d: expected %q, got %q", n, want, got)
		}
	}
}

func TestRotatingWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), logFileName)
	w, err := newRotatingWriter(path)
	if err != nil {
		t.Fatalf("newRotatingWriter: %v", err)
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "hello\n" {
		t.Errorf("Unexpected log contents %q", got)
	}
}
