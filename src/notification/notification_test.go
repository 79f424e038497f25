//go:build !windows

package notification

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestShowErrorOnce(t *testing.T) {
	var buf bytes.Buffer
	old := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(old)

	ShowErrorOnce("companion-test", "Companion missing", "now_playing.py not found")
	ShowErrorOnce("companion-test", "Companion missing", "now_playing.py not found")

	out := buf.String()
	if n := strings.Count(out, "Companion missing"); n != 2 {
		t.Fatalf("Expected two log lines, got %d: %q", n, out)
	}
	if strings.Count(out, "already reported") != 1 {
		t.Errorf("Expected the second report to be marked as repeated: %q", out)
	}
}
