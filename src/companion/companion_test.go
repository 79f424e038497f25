package companion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestHelperProcess is not a real test: it stands in for the interpreter
// when the test binary re-executes itself.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	script := os.Args[len(os.Args)-1]
	if strings.Contains(filepath.Base(script), "crash") {
		os.Stdout.WriteString("boom\n")
		os.Exit(3)
	}
	os.Stdout.WriteString("serving on 127.0.0.1:8888\n")
	time.Sleep(time.Minute)
	os.Exit(0)
}

func helperConfig(t *testing.T, script string) Config {
	t.Helper()
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	dir := t.TempDir()
	if script != "" {
		if err := os.WriteFile(filepath.Join(dir, script), []byte("# stub\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return Config{
		Interpreter:     os.Args[0],
		InterpreterArgs: []string{"-test.run=TestHelperProcess", "--"},
		Script:          script,
		Dir:             dir,
	}
}

func waitState(t *testing.T, p *Process, want State) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if p.State() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected state %s, got %s", want, p.State())
}

func TestStartMissingScript(t *testing.T) {
	cfg := helperConfig(t, "")
	cfg.Script = "now_playing.py"
	p := New(cfg)
	err := p.Start(context.Background())
	if !errors.Is(err, ErrScriptMissing) {
		t.Fatalf("Expected ErrScriptMissing, got %v", err)
	}
	if p.State() != StateStopped {
		t.Errorf("Expected stopped, got %s", p.State())
	}
}

func TestStartAndStop(t *testing.T) {
	p := New(helperConfig(t, "now_playing.py"))
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p.State() != StateRunning {
		t.Fatalf("Expected running, got %s", p.State())
	}
	if err := p.Start(context.Background()); err == nil {
		t.Error("Expected second Start to fail")
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if p.State() != StateStopped {
		t.Errorf("Expected stopped, got %s", p.State())
	}
	// stopping twice is a no-op
	if err := p.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestCrashIsReported(t *testing.T) {
	cfg := helperConfig(t, "crash.py")
	crashed := make(chan error, 1)
	cfg.OnCrash = func(err error) { crashed <- err }
	p := New(cfg)
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case err := <-crashed:
		if err == nil {
			t.Error("Expected an exit error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OnCrash not called")
	}
	waitState(t, p, StateCrashed)
	if p.LastError() == nil {
		t.Error("Expected LastError to be set")
	}
}

func TestContextCancelIsNotACrash(t *testing.T) {
	cfg := helperConfig(t, "now_playing.py")
	cfg.OnCrash = func(err error) { t.Errorf("unexpected crash report: %v", err) }
	p := New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
	waitState(t, p, StateStopped)
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateStopped:  "stopped",
		StateStarting: "starting",
		StateRunning:  "running",
		StateStopping: "stopping",
		StateCrashed:  "crashed",
		State(42):     "unknown",
	} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func TestLineLogger(t *testing.T) {
	l := newLineLogger("x")
	n, err := l.Write([]byte("partial"))
	if err != nil || n != 7 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	l.Write([]byte(" line\r\nnext"))
	if string(l.buf) != "next" {
		t.Errorf("Expected the incomplete tail to stay buffered, got %q", l.buf)
	}
}
