// Package companion supervises the now-playing helper that serves lyric
// status on the local sync endpoint.
package companion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"floating-note/src/logutil"
)

var ErrScriptMissing = errors.New("companion script not found")

const stopTimeout = 2 * time.Second

type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

type Config struct {
	Interpreter string
	// InterpreterArgs go between the interpreter and the script.
	InterpreterArgs []string
	Script          string
	// Dir resolves a relative Script and is the working directory.
	Dir string
	// OnCrash is called from the wait goroutine when the helper exits on
	// its own.
	OnCrash func(error)
}

type Process struct {
	cfg Config

	mu         sync.Mutex
	state      State
	cmd        *exec.Cmd
	done       chan struct{}
	lastErr    error
	crashCount int
}

func New(cfg Config) *Process {
	return &Process{cfg: cfg}
}

func (p *Process) Name() string { return filepath.Base(p.cfg.Script) }

// ScriptPath is the absolute path the helper is started from.
func (p *Process) ScriptPath() string {
	if filepath.IsAbs(p.cfg.Script) || p.cfg.Dir == "" {
		return p.cfg.Script
	}
	return filepath.Join(p.cfg.Dir, p.cfg.Script)
}

// Start launches the helper. It returns once the process is running; exit is
// observed in the background.
func (p *Process) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateRunning || p.state == StateStarting {
		return fmt.Errorf("companion %s already running", p.Name())
	}
	script := p.ScriptPath()
	if _, err := os.Stat(script); err != nil {
		p.lastErr = fmt.Errorf("%w: %s", ErrScriptMissing, script)
		return p.lastErr
	}

	p.state = StateStarting
	args := append(append([]string{}, p.cfg.InterpreterArgs...), script)
	cmd := exec.CommandContext(ctx, p.cfg.Interpreter, args...)
	cmd.Dir = p.cfg.Dir
	out := newLineLogger(p.Name())
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		p.state = StateCrashed
		p.lastErr = fmt.Errorf("start %s: %w", p.Name(), err)
		p.crashCount++
		return p.lastErr
	}

	p.cmd = cmd
	p.done = make(chan struct{})
	p.state = StateRunning
	log.Printf("Companion %s started (pid %d)", p.Name(), cmd.Process.Pid)

	go p.wait(ctx, cmd, p.done)
	return nil
}

func (p *Process) wait(ctx context.Context, cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()

	p.mu.Lock()
	crashed := p.state != StateStopping && ctx.Err() == nil
	if !crashed && p.state == StateRunning {
		p.state = StateStopped
		log.Printf("Companion %s stopped with its context", p.Name())
	}
	if crashed {
		if err == nil {
			err = errors.New("exited")
		}
		p.state = StateCrashed
		p.lastErr = err
		p.crashCount++
		log.Printf("Companion %s exited unexpectedly: %v (crash count: %d)", p.Name(), err, p.crashCount)
	}
	p.cmd = nil
	p.mu.Unlock()
	close(done)

	if crashed && p.cfg.OnCrash != nil {
		p.cfg.OnCrash(err)
	}
}

// Stop kills the helper and waits for it to exit.
func (p *Process) Stop() error {
	p.mu.Lock()
	if p.state != StateRunning || p.cmd == nil {
		p.mu.Unlock()
		return nil
	}
	p.state = StateStopping
	cmd, done := p.cmd, p.done
	p.mu.Unlock()

	log.Printf("Stopping companion %s", p.Name())
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		log.Printf("Error killing companion %s: %v", p.Name(), err)
	}

	var err error
	select {
	case <-done:
	case <-time.After(stopTimeout):
		err = fmt.Errorf("companion %s did not exit within %v", p.Name(), stopTimeout)
	}

	p.mu.Lock()
	p.state = StateStopped
	p.mu.Unlock()
	return err
}

func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Process) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// lineLogger forwards the helper's output to the log one line at a time.
type lineLogger struct {
	name string
	mu   sync.Mutex
	buf  []byte
}

func newLineLogger(name string) *lineLogger { return &lineLogger{name: name} }

func (l *lineLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = append(l.buf, p...)
	for {
		i := bytes.IndexByte(l.buf, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(l.buf[:i]), "\r")
		l.buf = l.buf[i+1:]
		if line != "" {
			log.Printf("companion %s: %s", l.name, logutil.Sanitize(line))
		}
	}
	return len(p), nil
}
