// Package tray puts the note's controls in the system tray.
package tray

import (
	"log"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
)

type Config struct {
	Title    string
	Tooltip  string
	OnToggle func()
	OnCopy   func()
	OnAbout  func()
	OnExit   func()
}

type Tray struct {
	cfg      Config
	quitOnce sync.Once
	done     chan struct{}
}

func New(cfg Config) *Tray {
	if cfg.Title == "" {
		cfg.Title = "Floating Note"
	}
	if cfg.Tooltip == "" {
		cfg.Tooltip = cfg.Title
	}
	return &Tray{cfg: cfg, done: make(chan struct{})}
}

// Run blocks until the tray is destroyed or the user picks Exit.
func (t *Tray) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle(t.cfg.Title)
	systray.SetTooltip(t.cfg.Tooltip)

	mToggle := systray.AddMenuItem("Show / Hide", "Show or hide the note")
	mCopy := systray.AddMenuItem("Copy text", "Copy the current note text")
	systray.AddSeparator()
	mAbout := systray.AddMenuItem("About", "About Floating Note")
	mExit := systray.AddMenuItem("Exit", "Quit Floating Note")

	go func() {
		for {
			select {
			case <-mToggle.ClickedCh:
				call(t.cfg.OnToggle)
			case <-mCopy.ClickedCh:
				call(t.cfg.OnCopy)
			case <-mAbout.ClickedCh:
				call(t.cfg.OnAbout)
			case <-mExit.ClickedCh:
				log.Printf("Tray: exit requested")
				t.Destroy()
				return
			case <-t.done:
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	call(t.cfg.OnExit)
}

// Destroy removes the icon. Safe to call more than once.
func (t *Tray) Destroy() {
	t.quitOnce.Do(func() {
		close(t.done)
		systray.Quit()
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
