package runtimeinit

import (
	"fmt"
	"log"

	"floating-note/src/clipboard"
	"floating-note/src/config"
	"floating-note/src/display"
	"floating-note/src/reminder"
)

type Options struct {
	LoadOptions config.LoadOptions
	// Reminders are "message=seconds" entries from the command line.
	Reminders    []string
	SetupLogging func(bool)
}

// Bootstrap loads configuration, starts logging and picks the session the
// note will run.
func Bootstrap(opts Options) (*config.Config, display.Session, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg.EnableFileLogging)
	}

	if err := clipboard.Init(); err != nil {
		// copying is a convenience; the note works without it
		log.Printf("Clipboard unavailable: %v", err)
	}

	session, err := BuildSession(cfg, opts.Reminders)
	if err != nil {
		return nil, nil, err
	}
	return cfg, session, nil
}

// BuildSession returns a lyric session in sync mode, otherwise a rotation
// over the reminders file plus the command-line entries. With neither, the
// built-in list is used.
func BuildSession(cfg *config.Config, specs []string) (display.Session, error) {
	if cfg.SyncMode {
		return display.LyricSession{Endpoint: cfg.StatusURL}, nil
	}

	list := reminder.NewList()
	if cfg.RemindersFile != "" {
		loaded, err := reminder.LoadFile(cfg.RemindersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load reminders: %w", err)
		}
		list = reminder.NewList(loaded...)
	}
	for _, spec := range specs {
		if _, err := list.AddSpec(spec); err != nil {
			return nil, err
		}
	}
	if list.Len() == 0 {
		list = reminder.DefaultList()
	}
	log.Printf("Rotation with %d reminder(s)", list.Len())
	return display.RotationSession{Entries: list.Entries()}, nil
}
