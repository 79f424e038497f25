package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"floating-note/src/clipboard"
	"floating-note/src/companion"
	"floating-note/src/config"
	"floating-note/src/display"
	"floating-note/src/eventloop"
	"floating-note/src/hotkey"
	"floating-note/src/logutil"
	"floating-note/src/lyricsync"
	"floating-note/src/notification"
	"floating-note/src/runtimeinit"
	"floating-note/src/screen"
	"floating-note/src/singleinstance"
	"floating-note/src/surface"
	"floating-note/src/tray"
)

const (
	appID        = "com.floatingnote.app"
	appTitle     = "Floating Note"
	noteFraction = 0.8
)

type mainOptions struct {
	sync          bool
	reminders     []string
	remindersFile string
	fontSize      string
	statusURL     string
}

// delegateFunc hands a command to an already running note.
type delegateFunc func(ctx context.Context, port int, cmd singleinstance.Command) (bool, error)

func main() {
	enableDPIAwareness()

	if err := runWithArgs(normalizeLegacyArgs(os.Args)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// normalizeLegacyArgs maps single-dash long flags (-sync, -reminder=x) to the
// double-dash form cobra expects.
func normalizeLegacyArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	long := []string{"sync", "reminder", "reminders-file", "font-size", "status-url"}
	for i := 1; i < len(out); i++ {
		for _, name := range long {
			if out[i] == "-"+name || strings.HasPrefix(out[i], "-"+name+"=") {
				out[i] = "-" + out[i]
				break
			}
		}
	}
	return out
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"floating-note"}
	}
	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "floating-note",
		Short:         "Show rotating reminders or live lyrics in a floating window",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResident(loadOptions(cmd, opts), opts.reminders)
		},
	}

	cmd.Flags().BoolVar(&opts.sync, "sync", false, "Follow the lyric sync server instead of rotating reminders")
	cmd.Flags().StringArrayVar(&opts.reminders, "reminder", nil, "Reminder as \"message=seconds\" (repeatable)")
	cmd.Flags().StringVar(&opts.remindersFile, "reminders-file", "", "YAML file with reminders")
	cmd.Flags().StringVar(&opts.fontSize, "font-size", "", "Note font size in points")
	cmd.Flags().StringVar(&opts.statusURL, "status-url", "", "Lyric sync status endpoint")
	return cmd
}

// loadOptions turns flags into config overrides. --sync only overrides
// SYNC_MODE when given explicitly.
func loadOptions(cmd *cobra.Command, opts *mainOptions) config.LoadOptions {
	lo := config.LoadOptions{
		FontSize:      opts.fontSize,
		RemindersFile: opts.remindersFile,
		StatusURL:     opts.statusURL,
	}
	if cmd.Flags().Changed("sync") {
		sync := opts.sync
		lo.SyncMode = &sync
	}
	return lo
}

// delegateToResident asks a running note to show itself. It reports whether
// one answered.
func delegateToResident(port int, delegate delegateFunc) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	delegated, err := delegate(ctx, port, singleinstance.CommandShow)
	if err != nil {
		log.Printf("Resident on port %d refused: %v", port, err)
	}
	return delegated
}

func runResident(lo config.LoadOptions, reminders []string) error {
	cfg, session, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions:  lo,
		Reminders:    reminders,
		SetupLogging: setupLogging,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := singleinstance.Listen(ctx, cfg.SingleInstancePort)
	if err != nil {
		if delegateToResident(cfg.SingleInstancePort, singleinstance.Delegate) {
			fmt.Printf("%s is already running; asked it to show\n", appTitle)
			return nil
		}
		return fmt.Errorf("port %d busy and no resident answered: %w", cfg.SingleInstancePort, err)
	}
	defer srv.Close()

	log.Printf("%s starting in %s mode", appTitle, session.Name())
	logDisplays()

	a := app.NewWithID(appID)
	note := surface.NewNoteWindow(a, display.Settings{FontSize: cfg.FontSize, Glow: cfg.Glow}, screen.NoteWidth(noteFraction))
	loop := eventloop.New(cfg, session, note)

	if _, ok := session.(display.LyricSession); ok {
		helper := startCompanion(ctx, cfg)
		defer func() {
			if err := helper.Stop(); err != nil {
				log.Printf("Companion stop: %v", err)
			}
		}()
	}

	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("event loop stopped: %v", err)
		}
	}()
	go serveDelegation(ctx, srv, note)

	trayIcon := tray.New(tray.Config{
		Title:    appTitle,
		Tooltip:  fmt.Sprintf("%s - Press %s to show or hide", appTitle, cfg.Hotkey),
		OnToggle: func() { fyne.Do(note.Toggle) },
		OnCopy:   func() { copyText(loop.CurrentText()) },
		OnAbout: func() {
			notification.ShowInfo(appTitle, fmt.Sprintf("%s\n\nMode: %s\nHotkey: %s", appTitle, session.Name(), cfg.Hotkey))
		},
		OnExit: cancel,
	})
	go trayIcon.Run()
	defer trayIcon.Destroy()

	if err := hotkey.Listen(ctx, cfg.Hotkey, func() { fyne.Do(note.Toggle) }); err != nil {
		log.Printf("Hotkey disabled: %v", err)
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()
	go func() {
		<-ctx.Done()
		fyne.Do(a.Quit)
	}()

	note.Show()
	a.Run()
	cancel()
	log.Printf("%s exiting", appTitle)
	return nil
}

func setupLogging(enableFileLogging bool) {
	logutil.Setup(enableFileLogging, config.ExecutableDir())
}

func startCompanion(ctx context.Context, cfg *config.Config) *companion.Process {
	p := companion.New(companion.Config{
		Interpreter: cfg.CompanionInterpreter,
		Script:      cfg.CompanionScript,
		Dir:         config.ExecutableDir(),
		OnCrash: func(err error) {
			notification.ShowErrorOnce("companion-crash", "Lyric sync stopped",
				fmt.Sprintf("%s exited: %v\n\nThe note will show %q until the sync server is back.", cfg.CompanionScript, err, lyricsync.WaitingText))
		},
	})
	if err := p.Start(ctx); err != nil {
		go notification.ShowErrorOnce("companion-start", "Lyric sync unavailable",
			fmt.Sprintf("Could not start %s: %v\n\nStart the sync server yourself or fix COMPANION_SCRIPT.", cfg.CompanionScript, err))
	}
	return p
}

func serveDelegation(ctx context.Context, srv *singleinstance.Server, note *surface.NoteWindow) {
	for {
		req, err := srv.Next(ctx)
		if err != nil {
			return
		}
		switch req.Command {
		case singleinstance.CommandShow:
			fyne.Do(note.Show)
		case singleinstance.CommandToggle:
			fyne.Do(note.Toggle)
		}
		if err := req.Reply(nil); err != nil {
			log.Printf("singleinstance: reply failed: %v", err)
		}
	}
}

func copyText(text string) {
	if err := clipboard.Write(text); err != nil {
		log.Printf("Copy failed: %v", err)
		return
	}
	log.Printf("Copied note text: %q", logutil.Sanitize(text))
}

func logDisplays() {
	if b, err := screen.VirtualBounds(); err == nil {
		log.Printf("DISPLAY: virtual screen %v", b)
	} else {
		log.Printf("DISPLAY: %v", err)
	}
}
