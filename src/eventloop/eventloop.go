package eventloop

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"floating-note/src/config"
	"floating-note/src/display"
	"floating-note/src/fade"
	"floating-note/src/logutil"
	"floating-note/src/lyricsync"
	"floating-note/src/rotation"
	"floating-note/src/worker"
)

// Surface is the window the note is drawn on. The loop calls it from its own
// goroutine; implementations marshal onto their UI thread if they need to.
type Surface interface {
	SetText(text string)
	SetOpacity(alpha float32)
}

// Loop is the single-threaded coordinator for one note window. Rotation
// ticks, poll results and fade frames are all handled on the Run goroutine.
type Loop struct {
	session display.Session
	surface Surface
	fade    *fade.Transition

	rotation    *rotation.State
	rotateTimer *time.Timer

	tracker      *lyricsync.Tracker
	fetcher      lyricsync.Fetcher
	pool         *worker.Pool
	polling      bool
	polls        chan pollResult
	pollInterval time.Duration

	frameInterval time.Duration
	frames        *time.Ticker
	lastFrame     time.Time

	shown       atomic.Value
	transitions atomic.Int64
}

type pollResult struct {
	snap lyricsync.Snapshot
	err  error
}

// New creates a loop for session drawing on surface. If cfg is nil the
// package defaults are used.
func New(cfg *config.Config, session display.Session, surface Surface) *Loop {
	if cfg == nil {
		cfg = &config.Config{}
	}
	l := &Loop{
		session:       session,
		surface:       surface,
		fade:          fade.New(cfg.FadeDuration),
		polls:         make(chan pollResult, 1),
		pollInterval:  orDefault(cfg.PollInterval, config.DefaultPollIntervalMS*time.Millisecond),
		frameInterval: orDefault(cfg.FrameInterval, config.DefaultFrameMS*time.Millisecond),
	}
	l.shown.Store(session.InitialText())

	switch s := session.(type) {
	case display.RotationSession:
		l.rotation = rotation.New(s.Entries)
	case display.LyricSession:
		l.tracker = lyricsync.NewTracker()
		endpoint := s.Endpoint
		if endpoint == "" {
			endpoint = cfg.StatusURL
		}
		l.fetcher = lyricsync.NewClient(endpoint, cfg.PollTimeout)
	}
	return l
}

// SetFetcher replaces the status source of a lyric-sync loop. Call before Run.
func (l *Loop) SetFetcher(f lyricsync.Fetcher) { l.fetcher = f }

// CurrentText is the text on the surface. Safe from any goroutine.
func (l *Loop) CurrentText() string { return l.shown.Load().(string) }

// Transitions counts transition requests so far. Safe from any goroutine.
func (l *Loop) Transitions() int64 { return l.transitions.Load() }

// Run drives the session until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	log.Printf("eventloop: starting %s session", l.session.Name())
	l.surface.SetText(l.CurrentText())
	l.surface.SetOpacity(1)

	var pollC <-chan time.Time
	switch {
	case l.rotation != nil:
		if l.rotation.Rotates() {
			l.armRotation()
		}
		defer l.stopRotation()
	case l.tracker != nil:
		ticker := time.NewTicker(l.pollInterval)
		defer ticker.Stop()
		pollC = ticker.C
		l.pool = worker.New(1, l.fetcher)
		defer l.pool.Close()
	}
	defer l.stopFrames()

	for {
		var rotateC, frameC <-chan time.Time
		if l.rotateTimer != nil {
			rotateC = l.rotateTimer.C
		}
		if l.frames != nil {
			frameC = l.frames.C
		}

		select {
		case <-ctx.Done():
			log.Printf("eventloop: %s session stopped", l.session.Name())
			return ctx.Err()
		case <-rotateC:
			l.rotateTimer = nil
			l.handleRotateTick()
		case <-pollC:
			l.handlePollTick(ctx)
		case res := <-l.polls:
			l.handlePollResult(res)
		case now := <-frameC:
			l.handleFrame(now)
		}
	}
}

func (l *Loop) handleRotateTick() {
	l.startTransition(l.nextReminder)
}

// nextReminder runs at the fade midpoint: it advances and re-arms the timer
// with the new entry's own duration.
func (l *Loop) nextReminder() string {
	msg := l.rotation.Advance()
	l.armRotation()
	return msg
}

func (l *Loop) armRotation() {
	l.stopRotation()
	l.rotateTimer = time.NewTimer(l.rotation.Interval())
}

func (l *Loop) stopRotation() {
	if l.rotateTimer != nil {
		l.rotateTimer.Stop()
		l.rotateTimer = nil
	}
}

func (l *Loop) handlePollTick(ctx context.Context) {
	if l.polling {
		return
	}
	l.polling = true
	submitted := l.pool.Submit(ctx, func(snap lyricsync.Snapshot, err error) {
		select {
		case l.polls <- pollResult{snap: snap, err: err}:
		case <-ctx.Done():
		}
	})
	if !submitted {
		l.polling = false
	}
}

func (l *Loop) handlePollResult(res pollResult) {
	l.polling = false
	outcome := lyricsync.Classify(res.snap, res.err)
	text, fire := l.tracker.Observe(outcome)
	if !fire {
		return
	}
	if outcome.Kind == lyricsync.OutcomeFailed {
		log.Printf("eventloop: lyric sync unavailable: %v", outcome.Err)
	} else {
		log.Printf("eventloop: lyric changed: %q", logutil.Sanitize(text))
	}
	l.startTransition(l.tracker.Cached)
}

func (l *Loop) startTransition(p fade.TextProvider) {
	l.transitions.Add(1)
	l.fade.Start(p)
	if l.frames == nil {
		l.frames = time.NewTicker(l.frameInterval)
		l.lastFrame = time.Now()
	}
}

func (l *Loop) handleFrame(now time.Time) {
	dt := now.Sub(l.lastFrame)
	l.lastFrame = now

	f := l.fade.Step(dt)
	if f.Swapped {
		l.shown.Store(f.Text)
		l.surface.SetText(f.Text)
	}
	l.surface.SetOpacity(f.Opacity)
	if !l.fade.Active() {
		l.stopFrames()
	}
}

func (l *Loop) stopFrames() {
	if l.frames != nil {
		l.frames.Stop()
		l.frames = nil
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
