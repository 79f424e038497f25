// Package fade implements the two-phase opacity transition used to change the
// note text: fade out, swap text, fade in.
package fade

import (
	"time"

	"fyne.io/fyne/v2"
)

// DefaultDuration is the length of each half of a transition.
const DefaultDuration = 200 * time.Millisecond

type Phase int

const (
	Visible Phase = iota
	FadingOut
	FadingIn
)

func (p Phase) String() string {
	switch p {
	case Visible:
		return "visible"
	case FadingOut:
		return "fading-out"
	case FadingIn:
		return "fading-in"
	default:
		return "unknown"
	}
}

// TextProvider is called once, at the midpoint, to obtain the text to show.
type TextProvider func() string

// Frame is what a Step produced: the opacity to apply, and the new text when
// the swap happened during this step.
type Frame struct {
	Opacity float32
	Text    string
	Swapped bool
	// Done is set on the step that completed a fade-in.
	Done bool
}

// Transition is not safe for concurrent use; the event loop owns it.
type Transition struct {
	duration time.Duration
	outCurve fyne.AnimationCurve
	inCurve  fyne.AnimationCurve

	phase    Phase
	elapsed  time.Duration
	opacity  float32
	provider TextProvider
	queued   TextProvider
}

// New returns a visible transition. A non-positive duration uses DefaultDuration.
func New(duration time.Duration) *Transition {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Transition{
		duration: duration,
		outCurve: fyne.AnimationEaseOut,
		inCurve:  fyne.AnimationEaseIn,
		opacity:  1,
	}
}

func (t *Transition) Phase() Phase            { return t.phase }
func (t *Transition) Opacity() float32        { return t.opacity }
func (t *Transition) Active() bool            { return t.phase != Visible }
func (t *Transition) Pending() bool           { return t.queued != nil }
func (t *Transition) Duration() time.Duration { return t.duration }

// Start requests a text change.
//
// While fading out, the provider is replaced so the swap shows the newest
// content. While fading in, the request is queued and begins as soon as the
// fade-in completes; only the latest queued request is kept.
func (t *Transition) Start(p TextProvider) {
	switch t.phase {
	case Visible:
		t.phase = FadingOut
		t.elapsed = 0
		t.provider = p
	case FadingOut:
		t.provider = p
	case FadingIn:
		t.queued = p
	}
}

// Step advances the animation clock by dt.
func (t *Transition) Step(dt time.Duration) Frame {
	if dt < 0 {
		dt = 0
	}
	var f Frame
	switch t.phase {
	case Visible:
		f.Opacity = t.opacity
		return f
	case FadingOut:
		t.elapsed += dt
		p := t.progress()
		t.opacity = 1 - t.outCurve(p)
		if p >= 1 {
			t.opacity = 0
			if t.provider != nil {
				f.Text = t.provider()
			}
			f.Swapped = true
			t.provider = nil
			t.phase = FadingIn
			t.elapsed = 0
		}
	case FadingIn:
		t.elapsed += dt
		p := t.progress()
		t.opacity = t.inCurve(p)
		if p >= 1 {
			t.opacity = 1
			t.phase = Visible
			t.elapsed = 0
			f.Done = true
			if q := t.queued; q != nil {
				t.queued = nil
				t.Start(q)
			}
		}
	}
	f.Opacity = t.opacity
	return f
}

func (t *Transition) progress() float32 {
	if t.elapsed >= t.duration {
		return 1
	}
	return float32(t.elapsed) / float32(t.duration)
}
