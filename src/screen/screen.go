package screen

import (
	"errors"
	"image"

	"github.com/kbinani/screenshot"
)

// FallbackWidth is used when no display can be queried (headless sessions).
const FallbackWidth = 1280

var ErrNoDisplay = errors.New("no active displays found")

// boundsFunc and countFunc are swapped in tests.
var (
	countFunc  = screenshot.NumActiveDisplays
	boundsFunc = screenshot.GetDisplayBounds
)

// PrimaryBounds returns the bounds of the primary display (display 0).
func PrimaryBounds() (image.Rectangle, error) {
	if countFunc() == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	return boundsFunc(0), nil
}

// VirtualBounds returns the union of all active displays.
func VirtualBounds() (image.Rectangle, error) {
	n := countFunc()
	if n == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	union := boundsFunc(0)
	for i := 1; i < n; i++ {
		union = union.Union(boundsFunc(i))
	}
	return union, nil
}

// NoteWidth is the widest the note may grow before its text wraps: a fraction
// of the primary display width.
func NoteWidth(fraction float32) float32 {
	if fraction <= 0 || fraction > 1 {
		fraction = 0.8
	}
	width := FallbackWidth
	if b, err := PrimaryBounds(); err == nil && b.Dx() > 0 {
		width = b.Dx()
	}
	return float32(width) * fraction
}
