package screen

import (
	"errors"
	"image"
	"testing"
)

func fakeDisplays(t *testing.T, rects ...image.Rectangle) {
	t.Helper()
	oldCount, oldBounds := countFunc, boundsFunc
	t.Cleanup(func() { countFunc, boundsFunc = oldCount, oldBounds })
	countFunc = func() int { return len(rects) }
	boundsFunc = func(i int) image.Rectangle { return rects[i] }
}

func TestNoDisplay(t *testing.T) {
	fakeDisplays(t)
	if _, err := PrimaryBounds(); !errors.Is(err, ErrNoDisplay) {
		t.Errorf("Expected ErrNoDisplay, got %v", err)
	}
	if _, err := VirtualBounds(); !errors.Is(err, ErrNoDisplay) {
		t.Errorf("Expected ErrNoDisplay, got %v", err)
	}
	if got := NoteWidth(0.5); got != FallbackWidth*0.5 {
		t.Errorf("Expected fallback width, got %v", got)
	}
}

func TestVirtualBoundsUnion(t *testing.T) {
	fakeDisplays(t, image.Rect(0, 0, 1920, 1080), image.Rect(1920, 0, 3840, 1440))
	got, err := VirtualBounds()
	if err != nil {
		t.Fatal(err)
	}
	if want := image.Rect(0, 0, 3840, 1440); got != want {
		t.Errorf("VirtualBounds() = %v, want %v", got, want)
	}
}

func TestNoteWidth(t *testing.T) {
	fakeDisplays(t, image.Rect(0, 0, 2000, 1000))
	tests := []struct {
		fraction float32
		want     float32
	}{
		{0.5, 1000},
		{1, 2000},
		{0, 1600},
		{3, 1600},
	}
	for _, tt := range tests {
		if got := NoteWidth(tt.fraction); got != tt.want {
			t.Errorf("NoteWidth(%v) = %v, want %v", tt.fraction, got, tt.want)
		}
	}
}

func TestPrimaryBoundsLive(t *testing.T) {
	// Needs a real display; only logs in headless environments.
	if _, err := PrimaryBounds(); err != nil {
		t.Logf("PrimaryBounds failed (expected in headless environment): %v", err)
	}
}
