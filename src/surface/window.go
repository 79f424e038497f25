// Package surface draws the floating note with Fyne.
package surface

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"floating-note/src/display"
)

const (
	minFontSize = 10
	maxFontSize = 400
	title       = "Floating Note"
)

var (
	textColor       = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	glowColor       = color.NRGBA{R: 0xDF, G: 0xB6, B: 0xB2, A: 0x80}
	backgroundColor = color.NRGBA{R: 0x19, G: 0x00, B: 0x19, A: 0xFF}
)

// NoteWindow is a borderless window showing one block of centred text.
// SetText and SetOpacity may be called from any goroutine.
type NoteWindow struct {
	win      fyne.Window
	lines    *fyne.Container
	fontSize float32
	glow     bool
	maxWidth float32

	mu      sync.Mutex
	text    string
	opacity float32
	shown   bool
}

// NewNoteWindow creates the window hidden. maxWidth bounds the text block;
// zero disables wrapping.
func NewNoteWindow(app fyne.App, settings display.Settings, maxWidth float32) *NoteWindow {
	var win fyne.Window
	if drv, ok := app.Driver().(desktop.Driver); ok {
		win = drv.CreateSplashWindow()
	} else {
		win = app.NewWindow(title)
	}
	win.SetTitle(title)
	win.SetPadded(false)

	n := &NoteWindow{
		win:      win,
		lines:    container.NewVBox(),
		fontSize: clampFontSize(settings.FontSize),
		glow:     settings.Glow,
		maxWidth: maxWidth,
		opacity:  1,
	}
	bg := canvas.NewRectangle(backgroundColor)
	win.SetContent(container.NewStack(bg, container.NewCenter(n.lines)))
	return n
}

func clampFontSize(size float32) float32 {
	switch {
	case size <= 0:
		return 60
	case size < minFontSize:
		return minFontSize
	case size > maxFontSize:
		return maxFontSize
	}
	return size
}

func (n *NoteWindow) SetText(text string) {
	n.mu.Lock()
	n.text = text
	n.mu.Unlock()
	fyne.Do(n.render)
}

func (n *NoteWindow) SetOpacity(alpha float32) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	n.mu.Lock()
	n.opacity = alpha
	n.mu.Unlock()
	fyne.Do(n.applyOpacity)
}

func (n *NoteWindow) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// Show, Hide and Toggle must run on the Fyne thread or through fyne.Do.
func (n *NoteWindow) Show() {
	n.mu.Lock()
	n.shown = true
	n.mu.Unlock()
	n.win.Show()
}

func (n *NoteWindow) Hide() {
	n.mu.Lock()
	n.shown = false
	n.mu.Unlock()
	n.win.Hide()
}

func (n *NoteWindow) Toggle() {
	n.mu.Lock()
	shown := n.shown
	n.mu.Unlock()
	if shown {
		n.Hide()
	} else {
		n.Show()
	}
}

func (n *NoteWindow) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shown
}

func (n *NoteWindow) Window() fyne.Window { return n.win }

func (n *NoteWindow) render() {
	n.mu.Lock()
	text := n.text
	n.mu.Unlock()

	style := fyne.TextStyle{Bold: true}
	measure := func(s string) float32 { return fyne.MeasureText(s, n.fontSize, style).Width }

	n.lines.RemoveAll()
	for _, line := range wrapLines(text, n.maxWidth, measure) {
		t := canvas.NewText(line, textColor)
		t.TextSize = n.fontSize
		t.TextStyle = style
		t.Alignment = fyne.TextAlignCenter
		if !n.glow {
			n.lines.Add(t)
			continue
		}
		g := canvas.NewText(line, glowColor)
		g.TextSize = n.fontSize
		g.TextStyle = style
		g.Alignment = fyne.TextAlignCenter
		g.Resize(t.MinSize())
		g.Move(fyne.NewPos(1, 1))
		n.lines.Add(container.NewStack(container.NewWithoutLayout(g), t))
	}
	n.applyOpacity()
	n.win.Resize(n.lines.MinSize())
}

func (n *NoteWindow) applyOpacity() {
	n.mu.Lock()
	alpha := n.opacity
	n.mu.Unlock()

	for _, obj := range n.lines.Objects {
		for _, t := range texts(obj) {
			c := t.Color.(color.NRGBA)
			base := textColor.A
			if c.R == glowColor.R && c.G == glowColor.G && c.B == glowColor.B {
				base = glowColor.A
			}
			c.A = uint8(float32(base) * alpha)
			t.Color = c
			t.Refresh()
		}
	}
}

// texts returns the canvas.Text objects making up one rendered line.
func texts(obj fyne.CanvasObject) []*canvas.Text {
	switch o := obj.(type) {
	case *canvas.Text:
		return []*canvas.Text{o}
	case *fyne.Container:
		var out []*canvas.Text
		for _, child := range o.Objects {
			out = append(out, texts(child)...)
		}
		return out
	}
	return nil
}
