// Package hotkey toggles the note window from a global key combination.
package hotkey

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
)

type key struct {
	name     string
	rawcodes []uint16
}

// Combo is a parsed key combination such as "Ctrl+Alt+N".
type Combo struct {
	spec string
	keys []key
}

// Parse turns a "+"-separated combination into rawcodes. Every part must map.
func Parse(spec string) (Combo, error) {
	names := parseHotkey(spec)
	if len(names) == 0 {
		return Combo{}, fmt.Errorf("empty hotkey %q", spec)
	}
	c := Combo{spec: spec}
	for _, name := range names {
		codes := keyNameToRawcodes(name)
		if len(codes) == 0 {
			return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", spec, name)
		}
		c.keys = append(c.keys, key{name: name, rawcodes: codes})
	}
	return c, nil
}

func (c Combo) String() string { return c.spec }

// matcher tracks which keys of a combo are held down.
type matcher struct {
	mu      sync.Mutex
	combo   Combo
	pressed []bool
}

func newMatcher(c Combo) *matcher {
	return &matcher{combo: c, pressed: make([]bool, len(c.keys))}
}

// keyDown records rawcode and reports whether the whole combo is now held.
// A match clears the state so holding the keys fires once.
func (m *matcher) keyDown(rawcode uint16) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(rawcode, true)
	for _, p := range m.pressed {
		if !p {
			return false
		}
	}
	for i := range m.pressed {
		m.pressed[i] = false
	}
	return true
}

func (m *matcher) keyUp(rawcode uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(rawcode, false)
}

func (m *matcher) set(rawcode uint16, down bool) {
	for i, k := range m.combo.keys {
		for _, rc := range k.rawcodes {
			if rc == rawcode {
				m.pressed[i] = down
				break
			}
		}
	}
}

// Listen calls callback each time the combination is pressed, until ctx is
// cancelled. It returns once the hook goroutine is running.
func Listen(ctx context.Context, spec string, callback func()) error {
	combo, err := Parse(spec)
	if err != nil {
		return err
	}
	m := newMatcher(combo)
	log.Printf("Hotkey listener configured for: %s", combo)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}
		defer gohook.End()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-evChan:
				if !ok {
					log.Printf("Hotkey event channel closed")
					return
				}
				switch ev.Kind {
				case gohook.KeyDown:
					if m.keyDown(ev.Rawcode) {
						log.Printf("Hotkey %s activated", combo)
						if callback != nil {
							callback()
						}
					}
				case gohook.KeyUp:
					m.keyUp(ev.Rawcode)
				}
			}
		}
	}()
	return nil
}

// parseHotkey converts "Ctrl+Alt+n" to normalized key names.
func parseHotkey(spec string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(spec), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "control":
			part = "ctrl"
		case "win", "super":
			part = "cmd"
		}
		keys = append(keys, part)
	}
	return keys
}

var specialKeys = map[string][]uint16{
	// modifiers map to both left and right variants
	"ctrl":  {162, 163},
	"alt":   {164, 165},
	"shift": {160, 161},
	"cmd":   {91, 92},
	"win":   {91, 92},
	"super": {91, 92},

	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"del":       {46},
	"insert":    {45},
	"ins":       {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pgup":      {33},
	"pagedown":  {34},
	"pgdn":      {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

// keyNameToRawcodes maps a key name to Windows virtual key codes.
func keyNameToRawcodes(name string) []uint16 {
	name = strings.ToLower(strings.TrimSpace(name))
	if codes, ok := specialKeys[name]; ok {
		return codes
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c-'a') + 65}
		case c >= '0' && c <= '9':
			return []uint16{uint16(c-'0') + 48}
		}
	}
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 24 && name == fmt.Sprintf("f%d", n) {
		return []uint16{uint16(111 + n)}
	}
	log.Printf("WARNING: Unknown key name '%s', cannot map to rawcode", name)
	return nil
}
