// Package clipboard copies the note text for the tray's "Copy text" item.
package clipboard

import (
	"errors"
	"strings"
	"sync"

	"golang.design/x/clipboard"
)

var ErrNothingToCopy = errors.New("nothing to copy")

var (
	initOnce sync.Once
	initErr  error
	writeMu  sync.Mutex

	// writeFunc is swapped in tests.
	writeFunc = func(text string) {
		clipboard.Write(clipboard.FmtText, []byte(text))
	}
)

// Init prepares the system clipboard. It is safe to call more than once.
func Init() error {
	initOnce.Do(func() { initErr = clipboard.Init() })
	return initErr
}

// Write copies text, serialising concurrent writers. Blank text is refused.
func Write(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNothingToCopy
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	writeFunc(text)
	return nil
}
