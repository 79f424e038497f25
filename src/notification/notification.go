// Package notification shows modal message boxes. On platforms without a
// native dialog the message is logged instead.
package notification

import (
	"log"
	"sync"
)

var (
	shown   = map[string]bool{}
	shownMu sync.Mutex
)

// ShowErrorOnce shows a blocking error the first time key is seen and only
// logs it afterwards.
func ShowErrorOnce(key, title, message string) {
	shownMu.Lock()
	first := !shown[key]
	shown[key] = true
	shownMu.Unlock()

	if !first {
		log.Printf("%s (already reported): %s", title, message)
		return
	}
	ShowBlockingError(title, message)
}
