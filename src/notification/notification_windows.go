//go:build windows

package notification

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	mbOK              = 0x00000000
	mbIconError       = 0x00000010
	mbIconInformation = 0x00000040
	mbSystemModal     = 0x00001000
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procMessageBoxW = user32.NewProc("MessageBoxW")
)

// ShowBlockingError displays a modal error dialog and returns after the user
// dismisses it.
func ShowBlockingError(title, message string) {
	messageBox(title, message, mbOK|mbIconError|mbSystemModal)
}

// ShowInfo displays a modal information dialog.
func ShowInfo(title, message string) {
	messageBox(title, message, mbOK|mbIconInformation)
}

func messageBox(title, message string, flags uintptr) {
	titlePtr, _ := windows.UTF16PtrFromString(title)
	msgPtr, _ := windows.UTF16PtrFromString(message)
	procMessageBoxW.Call(0, uintptr(unsafe.Pointer(msgPtr)), uintptr(unsafe.Pointer(titlePtr)), flags)
}
