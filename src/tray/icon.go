package tray

import (
	_ "embed"
	"runtime"
)

// Sticky note drawn at 32x32. icon.ico wraps the same PNG for the Windows tray.
//
//go:embed icon.png
var iconPNG []byte

//go:embed icon.ico
var iconICO []byte

// Icon returns the tray icon in the format the platform tray expects.
func Icon() []byte {
	if runtime.GOOS == "windows" {
		return iconICO
	}
	return iconPNG
}
