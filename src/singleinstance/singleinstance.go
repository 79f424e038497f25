// Package singleinstance keeps one resident note per user. The resident
// listens on a loopback port; a second launch finds it there and hands over
// a command instead of opening another window.
package singleinstance

import (
	"errors"
	"strings"
)

const (
	residentHost = "127.0.0.1"
	pingRequest  = "PING\n"
	pongResponse = "PONG\n"
	okResponse   = "OK\n"
	errResponse  = "ERROR\n"
)

// Command is what a second launch asks the resident to do.
type Command string

const (
	CommandShow   Command = "SHOW"
	CommandToggle Command = "TOGGLE"
)

var ErrUnknownCommand = errors.New("unknown command")

func parseCommand(line string) (Command, error) {
	switch c := Command(strings.TrimSpace(line)); c {
	case CommandShow, CommandToggle:
		return c, nil
	}
	return "", ErrUnknownCommand
}
