package singleinstance

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"time"
)

const defaultDialTimeout = 300 * time.Millisecond

// Ping reports whether a resident answers on port.
func Ping(ctx context.Context, port int) bool {
	timeout := timeoutFrom(ctx)
	conn, err := net.DialTimeout("tcp", address(port), timeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))
	if _, err := io.WriteString(conn, pingRequest); err != nil {
		return false
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	return err == nil && resp == pongResponse
}

// Delegate sends cmd to the resident on port. delegated is false when no
// resident answered; err carries a failure the resident reported.
func Delegate(ctx context.Context, port int, cmd Command) (delegated bool, err error) {
	if !Ping(ctx, port) {
		return false, nil
	}
	timeout := timeoutFrom(ctx)
	conn, err := net.DialTimeout("tcp", address(port), timeout)
	if err != nil {
		return false, nil
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))

	if _, err := io.WriteString(conn, string(cmd)+"\n"); err != nil {
		return true, err
	}
	br := bufio.NewReader(conn)
	status, err := br.ReadString('\n')
	if err != nil {
		return true, err
	}
	switch status {
	case okResponse:
		return true, nil
	case errResponse:
		msg, _ := io.ReadAll(br)
		return true, errors.New(string(msg))
	}
	return true, errors.New("unexpected response " + strconv.Quote(status))
}

func address(port int) string {
	return net.JoinHostPort(residentHost, strconv.Itoa(port))
}

func timeoutFrom(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			return d
		}
	}
	return defaultDialTimeout
}
