package singleinstance

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

// Request is one delegated command. Reply must be called exactly once.
type Request struct {
	Command Command
	conn    net.Conn
	w       *bufio.Writer
}

// Reply acknowledges the command; a non-nil err is sent back to the caller.
func (r Request) Reply(err error) error {
	defer r.conn.Close()
	msg := okResponse
	if err != nil {
		msg = errResponse + err.Error()
	}
	if _, werr := r.w.WriteString(msg); werr != nil {
		return werr
	}
	return r.w.Flush()
}

type Server struct {
	lis      net.Listener
	port     int
	incoming chan Request
	once     sync.Once
}

// Listen claims port on loopback. It fails if another resident holds it.
func Listen(ctx context.Context, port int) (*Server, error) {
	addr := fmt.Sprintf("%s:%d", residentHost, port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("singleinstance: failed to bind %s: %v", addr, err)
		return nil, err
	}
	s := &Server{
		lis:      lis,
		port:     lis.Addr().(*net.TCPAddr).Port,
		incoming: make(chan Request, 8),
	}
	log.Printf("singleinstance: listening on %s", lis.Addr())
	go s.acceptLoop(ctx)
	return s, nil
}

func (s *Server) Port() int { return s.port }

func (s *Server) acceptLoop(ctx context.Context) {
	defer close(s.incoming)
	for {
		c, err := s.lis.Accept()
		if err != nil {
			return
		}
		remote := c.RemoteAddr().String()
		_ = c.SetDeadline(time.Now().Add(3 * time.Second))
		line, _ := bufio.NewReader(c).ReadString('\n')
		bw := bufio.NewWriter(c)

		if line == pingRequest {
			_, _ = bw.WriteString(pongResponse)
			_ = bw.Flush()
			_ = c.Close()
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			log.Printf("singleinstance: bad request %q from %s", line, remote)
			_, _ = bw.WriteString(errResponse + err.Error())
			_ = bw.Flush()
			_ = c.Close()
			continue
		}
		log.Printf("singleinstance: %s from %s", cmd, remote)
		_ = c.SetDeadline(time.Time{})
		select {
		case s.incoming <- Request{Command: cmd, conn: c, w: bw}:
		case <-ctx.Done():
			_ = c.Close()
			return
		}
	}
}

// Next returns the next delegated command, or an error once ctx is done or
// the server is closed.
func (s *Server) Next(ctx context.Context) (Request, error) {
	select {
	case <-ctx.Done():
		return Request{}, ctx.Err()
	case r, ok := <-s.incoming:
		if !ok {
			return Request{}, net.ErrClosed
		}
		return r, nil
	}
}

func (s *Server) Close() error {
	var err error
	s.once.Do(func() { err = s.lis.Close() })
	return err
}
