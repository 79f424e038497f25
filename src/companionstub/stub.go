// Package companionstub serves a scripted /status endpoint shaped like the
// lyric companion process, for running lyric-sync mode without Spotify.
package companionstub

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"floating-note/src/lyricsync"
)

// Stub holds the status served to pollers. It is safe for concurrent use.
type Stub struct {
	mu     sync.Mutex
	snap   lyricsync.Snapshot
	status int
	null   bool
	router *gin.Engine

	pausedByUser bool
}

func New() *Stub {
	gin.SetMode(gin.ReleaseMode)
	s := &Stub{status: http.StatusOK}
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/status", s.handleStatus)
	r.POST("/pause", s.handlePause)
	r.POST("/play", s.handlePlay)
	s.router = r
	return s
}

// Handler exposes the gin engine, for http.Server or httptest.
func (s *Stub) Handler() http.Handler { return s.router }

func (s *Stub) Set(snap lyricsync.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.null = false
}

// SetStatus makes /status answer with code and no usable body when code is
// not 2xx.
func (s *Stub) SetStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

// SetNull makes /status answer with a JSON null body.
func (s *Stub) SetNull(null bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.null = null
}

func (s *Stub) Snapshot() lyricsync.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Play walks through lines, one every interval, looping until ctx is done.
func (s *Stub) Play(ctx context.Context, track, artist string, lines []string, interval time.Duration) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; ; i = (i + 1) % len(lines) {
		s.mu.Lock()
		s.snap.Track = track
		s.snap.Artist = artist
		s.snap.CurrentLyric = lines[i]
		s.snap.IsPlaying = !s.pausedByUser
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Stub) handleStatus(c *gin.Context) {
	s.mu.Lock()
	snap, status, null := s.snap, s.status, s.null
	s.mu.Unlock()

	if status < 200 || status > 299 {
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	if null {
		c.Data(status, "application/json", []byte("null"))
		return
	}
	c.JSON(status, snap)
}

func (s *Stub) handlePause(c *gin.Context) {
	s.mu.Lock()
	s.snap.IsPlaying = false
	s.pausedByUser = true
	s.mu.Unlock()
	log.Printf("companionstub: paused")
	c.JSON(http.StatusOK, gin.H{"is_playing": false})
}

func (s *Stub) handlePlay(c *gin.Context) {
	s.mu.Lock()
	s.snap.IsPlaying = true
	s.pausedByUser = false
	s.mu.Unlock()
	log.Printf("companionstub: playing")
	c.JSON(http.StatusOK, gin.H{"is_playing": true})
}
