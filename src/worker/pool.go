package worker

import (
	"context"
	"errors"
	"log"
	"sync"

	"floating-note/src/lyricsync"
)

// ResultCallback is invoked on poll completion (from a worker goroutine).
// The event loop should pass a closure that posts back into the event loop safely.
type ResultCallback func(snap lyricsync.Snapshot, err error)

// Pool runs status polls on a fixed set of workers with a 1-slot input queue
// (strict back-pressure). With one worker at most one poll is in flight and
// one waits.
type Pool struct {
	fetcher lyricsync.Fetcher
	jobs    chan job
	wg      sync.WaitGroup
}

var errPanicked = errors.New("poll panicked")

type job struct {
	ctx context.Context
	cb  ResultCallback
}

// New creates a worker pool. Size defaults to 1 when size<=0. Queue is 1 slot.
func New(size int, fetcher lyricsync.Fetcher) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{fetcher: fetcher, jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				snap, err := p.fetch(j.ctx)
				j.cb(snap, err)
			}
		}()
	}
}

func (p *Pool) fetch(ctx context.Context) (snap lyricsync.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Worker: poll panicked: %v", r)
			err = errPanicked
		}
	}()
	if err := ctx.Err(); err != nil {
		return lyricsync.Snapshot{}, err
	}
	return p.fetcher.Fetch(ctx)
}

// Submit enqueues a poll if the single-slot queue is free. Returns false if dropped.
func (p *Pool) Submit(ctx context.Context, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
