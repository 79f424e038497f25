package lyricsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultEndpoint = "http://127.0.0.1:8888/status"
	DefaultTimeout  = 100 * time.Millisecond

	maxBodyBytes = 64 * 1024
)

var (
	// ErrUnexpectedStatus is returned for a non-2xx reply. The poller ignores
	// it rather than switching to the waiting message.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrEmptyPayload is returned when the body decodes to JSON null.
	ErrEmptyPayload = errors.New("empty payload")
)

// Snapshot is one decoded status reply from the companion process.
type Snapshot struct {
	IsPlaying    bool   `json:"is_playing"`
	Track        string `json:"track"`
	Artist       string `json:"artist"`
	CurrentLyric string `json:"current_lyric"`
}

// Fetcher returns the companion's current status.
type Fetcher interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// Client polls the companion status endpoint. One Client, and so one
// http.Client and its idle connections, is reused for every poll.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
}

// NewClient returns a client for endpoint with a hard per-request timeout.
// Empty or non-positive arguments use the defaults.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 1
	transport.Proxy = nil
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
		http:     &http.Client{Transport: transport},
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

// Fetch performs a single GET bounded by the client timeout and ctx.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build status request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var snap *Snapshot
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode status: %w", err)
	}
	if snap == nil {
		return Snapshot{}, ErrEmptyPayload
	}
	return *snap, nil
}
