// Command companion-stub serves a scripted lyric status on the sync endpoint
// so lyric-sync mode can be run without a music player.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"floating-note/src/companionstub"
)

var defaultLines = []string{
	"First line of the song",
	"Second line, a little longer than the first",
	"Chorus!",
}

type stubOptions struct {
	addr      string
	track     string
	artist    string
	linesFile string
	interval  time.Duration
}

func main() {
	opts := &stubOptions{}
	if err := newRootCmd(opts).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *stubOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "companion-stub",
		Short:         "Serve a scripted /status endpoint for lyric-sync mode",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(opts.linesFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *opts, lines)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:8888", "Listen address")
	cmd.Flags().StringVar(&opts.track, "track", "Demo Track", "Track name")
	cmd.Flags().StringVar(&opts.artist, "artist", "Demo Artist", "Artist name")
	cmd.Flags().StringVar(&opts.linesFile, "lines", "", "Text file with one lyric line per line")
	cmd.Flags().DurationVar(&opts.interval, "interval", 2*time.Second, "Time each line stays current")
	return cmd
}

// readLines returns the non-blank lines of path, or the built-in lines when
// path is empty.
func readLines(path string) ([]string, error) {
	if path == "" {
		return defaultLines, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no lyric lines in %s", path)
	}
	return lines, nil
}

func serve(ctx context.Context, opts stubOptions, lines []string) error {
	stub := companionstub.New()
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           stub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go stub.Play(ctx, opts.track, opts.artist, lines, opts.interval)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("companion-stub: serving %q by %s on http://%s/status", opts.track, opts.artist, opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	log.Printf("companion-stub: shutting down")
	return srv.Shutdown(shutdownCtx)
}
