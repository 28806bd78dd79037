// Package input reads the URL list handed to the crawl. One URL per
// line; blank lines and lines starting with # are skipped.
package input

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Stream reads URLs from r and sends them on the returned channel,
// skipping blanks and comments. The channel is closed at EOF or when ctx
// is cancelled, so the full list is never materialized in memory.
func Stream(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), " \t\r")
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// ReadAll collects all good lines from r. Intended for small lists and
// tests; Stream is the streaming entry point.
func ReadAll(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	return lines, scanner.Err()
}
