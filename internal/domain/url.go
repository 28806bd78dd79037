// Package domain defines the core types shared across the scan pipeline.
package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// JobURL is a validated absolute job-posting URL together with the
// normalized host key used as the unit of politeness throttling.
type JobURL struct {
	Raw     string
	Parsed  *url.URL
	HostKey string
}

// ParseJobURL validates a raw input line as an absolute http(s) URL.
func ParseJobURL(raw string) (*JobURL, error) {
	trimmed := strings.TrimSpace(raw)

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in url %q", parsed.Scheme, trimmed)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("missing host in url %q", trimmed)
	}

	return &JobURL{
		Raw:     trimmed,
		Parsed:  parsed,
		HostKey: HostKeyOf(parsed),
	}, nil
}

// HostKeyOf returns the normalized network authority (scheme://host[:port])
// of a parsed URL. Two URLs sharing a host key share throttling state.
func HostKeyOf(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}
