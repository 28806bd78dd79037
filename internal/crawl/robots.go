package crawl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"
)

// robotsTxtPath is the well-known path for robots.txt files.
const robotsTxtPath = "/robots.txt"

// maxRobotsBodyBytes limits the size of robots.txt responses we will read.
const maxRobotsBodyBytes = 512 * 1024 // 512 KB

// RobotsChecker checks and caches robots.txt rules per host. A scan run
// is short-lived, so entries are cached for the lifetime of the checker
// without expiry.
type RobotsChecker struct {
	httpClient *http.Client
	userAgent  string
	cache      map[string]*robotsEntry // keyed by host
	mu         sync.RWMutex
}

// robotsEntry stores the parsed robots.txt data for a host.
type robotsEntry struct {
	data     *robotstxt.RobotsData
	allowAll bool // true if robots.txt was missing or errored (allow all)
}

// NewRobotsChecker creates a new RobotsChecker.
func NewRobotsChecker(httpClient *http.Client, userAgent string) *RobotsChecker {
	return &RobotsChecker{
		httpClient: httpClient,
		userAgent:  userAgent,
		cache:      make(map[string]*robotsEntry),
	}
}

// IsAllowed checks if the given URL is allowed by the host's robots.txt.
// It fetches and caches robots.txt on the first request for a host.
// Missing or errored robots.txt results in allow all (standard practice).
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, parseErr := url.Parse(rawURL)
	if parseErr != nil {
		return false, fmt.Errorf("robots: parse url: %w", parseErr)
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return false, fmt.Errorf("robots: empty host in url %q", rawURL)
	}

	entry := r.getOrFetch(ctx, host, parsed.Scheme)
	if entry.allowAll {
		return true, nil
	}

	return entry.data.TestAgent(parsed.Path, r.userAgent), nil
}

// getOrFetch returns the cached entry for the host, fetching and caching
// robots.txt if not yet seen.
func (r *RobotsChecker) getOrFetch(ctx context.Context, host, scheme string) *robotsEntry {
	r.mu.RLock()
	entry, ok := r.cache[host]
	r.mu.RUnlock()

	if ok {
		return entry
	}

	entry = r.fetch(ctx, host, scheme)

	r.mu.Lock()
	r.cache[host] = entry
	r.mu.Unlock()

	return entry
}

// fetch retrieves and parses robots.txt for the host. Any fetch or parse
// failure degrades to an allow-all entry.
func (r *RobotsChecker) fetch(ctx context.Context, host, scheme string) *robotsEntry {
	if scheme == "" {
		scheme = "https"
	}

	robotsURL := scheme + "://" + host + robotsTxtPath

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, http.NoBody)
	if reqErr != nil {
		return &robotsEntry{allowAll: true}
	}

	req.Header.Set("User-Agent", r.userAgent)

	resp, doErr := r.httpClient.Do(req)
	if doErr != nil {
		return &robotsEntry{allowAll: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &robotsEntry{allowAll: true}
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if readErr != nil {
		return &robotsEntry{allowAll: true}
	}

	data, parseErr := robotstxt.FromBytes(body)
	if parseErr != nil {
		return &robotsEntry{allowAll: true}
	}

	return &robotsEntry{data: data}
}
