package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boardExtractor is an Extractor bound to a specific job-board host.
type boardExtractor interface {
	Extractor
	Host() string
}

// Registry dispatches pages to board-specific extractors by host, falling
// back to the generic extractor for unknown hosts. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	byHost    map[string]Extractor
	detectors []ExternalDetector
	generic   Extractor
}

// NewRegistry creates a registry with all known board extractors
// registered.
func NewRegistry() *Registry {
	r := &Registry{
		byHost:  make(map[string]Extractor),
		generic: NewGeneric(),
	}

	r.register(&Greenhouse{})
	r.register(&Newton{})
	r.register(&Indeed{})
	r.register(&Jobvite{})
	r.register(&Dice{})
	r.register(&Hirebridge{})

	return r
}

func (r *Registry) register(b boardExtractor) {
	r.byHost[b.Host()] = b
	if d, ok := b.(ExternalDetector); ok {
		r.detectors = append(r.detectors, d)
	}
}

// For returns the extractor registered for host, or the generic fallback.
func (r *Registry) For(host string) Extractor {
	if ex, ok := r.byHost[strings.ToLower(host)]; ok {
		return ex
	}
	return r.generic
}

// Extract parses the fetched body and dispatches it by the page's host.
// Pages on unknown hosts are first checked for embedded external postings;
// a detected embed is reported as an ExternalPostingError carrying the
// board URL.
func (r *Registry) Extract(pageURL *url.URL, body []byte) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := &Page{URL: pageURL, Body: body, Doc: doc}

	host := strings.ToLower(pageURL.Host)
	if ex, ok := r.byHost[host]; ok {
		return ex.Extract(page)
	}

	for _, d := range r.detectors {
		if followUp, ok := d.DetectExternal(page); ok {
			return nil, &ExternalPostingError{FollowUp: followUp}
		}
	}

	return r.generic.Extract(page)
}
