// Package extract maps fetched job pages to {company, body text, website}
// content. A registry dispatches by host to a board-specific extractor or
// to the generic fallback. Extractors are pure and synchronous; they never
// perform I/O.
package extract

import (
	"errors"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// Content is what an extractor pulls out of one fetched page. Company and
// Website are best-effort and may be empty; Body is required for a page to
// count as extracted.
type Content struct {
	Company string
	Website string
	Body    string
}

// Page bundles the fetched page handed to an extractor. Doc is the parsed
// form of Body.
type Page struct {
	URL  *url.URL
	Body []byte
	Doc  *goquery.Document
}

// Extractor extracts content from one fetched page.
type Extractor interface {
	Extract(page *Page) (*Content, error)
}

// ExternalDetector recognizes pages that embed a job posting hosted on a
// known external board without an HTTP redirect, and reconstructs the
// board URL of the posting.
type ExternalDetector interface {
	DetectExternal(page *Page) (followUp string, ok bool)
}

// ErrNotJobPosting is returned for pages on a known board that do not
// contain a job posting.
var ErrNotJobPosting = errors.New("page is not a job posting")

// ErrNothingExtracted is returned when a page yields no usable content,
// typically because the posting is no longer active.
var ErrNothingExtracted = errors.New("nothing extracted; the posting may no longer be active")

// ExternalPostingError reports a page whose content references a job
// posting hosted elsewhere. FollowUp is the reconstructed board URL.
type ExternalPostingError struct {
	FollowUp string
}

func (e *ExternalPostingError) Error() string {
	return "external job posting found at " + e.FollowUp
}
