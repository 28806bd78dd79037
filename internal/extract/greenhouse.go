package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// greenhouseHost is the board host for greenhouse.io postings. Postings
// have permanent URLs of the form
// https://boards.greenhouse.io/{company}/jobs/{id}, recorded in the og:url
// meta tag. Client companies embed the board on their own sites via a
// script from //boards.greenhouse.io/embed/job_board/js together with a
// numeric gh_jid query parameter.
const greenhouseHost = "boards.greenhouse.io"

const greenhouseEmbedMarker = "//boards.greenhouse.io/embed/job_board/js"

var greenhousePermalink = regexp.MustCompile(`^https://boards\.greenhouse\.io/([^/]+)/jobs/(\d+)$`)

// Greenhouse extracts postings hosted on boards.greenhouse.io and detects
// greenhouse embeds on client-company pages.
type Greenhouse struct{}

// Host implements boardExtractor.
func (g *Greenhouse) Host() string { return greenhouseHost }

// Extract implements Extractor.
func (g *Greenhouse) Extract(page *Page) (*Content, error) {
	permalink := metaContent(page.Doc, "meta[property='og:url']")
	if !greenhousePermalink.MatchString(permalink) {
		return nil, fmt.Errorf("greenhouse: %w", ErrNotJobPosting)
	}

	content := &Content{}

	// The header reads "at {Company}" and links back to the company's
	// own job list.
	company := cleanText(page.Doc.Find("#header .company-name").First().Text())
	content.Company = strings.TrimPrefix(company, "at ")

	if href, ok := page.Doc.Find("#header a").First().Attr("href"); ok {
		content.Website = siteURL(href)
	}

	content.Body = sectionText(page.Doc, "#content")
	if content.Body == "" {
		content.Body = visibleBodyText(page.Doc)
	}

	if content.Body == "" && content.Company == "" {
		return nil, fmt.Errorf("greenhouse: %w", ErrNothingExtracted)
	}

	return content, nil
}

// DetectExternal implements ExternalDetector. It recognizes a client page
// embedding the greenhouse board and reconstructs the board URL of the
// posting from the embed script's client id and the page's gh_jid.
func (g *Greenhouse) DetectExternal(page *Page) (string, bool) {
	jobID := page.URL.Query().Get("gh_jid")
	if jobID == "" {
		return "", false
	}

	src := scriptSrcContaining(page.Doc, greenhouseEmbedMarker)
	if src == "" {
		return "", false
	}

	srcURL, err := url.Parse(src)
	if err != nil {
		return "", false
	}

	clientID := srcURL.Query().Get("for")
	if clientID == "" {
		return "", false
	}

	q := url.Values{}
	q.Set("for", clientID)
	q.Set("token", jobID)

	return "https://" + greenhouseHost + "/embed/job_app?" + q.Encode(), true
}
