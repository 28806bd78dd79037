package extract

import (
	"fmt"
	"net/url"
	"regexp"
)

// newtonHost serves Newton Software postings. Posting pages are addressed
// by clientId and id query parameters and carry an indeed-apply widget
// whose data attributes name the company and its continue URL. Client
// companies embed postings via an iframe script from
// //newton.newtonsoftware.com/career/iframe.action plus gnk=job and gni
// query parameters.
const newtonHost = "newton.newtonsoftware.com"

const newtonEmbedMarker = "//newton.newtonsoftware.com/career/iframe.action"

var newtonIDPattern = regexp.MustCompile(`^\w+$`)

// Newton extracts postings hosted on newton.newtonsoftware.com and
// detects newton embeds on client-company pages.
type Newton struct{}

// Host implements boardExtractor.
func (n *Newton) Host() string { return newtonHost }

// Extract implements Extractor.
func (n *Newton) Extract(page *Page) (*Content, error) {
	q := page.URL.Query()
	clientID := q.Get("clientId")
	jobID := q.Get("id")

	if !newtonIDPattern.MatchString(clientID) || !newtonIDPattern.MatchString(jobID) ||
		page.Doc.Find("table#gnewtonJobDescription").Length() == 0 {
		return nil, fmt.Errorf("newton: %w", ErrNotJobPosting)
	}

	content := &Content{}

	widget := page.Doc.Find("span#indeed-apply-widget").First()
	if company, ok := widget.Attr("data-indeed-apply-jobcompanyname"); ok {
		content.Company = cleanText(company)
	}
	if continueURL, ok := widget.Attr("data-indeed-apply-continueurl"); ok {
		content.Website = siteURL(continueURL)
	}

	content.Body = sectionText(page.Doc, "td#gnewtonJobDescriptionText")
	if content.Body == "" {
		content.Body = visibleBodyText(page.Doc)
	}

	if content.Body == "" && content.Company == "" {
		return nil, fmt.Errorf("newton: %w", ErrNothingExtracted)
	}

	return content, nil
}

// DetectExternal implements ExternalDetector.
func (n *Newton) DetectExternal(page *Page) (string, bool) {
	q := page.URL.Query()
	if q.Get("gnk") != "job" || q.Get("gni") == "" {
		return "", false
	}

	src := scriptSrcContaining(page.Doc, newtonEmbedMarker)
	if src == "" {
		return "", false
	}

	srcURL, err := url.Parse(src)
	if err != nil {
		return "", false
	}

	clientID := srcURL.Query().Get("clientId")
	if clientID == "" {
		return "", false
	}

	follow := url.Values{}
	follow.Set("clientId", clientID)
	follow.Set("id", q.Get("gni"))
	follow.Set("source", "Indeed")

	return "https://" + newtonHost + "/career/JobIntroduction.action?" + follow.Encode(), true
}
