package extract

import (
	"fmt"
	"net/url"
	"regexp"
)

// Indeed extracts postings from www.indeed.com. A job page carries a
// handheld alternate link with a jk= job key; the company name sits in a
// span.company element and the description in span#job_summary. The
// company website is not present on the page.
type Indeed struct{}

var indeedJobKey = regexp.MustCompile(`[?&]jk=(\w+)`)

// Host implements boardExtractor.
func (i *Indeed) Host() string { return "www.indeed.com" }

// Extract implements Extractor.
func (i *Indeed) Extract(page *Page) (*Content, error) {
	alt, _ := page.Doc.Find(`link[rel='alternate'][media='handheld']`).First().Attr("href")
	if !indeedJobKey.MatchString(alt) {
		return nil, fmt.Errorf("indeed: %w", ErrNotJobPosting)
	}

	content := &Content{
		Company: cleanText(page.Doc.Find("span.company").First().Text()),
	}

	content.Body = sectionText(page.Doc, "span#job_summary")
	if content.Body == "" {
		content.Body = visibleBodyText(page.Doc)
	}

	if content.Body == "" && content.Company == "" {
		return nil, fmt.Errorf("indeed: %w", ErrNothingExtracted)
	}

	return content, nil
}

// Jobvite extracts postings from jobs.jobvite.com. Job pages live at
// /{company}/job/{id}; the company name is the alt text of the logo image.
type Jobvite struct{}

var jobvitePath = regexp.MustCompile(`^/([^/]+)/job/([^/?]+)$`)

// Host implements boardExtractor.
func (j *Jobvite) Host() string { return "jobs.jobvite.com" }

// Extract implements Extractor.
func (j *Jobvite) Extract(page *Page) (*Content, error) {
	if !jobvitePath.MatchString(page.URL.Path) {
		return nil, fmt.Errorf("jobvite: %w", ErrNotJobPosting)
	}

	content := &Content{
		Company: logoAlt(page, ".jv-logo a img"),
		// Job descriptions usually link back to the company's own site.
		Website: firstExternalLink(page.Doc, "a[href]"),
	}

	content.Body = visibleBodyText(page.Doc)
	if content.Body == "" && content.Company == "" {
		return nil, fmt.Errorf("jobvite: %w", ErrNothingExtracted)
	}

	return content, nil
}

// Dice extracts postings from www.dice.com. Job pages carry jobId and
// groupId meta tags; the company name is marked up with
// itemprop=hiringOrganization. The company website is on a separate page
// and not extracted.
type Dice struct{}

// Host implements boardExtractor.
func (d *Dice) Host() string { return "www.dice.com" }

// Extract implements Extractor.
func (d *Dice) Extract(page *Page) (*Content, error) {
	groupID := metaContent(page.Doc, "meta[name='groupId']")
	jobID := metaContent(page.Doc, "meta[name='jobId']")
	if groupID == "" || jobID == "" {
		return nil, fmt.Errorf("dice: %w", ErrNotJobPosting)
	}

	content := &Content{
		Company: cleanText(page.Doc.Find("li[itemprop='hiringOrganization'] span[itemprop='name']").First().Text()),
	}

	content.Body = visibleBodyText(page.Doc)
	if content.Body == "" && content.Company == "" {
		return nil, fmt.Errorf("dice: %w", ErrNothingExtracted)
	}

	return content, nil
}

// Hirebridge extracts postings from recruit.hirebridge.com. The og:url
// meta tag carries cid and jid query parameters identifying the posting.
type Hirebridge struct{}

// Host implements boardExtractor.
func (h *Hirebridge) Host() string { return "recruit.hirebridge.com" }

// Extract implements Extractor.
func (h *Hirebridge) Extract(page *Page) (*Content, error) {
	permalink := metaContent(page.Doc, "meta[property='og:url']")
	permURL, err := url.Parse(permalink)
	if err != nil || permURL.Query().Get("cid") == "" || permURL.Query().Get("jid") == "" {
		return nil, fmt.Errorf("hirebridge: %w", ErrNotJobPosting)
	}

	content := &Content{
		Company: logoAlt(page, "#logo h1 img"),
		Website: firstExternalLink(page.Doc, "#rightcol a[href]"),
	}

	content.Body = visibleBodyText(page.Doc)
	if content.Body == "" && content.Company == "" {
		return nil, fmt.Errorf("hirebridge: %w", ErrNothingExtracted)
	}

	return content, nil
}

// logoAlt returns the alt text of the first image matching selector.
func logoAlt(page *Page, selector string) string {
	alt, _ := page.Doc.Find(selector).First().Attr("alt")
	return cleanText(alt)
}
