package extract

import (
	"bytes"

	"github.com/go-shiori/go-readability"
)

// Generic extracts content from arbitrary employer pages. Body text comes
// from readability article extraction when possible, otherwise from all
// visible text on the page. Company name is best-effort from meta tags and
// left empty rather than guessed.
type Generic struct{}

// NewGeneric creates the generic fallback extractor.
func NewGeneric() *Generic {
	return &Generic{}
}

// Extract implements Extractor.
func (g *Generic) Extract(page *Page) (*Content, error) {
	content := &Content{
		Website: siteURL(page.URL.String()),
	}

	if name := metaContent(page.Doc, "meta[property='og:site_name']"); name != "" {
		content.Company = name
	}

	if article, err := readability.FromReader(bytes.NewReader(page.Body), page.URL); err == nil {
		content.Body = cleanText(article.TextContent)
	}

	if content.Body == "" {
		content.Body = visibleBodyText(page.Doc)
	}

	if content.Body == "" {
		return nil, ErrNothingExtracted
	}

	return content, nil
}
