package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// siteURL reduces a raw URL to its scheme://host form, the best-effort
// notion of "company website". Returns "" for unparseable input.
func siteURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + strings.ToLower(u.Host)
}

// cleanText collapses all runs of whitespace to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// nonContentSelectors lists elements stripped before extracting body text.
const nonContentSelectors = "script, style, noscript, nav, header, footer"

// visibleBodyText extracts all visible text from the document body with
// non-content elements removed.
func visibleBodyText(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	body.Find(nonContentSelectors).Remove()
	return cleanText(body.Text())
}

// sectionText extracts the text of the first node matching selector, with
// scripts and styles removed. Returns "" when the selector matches nothing.
func sectionText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	sel.Find("script, style").Remove()
	return cleanText(sel.Text())
}

// metaContent returns the content attribute of the first node matching
// selector.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// scriptSrcContaining returns the src of the first script tag whose src
// contains marker.
func scriptSrcContaining(doc *goquery.Document, marker string) string {
	var found string
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if strings.Contains(src, marker) {
			found = src
			return false
		}
		return true
	})
	return found
}

// firstExternalLink returns the first absolute http(s) link within the
// given selector scope, reduced to its site URL.
func firstExternalLink(doc *goquery.Document, selector string) string {
	var found string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			found = siteURL(href)
			return false
		}
		return true
	})
	return found
}
