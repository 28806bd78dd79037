package crawl

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTooManyRedirects is returned when a fetch exceeds the configured
// redirect hop limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// RedirectPolicy returns an http.Client CheckRedirect function that
// follows at most maxRedirects hops and carries the User-Agent header
// across them.
func RedirectPolicy(maxRedirects int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("%w: stopped after %d hops", ErrTooManyRedirects, maxRedirects)
		}
		if len(via) > 0 {
			req.Header.Set("User-Agent", via[0].Header.Get("User-Agent"))
		}
		return nil
	}
}
