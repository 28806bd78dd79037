package extract_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/jobtechs/internal/extract"
)

// employerPageHTML is a generic employer careers page.
const employerPageHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Senior Engineer - Exablox</title>
  <meta property="og:site_name" content="Exablox">
</head>
<body>
  <nav>Home | Careers</nav>
  <article>
    <h1>Senior Engineer</h1>
    <p>You will build distributed storage in Go and C++. Experience with Docker is a plus.
    We ship on Linux and care deeply about operational excellence. The role involves
    close collaboration with the platform team on performance and reliability work.</p>
  </article>
  <script>analytics.page();</script>
  <footer>© Exablox</footer>
</body>
</html>`

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

func TestRegistry_DispatchByHost(t *testing.T) {
	t.Parallel()

	r := extract.NewRegistry()

	assert.IsType(t, &extract.Greenhouse{}, r.For("boards.greenhouse.io"))
	assert.IsType(t, &extract.Indeed{}, r.For("www.indeed.com"))
	assert.IsType(t, &extract.Generic{}, r.For("careers.example.com"))

	// Host matching is case-insensitive.
	assert.IsType(t, &extract.Greenhouse{}, r.For("Boards.Greenhouse.IO"))
}

func TestRegistry_GenericFallback(t *testing.T) {
	t.Parallel()

	r := extract.NewRegistry()

	content, err := r.Extract(mustURL(t, "https://exablox.com/jobs/42"), []byte(employerPageHTML))
	require.NoError(t, err)

	assert.Equal(t, "Exablox", content.Company)
	assert.Equal(t, "https://exablox.com", content.Website)
	assert.Contains(t, content.Body, "distributed storage in Go")
	assert.NotContains(t, content.Body, "analytics.page")
}

func TestRegistry_DetectsEmbedOnUnknownHost(t *testing.T) {
	t.Parallel()

	r := extract.NewRegistry()

	_, err := r.Extract(
		mustURL(t, "https://pantheon.io/careers?gh_jid=619056"),
		[]byte(greenhouseEmbedHTML),
	)
	require.Error(t, err)

	var external *extract.ExternalPostingError
	require.ErrorAs(t, err, &external)
	assert.NotEmpty(t, external.FollowUp)
	assert.Contains(t, external.FollowUp, "boards.greenhouse.io")
}

func TestRegistry_BoardPageNotDetectedAsEmbed(t *testing.T) {
	t.Parallel()

	r := extract.NewRegistry()

	// A greenhouse-hosted page goes to the greenhouse extractor, not to
	// embed detection.
	content, err := r.Extract(
		mustURL(t, "https://boards.greenhouse.io/embed/job_app?for=pantheon&token=619056"),
		[]byte(greenhouseJobHTML),
	)
	require.NoError(t, err)
	assert.Equal(t, "Pantheon", content.Company)
}

func TestGeneric_EmptyPage(t *testing.T) {
	t.Parallel()

	g := extract.NewGeneric()
	page := newPage(t, "https://example.com/jobs/1", "<html><head></head><body></body></html>")

	_, err := g.Extract(page)
	require.ErrorIs(t, err, extract.ErrNothingExtracted)
}

func TestGeneric_NoCompanyGuess(t *testing.T) {
	t.Parallel()

	g := extract.NewGeneric()
	page := newPage(t, "https://example.com/jobs/1",
		"<html><body><p>We need a Go developer for backend services.</p></body></html>")

	content, err := g.Extract(page)
	require.NoError(t, err)

	// No og:site_name: company stays empty rather than guessed.
	assert.Empty(t, content.Company)
	assert.Equal(t, "https://example.com", content.Website)
}
