package domain

// Classification identifies why a URL failed to produce a Result.
type Classification string

// Failure classifications. Each is terminal for its URL; none abort the run.
const (
	ClassInvalidURL      Classification = "invalid_url"
	ClassNetwork         Classification = "network_error"
	ClassHTTPStatus      Classification = "http_status"
	ClassRedirectLoop    Classification = "redirect_loop"
	ClassExternalPosting Classification = "external_posting"
	ClassExtraction      Classification = "extraction_error"
	ClassContentType     Classification = "unsupported_content_type"
	ClassRobots          Classification = "robots_disallowed"
)

// Result is the terminal success record for one input URL.
type Result struct {
	URL     string
	Company string
	Tools   []string
	Website string
}

// Failure is the terminal error record for one input URL. FollowUp carries
// the discovered external posting URL when Class is ClassExternalPosting.
// The crawl never re-enqueues a follow-up URL; acting on it is the caller's
// decision based on the failure log.
type Failure struct {
	URL      string
	Class    Classification
	Message  string
	FollowUp string
}

// Outcome holds exactly one of Result or Failure. Every accepted input URL
// produces exactly one Outcome.
type Outcome struct {
	Result  *Result
	Failure *Failure
}

// NewResult wraps a Result in an Outcome.
func NewResult(r *Result) Outcome {
	return Outcome{Result: r}
}

// NewFailure wraps a Failure in an Outcome.
func NewFailure(f *Failure) Outcome {
	return Outcome{Failure: f}
}
