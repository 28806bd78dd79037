// Package crawl implements the fetch coordinator: a bounded worker pool
// that fetches job posting URLs under per-host politeness limits,
// extracts page content, and emits exactly one outcome per input URL.
package crawl

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/jonesrussell/jobtechs/internal/domain"
	"github.com/jonesrussell/jobtechs/internal/extract"
	"github.com/jonesrussell/jobtechs/internal/logger"
)

// Throttle grants per-host fetch slots, pacing requests to each host.
type Throttle interface {
	Acquire(ctx context.Context, hostKey string) (release func(), err error)
}

// Extractor pulls structured content out of a fetched page. The URL is the
// final one after redirects, which board-specific extraction dispatches on.
type Extractor interface {
	Extract(pageURL *url.URL, body []byte) (*extract.Content, error)
}

// Matcher finds known technology terms in page text.
type Matcher interface {
	Match(text string) []string
}

// RobotsPolicy answers whether a URL may be fetched.
type RobotsPolicy interface {
	IsAllowed(ctx context.Context, rawURL string) (bool, error)
}

// Coordinator fans a stream of URLs out to a fixed pool of workers. Each
// worker claims a URL, fetches it under the throttle, and emits a Result
// or a classified Failure. A failed URL never aborts the run.
type Coordinator struct {
	cfg       Config
	client    *http.Client
	throttle  Throttle
	robots    RobotsPolicy // nil disables robots checking
	extractor Extractor
	matcher   Matcher
	log       logger.Interface
}

// NewCoordinator creates a Coordinator with defaults applied.
func NewCoordinator(
	cfg Config,
	throttle Throttle,
	robots RobotsPolicy,
	extractor Extractor,
	matcher Matcher,
	log logger.Interface,
) *Coordinator {
	cfg = cfg.WithDefaults()

	return &Coordinator{
		cfg: cfg,
		client: &http.Client{
			CheckRedirect: RedirectPolicy(cfg.MaxRedirects),
		},
		throttle:  throttle,
		robots:    robots,
		extractor: extractor,
		matcher:   matcher,
		log:       log,
	}
}

// Run starts the worker pool over the URL stream and returns the outcome
// channel. The channel is closed once the stream is drained or the context
// is cancelled and all workers have stopped. URLs already in flight at
// cancellation run to completion; unclaimed URLs are dropped.
func (c *Coordinator) Run(ctx context.Context, urls <-chan string) <-chan domain.Outcome {
	out := make(chan domain.Outcome)

	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Concurrency; i++ {
		wg.Add(1)

		go func(workerID int) {
			defer wg.Done()
			c.worker(ctx, workerID, urls, out)
		}(i)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// worker claims URLs from the stream until it closes or the context is
// cancelled.
func (c *Coordinator) worker(ctx context.Context, workerID int, urls <-chan string, out chan<- domain.Outcome) {
	c.log.Debug("worker started", "worker_id", workerID)

	for {
		// Cancellation wins over a readable stream, so no new URL is
		// claimed once the run is stopping.
		select {
		case <-ctx.Done():
			c.log.Debug("worker stopping", "worker_id", workerID, "reason", ctx.Err().Error())
			return
		default:
		}

		select {
		case <-ctx.Done():
			c.log.Debug("worker stopping", "worker_id", workerID, "reason", ctx.Err().Error())
			return
		case raw, ok := <-urls:
			if !ok {
				c.log.Debug("worker stopping", "worker_id", workerID, "reason", "stream drained")
				return
			}

			out <- c.process(ctx, raw)
		}
	}
}

// process runs one URL through the full pipeline and returns its outcome.
func (c *Coordinator) process(ctx context.Context, raw string) domain.Outcome {
	jobURL, parseErr := domain.ParseJobURL(raw)
	if parseErr != nil {
		return failure(raw, domain.ClassInvalidURL, parseErr.Error(), "")
	}

	log := c.log.With("url", jobURL.Raw)

	if c.robots != nil {
		allowed, robotsErr := c.robots.IsAllowed(ctx, jobURL.Raw)
		if robotsErr != nil {
			log.Warn("robots check failed, assuming allowed", "error", robotsErr.Error())
		} else if !allowed {
			log.Info("skipping URL disallowed by robots.txt")
			return failure(jobURL.Raw, domain.ClassRobots, "disallowed by robots.txt", "")
		}
	}

	page, fetchErr := c.fetchWithRetry(ctx, jobURL)
	if fetchErr != nil {
		log.Info("fetch failed", "error", fetchErr.Error())
		return classifyFetchError(jobURL.Raw, fetchErr)
	}

	content, extractErr := c.extractor.Extract(page.finalURL, page.body)
	if extractErr != nil {
		var external *extract.ExternalPostingError
		if errors.As(extractErr, &external) {
			log.Info("posting hosted externally", "follow_up", external.FollowUp)
			return failure(jobURL.Raw, domain.ClassExternalPosting, extractErr.Error(), external.FollowUp)
		}

		log.Info("extraction failed", "error", extractErr.Error())
		return failure(jobURL.Raw, domain.ClassExtraction, extractErr.Error(), "")
	}

	result := &domain.Result{
		URL:     jobURL.Raw,
		Company: content.Company,
		Tools:   c.matcher.Match(content.Body),
		Website: content.Website,
	}

	log.Info("URL processed", "company", result.Company, "tools", len(result.Tools))

	return domain.NewResult(result)
}

// classifyFetchError maps a fetch error onto a failure classification.
func classifyFetchError(rawURL string, err error) domain.Outcome {
	var (
		statusErr *httpStatusError
		ctErr     *contentTypeError
	)

	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return failure(rawURL, domain.ClassRedirectLoop, err.Error(), "")
	case errors.As(err, &statusErr):
		return failure(rawURL, domain.ClassHTTPStatus, err.Error(), "")
	case errors.As(err, &ctErr):
		return failure(rawURL, domain.ClassContentType, err.Error(), "")
	default:
		return failure(rawURL, domain.ClassNetwork, err.Error(), "")
	}
}

func failure(rawURL string, class domain.Classification, message, followUp string) domain.Outcome {
	return domain.NewFailure(&domain.Failure{
		URL:      rawURL,
		Class:    class,
		Message:  message,
		FollowUp: followUp,
	})
}
