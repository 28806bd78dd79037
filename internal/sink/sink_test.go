package sink_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/jobtechs/internal/domain"
	"github.com/jonesrussell/jobtechs/internal/sink"
)

func TestResultWriter(t *testing.T) {
	var buf strings.Builder

	writer, err := sink.NewResultWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, writer.Write(&domain.Result{
		URL:     "https://boards.greenhouse.io/acme/jobs/123",
		Company: "Acme, Inc.",
		Tools:   []string{"Go", "PostgreSQL", "Docker"},
		Website: "https://acme.example",
	}))
	require.NoError(t, writer.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "url,company,tools,website", lines[0])
	assert.Equal(t, `https://boards.greenhouse.io/acme/jobs/123,"Acme, Inc.","Go, PostgreSQL, Docker",https://acme.example`, lines[1])
	assert.Equal(t, 1, writer.Count())
}

func TestFailureWriter(t *testing.T) {
	var buf strings.Builder

	writer := sink.NewFailureWriter(&buf)

	require.NoError(t, writer.Write(&domain.Failure{
		URL:     "https://example.com/gone",
		Class:   domain.ClassHTTPStatus,
		Message: "http status 404 Not Found",
	}))
	require.NoError(t, writer.Write(&domain.Failure{
		URL:      "https://example.com/careers",
		Class:    domain.ClassExternalPosting,
		Message:  "external job posting found",
		FollowUp: "https://boards.greenhouse.io/embed/job_app?for=acme&token=42",
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "https://example.com/gone\thttp_status\thttp status 404 Not Found", lines[0])
	assert.Equal(t, "https://example.com/careers\texternal_posting\texternal job posting found\thttps://boards.greenhouse.io/embed/job_app?for=acme&token=42", lines[1])

	assert.Equal(t, 2, writer.Count())
	assert.Equal(t, 1, writer.ByClass()[domain.ClassExternalPosting])
}

func TestFailureWriter_SanitizesMessage(t *testing.T) {
	var buf strings.Builder

	writer := sink.NewFailureWriter(&buf)
	require.NoError(t, writer.Write(&domain.Failure{
		URL:     "https://example.com/a",
		Class:   domain.ClassNetwork,
		Message: "read tcp:\nconnection\treset",
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1, "message must stay on one line")
	assert.Equal(t, "https://example.com/a\tnetwork_error\tread tcp: connection reset", lines[0])
}

func TestRenderSummary(t *testing.T) {
	var buf strings.Builder

	sink.RenderSummary(&buf, sink.Summary{
		RunID:   "a1b2c3",
		Results: 7,
		Failures: map[domain.Classification]int{
			domain.ClassHTTPStatus: 2,
			domain.ClassNetwork:    1,
		},
		Elapsed: 1500 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "scan a1b2c3")
	assert.Contains(t, out, "results")
	assert.Contains(t, out, "http_status")
	assert.Contains(t, out, "network_error")
	assert.Contains(t, out, "10") // total
	assert.Contains(t, out, "1.5s")
}
