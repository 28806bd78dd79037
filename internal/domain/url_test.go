package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/jobtechs/internal/domain"
)

func TestParseJobURL(t *testing.T) {
	jobURL, err := domain.ParseJobURL("  https://Boards.Greenhouse.io/acme/jobs/123?t=1  ")
	require.NoError(t, err)

	assert.Equal(t, "https://Boards.Greenhouse.io/acme/jobs/123?t=1", jobURL.Raw)
	assert.Equal(t, "https://boards.greenhouse.io", jobURL.HostKey)
	assert.Equal(t, "/acme/jobs/123", jobURL.Parsed.Path)
}

func TestParseJobURL_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"relative path", "jobs/123"},
		{"missing scheme", "example.com/jobs/1"},
		{"ftp scheme", "ftp://example.com/jobs"},
		{"scheme only", "https://"},
		{"not a url", "half a sentence with spaces"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.ParseJobURL(tc.raw)
			require.Error(t, err)
		})
	}
}

func TestHostKeyOf_PortsDiffer(t *testing.T) {
	a, err := domain.ParseJobURL("http://example.com:8080/a")
	require.NoError(t, err)
	b, err := domain.ParseJobURL("http://example.com/b")
	require.NoError(t, err)

	assert.NotEqual(t, a.HostKey, b.HostKey, "different ports are different hosts")
}
