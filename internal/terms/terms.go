// Package terms implements the term configuration and the n-gram matcher
// that scans extracted job text for configured tool names.
package terms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoTerms is returned when the terms file contains no usable terms.
var ErrNoTerms = errors.New("no terms configured")

// TermSet maps normalized surface forms to canonical tool names.
// It is loaded once and read-only afterwards, so it is safe for
// concurrent use by many fetch workers.
type TermSet struct {
	index map[string]string
	maxN  int
}

// Load reads a TermSet from the given file.
func Load(path string) (*TermSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open terms file: %w", err)
	}
	defer f.Close()

	ts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse terms file %s: %w", path, err)
	}
	return ts, nil
}

// Parse reads terms from r, one per line. Blank lines and lines starting
// with # are skipped. A line is either a bare term ("Docker") or a
// canonical name with aliases ("JavaScript: js, ecmascript"). Every
// surface form maps back to its canonical name.
func Parse(r io.Reader) (*TermSet, error) {
	ts := &TermSet{
		index: make(map[string]string),
		maxN:  1,
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		canonical := line
		surfaces := []string{line}

		if name, aliases, found := strings.Cut(line, ":"); found {
			canonical = strings.TrimSpace(name)
			surfaces = surfaces[:0]
			surfaces = append(surfaces, canonical)
			for _, alias := range strings.Split(aliases, ",") {
				if alias = strings.TrimSpace(alias); alias != "" {
					surfaces = append(surfaces, alias)
				}
			}
		}

		if canonical == "" {
			continue
		}

		for _, surface := range surfaces {
			ts.add(canonical, surface)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read terms: %w", err)
	}

	if len(ts.index) == 0 {
		return nil, ErrNoTerms
	}

	return ts, nil
}

// add indexes one surface form under its canonical name. The surface is
// normalized and tokenized the same way as scanned text, so lookups are
// exact n-gram matches.
func (ts *TermSet) add(canonical, surface string) {
	tokens := tokenize(normalize(surface))
	if len(tokens) == 0 {
		return
	}

	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.text
	}

	ts.index[strings.Join(words, " ")] = canonical

	if len(words) > ts.maxN {
		ts.maxN = len(words)
	}
}

// Len returns the number of indexed surface forms.
func (ts *TermSet) Len() int {
	return len(ts.index)
}

// MaxN returns the n-gram window size, derived from the longest
// configured surface form.
func (ts *TermSet) MaxN() int {
	return ts.maxN
}

// LimitMaxN caps the n-gram window size. Surface forms longer than n
// words can no longer match. A non-positive n is ignored.
func (ts *TermSet) LimitMaxN(n int) {
	if n > 0 && n < ts.maxN {
		ts.maxN = n
	}
}
