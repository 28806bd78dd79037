// Package sink writes scan outcomes to their destinations: results as
// CSV, failures as a tab-separated log, and a per-run summary table.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jonesrussell/jobtechs/internal/domain"
)

// resultsHeader is the column layout of the results CSV.
var resultsHeader = []string{"url", "company", "tools", "website"}

// ResultWriter streams Results to a CSV destination.
type ResultWriter struct {
	csv   *csv.Writer
	count int
}

// NewResultWriter creates a ResultWriter and writes the header row.
func NewResultWriter(w io.Writer) (*ResultWriter, error) {
	writer := &ResultWriter{csv: csv.NewWriter(w)}
	if err := writer.csv.Write(resultsHeader); err != nil {
		return nil, fmt.Errorf("write results header: %w", err)
	}

	return writer, nil
}

// Write appends one result row. Tools are joined with ", " inside a single
// CSV field.
func (w *ResultWriter) Write(r *domain.Result) error {
	row := []string{r.URL, r.Company, strings.Join(r.Tools, ", "), r.Website}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("write result row: %w", err)
	}

	w.count++

	return nil
}

// Count returns the number of result rows written so far.
func (w *ResultWriter) Count() int {
	return w.count
}

// Flush writes any buffered rows to the destination.
func (w *ResultWriter) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}

	return nil
}

// FailureWriter streams Failures to a tab-separated log, one line per
// failed URL. Lines with a follow-up URL carry it as a fourth column.
type FailureWriter struct {
	w       io.Writer
	byClass map[domain.Classification]int
}

// NewFailureWriter creates a FailureWriter.
func NewFailureWriter(w io.Writer) *FailureWriter {
	return &FailureWriter{
		w:       w,
		byClass: make(map[domain.Classification]int),
	}
}

// Write appends one failure line.
func (w *FailureWriter) Write(f *domain.Failure) error {
	line := f.URL + "\t" + string(f.Class) + "\t" + sanitize(f.Message)
	if f.FollowUp != "" {
		line += "\t" + f.FollowUp
	}

	if _, err := io.WriteString(w.w, line+"\n"); err != nil {
		return fmt.Errorf("write failure line: %w", err)
	}

	w.byClass[f.Class]++

	return nil
}

// Count returns the number of failure lines written so far.
func (w *FailureWriter) Count() int {
	var total int
	for _, n := range w.byClass {
		total += n
	}

	return total
}

// ByClass returns per-classification failure counts.
func (w *FailureWriter) ByClass() map[domain.Classification]int {
	counts := make(map[domain.Classification]int, len(w.byClass))
	for class, n := range w.byClass {
		counts[class] = n
	}

	return counts
}

// sanitize keeps failure messages on one line so the log stays one
// record per line.
func sanitize(message string) string {
	message = strings.ReplaceAll(message, "\t", " ")
	message = strings.ReplaceAll(message, "\n", " ")

	return message
}
