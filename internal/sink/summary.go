package sink

import (
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/jobtechs/internal/domain"
)

// Summary aggregates one scan run for display.
type Summary struct {
	RunID    string
	Results  int
	Failures map[domain.Classification]int
	Elapsed  time.Duration
}

// Total returns the number of outcomes in the run.
func (s Summary) Total() int {
	total := s.Results
	for _, n := range s.Failures {
		total += n
	}

	return total
}

// RenderSummary formats and displays the run summary in a table.
func RenderSummary(w io.Writer, s Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("scan %s", s.RunID)

	t.AppendHeader(table.Row{"Outcome", "Count"})
	t.AppendRow(table.Row{"results", s.Results})

	classes := make([]domain.Classification, 0, len(s.Failures))
	for class := range s.Failures {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	for _, class := range classes {
		t.AppendRow(table.Row{string(class), s.Failures[class]})
	}

	t.AppendFooter(table.Row{"total", s.Total()})
	t.AppendFooter(table.Row{"elapsed", s.Elapsed.Round(time.Millisecond)})

	t.Render()
}
