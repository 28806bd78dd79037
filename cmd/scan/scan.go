// Package scan implements the scan command: it reads a list of job
// posting URLs, runs them through the fetch coordinator, and writes
// results, failures, and a run summary.
package scan

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/jobtechs/internal/config"
	"github.com/jonesrussell/jobtechs/internal/crawl"
	"github.com/jonesrussell/jobtechs/internal/extract"
	"github.com/jonesrussell/jobtechs/internal/input"
	"github.com/jonesrussell/jobtechs/internal/logger"
	"github.com/jonesrussell/jobtechs/internal/sink"
	"github.com/jonesrussell/jobtechs/internal/terms"
	"github.com/jonesrussell/jobtechs/internal/throttle"
)

// Command returns the scan command for use in the root command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan job posting URLs for known technologies",
		Long: `Fetch each URL from the input list, extract the posting text and the
hiring company, and match the text against the configured term list.
Results are written as CSV; URLs that yield no result are logged with a
failure classification.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd, cfg)
		},
	}

	cmd.Flags().String("urls", "", `URL list file ("-" for stdin)`)
	cmd.Flags().String("terms", "", "technology term list file")
	cmd.Flags().String("output", "", `results CSV file (default stdout)`)
	cmd.Flags().String("failures", "", "failure log file")

	cobra.CheckErr(viper.BindPFlag("scan.urls_file", cmd.Flags().Lookup("urls")))
	cobra.CheckErr(viper.BindPFlag("scan.terms_file", cmd.Flags().Lookup("terms")))
	cobra.CheckErr(viper.BindPFlag("scan.output_file", cmd.Flags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("scan.failures_file", cmd.Flags().Lookup("failures")))

	return cmd
}

// run executes one scan: wire the pipeline, drain outcomes, render the
// summary.
func run(cmd *cobra.Command, cfg *config.Config) error {
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	runID := uuid.New().String()
	log = log.With("run_id", runID)

	termSet, err := terms.Load(cfg.Scan.TermsFile)
	if err != nil {
		return fmt.Errorf("load terms from %s: %w", cfg.Scan.TermsFile, err)
	}
	if cfg.Terms.MaxNgram > 0 {
		termSet.LimitMaxN(cfg.Terms.MaxNgram)
	}

	urlsFile, err := openInput(cfg.Scan.URLsFile)
	if err != nil {
		return fmt.Errorf("open urls file: %w", err)
	}
	defer urlsFile.Close()

	output, err := openOutput(cfg.Scan.OutputFile)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer output.Close()

	failuresFile, err := os.Create(cfg.Scan.FailuresFile)
	if err != nil {
		return fmt.Errorf("create failures file: %w", err)
	}
	defer failuresFile.Close()

	results, err := sink.NewResultWriter(output)
	if err != nil {
		return err
	}
	failures := sink.NewFailureWriter(failuresFile)

	// First interrupt stops claiming new URLs; in-flight fetches finish.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var robots crawl.RobotsPolicy
	if cfg.Crawl.RespectRobots {
		robots = crawl.NewRobotsChecker(
			&http.Client{Timeout: cfg.Crawl.RequestTimeout}, cfg.Crawl.UserAgent)
	}

	coordinator := crawl.NewCoordinator(
		cfg.Crawl.Config,
		throttle.New(cfg.Crawl.PerHostConcurrency, cfg.Crawl.PerHostInterval),
		robots,
		extract.NewRegistry(),
		termSet,
		log,
	)

	log.Info("scan starting",
		"terms", termSet.Len(),
		"concurrency", cfg.Crawl.Concurrency,
		"respect_robots", cfg.Crawl.RespectRobots)

	start := time.Now()

	for outcome := range coordinator.Run(ctx, input.Stream(ctx, urlsFile)) {
		switch {
		case outcome.Result != nil:
			if writeErr := results.Write(outcome.Result); writeErr != nil {
				return writeErr
			}
		case outcome.Failure != nil:
			if writeErr := failures.Write(outcome.Failure); writeErr != nil {
				return writeErr
			}
		}
	}

	if err := results.Flush(); err != nil {
		return err
	}

	log.Info("scan finished",
		"results", results.Count(),
		"failures", failures.Count(),
		"elapsed", time.Since(start).String())

	// The summary goes to stderr so a CSV stream on stdout stays clean.
	sink.RenderSummary(os.Stderr, sink.Summary{
		RunID:    runID,
		Results:  results.Count(),
		Failures: failures.ByClass(),
		Elapsed:  time.Since(start),
	})

	return nil
}

// openInput opens the URL list, with "-" meaning stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

// openOutput opens the results destination, with "" or "-" meaning stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
