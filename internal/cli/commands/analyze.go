package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tfa/internal/cache"
	"tfa/internal/config"
	"tfa/internal/diff"
	"tfa/internal/domain"
	"tfa/internal/parser"
	"tfa/internal/report"
	"tfa/internal/storage"
	"tfa/internal/travis"
	"tfa/internal/ui"
)

// AnalyzeCommand handles the default analyze pipeline
type AnalyzeCommand struct {
	config    *config.Config
	client    *travis.Client
	cache     *cache.LogCache
	parser    *parser.PytestParser
	grepper   *parser.Grepper
	differ    *diff.Differ
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(
	cfg *config.Config,
	client *travis.Client,
	logCache *cache.LogCache,
	pytestParser *parser.PytestParser,
	grepper *parser.Grepper,
	differ *diff.Differ,
	st storage.Storage,
	formatter *ui.Formatter,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		config:    cfg,
		client:    client,
		cache:     logCache,
		parser:    pytestParser,
		grepper:   grepper,
		differ:    differ,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the fetch, grep, aggregate and diff pipeline for one build
func (ac *AnalyzeCommand) Execute(cmd *cobra.Command, args []string) error {
	buildURL := travis.NormalizeBuildURL(args[0])

	build, err := ac.client.Build(buildURL)
	if err != nil {
		return fmt.Errorf("fetch build %s: %w", buildURL, err)
	}

	verbose := ac.config.Flags.Verbose
	if verbose {
		cachedIDs, err := ac.cache.List()
		if err != nil {
			color.Red("ERROR: failed to list cached logs: %v", err)
		}
		ac.formatter.PrintJobList(build, cachedIDs)
	}

	failing := build.FailingJobs()
	if len(failing) == 0 {
		color.Green("No failed or errored jobs in build")
		return nil
	}

	failed := report.NewTally()
	skipped := report.NewTally()
	prefix := ac.config.GetTestPrefix()

	// The progress bar would garble the echoed log lines, so it only
	// runs in quiet mode.
	var bar *ui.ProgressBar
	if !verbose {
		bar = ui.NewProgressBar(len(failing))
	}

	var cachedCount, fetchedCount int
	for _, job := range failing {
		if verbose {
			ac.formatter.PrintJobBanner(job)
		}

		lines, fromCache, err := ac.loadLog(job.ID)
		if err != nil {
			// A fetch failure empties this job's contribution but does
			// not abort the run.
			color.Red("ERROR: failed to fetch log for job %d: %v", job.ID, err)
			job.FailureLogs = map[string][]string{}
			continue
		}
		if fromCache {
			cachedCount++
		} else {
			fetchedCount++
		}
		job.Log = lines

		failed.Add(ac.grepper.GrepTests(lines, prefix, parser.FailureMarkers(), verbose)...)
		if ac.config.Flags.Skipped {
			skipped.Add(ac.grepper.GrepTests(lines, prefix, parser.SkipMarkers(), verbose)...)
		}

		captured, err := ac.parser.ParseFailureLog(lines)
		if err != nil {
			color.Red("ERROR: failed to parse job %d: %v", job.ID, err)
			job.FailureLogs = map[string][]string{}
		} else {
			job.FailureLogs = captured
		}

		if bar != nil {
			bar.Update(cachedCount, fetchedCount)
		}
		if verbose {
			fmt.Println()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if !ac.config.Flags.NoCount {
		ac.formatter.PrintTally("Failure Count / Tests", failed.Sorted())
		if ac.config.Flags.Skipped {
			ac.formatter.PrintTally("Skip Count / Tests", skipped.Sorted())
		}
	}

	if ac.config.Flags.Diff {
		ac.differ.CompareFailures(failing)
	}

	if err := ac.storage.Save(buildAnalysis(build, failing, failed, skipped)); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// loadLog returns the job's log from the cache, or fetches and caches it.
// A cached log is authoritative; it is never re-fetched.
func (ac *AnalyzeCommand) loadLog(jobID int) (lines []string, fromCache bool, err error) {
	lines, ok, err := ac.cache.Load(jobID)
	if err != nil {
		return nil, false, err
	}
	if ok {
		return lines, true, nil
	}

	lines, err = ac.client.Log(jobID)
	if err != nil {
		return nil, false, err
	}
	if err := ac.cache.Save(jobID, lines); err != nil {
		return nil, false, err
	}
	return lines, false, nil
}

// buildAnalysis assembles the persisted snapshot of this run.
func buildAnalysis(build *domain.Build, failing []*domain.Job, failed, skipped *report.Tally) *domain.AnalysisResult {
	captures := make(map[string][]domain.JobCapture)
	for _, job := range failing {
		for test, lines := range job.FailureLogs {
			captures[test] = append(captures[test], domain.JobCapture{JobID: job.ID, Lines: lines})
		}
	}

	return &domain.AnalysisResult{
		Meta: domain.AnalysisMeta{
			BuildURL:    build.BuildURL,
			TotalJobs:   len(build.Jobs),
			FailingJobs: len(failing),
			Timestamp:   time.Now().Format(time.RFC3339),
		},
		Failures: failed.Sorted(),
		Skips:    skipped.Sorted(),
		Captures: captures,
	}
}
