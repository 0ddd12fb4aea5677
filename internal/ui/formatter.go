package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tfa/internal/config"
	"tfa/internal/domain"
)

// Formatter formats and displays reports
type Formatter struct {
	cfg *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// PrintJobList prints a brief description of every job in the build.
// Jobs whose logs are already in the local cache are marked.
func (f *Formatter) PrintJobList(build *domain.Build, cachedIDs []int) {
	cached := make(map[int]bool, len(cachedIDs))
	for _, id := range cachedIDs {
		cached[id] = true
	}

	color.Cyan("Jobs")
	color.Cyan("----")
	for _, job := range build.SortedJobs() {
		f.printJobDesc(job, cached[job.ID])
	}
	fmt.Println()
}

// PrintJobBanner prints the per-job header shown while processing a job.
func (f *Formatter) PrintJobBanner(job *domain.Job) {
	f.printJobDesc(job, false)
	if f.cfg.Flags.Verbose {
		fmt.Println("---------------------------")
	}
}

func (f *Formatter) printJobDesc(job *domain.Job, cached bool) {
	line := jobLine(job, cached)
	switch {
	case job.State == domain.StatePassed:
		color.Green("%s", line)
	case job.State.Failing():
		color.Red("%s", line)
	default:
		color.Yellow("%s", line)
	}
}

// jobLine returns the job description, marked when its log is cached.
func jobLine(job *domain.Job, cached bool) string {
	if cached {
		return job.Desc() + " [cached]"
	}
	return job.Desc()
}

// PrintTally prints a count report ordered by descending count.
func (f *Formatter) PrintTally(title string, entries []domain.TestCount) {
	color.Cyan(title)
	color.Cyan(strings.Repeat("-", len(title)))
	if len(entries) == 0 {
		color.Green("(none)")
		fmt.Println()
		return
	}
	for _, e := range entries {
		fmt.Printf("%s %s\n", color.RedString("%d", e.Count), e.Test)
	}
	fmt.Println()
}
