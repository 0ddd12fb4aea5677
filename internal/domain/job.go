package domain

import (
	"fmt"
	"sort"
)

// JobState is the state a CI job reported for itself.
type JobState string

const (
	StatePassed   JobState = "passed"
	StateFailed   JobState = "failed"
	StateErrored  JobState = "errored"
	StateStarted  JobState = "started"
	StateCanceled JobState = "canceled"
)

// Failing reports whether the job finished with test failures or errors.
func (s JobState) Failing() bool {
	return s == StateFailed || s == StateErrored
}

// Job is one execution unit within a build
type Job struct {
	ID    int      // Provider job id
	State JobState // Terminal state reported by the provider
	Env   string   // Environment descriptor from the job config

	// Log holds the job's console log, one trimmed line per physical
	// line, attached after fetching.
	Log []string

	// FailureLogs maps a test name to the lines captured for it from
	// the log's failure/error sections, attached after parsing.
	FailureLogs map[string][]string
}

// Desc returns a brief one-line description of the job.
func (j *Job) Desc() string {
	env := j.Env
	if runes := []rune(env); len(runes) > 50 {
		env = string(runes[:50])
	}
	return fmt.Sprintf("%d %s %s", j.ID, j.State, env)
}

// Build is a CI run comprising multiple parallel jobs
type Build struct {
	BuildURL string
	Jobs     map[int]*Job
}

// SortedJobs returns all jobs ordered by ascending id.
func (b *Build) SortedJobs() []*Job {
	jobs := make([]*Job, 0, len(b.Jobs))
	for _, job := range b.Jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs
}

// FailingJobs returns the failed and errored jobs ordered by ascending id.
func (b *Build) FailingJobs() []*Job {
	var jobs []*Job
	for _, job := range b.SortedJobs() {
		if job.State.Failing() {
			jobs = append(jobs, job)
		}
	}
	return jobs
}
