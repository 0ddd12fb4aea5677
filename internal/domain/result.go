package domain

// TestCount pairs a test name with its occurrence count across jobs.
type TestCount struct {
	Test  string `json:"test"`
	Count int    `json:"count"`
}

// JobCapture is the failure output one job produced for a test.
type JobCapture struct {
	JobID int      `json:"job_id"`
	Lines []string `json:"lines"`
}

// AnalysisMeta contains metadata about one analyzer run
type AnalysisMeta struct {
	BuildURL    string `json:"build_url"`
	TotalJobs   int    `json:"total_jobs"`
	FailingJobs int    `json:"failing_jobs"`
	Timestamp   string `json:"timestamp"`
}

// AnalysisResult is the complete persisted output of one analyzer run
type AnalysisResult struct {
	Meta     AnalysisMeta            `json:"meta"`
	Failures []TestCount             `json:"failures"`
	Skips    []TestCount             `json:"skips,omitempty"`
	Captures map[string][]JobCapture `json:"captures"`
}
