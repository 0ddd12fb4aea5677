package config

const (
	// DefaultSavePath is the default directory for cached job logs
	DefaultSavePath = "build_logs"
	// DefaultTestPrefix is the default path prefix for test result lines
	DefaultTestPrefix = "caproto/tests"
	// DefaultDiffTool is the default external diff program
	DefaultDiffTool = "vimdiff"
	// DefaultResultsFile is the default analysis results file name
	DefaultResultsFile = "analysis.json"
)
