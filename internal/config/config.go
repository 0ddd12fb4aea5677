package config

import (
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Log cache settings
	SavePath    string
	ResultsFile string

	// Parsing settings
	TestPrefix string

	// Diff settings
	DiffTool string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	TestPrefix string
	Diff       bool
	NoCount    bool
	DiffTool   string
	MaxDiff    int
	Verbose    bool
	SavePath   string
	Skipped    bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		SavePath:    DefaultSavePath,
		ResultsFile: DefaultResultsFile,
		TestPrefix:  DefaultTestPrefix,
		DiffTool:    DefaultDiffTool,
		Flags:       Flags{Verbose: true},
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags
	return cfg
}

// GetSavePath returns the log cache directory, using the flag if provided
func (c *Config) GetSavePath() string {
	if c.Flags.SavePath != "" {
		return c.Flags.SavePath
	}
	return c.SavePath
}

// GetTestPrefix returns the test path prefix, using the flag if provided
func (c *Config) GetTestPrefix() string {
	if c.Flags.TestPrefix != "" {
		return c.Flags.TestPrefix
	}
	return c.TestPrefix
}

// GetDiffTool returns the external diff program, using the flag if provided
func (c *Config) GetDiffTool() string {
	if c.Flags.DiffTool != "" {
		return c.Flags.DiffTool
	}
	return c.DiffTool
}

// GetMaxDiff returns the cap on distinct log variants per test (0 = no cap)
func (c *Config) GetMaxDiff() int {
	return c.Flags.MaxDiff
}

// GetResultsPath returns the full path to the analysis results file.
// Resolves to an absolute path so analyze and failures always read/write
// the same file regardless of cwd.
func (c *Config) GetResultsPath() string {
	p := filepath.Join(c.GetSavePath(), c.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
