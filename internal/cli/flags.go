package cli

import "tfa/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestPrefix: f.TestPrefix,
		Diff:       f.Diff,
		NoCount:    f.NoCount,
		DiffTool:   f.DiffTool,
		MaxDiff:    f.MaxDiff,
		Verbose:    f.Verbose,
		SavePath:   f.SavePath,
		Skipped:    f.Skipped,
	}
}
