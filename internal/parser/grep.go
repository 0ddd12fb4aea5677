package parser

import (
	"fmt"
	"strings"
)

// FailureMarkers returns the outcome markers for failed and errored tests.
func FailureMarkers() []string {
	return []string{"FAILED", "ERROR"}
}

// SkipMarkers returns the outcome marker for skipped tests.
func SkipMarkers() []string {
	return []string{"SKIPPED"}
}

// Grepper scans raw log lines for test outcome markers
type Grepper struct{}

// NewGrepper creates a new Grepper
func NewGrepper() *Grepper {
	return &Grepper{}
}

// GrepTests returns the test identifiers of lines containing any of the
// markers. Only lines starting with prefix contribute an identifier (the
// first whitespace-delimited token); other marker lines are echoed when
// verbose but yield nothing. Duplicates are kept, one per matching line.
func (g *Grepper) GrepTests(lines []string, prefix string, markers []string, verbose bool) []string {
	var tests []string
	for _, line := range lines {
		if !containsAny(line, markers) {
			continue
		}
		if verbose {
			fmt.Println(line)
		}
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			tests = append(tests, fields[0])
		}
	}
	return tests
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
