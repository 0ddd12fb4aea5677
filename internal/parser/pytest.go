package parser

import (
	"errors"
	"regexp"
	"strings"
)

// Section banners as pytest prints them in an 80-column console. The
// segmenter matches them exactly; truncated or padded variants are
// treated as ordinary output.
var (
	ErrorsBanner   = strings.Repeat("=", 36) + " ERRORS " + strings.Repeat("=", 36)
	FailuresBanner = strings.Repeat("=", 35) + " FAILURES " + strings.Repeat("=", 35)
)

// ErrNoFailureSection reports a log without an ERRORS or FAILURES banner.
var ErrNoFailureSection = errors.New("no failure section in log")

var (
	// "_______ test_name __________" opens the capture for one test.
	testStartPattern = regexp.MustCompile(`^_{7,} (.+?) _{9,}`)
	// "======== 3 failed in 1.2 seconds ========" ends the test run.
	endOfRunPattern = regexp.MustCompile(`^={5,} .* in .* seconds ={5,}`)
)

// scanState tracks progress through a job log's failure sections.
type scanState int

const (
	// seekingSection: no banner seen yet, all lines ignored.
	seekingSection scanState = iota
	// inSection: past a banner but no test marker yet, lines discarded.
	inSection
	// capturing: lines accumulate into the current test's buffer.
	capturing
)

// PytestParser segments the failure/error sections of a pytest log by test
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

// ParseFailureLog partitions the detailed failure output of one job log
// by test name. Scanning starts after the first ERRORS or FAILURES
// banner, whichever occurs earlier; a second banner mid-scan resets the
// current test without stopping, so back-to-back ERRORS and FAILURES
// sections are captured in one pass. The run summary line terminates
// the scan. Returns ErrNoFailureSection when the log has no banner.
func (p *PytestParser) ParseFailureLog(lines []string) (map[string][]string, error) {
	captured := make(map[string][]string)
	state := seekingSection
	var current string

	for _, line := range lines {
		if state == seekingSection {
			if line == ErrorsBanner || line == FailuresBanner {
				state = inSection
			}
			continue
		}

		if line == ErrorsBanner || line == FailuresBanner {
			state = inSection
			current = ""
			continue
		}

		if m := testStartPattern.FindStringSubmatch(line); m != nil {
			current = m[1]
			captured[current] = []string{}
			state = capturing
			continue
		}

		if endOfRunPattern.MatchString(line) {
			break
		}

		if state == capturing {
			captured[current] = append(captured[current], line)
		}
	}

	if state == seekingSection {
		return nil, ErrNoFailureSection
	}
	return captured, nil
}
