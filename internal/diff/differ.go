package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"tfa/internal/config"
	"tfa/internal/domain"
)

// Differ compares a test's captured failure output across jobs with an
// external diff tool
type Differ struct {
	cfg      *config.Config
	toolArgs []string
}

// NewDiffer creates a new Differ
func NewDiffer(cfg *config.Config) *Differ {
	return &Differ{cfg: cfg}
}

// variant is one distinct rendering of a test's captured failure output.
type variant struct {
	jobID int
	text  string
}

// CompareFailures runs the diff tool once for every test whose captured
// output differs between jobs. Tests where all jobs agree (or only one
// job has a capture) are skipped. A tool failure is reported and does
// not abort the remaining tests.
func (d *Differ) CompareFailures(jobs []*domain.Job) {
	for _, test := range collectTestNames(jobs) {
		variants := d.collectVariants(jobs, test)
		if len(variants) < 2 {
			continue
		}
		if err := d.diffVariants(test, variants); err != nil {
			color.Red("ERROR: diff of %s: %v", test, err)
		}
	}
}

// collectTestNames returns the union of test names across the jobs'
// failure logs, sorted for deterministic diff order.
func collectTestNames(jobs []*domain.Job) []string {
	seen := make(map[string]bool)
	for _, job := range jobs {
		for test := range job.FailureLogs {
			seen[test] = true
		}
	}
	names := make([]string, 0, len(seen))
	for test := range seen {
		names = append(names, test)
	}
	sort.Strings(names)
	return names
}

// collectVariants gathers the distinct renderings of a test's captured
// lines, one job id per distinct text. Jobs without a capture for the
// test are skipped. Collection stops once max-diff distinct variants
// are retained (at most N distinct variants, not first N jobs).
func (d *Differ) collectVariants(jobs []*domain.Job, test string) []variant {
	maxDiff := d.cfg.GetMaxDiff()
	var variants []variant
	for _, job := range jobs {
		lines, ok := job.FailureLogs[test]
		if !ok {
			continue
		}
		text := strings.Join(lines, "\n")
		if hasText(variants, text) {
			continue
		}
		variants = append(variants, variant{jobID: job.ID, text: text})
		if maxDiff > 0 && len(variants) >= maxDiff {
			break
		}
	}
	return variants
}

func hasText(variants []variant, text string) bool {
	for _, v := range variants {
		if v.text == text {
			return true
		}
	}
	return false
}

// diffVariants materializes each variant to a temp file and invokes the
// diff tool on all of them. The files live only for the tool call; they
// are removed whether or not the tool succeeds.
func (d *Differ) diffVariants(test string, variants []variant) error {
	dir, err := os.MkdirTemp("", "tfa-diff-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	paths := make([]string, 0, len(variants))
	for _, v := range variants {
		path := filepath.Join(dir, fmt.Sprintf("%d_%s", v.jobID, sanitizeName(test)))
		if err := os.WriteFile(path, []byte(v.text), 0644); err != nil {
			return fmt.Errorf("write variant for job %d: %w", v.jobID, err)
		}
		paths = append(paths, path)
	}

	args := append(append([]string{}, d.toolArgs...), paths...)
	cmd := exec.Command(d.cfg.GetDiffTool(), args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", d.cfg.GetDiffTool(), err)
	}
	return nil
}

// sanitizeName makes a test name safe to embed in a file name.
func sanitizeName(test string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, test)
}
