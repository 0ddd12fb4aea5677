package diff

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tfa/internal/config"
	"tfa/internal/domain"
)

// recordingTool writes a stub diff tool that appends its argv to a file,
// exiting with the given status.
func recordingTool(t *testing.T, argvFile string, exitCode int) string {
	t.Helper()
	tool := filepath.Join(filepath.Dir(argvFile), "recorder.sh")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %s\nexit %d\n", argvFile, exitCode)
	if err := os.WriteFile(tool, []byte(script), 0755); err != nil {
		t.Fatalf("write tool: %v", err)
	}
	return tool
}

func readInvocations(t *testing.T, argvFile string) []string {
	t.Helper()
	data, err := os.ReadFile(argvFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read argv file: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func jobsWithCaptures(captures map[int]map[string][]string) []*domain.Job {
	var jobs []*domain.Job
	for _, id := range []int{1, 2, 3, 4} {
		logs, ok := captures[id]
		if !ok {
			continue
		}
		jobs = append(jobs, &domain.Job{ID: id, State: domain.StateFailed, FailureLogs: logs})
	}
	return jobs
}

func TestCollectTestNames(t *testing.T) {
	jobs := jobsWithCaptures(map[int]map[string][]string{
		1: {"test_b": {"x"}, "test_a": {"y"}},
		2: {"test_c": {"z"}, "test_a": {"y"}},
	})

	got := collectTestNames(jobs)
	want := []string{"test_a", "test_b", "test_c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCollectVariants(t *testing.T) {
	tests := []struct {
		name     string
		captures map[int]map[string][]string
		maxDiff  int
		test     string
		wantJobs []int
	}{
		{
			name: "identical captures deduplicate to one variant",
			captures: map[int]map[string][]string{
				1: {"test_a": {"same", "output"}},
				2: {"test_a": {"same", "output"}},
				3: {"test_a": {"same", "output"}},
			},
			test:     "test_a",
			wantJobs: []int{1},
		},
		{
			name: "distinct captures keep one job per text",
			captures: map[int]map[string][]string{
				1: {"test_a": {"variant one"}},
				2: {"test_a": {"variant two"}},
				3: {"test_a": {"variant one"}},
			},
			test:     "test_a",
			wantJobs: []int{1, 2},
		},
		{
			name: "jobs without a capture are skipped",
			captures: map[int]map[string][]string{
				1: {"test_other": {"x"}},
				2: {"test_a": {"only here"}},
			},
			test:     "test_a",
			wantJobs: []int{2},
		},
		{
			name: "cap limits distinct variants not jobs",
			captures: map[int]map[string][]string{
				1: {"test_a": {"variant one"}},
				2: {"test_a": {"variant one"}},
				3: {"test_a": {"variant two"}},
				4: {"test_a": {"variant three"}},
			},
			maxDiff:  2,
			test:     "test_a",
			wantJobs: []int{1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Flags.MaxDiff = tt.maxDiff
			d := NewDiffer(cfg)

			variants := d.collectVariants(jobsWithCaptures(tt.captures), tt.test)
			var gotJobs []int
			for _, v := range variants {
				gotJobs = append(gotJobs, v.jobID)
			}
			if !reflect.DeepEqual(gotJobs, tt.wantJobs) {
				t.Errorf("expected jobs %v, got %v", tt.wantJobs, gotJobs)
			}
		})
	}
}

func TestCompareFailures(t *testing.T) {
	argvFile := filepath.Join(t.TempDir(), "argv.txt")
	cfg := config.New()
	cfg.Flags.DiffTool = recordingTool(t, argvFile, 0)

	// test_same agrees across jobs, test_diff diverges.
	jobs := jobsWithCaptures(map[int]map[string][]string{
		1: {"test_same": {"agreed"}, "test_diff": {"variant one"}},
		2: {"test_same": {"agreed"}, "test_diff": {"variant two"}},
	})

	NewDiffer(cfg).CompareFailures(jobs)

	invocations := readInvocations(t, argvFile)
	if len(invocations) != 1 {
		t.Fatalf("expected exactly one tool invocation, got %d: %v", len(invocations), invocations)
	}

	paths := strings.Fields(invocations[0])
	if len(paths) != 2 {
		t.Fatalf("expected one file per distinct variant, got %v", paths)
	}
	for _, p := range paths {
		if !strings.Contains(filepath.Base(p), "test_diff") {
			t.Errorf("expected variant files for test_diff, got %s", p)
		}
		if _, err := os.Stat(p); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected temp file %s to be removed after the tool call", p)
		}
	}
}

func TestCompareFailures_AllAgree(t *testing.T) {
	argvFile := filepath.Join(t.TempDir(), "argv.txt")
	cfg := config.New()
	cfg.Flags.DiffTool = recordingTool(t, argvFile, 0)

	jobs := jobsWithCaptures(map[int]map[string][]string{
		1: {"test_same": {"agreed"}},
		2: {"test_same": {"agreed"}},
		3: {"test_same": {"agreed"}},
	})

	NewDiffer(cfg).CompareFailures(jobs)

	if invocations := readInvocations(t, argvFile); invocations != nil {
		t.Errorf("expected no tool invocation for identical captures, got %v", invocations)
	}
}

func TestCompareFailures_ToolFailure(t *testing.T) {
	argvFile := filepath.Join(t.TempDir(), "argv.txt")
	cfg := config.New()
	cfg.Flags.DiffTool = recordingTool(t, argvFile, 3)

	// Two divergent tests; a failing tool must not stop the second diff.
	jobs := jobsWithCaptures(map[int]map[string][]string{
		1: {"test_a": {"one"}, "test_b": {"x"}},
		2: {"test_a": {"two"}, "test_b": {"y"}},
	})

	NewDiffer(cfg).CompareFailures(jobs)

	invocations := readInvocations(t, argvFile)
	if len(invocations) != 2 {
		t.Fatalf("expected both tests diffed despite tool failures, got %v", invocations)
	}
	for _, invocation := range invocations {
		for _, p := range strings.Fields(invocation) {
			if _, err := os.Stat(p); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("expected temp file %s removed despite nonzero tool exit", p)
			}
		}
	}
}

func TestSanitizeName(t *testing.T) {
	got := sanitizeName("caproto/tests/test_x.py::test y")
	want := "caproto_tests_test_x.py__test_y"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
