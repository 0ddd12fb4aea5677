package ui

import (
	"testing"

	"tfa/internal/domain"
)

func TestJobLine(t *testing.T) {
	job := &domain.Job{ID: 42, State: domain.StateFailed, Env: "PY=3.6"}

	if got, want := jobLine(job, false), "42 failed PY=3.6"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got, want := jobLine(job, true), "42 failed PY=3.6 [cached]"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
