package parser

import (
	"reflect"
	"testing"
)

func TestGrepTests(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		prefix  string
		markers []string
		want    []string
	}{
		{
			name: "failure markers with matching prefix",
			lines: []string{
				"caproto/tests/test_x.py::test_y FAILED",
				"caproto/tests/test_x.py::test_z ERROR",
				"caproto/tests/test_x.py::test_ok PASSED",
			},
			prefix:  "caproto/tests",
			markers: FailureMarkers(),
			want:    []string{"caproto/tests/test_x.py::test_y", "caproto/tests/test_x.py::test_z"},
		},
		{
			name: "marker line with different prefix yields no identifier",
			lines: []string{
				"other/tests/test_x.py::test_y FAILED",
			},
			prefix:  "caproto/tests",
			markers: FailureMarkers(),
			want:    nil,
		},
		{
			name: "duplicates kept one per matching line",
			lines: []string{
				"caproto/tests/test_x.py::test_y FAILED",
				"caproto/tests/test_x.py::test_y FAILED",
			},
			prefix:  "caproto/tests",
			markers: FailureMarkers(),
			want:    []string{"caproto/tests/test_x.py::test_y", "caproto/tests/test_x.py::test_y"},
		},
		{
			name: "skip marker only when requested",
			lines: []string{
				"caproto/tests/test_x.py::test_y SKIPPED",
				"caproto/tests/test_x.py::test_z FAILED",
			},
			prefix:  "caproto/tests",
			markers: SkipMarkers(),
			want:    []string{"caproto/tests/test_x.py::test_y"},
		},
		{
			name:    "no marker lines",
			lines:   []string{"collected 10 items", "all good"},
			prefix:  "caproto/tests",
			markers: FailureMarkers(),
			want:    nil,
		},
	}

	g := NewGrepper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.GrepTests(tt.lines, tt.prefix, tt.markers, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
