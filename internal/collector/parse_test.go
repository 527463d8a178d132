package collector

import (
	"errors"
	"testing"

	"github.com/newthinker/recruitdash/internal/core"
)

func TestParsePoints(t *testing.T) {
	points, err := ParsePoints([]byte(`[
		{"Experience Level": "Senior", "Count": 12},
		{"Experience Level": "Junior", "Count": 30.5}
	]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0]["Experience Level"] != "Senior" {
		t.Errorf("unexpected label %v", points[0]["Experience Level"])
	}
	if points[1]["Count"] != 30.5 {
		t.Errorf("unexpected count %v", points[1]["Count"])
	}
}

func TestParsePoints_EmptyArray(t *testing.T) {
	points, err := ParsePoints([]byte(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", points)
	}
}

func TestParsePoints_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"truncated", `[{"Date": "2024-01-01"`},
		{"html error page", `<html>502</html>`},
		{"object", `{"Date": "2024-01-01"}`},
		{"null", `null`},
		{"array of numbers", `[1, 2, 3]`},
		{"mixed array", `[{"Count": 1}, "oops"]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePoints([]byte(tc.body))
			if !errors.Is(err, core.ErrMalformedData) {
				t.Errorf("expected ErrMalformedData, got %v", err)
			}
		})
	}
}
