package collector

import (
	"context"
	"testing"

	"github.com/newthinker/recruitdash/internal/core"
)

// mockFetcher for testing
type mockFetcher struct {
	name string
}

func (m *mockFetcher) Name() string { return m.name }
func (m *mockFetcher) Fetch(ctx context.Context, ds core.Dataset) ([]core.DataPoint, error) {
	return nil, nil
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	mock := &mockFetcher{name: "mock"}
	r.Register(mock)

	f, ok := r.Get("mock")
	if !ok {
		t.Fatal("expected to find registered fetcher")
	}

	if f.Name() != "mock" {
		t.Errorf("expected name 'mock', got '%s'", f.Name())
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockFetcher{name: "upstream"})
	r.Register(&mockFetcher{name: "sample"})

	names := r.Names()
	if len(names) != 2 || names[0] != "sample" || names[1] != "upstream" {
		t.Errorf("expected sorted names [sample upstream], got %v", names)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockFetcher{name: "sample"})

	if _, err := r.Lookup("sample"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := r.Lookup("ftp"); err == nil {
		t.Error("expected error for unknown fetcher")
	}
}
