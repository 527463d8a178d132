// Package sample serves the built-in demo datasets, both as a Fetcher and as
// a stand-in for the upstream HTTP service.
package sample

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/newthinker/recruitdash/internal/collector"
	"github.com/newthinker/recruitdash/internal/core"
)

//go:embed data/*.json
var dataFS embed.FS

// Source returns embedded demo records.
type Source struct{}

// New creates a sample source
func New() *Source {
	return &Source{}
}

var _ collector.Fetcher = (*Source)(nil)

func (s *Source) Name() string {
	return "sample"
}

// Raw returns the embedded JSON body for ds.
func (s *Source) Raw(ds core.Dataset) ([]byte, error) {
	name := path.Join("data", path.Base(ds.Path)+".json")
	body, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, core.WrapError(core.ErrDatasetNotFound, fmt.Errorf("no sample for %s", ds.Path))
	}
	return body, nil
}

func (s *Source) Fetch(ctx context.Context, ds core.Dataset) ([]core.DataPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.WrapError(core.ErrFetchFailed, err)
	}
	body, err := s.Raw(ds)
	if err != nil {
		return nil, err
	}
	return collector.ParsePoints(body)
}

// Handler serves the datasets at their upstream paths.
func (s *Source) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, ds := range core.Datasets() {
		mux.HandleFunc(ds.Path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				w.Header().Set("Allow", "GET, HEAD")
				http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
				return
			}
			body, err := s.Raw(ds)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			// The browser-era dashboard fetched these cross-origin.
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Write(body)
		})
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		paths := make([]string, 0, len(core.Kinds))
		for _, ds := range core.Datasets() {
			paths = append(paths, ds.Path)
		}
		http.Error(w, "available: "+strings.Join(paths, ", "), http.StatusNotFound)
	})
	return mux
}
