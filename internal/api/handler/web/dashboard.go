package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/newthinker/recruitdash/internal/app"
)

// DashboardData holds data for the dashboard template
type DashboardData struct {
	Title  string
	Year   int
	Panels []PanelView
}

// PanelView is a panel plus what the page needs to mount its chart.
type PanelView struct {
	app.Panel
	ElementID string
}

var funcs = template.FuncMap{
	"clock": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("15:04:05")
	},
}

// Dashboard renders the three chart panels. Panels are loaded with the
// request context, so a client that goes away cancels its fetches.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	panels := h.loader.Load(r.Context())

	views := make([]PanelView, len(panels))
	for i, p := range panels {
		views[i] = PanelView{Panel: p, ElementID: "chart-" + string(p.Kind)}
	}

	h.render(w, "dashboard.html", DashboardData{
		Title:  h.title,
		Year:   time.Now().Year(),
		Panels: views,
	})
}
