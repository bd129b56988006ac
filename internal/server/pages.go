package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/sozercan/listing-lens/internal/analyzer"
	"github.com/sozercan/listing-lens/internal/render"
)

//go:embed web/templates/*.tmpl web/static/*
var webFS embed.FS

// Seconds between reloads of a page whose view is still loading.
const refreshSeconds = 2

// page is everything the page template needs for one view.
type page struct {
	ViewID  string
	Query   string
	Phase   string
	Loading bool
	Error   string
	Display *render.Display
	Refresh int
}

func parsePages() (*template.Template, error) {
	funcs := template.FuncMap{
		"units": func(r render.Rating) []bool {
			out := make([]bool, r.Max)
			for i := range out {
				out[i] = i < r.Filled
			}
			return out
		},
		"placeholder": func() string { return render.Placeholder },
	}
	return template.New("pages").Funcs(funcs).ParseFS(webFS, "web/templates/*.tmpl")
}

func staticHandler() http.Handler {
	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(fmt.Sprintf("embedded static assets missing: %v", err))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(static)))
}

// newPage maps the view's current state onto the page model.
func newPage(session *analyzer.Session) page {
	state, query := session.Snapshot()
	p := page{ViewID: session.ID, Query: query, Phase: state.Phase()}

	switch st := state.(type) {
	case analyzer.Idle:
	case analyzer.Loading:
		p.Loading = true
		p.Refresh = refreshSeconds
	case analyzer.Succeeded:
		d := render.Build(st.Result)
		p.Display = &d
	case analyzer.Failed:
		p.Error = st.Message
	default:
		panic(fmt.Sprintf("unhandled request state %T", state))
	}
	return p
}
