package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/pkordes/recipebox/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists every page template. Each is parsed together with
// layout.html into its own template set, so every page can define "content".
var pageNames = []string{"index", "form", "details", "delete", "addtag", "notfound", "error"}

type views map[string]*template.Template

// page is the data passed to every template. Pages read only the fields
// they need.
type page struct {
	Title   string
	User    string
	Recipes []domain.Recipe
	Recipe  domain.Recipe
	Tags    []domain.Tag

	// Action is the form's submit URL.
	Action string
	// Search is the term shown above search results.
	Search string
	// ShowOwner marks listings that mix recipes from several users.
	ShowOwner bool
	// Errors maps form field name to message for 422 re-renders.
	Errors  map[string]string
	Message string
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2 Jan 2006") },
}

func parseViews() (views, error) {
	v := make(views, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("handler.parseViews: %s: %w", name, err)
		}
		v[name] = t
	}
	return v, nil
}

// render executes the named page into a buffer first so a template error
// can still produce a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	if u, ok := userID(r); ok {
		data.User = u
	}

	var buf bytes.Buffer
	if err := s.views[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.ErrorContext(r.Context(), "render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// seeOther redirects a completed form submission.
func seeOther(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
