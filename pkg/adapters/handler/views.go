package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "stats", "list", "form"}

// page is the value every template receives.
type page struct {
	Title string
	Flash *Flash
	Data  interface{}
}

type Views struct {
	pages map[string]*template.Template
}

func NewViews() *Views {
	v := &Views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		v.pages[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return v
}

// Render executes a page into a buffer first so template errors never
// produce half-written responses.
func (v *Views) Render(w http.ResponseWriter, status int, name string, p page) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return errUnknownPage(name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

type errUnknownPage string

func (e errUnknownPage) Error() string { return "unknown page " + string(e) }
