package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"willspark/internal/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// mdRenderer escapes raw HTML in notification text (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

var funcs = template.FuncMap{
	"markdown": renderMarkdown,
	"money":    func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"clock":    utils.Clock,
	"longDate": utils.LongDate,
	"dateOf": func(v string) string {
		t, err := utils.ParseBackendTime(v)
		if err != nil {
			return v
		}
		return t.Format("Jan 2, 2006")
	},
	"toggle": func(csrfField template.HTML, userID, field string, on bool) attributeToggle {
		return attributeToggle{CSRF: csrfField, UserID: userID, Field: field, On: on}
	},
}

// attributeToggle feeds the "toggle" template that flips one membership flag.
type attributeToggle struct {
	CSRF   template.HTML
	UserID string
	Field  string
	On     bool
}

// Renderer holds the parsed pages. Each page is parsed together with the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, page := range []string{"login.html", "dashboard.html", "admin.html"} {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tpl
	}
	return r, nil
}

func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, page string, data *Page) {
	tpl, ok := rd.pages[page]
	if !ok {
		http.Error(w, "Unknown page", http.StatusInternalServerError)
		return
	}
	data.CSRFField = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		log.Printf("api: render %s: %v", page, err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
