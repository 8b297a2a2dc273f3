package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/ops"
	"github.com/hpungsan/promptbin/internal/prompt"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "prompts", "create"
}

// IndexPageData is the template data for the prompt list page.
type IndexPageData struct {
	PageData
	Prompts          []prompt.Record
	Stats            *ops.StatsOutput
	Categories       []string
	SelectedCategory string
}

// EditorPageData is the template data for the create and edit pages.
type EditorPageData struct {
	PageData
	Prompt     *prompt.Record
	Categories []string
}

// ViewPageData is the template data for the single-prompt page.
type ViewPageData struct {
	PageData
	Prompt       *prompt.Record
	RenderedHTML template.HTML
	Variables    []string
	ShareActive  bool
}

// SharePageData is the template data for the public read-only page.
type SharePageData struct {
	PageData
	Prompt       *prompt.Record
	RenderedHTML template.HTML
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
	log       logger.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewNop()
	}

	funcMap := template.FuncMap{
		"formatTime": formatTime,
		"joinTags":   func(tags []string) string { return strings.Join(tags, ", ") },
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"index":  "index.html",
		"create": "create.html",
		"edit":   "edit.html",
		"view":   "view.html",
		"share":  "share.html",
		"error":  "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
		log:       log,
	}
}

// renderPage renders a named page template with HTTP 200.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.log.Error("template not found", logger.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.log.Error("template execution failed",
			logger.String("template", name), logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation: JSON for
// API clients, a full page otherwise.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var pErr *errors.PromptError
	if !stderrors.As(err, &pErr) {
		pErr = errors.NewInternal(err)
	}

	if wantsJSON(req) {
		renderJSON(w, pErr.Status, map[string]any{
			"error": map[string]any{
				"code":    string(pErr.Code),
				"message": pErr.Message,
				"status":  pErr.Status,
			},
		})
		return
	}

	r.renderPageStatus(w, pErr.Status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", pErr.Status),
			Version: r.version,
		},
		StatusCode: pErr.Status,
		Message:    pErr.Message,
	})
}

// wantsJSON reports whether the request came from the JSON API surface.
func wantsJSON(req *http.Request) bool {
	if strings.HasPrefix(req.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// templateVarRegex matches {{name}} markers in rendered HTML.
var templateVarRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// renderMarkdown converts a prompt body to HTML using goldmark, then wraps
// {{name}} markers in a highlight span. Goldmark escapes raw HTML in the
// source by default, so the only unescaped markup is ours.
func renderMarkdown(body string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(body))
	}

	html := templateVarRegex.ReplaceAllString(buf.String(),
		`<span class="template-var">{{$1}}</span>`)
	return template.HTML(html)
}

// formatTime formats a timestamp as "2006-01-02 15:04" UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
