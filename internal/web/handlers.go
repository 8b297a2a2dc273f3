package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/ops"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/share"
	"github.com/hpungsan/promptbin/internal/store"
)

// Handlers contains HTTP route handlers for pages and the JSON API.
type Handlers struct {
	st       *store.Store
	cfg      *config.Config
	shares   *share.Manager
	renderer *Renderer
	log      logger.Logger
}

// Pages

// HandleIndex handles GET / — all prompts plus stats, optional category filter.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	listed, err := ops.List(h.st, h.cfg, ops.ListInput{Category: category})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	stats, err := ops.Stats(h.st, h.cfg)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "index", IndexPageData{
		PageData: PageData{
			Title:   "Prompts",
			Version: h.renderer.version,
			Nav:     "prompts",
		},
		Prompts:          listed.Items,
		Stats:            stats,
		Categories:       h.cfg.Categories,
		SelectedCategory: category,
	})
}

// HandleCreatePage handles GET /create.
func (h *Handlers) HandleCreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "create", EditorPageData{
		PageData: PageData{
			Title:   "New Prompt",
			Version: h.renderer.version,
			Nav:     "create",
		},
		Categories: h.cfg.Categories,
	})
}

// HandleViewPage handles GET /view/{id}.
func (h *Handlers) HandleViewPage(w http.ResponseWriter, r *http.Request) {
	rec, err := ops.Get(h.st, h.cfg, ops.GetInput{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "view", ViewPageData{
		PageData: PageData{
			Title:   rec.Title,
			Version: h.renderer.version,
			Nav:     "prompts",
		},
		Prompt:       rec,
		RenderedHTML: renderMarkdown(rec.Body),
		Variables:    prompt.ExtractVariables(rec.Body),
		ShareActive:  !h.shares.Suspended(),
	})
}

// HandleEditPage handles GET /edit/{id}.
func (h *Handlers) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	rec, err := ops.Get(h.st, h.cfg, ops.GetInput{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "edit", EditorPageData{
		PageData: PageData{
			Title:   "Edit: " + rec.Title,
			Version: h.renderer.version,
			Nav:     "prompts",
		},
		Prompt:     rec,
		Categories: h.cfg.Categories,
	})
}

// JSON API

// createRequest is the POST /api/prompts body.
type createRequest struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// HandleAPICreate handles POST /api/prompts.
func (h *Handlers) HandleAPICreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid JSON body"))
		return
	}

	rec, err := ops.Create(h.st, h.cfg, ops.CreateInput{
		Category:    req.Category,
		Title:       req.Title,
		Body:        req.Body,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, rec)
}

// updateRequest is the PUT /api/prompts/{id} body. Absent fields are left
// unchanged; "category" moves the prompt.
type updateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Body        *string   `json:"body,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Category    *string   `json:"category,omitempty"`
}

// HandleAPIUpdate handles PUT /api/prompts/{id}.
func (h *Handlers) HandleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid JSON body"))
		return
	}

	rec, err := ops.Update(h.st, h.cfg, ops.UpdateInput{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Body:        req.Body,
		Description: req.Description,
		Tags:        req.Tags,
		NewCategory: req.Category,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, rec)
}

// HandleAPIDelete handles DELETE /api/prompts/{id}.
func (h *Handlers) HandleAPIDelete(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Delete(h.st, h.cfg, ops.DeleteInput{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPISearch handles GET /api/search?q=...&category=...
func (h *Handlers) HandleAPISearch(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Search(h.st, h.cfg, ops.SearchInput{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// previewRequest is the POST /api/preview body.
type previewRequest struct {
	Body string `json:"body"`
}

// HandleAPIPreview handles POST /api/preview — markdown with template
// variables highlighted, for the editor's live preview pane.
func (h *Handlers) HandleAPIPreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid JSON body"))
		return
	}
	if req.Body == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("body is required"))
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"html":      string(renderMarkdown(req.Body)),
		"variables": prompt.ExtractVariables(req.Body),
	})
}
