package web

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/ops"
)

// HandleShareIssue handles POST /api/share/{category}/{id} — issue a token
// exposing one record. The requester identity for rate limiting is the
// network origin.
func (h *Handlers) HandleShareIssue(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	id := chi.URLParam(r, "id")

	// The record must exist before a token is minted for it.
	rec, err := ops.Get(h.st, h.cfg, ops.GetInput{Category: category, ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	token, err := h.shares.Issue(rec.Ref(), requesterID(r))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"path":  "/share/" + token + "/" + rec.ID,
	})
}

// HandleShareRevoke handles DELETE /api/share/{token}. Idempotent.
func (h *Handlers) HandleShareRevoke(w http.ResponseWriter, r *http.Request) {
	h.shares.Revoke(chi.URLParam(r, "token"))
	renderJSON(w, http.StatusOK, map[string]any{"revoked": true})
}

// HandleSharePage handles GET /share/{token}/{id} — resolve the token, load
// the record, and render it read-only. The id in the path must match the
// record the token resolves to, so tokens cannot be replayed against other
// records.
func (h *Handlers) HandleSharePage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	id := chi.URLParam(r, "id")

	ref, err := h.shares.Resolve(token)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if ref.ID != id {
		h.renderer.renderError(w, r, errors.NewInvalidToken())
		return
	}

	rec, err := h.st.Read(ref.Category, ref.ID)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.log.Info("shared prompt viewed",
		logger.String("id", rec.ID),
		logger.String("category", rec.Category))

	h.renderer.renderPage(w, "share", SharePageData{
		PageData: PageData{
			Title:   rec.Title,
			Version: h.renderer.version,
		},
		Prompt:       rec,
		RenderedHTML: renderMarkdown(rec.Body),
	})
}

// requesterID extracts the requester identity (client IP) used as the
// rate-limit key.
func requesterID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
