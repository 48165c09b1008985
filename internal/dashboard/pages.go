// internal/dashboard/pages.go
//
// Page lifecycle handlers: list, fetch, create, update, delete, and
// site-level reorder.
package dashboard

import (
	"net/http"

	"github.com/yanizio/atelier/internal/page"
)

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	recs, err := h.pages.List(r.Context(), urlParam(r, "siteID"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, recs)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	rec, err := h.pages.Get(r.Context(), urlParam(r, "pageID"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	var f page.Fields
	if err := decode(r, &f); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.pages.Create(r.Context(), urlParam(r, "siteID"), f)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, rec)
}

func (h *Handler) updatePage(w http.ResponseWriter, r *http.Request) {
	var p page.Patch
	if err := decode(r, &p); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.pages.Update(r.Context(), urlParam(r, "pageID"), p)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) deletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.pages.Delete(r.Context(), urlParam(r, "pageID")); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) reorderPages(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PageIDs []string `json:"pageIds"`
	}
	if err := decode(r, &body); err != nil {
		fail(w, err)
		return
	}
	recs, err := h.pages.Reorder(r.Context(), urlParam(r, "siteID"), body.PageIDs)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, recs)
}
