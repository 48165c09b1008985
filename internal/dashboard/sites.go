// internal/dashboard/sites.go
//
// Site handlers.  Mutations end with a tenant-cache invalidation so the
// public path stops serving the stale record immediately instead of
// waiting out the idle TTL.
package dashboard

import (
	"net/http"

	"github.com/yanizio/atelier/internal/site"
)

func (h *Handler) getSite(w http.ResponseWriter, r *http.Request) {
	rec, err := h.sites.ByID(r.Context(), urlParam(r, "siteID"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) createSite(w http.ResponseWriter, r *http.Request) {
	var f site.Fields
	if err := decode(r, &f); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sites.Create(r.Context(), f)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, rec)
}

func (h *Handler) updateSite(w http.ResponseWriter, r *http.Request) {
	var p site.Patch
	if err := decode(r, &p); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sites.Update(r.Context(), urlParam(r, "siteID"), p)
	if err != nil {
		fail(w, err)
		return
	}
	h.invalidateSite(rec.ID)
	respond(w, http.StatusOK, rec)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Settings map[string]any `json:"settings"`
	}
	if err := decode(r, &body); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sites.UpdateSettings(r.Context(), urlParam(r, "siteID"), body.Settings)
	if err != nil {
		fail(w, err)
		return
	}
	h.invalidateSite(rec.ID)
	respond(w, http.StatusOK, rec)
}
