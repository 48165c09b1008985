// internal/dashboard/sections.go
//
// Section mutation handlers.  Each one delegates to the ordering engine
// and returns the refreshed page so the editor can re-render from a single
// source of truth.
package dashboard

import (
	"net/http"

	"github.com/yanizio/atelier/internal/page"
)

func (h *Handler) addSection(w http.ResponseWriter, r *http.Request) {
	var in page.NewSection
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sections.AddSection(r.Context(), urlParam(r, "pageID"), in)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, rec)
}

func (h *Handler) addSections(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sections []page.NewSection `json:"sections"`
	}
	if err := decode(r, &body); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sections.AddSections(r.Context(), urlParam(r, "pageID"), body.Sections)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, rec)
}

func (h *Handler) updateSection(w http.ResponseWriter, r *http.Request) {
	var p page.SectionPatch
	if err := decode(r, &p); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sections.UpdateSection(r.Context(), urlParam(r, "pageID"), urlParam(r, "sectionID"), p)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) updateSections(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Updates []page.BatchPatch `json:"updates"`
	}
	if err := decode(r, &body); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sections.UpdateSections(r.Context(), urlParam(r, "pageID"), body.Updates)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) removeSection(w http.ResponseWriter, r *http.Request) {
	rec, err := h.sections.RemoveSection(r.Context(), urlParam(r, "pageID"), urlParam(r, "sectionID"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) reorderSections(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SectionIDs []string `json:"sectionIds"`
	}
	if err := decode(r, &body); err != nil {
		fail(w, err)
		return
	}
	rec, err := h.sections.ReorderSections(r.Context(), urlParam(r, "pageID"), body.SectionIDs)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) duplicateSection(w http.ResponseWriter, r *http.Request) {
	rec, err := h.sections.DuplicateSection(r.Context(), urlParam(r, "pageID"), urlParam(r, "sectionID"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, rec)
}
