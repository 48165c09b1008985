// internal/dashboard/api.go
//
// JSON API for the builder dashboard.
//
// Context
// -------
//   - Served only on the configured builder host; the public renderer never
//     mounts these routes.
//   - Every operation addresses sites and pages by canonical id.  Host-based
//     lookup is the public path's concern, not the dashboard's.
//   - Errors come back as apperr kinds and are mapped to HTTP statuses in
//     respond.go: Validation → 400, NotFound → 404, Conflict → 409, and
//     everything else → 500.
//
// Route map
// ---------
//	POST   /api/sites                                   create site
//	GET    /api/sites/{siteID}                          fetch site
//	PATCH  /api/sites/{siteID}                          update site fields
//	PUT    /api/sites/{siteID}/settings                 replace settings bundle
//	GET    /api/sites/{siteID}/pages                    list pages
//	POST   /api/sites/{siteID}/pages                    create page
//	PUT    /api/sites/{siteID}/pages/order              reorder pages
//	GET    /api/pages/{pageID}                          fetch page
//	PATCH  /api/pages/{pageID}                          update page fields
//	DELETE /api/pages/{pageID}                          delete page
//	POST   /api/pages/{pageID}/sections                 add section
//	POST   /api/pages/{pageID}/sections/batch           add several sections
//	PATCH  /api/pages/{pageID}/sections/batch           update several sections
//	PUT    /api/pages/{pageID}/sections/order           reorder sections
//	PATCH  /api/pages/{pageID}/sections/{sectionID}     update section
//	DELETE /api/pages/{pageID}/sections/{sectionID}     remove section
//	POST   /api/pages/{pageID}/sections/{sectionID}/duplicate
//	GET    /api/blocks                                  block catalogue
//	GET    /api/blocks/categories                       block categories
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/atelier/internal/page"
	"github.com/yanizio/atelier/internal/site"
	"github.com/yanizio/atelier/internal/tenant"
)

// Handler bundles the services the dashboard routes call into.
type Handler struct {
	pages    *page.Service
	sections *page.Engine
	sites    *site.Repository
	cache    *tenant.Cache // may be nil in tests
}

// New builds a Handler.  cache may be nil; invalidation is then skipped.
func New(pages *page.Service, sections *page.Engine, sites *site.Repository, cache *tenant.Cache) *Handler {
	return &Handler{pages: pages, sections: sections, sites: sites, cache: cache}
}

// Router mounts every dashboard route on a fresh chi router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/sites", func(r chi.Router) {
			r.Post("/", h.createSite)
			r.Route("/{siteID}", func(r chi.Router) {
				r.Get("/", h.getSite)
				r.Patch("/", h.updateSite)
				r.Put("/settings", h.updateSettings)
				r.Get("/pages", h.listPages)
				r.Post("/pages", h.createPage)
				r.Put("/pages/order", h.reorderPages)
			})
		})

		r.Route("/pages/{pageID}", func(r chi.Router) {
			r.Get("/", h.getPage)
			r.Patch("/", h.updatePage)
			r.Delete("/", h.deletePage)

			r.Route("/sections", func(r chi.Router) {
				r.Post("/", h.addSection)
				r.Post("/batch", h.addSections)
				r.Patch("/batch", h.updateSections)
				r.Put("/order", h.reorderSections)
				r.Patch("/{sectionID}", h.updateSection)
				r.Delete("/{sectionID}", h.removeSection)
				r.Post("/{sectionID}/duplicate", h.duplicateSection)
			})
		})

		r.Get("/blocks", h.listBlocks)
		r.Get("/blocks/categories", h.listBlockCategories)
	})

	return r
}

// invalidateSite drops the site's cached host entries so the public path
// picks up dashboard edits on the next request.
func (h *Handler) invalidateSite(siteID string) {
	if h.cache != nil {
		h.cache.InvalidateSite(siteID)
	}
}

// urlParam is a thin alias so handlers read cleanly.
func urlParam(r *http.Request, key string) string { return chi.URLParam(r, key) }
