// internal/page/service.go
//
// Page lifecycle operations: create, update, delete, and reorder.  These
// sit above the Store and enforce the rules storage cannot express alone:
// the last-page floor, slug auto-generation, and pre-write slug checks
// that surface Conflict before the insert even runs.
package page

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/atelier/internal/apperr"
	"github.com/yanizio/atelier/internal/slug"
)

// Service wraps a Store with page-level rules.
type Service struct {
	store    Store
	validate *validator.Validate
}

// NewService builds a Service over store.
func NewService(store Store) *Service {
	return &Service{store: store, validate: validator.New()}
}

// Create adds a page to siteID.  An empty slug is derived from the name;
// a duplicate (site, slug) pair fails with Conflict.
func (s *Service) Create(ctx context.Context, siteID string, f Fields) (*Record, error) {
	if err := s.validate.Struct(f); err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "invalid page data")
	}
	if f.Slug == "" {
		f.Slug = slug.MakeSlug(f.Name)
	}
	// Pre-check gives a clean Conflict; the unique index still backstops
	// races between the check and the insert.
	if _, err := s.store.BySlug(ctx, siteID, f.Slug); err == nil {
		return nil, apperr.New(apperr.Conflict, "a page with slug %q already exists", f.Slug)
	} else if !apperr.Is(err, apperr.NotFound) {
		return nil, err
	}
	return s.store.Create(ctx, siteID, f)
}

// Update applies a partial page update.  Renaming the slug re-checks
// uniqueness among the site's other pages.
func (s *Service) Update(ctx context.Context, pageID string, p Patch) (*Record, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "invalid page data")
	}
	current, err := s.store.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if p.Slug != nil && *p.Slug != current.Slug {
		if _, err := s.store.BySlug(ctx, current.SiteID, *p.Slug); err == nil {
			return nil, apperr.New(apperr.Conflict, "a page with slug %q already exists", *p.Slug)
		} else if !apperr.Is(err, apperr.NotFound) {
			return nil, err
		}
	}
	if err := s.store.UpdateFields(ctx, pageID, p); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, pageID)
}

// Delete removes a page unless it is the site's last one.  Every site
// keeps at least one page.
func (s *Service) Delete(ctx context.Context, pageID string) error {
	current, err := s.store.Get(ctx, pageID)
	if err != nil {
		return err
	}
	siblings, err := s.store.ForSite(ctx, current.SiteID)
	if err != nil {
		return err
	}
	if len(siblings) <= 1 {
		return apperr.New(apperr.Conflict,
			"cannot delete the last page; every site must keep at least one")
	}
	return s.store.Delete(ctx, pageID)
}

// Reorder persists the given id sequence as the site's new page order,
// writing SortOrder = index per page.  The sequence must be a permutation
// of the site's current page ids.
func (s *Service) Reorder(ctx context.Context, siteID string, orderedIDs []string) ([]Record, error) {
	current, err := s.store.ForSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, apperr.New(apperr.NotFound, "no pages found for site %q", siteID)
	}
	if len(orderedIDs) != len(current) {
		return nil, apperr.New(apperr.Validation,
			"page count mismatch: got %d ids, site has %d pages",
			len(orderedIDs), len(current))
	}
	known := make(map[string]struct{}, len(current))
	for _, p := range current {
		known[p.ID] = struct{}{}
	}
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return nil, apperr.New(apperr.NotFound, "page %q not found on site %q", id, siteID)
		}
		delete(known, id)
	}
	for i, id := range orderedIDs {
		if err := s.store.ReplaceSortOrder(ctx, id, i); err != nil {
			return nil, err
		}
	}
	return s.store.ForSite(ctx, siteID)
}

// List returns the site's pages ordered by SortOrder.
func (s *Service) List(ctx context.Context, siteID string) ([]Record, error) {
	return s.store.ForSite(ctx, siteID)
}

// Get returns one page by id.
func (s *Service) Get(ctx context.Context, pageID string) (*Record, error) {
	return s.store.Get(ctx, pageID)
}
