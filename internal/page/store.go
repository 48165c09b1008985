// internal/page/store.go
//
// Storage contract the ordering engine and page service require.  The sqlx
// implementation lives in repository.go; tests substitute an in-memory
// fake.  Section writes are whole-list replaces only — storage never
// patches an individual section.
package page

import "context"

// Fields carries the operator-editable page attributes.  Pointer fields
// distinguish "not provided" from zero values on update.
type Fields struct {
	Name            string  `json:"name" validate:"required,min=1"`
	Slug            string  `json:"slug"`
	DisplayName     *string `json:"displayName,omitempty"`
	SortOrder       *int    `json:"sortOrder,omitempty"`
	Visible         *bool   `json:"visible,omitempty"`
	ShowInHeader    *bool   `json:"showInHeader,omitempty"`
	ShowInFooter    *bool   `json:"showInFooter,omitempty"`
	MetaTitle       *string `json:"metaTitle,omitempty"`
	MetaDescription *string `json:"metaDescription,omitempty"`
}

// Patch is a partial page update.  Nil fields are left untouched.
type Patch struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug            *string `json:"slug,omitempty" validate:"omitempty,min=1"`
	DisplayName     *string `json:"displayName,omitempty"`
	SortOrder       *int    `json:"sortOrder,omitempty"`
	Visible         *bool   `json:"visible,omitempty"`
	ShowInHeader    *bool   `json:"showInHeader,omitempty"`
	ShowInFooter    *bool   `json:"showInFooter,omitempty"`
	MetaTitle       *string `json:"metaTitle,omitempty"`
	MetaDescription *string `json:"metaDescription,omitempty"`
}

// Store is the persistence surface for pages.  Implementations return
// apperr.NotFound when the referenced page is absent, apperr.Conflict on a
// (site, slug) uniqueness violation, and apperr.Storage for everything
// else.
type Store interface {
	// Get returns one page by id.
	Get(ctx context.Context, pageID string) (*Record, error)

	// ForSite returns every page belonging to siteID ordered by SortOrder.
	ForSite(ctx context.Context, siteID string) ([]Record, error)

	// BySlug returns the page with the given slug on siteID, or
	// apperr.NotFound.
	BySlug(ctx context.Context, siteID, slug string) (*Record, error)

	// ReplaceSections atomically swaps the page's whole section list.
	ReplaceSections(ctx context.Context, pageID string, sections []Section) error

	// ReplaceSortOrder rewrites the page's position among its siblings.
	ReplaceSortOrder(ctx context.Context, pageID string, sortOrder int) error

	// Create inserts a new page with zero sections.
	Create(ctx context.Context, siteID string, f Fields) (*Record, error)

	// UpdateFields applies a partial page update.
	UpdateFields(ctx context.Context, pageID string, p Patch) error

	// Delete removes the page row.  Callers enforce the last-page floor.
	Delete(ctx context.Context, pageID string) error
}
