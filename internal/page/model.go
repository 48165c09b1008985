// internal/page/model.go
//
// Page and Section models.
//
// Context
// -------
// A Page is one sluggable unit of content belonging to a single site.  Its
// sections are NOT separate rows: the whole ordered list is persisted as one
// JSON document in the `sections` column of the `page` table.  That makes
// every section mutation trivially atomic at page granularity (see
// engine.go), at the cost of last-write-wins between concurrent editors of
// the same page.
//
// A NULL or absent sections column is a page with zero sections, never an
// error; Sections() and the repository normalize it to an empty slice.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package page

import (
	"encoding/json"
	"sort"
	"time"
)

// Section is one content block on a page.  Type keys into the block
// registry; Content is an opaque per-type payload whose shape is owned by
// the block's own schema, not by this package.
type Section struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Content   map[string]any `json:"content"`
	SortOrder int            `json:"sortOrder"`
}

// Record mirrors one row in the persistent `page` table.  RawSections is
// the JSON document holding the ordered section list; use Sections() for
// the decoded, normalized form.
type Record struct {
	ID              string          `db:"id" json:"id"`
	SiteID          string          `db:"site_id" json:"siteId"`
	Name            string          `db:"name" json:"name"`
	Slug            string          `db:"slug" json:"slug"`
	DisplayName     *string         `db:"display_name" json:"displayName,omitempty"`
	SortOrder       int             `db:"sort_order" json:"sortOrder"`
	Visible         bool            `db:"visible" json:"visible"`
	ShowInHeader    bool            `db:"show_in_header" json:"showInHeader"`
	ShowInFooter    bool            `db:"show_in_footer" json:"showInFooter"`
	MetaTitle       *string         `db:"meta_title" json:"metaTitle,omitempty"`
	MetaDescription *string         `db:"meta_description" json:"metaDescription,omitempty"`
	RawSections     json.RawMessage `db:"sections" json:"sections"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// Sections decodes RawSections into a non-nil slice.  Malformed JSON is
// treated the same as absent: the page simply has no renderable sections
// (the mutation path never writes malformed JSON, so this only guards
// hand-edited rows).
func (r *Record) Sections() []Section {
	if len(r.RawSections) == 0 {
		return []Section{}
	}
	var out []Section
	if err := json.Unmarshal(r.RawSections, &out); err != nil || out == nil {
		return []Section{}
	}
	return out
}

// Title returns the operator-facing display name, falling back to the
// internal name.
func (r *Record) Title() string {
	if r.DisplayName != nil && *r.DisplayName != "" {
		return *r.DisplayName
	}
	return r.Name
}

// Navigation splits pages into header and footer lists.  Both lists keep
// only visible pages carrying the matching flag, ordered by SortOrder
// (stable, so equal values keep their incoming order).
func Navigation(pages []Record) (header, footer []Record) {
	for _, p := range sortedBySortOrder(pages) {
		if !p.Visible {
			continue
		}
		if p.ShowInHeader {
			header = append(header, p)
		}
		if p.ShowInFooter {
			footer = append(footer, p)
		}
	}
	return header, footer
}

/// HomePage picks the default page for a site's root path: the visible page
// with the smallest SortOrder, or the first page overall when none are
// visible.  Returns nil only when pages is empty.
func HomePage(pages []Record) *Record {
	if len(pages) == 0 {
		return nil
	}
	sorted := sortedBySortOrder(pages)
	for i := range sorted {
		if sorted[i].Visible {
			return &sorted[i]
		}
	}
	return &sorted[0]
}

func sortedBySortOrder(pages []Record) []Record {
	out := make([]Record, len(pages))
	copy(out, pages)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}
