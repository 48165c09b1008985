// internal/page/engine.go
//
// Section ordering engine.
//
// Context
// -------
// Every operation is one read-modify-write cycle over the page's whole
// section list: load the page, transform the decoded list, write the full
// list back through Store.ReplaceSections, then re-read and return the
// refreshed page.  Within a request the cycle never interleaves; across
// concurrent requests on the same page the last write wins (accepted
// limitation — the dashboard assumes a single editor per page).
//
// Ordering invariants
// -------------------
//   • Add appends at len(sections) unless the caller supplies SortOrder,
//     then the list is re-sorted ascending (stable).
//   • Remove renumbers the survivors to the contiguous sequence 0..n-1.
//     This is the one place gaps are squeezed out, so sparse orders never
//     accumulate across repeated adds and removes.
//   • Reorder assigns SortOrder = index from the caller's id sequence and
//     requires that sequence to be a permutation of the current ids.
//   • Update re-sorts only when the patch touched SortOrder; content is a
//     full replace, never a deep merge.
package page

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yanizio/atelier/internal/apperr"
	"github.com/yanizio/atelier/internal/metrics"
)

// NewSection is the caller-supplied payload for AddSection.
type NewSection struct {
	Type      string         `json:"type" validate:"required,min=1"`
	Content   map[string]any `json:"content" validate:"required"`
	SortOrder *int           `json:"sortOrder,omitempty"`
}

// SectionPatch is a partial section update.  Content, when present,
// replaces the stored content wholesale.
type SectionPatch struct {
	Type      *string        `json:"type,omitempty" validate:"omitempty,min=1"`
	Content   map[string]any `json:"content,omitempty"`
	SortOrder *int           `json:"sortOrder,omitempty"`
}

// BatchPatch targets one section inside UpdateSections.
type BatchPatch struct {
	ID    string       `json:"id" validate:"required"`
	Patch SectionPatch `json:"patch"`
}

// Engine owns all section mutations.  It is safe for concurrent use; all
// state lives in the Store.
type Engine struct {
	store    Store
	validate *validator.Validate
}

// NewEngine builds an Engine over store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, validate: validator.New()}
}

// AddSection validates input, assigns a fresh id, inserts, re-sorts, and
// persists.  Without an explicit SortOrder the section lands at the end.
func (e *Engine) AddSection(ctx context.Context, pageID string, in NewSection) (*Record, error) {
	if err := e.validate.Struct(in); err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "invalid section data")
	}
	return e.mutate(ctx, pageID, "add", func(sections []Section) ([]Section, error) {
		sec := Section{
			ID:        uuid.NewString(),
			Type:      in.Type,
			Content:   in.Content,
			SortOrder: len(sections),
		}
		if in.SortOrder != nil {
			sec.SortOrder = *in.SortOrder
		}
		out := append(sections, sec)
		sortSections(out)
		return out, nil
	})
}

// AddSections appends several sections in one write.  Sections without an
// explicit SortOrder are placed after the existing ones, preserving the
// order they were given in.
func (e *Engine) AddSections(ctx context.Context, pageID string, ins []NewSection) (*Record, error) {
	for _, in := range ins {
		if err := e.validate.Struct(in); err != nil {
			return nil, apperr.Wrap(apperr.Validation, err, "invalid section data")
		}
	}
	return e.mutate(ctx, pageID, "add", func(sections []Section) ([]Section, error) {
		base := len(sections)
		out := sections
		for i, in := range ins {
			sec := Section{
				ID:        uuid.NewString(),
				Type:      in.Type,
				Content:   in.Content,
				SortOrder: base + i,
			}
			if in.SortOrder != nil {
				sec.SortOrder = *in.SortOrder
			}
			out = append(out, sec)
		}
		sortSections(out)
		return out, nil
	})
}

// UpdateSection merges the patch over the section with the given id.
func (e *Engine) UpdateSection(ctx context.Context, pageID, sectionID string, p SectionPatch) (*Record, error) {
	if err := e.validate.Struct(p); err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "invalid section data")
	}
	return e.mutate(ctx, pageID, "update", func(sections []Section) ([]Section, error) {
		idx := indexOf(sections, sectionID)
		if idx < 0 {
			return nil, apperr.New(apperr.NotFound, "section %q not found", sectionID)
		}
		applyPatch(&sections[idx], p)
		if p.SortOrder != nil {
			sortSections(sections)
		}
		return sections, nil
	})
}

// UpdateSections applies every patch in one cycle.  A single missing id
// fails the whole batch before anything is written.
func (e *Engine) UpdateSections(ctx context.Context, pageID string, batch []BatchPatch) (*Record, error) {
	for _, b := range batch {
		if err := e.validate.Struct(b); err != nil {
			return nil, apperr.Wrap(apperr.Validation, err, "invalid section data")
		}
	}
	return e.mutate(ctx, pageID, "update", func(sections []Section) ([]Section, error) {
		touchedOrder := false
		for _, b := range batch {
			idx := indexOf(sections, b.ID)
			if idx < 0 {
				return nil, apperr.New(apperr.NotFound, "section %q not found", b.ID)
			}
			applyPatch(&sections[idx], b.Patch)
			if b.Patch.SortOrder != nil {
				touchedOrder = true
			}
		}
		if touchedOrder {
			sortSections(sections)
		}
		return sections, nil
	})
}

// RemoveSection filters out sectionID and renumbers the survivors to
// 0..n-1.  Removing an id that is not on the page is a successful no-op.
func (e *Engine) RemoveSection(ctx context.Context, pageID, sectionID string) (*Record, error) {
	return e.mutate(ctx, pageID, "remove", func(sections []Section) ([]Section, error) {
		out := sections[:0]
		for _, s := range sections {
			if s.ID != sectionID {
				out = append(out, s)
			}
		}
		for i := range out {
			out[i].SortOrder = i
		}
		return out, nil
	})
}

// ReorderSections makes the given id sequence the new canonical order,
// regardless of prior SortOrder values.
func (e *Engine) ReorderSections(ctx context.Context, pageID string, orderedIDs []string) (*Record, error) {
	return e.mutate(ctx, pageID, "reorder", func(sections []Section) ([]Section, error) {
		if len(orderedIDs) != len(sections) {
			return nil, apperr.New(apperr.Validation,
				"section count mismatch: got %d ids, page has %d sections",
				len(orderedIDs), len(sections))
		}
		byID := make(map[string]Section, len(sections))
		for _, s := range sections {
			byID[s.ID] = s
		}
		out := make([]Section, 0, len(orderedIDs))
		for i, id := range orderedIDs {
			s, ok := byID[id]
			if !ok {
				return nil, apperr.New(apperr.NotFound, "section %q not found", id)
			}
			s.SortOrder = i
			out = append(out, s)
			delete(byID, id)
		}
		return out, nil
	})
}

// DuplicateSection clones the source section under a fresh id and appends
// the copy at the end of the list.
func (e *Engine) DuplicateSection(ctx context.Context, pageID, sectionID string) (*Record, error) {
	return e.mutate(ctx, pageID, "duplicate", func(sections []Section) ([]Section, error) {
		idx := indexOf(sections, sectionID)
		if idx < 0 {
			return nil, apperr.New(apperr.NotFound, "section %q not found", sectionID)
		}
		dup := sections[idx]
		dup.ID = uuid.NewString()
		dup.SortOrder = len(sections)
		dup.Content = cloneContent(sections[idx].Content)
		return append(sections, dup), nil
	})
}

//
// internal: the read-modify-write cycle
//

// mutate loads the page, runs fn over its decoded sections, writes the
// result back in one ReplaceSections call, and returns the re-read page.
// fn returning an error aborts before any write.
func (e *Engine) mutate(ctx context.Context, pageID, op string,
	fn func([]Section) ([]Section, error)) (*Record, error) {

	rec, err := e.store.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	next, err := fn(rec.Sections())
	if err != nil {
		return nil, err
	}
	if err := e.store.ReplaceSections(ctx, pageID, next); err != nil {
		return nil, err
	}
	metrics.SectionMutationsTotal.WithLabelValues(op).Inc()
	return e.store.Get(ctx, pageID)
}

func indexOf(sections []Section, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func applyPatch(s *Section, p SectionPatch) {
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Content != nil {
		s.Content = p.Content // full replace, not a deep merge
	}
	if p.SortOrder != nil {
		s.SortOrder = *p.SortOrder
	}
}

// sortSections orders by SortOrder ascending; equal values keep their
// current relative order.
func sortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})
}

// cloneContent copies the top level of a content payload so the duplicate
// does not alias the source map.
func cloneContent(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
