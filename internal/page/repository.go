// internal/page/repository.go
//
// sqlx-backed Store implementation against the `page` table.
//
// Error mapping
// -------------
//   • sql.ErrNoRows          → apperr.NotFound
//   • MySQL 1062 (dup key)   → apperr.Conflict (site_id + slug unique index)
//   • anything else          → apperr.Storage
//
// Sections travel as one JSON column; ReplaceSections marshals the full
// list and overwrites the column in a single UPDATE, which is the atomic
// "whole-document replace" the engine relies on.
package page

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/atelier/internal/apperr"
)

const pageColumns = `
        id, site_id, name, slug, display_name, sort_order,
        visible, show_in_header, show_in_footer,
        meta_title, meta_description, sections,
        created_at, updated_at`

// Repository implements Store on top of a *sqlx.DB.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps db.  The pool is shared; Repository holds no other
// state.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

var _ Store = (*Repository)(nil)

func (r *Repository) Get(ctx context.Context, pageID string) (*Record, error) {
	const q = `SELECT` + pageColumns + `
        FROM   page
        WHERE  id = ?
        LIMIT  1`
	var rec Record
	if err := r.db.GetContext(ctx, &rec, q, pageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "page %q not found", pageID)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "get page %q", pageID)
	}
	normalize(&rec)
	return &rec, nil
}

func (r *Repository) ForSite(ctx context.Context, siteID string) ([]Record, error) {
	const q = `SELECT` + pageColumns + `
        FROM   page
        WHERE  site_id = ?
        ORDER  BY sort_order`
	var rows []Record
	if err := r.db.SelectContext(ctx, &rows, q, siteID); err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "list pages for site %q", siteID)
	}
	for i := range rows {
		normalize(&rows[i])
	}
	return rows, nil
}

func (r *Repository) BySlug(ctx context.Context, siteID, slug string) (*Record, error) {
	const q = `SELECT` + pageColumns + `
        FROM   page
        WHERE  site_id = ? AND slug = ?
        LIMIT  1`
	var rec Record
	if err := r.db.GetContext(ctx, &rec, q, siteID, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "page %q not found on site %q", slug, siteID)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "get page by slug %q", slug)
	}
	normalize(&rec)
	return &rec, nil
}

func (r *Repository) ReplaceSections(ctx context.Context, pageID string, sections []Section) error {
	if sections == nil {
		sections = []Section{}
	}
	blob, err := json.Marshal(sections)
	if err != nil {
		return apperr.Wrap(apperr.Storage, err, "marshal sections for page %q", pageID)
	}
	// updated_at is bumped explicitly so cached renders of this page are
	// invalidated even when the schema carries no ON UPDATE clause.
	const q = `UPDATE page SET sections = ?, updated_at = NOW(3) WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, blob, pageID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, err, "replace sections on page %q", pageID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 for a missing row, but also for a write that
		// changed nothing, so confirm the page exists before reporting
		// NotFound.
		if _, err := r.Get(ctx, pageID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) ReplaceSortOrder(ctx context.Context, pageID string, sortOrder int) error {
	const q = `UPDATE page SET sort_order = ?, updated_at = NOW(3) WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, sortOrder, pageID); err != nil {
		return apperr.Wrap(apperr.Storage, err, "replace sort order on page %q", pageID)
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, siteID string, f Fields) (*Record, error) {
	id := uuid.NewString()
	const q = `
        INSERT INTO page
               (id, site_id, name, slug, display_name, sort_order,
                visible, show_in_header, show_in_footer,
                meta_title, meta_description, sections)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sortOrder := 0
	if f.SortOrder != nil {
		sortOrder = *f.SortOrder
	}
	visible := true
	if f.Visible != nil {
		visible = *f.Visible
	}
	_, err := r.db.ExecContext(ctx, q,
		id, siteID, f.Name, f.Slug, f.DisplayName, sortOrder,
		visible, boolOrFalse(f.ShowInHeader), boolOrFalse(f.ShowInFooter),
		f.MetaTitle, f.MetaDescription, []byte("[]"))
	if err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Wrap(apperr.Conflict, err,
				"a page with slug %q already exists", f.Slug)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "create page %q", f.Slug)
	}
	return r.Get(ctx, id)
}

func (r *Repository) UpdateFields(ctx context.Context, pageID string, p Patch) error {
	// Build SET clause from non-nil fields only.
	set := make([]string, 0, 9)
	args := make([]any, 0, 10)
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Slug != nil {
		add("slug", *p.Slug)
	}
	if p.DisplayName != nil {
		add("display_name", *p.DisplayName)
	}
	if p.SortOrder != nil {
		add("sort_order", *p.SortOrder)
	}
	if p.Visible != nil {
		add("visible", *p.Visible)
	}
	if p.ShowInHeader != nil {
		add("show_in_header", *p.ShowInHeader)
	}
	if p.ShowInFooter != nil {
		add("show_in_footer", *p.ShowInFooter)
	}
	if p.MetaTitle != nil {
		add("meta_title", *p.MetaTitle)
	}
	if p.MetaDescription != nil {
		add("meta_description", *p.MetaDescription)
	}
	if len(set) == 0 {
		return nil
	}
	q := "UPDATE page SET " + strings.Join(set, ", ") + ", updated_at = NOW(3) WHERE id = ?"
	args = append(args, pageID)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if isDuplicateKey(err) {
			return apperr.Wrap(apperr.Conflict, err, "slug already in use on this site")
		}
		return apperr.Wrap(apperr.Storage, err, "update page %q", pageID)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, pageID string) error {
	const q = `DELETE FROM page WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, pageID); err != nil {
		return apperr.Wrap(apperr.Storage, err, "delete page %q", pageID)
	}
	return nil
}

//
// helpers
//

// normalize guarantees RawSections decodes to a non-nil slice downstream.
func normalize(rec *Record) {
	if len(rec.RawSections) == 0 {
		rec.RawSections = json.RawMessage("[]")
	}
}

func boolOrFalse(b *bool) bool { return b != nil && *b }

// isDuplicateKey recognises MySQL error 1062 without string matching.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
