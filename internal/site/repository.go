// internal/site/repository.go
//
// sqlx-backed lookups and mutations for the `site` table.
//
// Two lookup entry points exist on purpose: ByID serves dashboard calls
// that hold a canonical site id, and ByHost serves public rendering where
// only the request's Host header is known.  There is no format-sniffing
// resolver that accepts either — callers pick the one that matches what
// they have.
package site

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

const siteColumns = `
        id, name, description, subdomain, custom_domain, settings,
        created_at, updated_at`

// Fields carries the operator-editable site attributes.
type Fields struct {
	Name        string         `json:"name" validate:"required,min=1"`
	Description *string        `json:"description,omitempty"`
	Subdomain   string         `json:"subdomain" validate:"required,min=1"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// Repository provides site persistence on top of a *sqlx.DB.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// ByID fetches one site row, failing with NotFound when absent.  Used by
// the dashboard, which addresses sites canonically.
func (r *Repository) ByID(ctx context.Context, siteID string) (*Record, error) {
	const q = `SELECT` + siteColumns + `
        FROM   site
        WHERE  id = ?
        LIMIT  1`
	var rec Record
	if err := r.db.GetContext(ctx, &rec, q, siteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "site %q not found", siteID)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "get site %q", siteID)
	}
	return &rec, nil
}

// ByHost matches host against subdomain or custom domain.  A miss returns
// (nil, nil): on the public path an unknown host is a normal outcome, not
// an error.
func (r *Repository) ByHost(ctx context.Context, host string) (*Record, error) {
	const q = `SELECT` + siteColumns + `
        FROM   site
        WHERE  subdomain = ? OR custom_domain = ?
        LIMIT  1`
	var rec Record
	if err := r.db.GetContext(ctx, &rec, q, host, host); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.Storage, err, "get site by host %q", host)
	}
	return &rec, nil
}

// Create inserts a new site row with a fresh uuid.  A taken subdomain
// fails with Conflict via the unique index.
func (r *Repository) Create(ctx context.Context, f Fields) (*Record, error) {
	id := uuid.NewString()
	settings, err := json.Marshal(orEmpty(f.Settings))
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "marshal settings")
	}
	const q = `
        INSERT INTO site (id, name, description, subdomain, settings)
        VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, f.Name, f.Description, f.Subdomain, settings); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Wrap(apperr.Conflict, err,
				"subdomain %q is already taken", f.Subdomain)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "create site %q", f.Subdomain)
	}
	return r.ByID(ctx, id)
}

// Patch carries optional site field updates.  Nil fields are left alone.
type Patch struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description  *string `json:"description,omitempty"`
	CustomDomain *string `json:"customDomain,omitempty"`
}

// Update applies a partial field update and returns the refreshed row.
// An empty patch is a no-op that still returns the current row.
func (r *Repository) Update(ctx context.Context, siteID string, p Patch) (*Record, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.CustomDomain != nil {
		sets = append(sets, "custom_domain = ?")
		args = append(args, *p.CustomDomain)
	}
	if len(sets) == 0 {
		return r.ByID(ctx, siteID)
	}
	args = append(args, siteID)
	q := `UPDATE site SET ` + strings.Join(sets, ", ") + `, updated_at = NOW(3) WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Wrap(apperr.Conflict, err, "custom domain is already taken")
		}
		return nil, apperr.Wrap(apperr.Storage, err, "update site %q", siteID)
	}
	return r.ByID(ctx, siteID)
}

// UpdateSettings replaces the opaque settings bundle wholesale.
func (r *Repository) UpdateSettings(ctx context.Context, siteID string, settings map[string]any) (*Record, error) {
	blob, err := json.Marshal(orEmpty(settings))
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "marshal settings")
	}
	const q = `UPDATE site SET settings = ?, updated_at = NOW(3) WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, blob, siteID); err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "update settings on site %q", siteID)
	}
	return r.ByID(ctx, siteID)
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// isDuplicateKey recognises MySQL error 1062 without string matching.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
