// internal/site/model.go
//
// Site model: the tenant root.  A site is addressed publicly by its unique
// subdomain, or by an optional custom domain, and owns its pages
// exclusively.  The Settings column is an opaque JSON bundle (brand,
// navigation config, integration ids) that the core stores and serves but
// never interprets.
package site

import (
	"encoding/json"
	"time"
)

// Record mirrors one row in the persistent `site` table.
type Record struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Description  *string         `db:"description" json:"description,omitempty"`
	Subdomain    string          `db:"subdomain" json:"subdomain"`
	CustomDomain *string         `db:"custom_domain" json:"customDomain,omitempty"`
	RawSettings  json.RawMessage `db:"settings" json:"settings"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// Settings decodes the opaque settings bundle into a non-nil map.  A NULL
// or malformed column yields an empty map.
func (r *Record) Settings() map[string]any {
	if len(r.RawSettings) == 0 {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(r.RawSettings, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}
