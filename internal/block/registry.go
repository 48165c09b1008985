// internal/block/registry.go
//
// Block registry and lookup helpers.
//
// A **Block** is a presentational section renderer (hero, features, FAQ,
// and so on).  Each concrete block lives under the top-level `blocks/`
// directory and registers itself by calling `block.Register(&Hero{}, meta)`
// in an init() func, keyed by the string returned from the block's `Type`
// method.  That key is what a Section's `type` field stores.
//
// The registry is populated during package init and read-only afterwards:
// unlimited concurrent readers, no writers after startup.
package block

import (
	"html/template"
	"sort"
	"sync"
)

// Renderer turns a section's opaque content payload into an HTML fragment.
//
// Implementations must treat missing or oddly-typed content keys
// defensively (the payload shape is owned by the dashboard's per-block
// schema, which this process never sees) and must be safe for concurrent
// use.  Errors should be returned, not written to the response, so the
// rendering loop can isolate the failure.
type Renderer interface {
	Type() string
	Render(content map[string]any) (template.HTML, error)
}

// Meta describes a block for the dashboard's section picker.
type Meta struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags,omitempty"`
	PreviewImage string   `json:"previewImageUrl,omitempty"`
}

// Entry pairs a renderer with its metadata.
type Entry struct {
	Renderer Renderer
	Meta     Meta
}

var (
	mu       sync.RWMutex
	registry = map[string]Entry{}
)

// Register a block during init().  A duplicate key overwrites the earlier
// entry; duplicates are a programming error surfaced in review, not at
// runtime.
func Register(r Renderer, m Meta) {
	mu.Lock()
	registry[r.Type()] = Entry{Renderer: r, Meta: m}
	mu.Unlock()
}

// Lookup returns the entry for a section type.
func Lookup(typ string) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[typ]
	return e, ok
}

// Types returns every registered section type, sorted.
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Categories returns the distinct metadata categories, sorted.
func Categories() []string {
	mu.RLock()
	defer mu.RUnlock()
	seen := map[string]struct{}{}
	for _, e := range registry {
		seen[e.Meta.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ByCategory returns type → entry for every block in the category.
func ByCategory(category string) map[string]Entry {
	mu.RLock()
	defer mu.RUnlock()
	out := map[string]Entry{}
	for k, e := range registry {
		if e.Meta.Category == category {
			out[k] = e
		}
	}
	return out
}
