// internal/render/render_test.go
//
// Rendering-loop tests: ordering, per-section failure isolation, and the
// empty-page placeholder.  Blocks are local stubs registered under unique
// type names so no production block is touched.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/yanizio/atelier/internal/block"
	"github.com/yanizio/atelier/internal/page"
	"github.com/yanizio/atelier/internal/site"
)

type okBlock struct{ typ string }

func (b *okBlock) Type() string { return b.typ }
func (b *okBlock) Render(content map[string]any) (template.HTML, error) {
	title, _ := content["title"].(string)
	return template.HTML("<section>" + title + "</section>"), nil
}

type failBlock struct{}

func (b *failBlock) Type() string { return "TestBroken" }
func (b *failBlock) Render(map[string]any) (template.HTML, error) {
	return "", errors.New("boom")
}

type panicBlock struct{}

func (b *panicBlock) Type() string { return "TestPanics" }
func (b *panicBlock) Render(map[string]any) (template.HTML, error) {
	panic("nil deref somewhere deep")
}

func init() {
	block.Register(&okBlock{typ: "TestHero"}, block.Meta{Name: "Test Hero", Category: "Header"})
	block.Register(&failBlock{}, block.Meta{Name: "Broken", Category: "Content"})
	block.Register(&panicBlock{}, block.Meta{Name: "Panics", Category: "Content"})
}

func pageWith(t *testing.T, sections []page.Section) *page.Record {
	t.Helper()
	blob, err := json.Marshal(sections)
	if err != nil {
		t.Fatalf("marshal sections: %v", err)
	}
	return &page.Record{
		ID:          "p1",
		SiteID:      "s1",
		Name:        "home",
		Slug:        "home",
		Visible:     true,
		RawSections: blob,
		UpdatedAt:   time.Now(),
	}
}

func TestSections_IsolationAndOrder(t *testing.T) {
	p := pageWith(t, []page.Section{
		{ID: "b", Type: "TestHero", Content: map[string]any{"title": "second"}, SortOrder: 1},
		{ID: "x", Type: "NoSuchType", Content: map[string]any{"k": "v"}, SortOrder: 2},
		{ID: "a", Type: "TestHero", Content: map[string]any{"title": "first"}, SortOrder: 0},
		{ID: "e", Type: "TestBroken", Content: map[string]any{"k": "v"}, SortOrder: 3},
	})

	got := Sections(p)
	if len(got) != 3 {
		t.Fatalf("fragment count = %d, want 3 (two heroes + one error placeholder)", len(got))
	}
	if !strings.Contains(string(got[0]), "first") || !strings.Contains(string(got[1]), "second") {
		t.Fatalf("sections out of order: %q then %q", got[0], got[1])
	}
	if !strings.Contains(string(got[2]), "TestBroken") {
		t.Fatalf("error placeholder should name the type, got %q", got[2])
	}
}

func TestSections_PanicIsolated(t *testing.T) {
	p := pageWith(t, []page.Section{
		{ID: "a", Type: "TestPanics", Content: map[string]any{"k": "v"}, SortOrder: 0},
		{ID: "b", Type: "TestHero", Content: map[string]any{"title": "alive"}, SortOrder: 1},
	})

	got := Sections(p)
	if len(got) != 2 {
		t.Fatalf("fragment count = %d, want 2", len(got))
	}
	if !strings.Contains(string(got[1]), "alive") {
		t.Fatalf("section after panic not rendered: %q", got[1])
	}
}

func TestSections_EmptyContentSkipped(t *testing.T) {
	p := pageWith(t, []page.Section{
		{ID: "a", Type: "TestHero", Content: map[string]any{}, SortOrder: 0},
		{ID: "b", Type: "TestHero", Content: nil, SortOrder: 1},
	})

	got := Sections(p)
	if len(got) != 1 || !strings.Contains(string(got[0]), "under-construction") {
		t.Fatalf("want single under-construction fragment, got %#v", got)
	}
}

func TestSections_EmptyPagePlaceholder(t *testing.T) {
	p := pageWith(t, []page.Section{})
	got := Sections(p)
	if len(got) != 1 || !strings.Contains(string(got[0]), "Under construction") {
		t.Fatalf("empty page should render placeholder, got %#v", got)
	}
}

func TestPage_SiblingEditRefreshesNavigation(t *testing.T) {
	p := pageWith(t, []page.Section{
		{ID: "a", Type: "TestHero", Content: map[string]any{"title": "hello"}, SortOrder: 0},
	})
	s := &site.Record{ID: "s1", Name: "Acme", Subdomain: "acme", UpdatedAt: time.Now()}
	sibling := page.Record{ID: "p2", SiteID: "s1", Name: "About", Slug: "about",
		Visible: true, ShowInHeader: true, SortOrder: 1, UpdatedAt: time.Now()}

	var first bytes.Buffer
	if err := Page(&first, s, p, []page.Record{*p, sibling}); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if !strings.Contains(first.String(), ">About<") {
		t.Fatalf("first render missing nav link: %q", first.String())
	}

	// Rename the sibling.  The rendered page itself is untouched, so only
	// the sibling fingerprint can defeat the document cache.
	sibling.Name = "Our Story"
	sibling.UpdatedAt = sibling.UpdatedAt.Add(time.Second)

	var second bytes.Buffer
	if err := Page(&second, s, p, []page.Record{*p, sibling}); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if strings.Contains(second.String(), ">About<") {
		t.Fatal("nav still shows the old sibling name after rename")
	}
	if !strings.Contains(second.String(), "Our Story") {
		t.Fatalf("nav missing renamed sibling: %q", second.String())
	}
}

func TestPage_SiteEditRefreshesBranding(t *testing.T) {
	p := pageWith(t, []page.Section{
		{ID: "a", Type: "TestHero", Content: map[string]any{"title": "hello"}, SortOrder: 0},
	})
	s := &site.Record{ID: "s1", Name: "Acme", Subdomain: "acme", UpdatedAt: time.Now()}

	var first bytes.Buffer
	if err := Page(&first, s, p, nil); err != nil {
		t.Fatalf("first render: %v", err)
	}

	s.Name = "Acme Industries"
	s.UpdatedAt = s.UpdatedAt.Add(time.Second)

	var second bytes.Buffer
	if err := Page(&second, s, p, nil); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(second.String(), "Acme Industries") {
		t.Fatal("site rename not reflected in rendered document")
	}
}

func TestPage_SiblingRemovalRefreshesNavigation(t *testing.T) {
	p := pageWith(t, []page.Section{
		{ID: "a", Type: "TestHero", Content: map[string]any{"title": "hello"}, SortOrder: 0},
	})
	s := &site.Record{ID: "s1", Name: "Acme", Subdomain: "acme", UpdatedAt: time.Now()}
	// The sibling is the older record, so deleting it cannot move the
	// newest-updated-at component of the key; only the count catches it.
	sibling := page.Record{ID: "p2", SiteID: "s1", Name: "About", Slug: "about",
		Visible: true, ShowInHeader: true, SortOrder: 1,
		UpdatedAt: p.UpdatedAt.Add(-time.Hour)}

	var first bytes.Buffer
	if err := Page(&first, s, p, []page.Record{*p, sibling}); err != nil {
		t.Fatalf("first render: %v", err)
	}

	var second bytes.Buffer
	if err := Page(&second, s, p, []page.Record{*p}); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if strings.Contains(second.String(), ">About<") {
		t.Fatal("nav still lists a deleted sibling")
	}
}

func TestPage_DocumentShell(t *testing.T) {
	p := pageWith(t, []page.Section{
		{ID: "a", Type: "TestHero", Content: map[string]any{"title": "hello"}, SortOrder: 0},
	})
	s := &site.Record{ID: "s1", Name: "Acme", Subdomain: "acme"}
	siblings := []page.Record{
		*p,
		{ID: "p2", SiteID: "s1", Name: "About", Slug: "about",
			Visible: true, ShowInHeader: true, SortOrder: 1},
	}

	var buf bytes.Buffer
	if err := Page(&buf, s, p, siblings); err != nil {
		t.Fatalf("Page render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"<!DOCTYPE html>", "Acme", "hello", `href="/about"`} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
}
