// internal/page/service_test.go
//
// Page-lifecycle rules: slug uniqueness, the last-page floor, and reorder
// validation, over the same in-memory Store fake as engine_test.go.
package page

import (
	"context"
	"testing"

	"github.com/yanizio/atelier/internal/apperr"
)

func TestCreate_SlugUniquePerSite(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "s1", Fields{Name: "About", Slug: "about"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, "s1", Fields{Name: "About again", Slug: "about"})
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("duplicate slug on same site: err = %v, want Conflict", err)
	}
	// Same slug on another site is fine.
	if _, err := svc.Create(ctx, "s2", Fields{Name: "About", Slug: "about"}); err != nil {
		t.Fatalf("same slug, different site: %v", err)
	}
}

func TestCreate_SlugDerivedFromName(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	rec, err := svc.Create(context.Background(), "s1", Fields{Name: "Contact Us!"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Slug != "contact-us" {
		t.Fatalf("derived slug = %q, want contact-us", rec.Slug)
	}
}

func TestDelete_LastPageProtected(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	only, _ := svc.Create(ctx, "s1", Fields{Name: "Home", Slug: "home"})
	err := svc.Delete(ctx, only.ID)
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("deleting last page: err = %v, want Conflict", err)
	}

	second, _ := svc.Create(ctx, "s1", Fields{Name: "About", Slug: "about"})
	if err := svc.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete with sibling present: %v", err)
	}
	// Back to one page; the floor applies again.
	if err := svc.Delete(ctx, only.ID); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("floor not re-applied: err = %v", err)
	}
}

func TestUpdate_SlugRenameChecked(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	home, _ := svc.Create(ctx, "s1", Fields{Name: "Home", Slug: "home"})
	_, _ = svc.Create(ctx, "s1", Fields{Name: "About", Slug: "about"})

	taken := "about"
	_, err := svc.Update(ctx, home.ID, Patch{Slug: &taken})
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("rename onto taken slug: err = %v, want Conflict", err)
	}

	fresh := "start"
	rec, err := svc.Update(ctx, home.ID, Patch{Slug: &fresh})
	if err != nil {
		t.Fatalf("rename to free slug: %v", err)
	}
	if rec.Slug != "start" {
		t.Fatalf("slug = %q, want start", rec.Slug)
	}
}

func TestReorder_Validation(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "s1", Fields{Name: "A", Slug: "a"})
	b, _ := svc.Create(ctx, "s1", Fields{Name: "B", Slug: "b"})

	if _, err := svc.Reorder(ctx, "s1", []string{a.ID}); !apperr.Is(err, apperr.Validation) {
		t.Fatalf("short list: err = %v, want Validation", err)
	}
	if _, err := svc.Reorder(ctx, "s1", []string{a.ID, "ghost"}); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("foreign id: err = %v, want NotFound", err)
	}

	got, err := svc.Reorder(ctx, "s1", []string{b.ID, a.ID})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	byID := map[string]int{}
	for _, p := range got {
		byID[p.ID] = p.SortOrder
	}
	if byID[b.ID] != 0 || byID[a.ID] != 1 {
		t.Fatalf("sort orders = %v, want b=0 a=1", byID)
	}
}
