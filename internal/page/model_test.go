package page

import (
	"encoding/json"
	"testing"
)

func TestHomePage_VisibleFirstThenFallback(t *testing.T) {
	pages := []Record{
		{ID: "p1", SortOrder: 0, Visible: false},
		{ID: "p2", SortOrder: 1, Visible: true},
	}
	if got := HomePage(pages); got == nil || got.ID != "p2" {
		t.Fatalf("home = %+v, want p2 (first visible)", got)
	}

	pages[1].Visible = false
	if got := HomePage(pages); got == nil || got.ID != "p1" {
		t.Fatalf("home = %+v, want p1 (smallest sortOrder overall)", got)
	}

	if got := HomePage(nil); got != nil {
		t.Fatalf("home of empty site = %+v, want nil", got)
	}
}

func TestNavigation_FlagsAndOrder(t *testing.T) {
	pages := []Record{
		{ID: "p3", Slug: "c", SortOrder: 2, Visible: true, ShowInHeader: true, ShowInFooter: true},
		{ID: "p1", Slug: "a", SortOrder: 0, Visible: true, ShowInHeader: true},
		{ID: "p2", Slug: "b", SortOrder: 1, Visible: false, ShowInHeader: true},
	}
	header, footer := Navigation(pages)

	if len(header) != 2 || header[0].ID != "p1" || header[1].ID != "p3" {
		t.Fatalf("header = %+v, want [p1 p3] (hidden pages excluded, sorted)", header)
	}
	if len(footer) != 1 || footer[0].ID != "p3" {
		t.Fatalf("footer = %+v, want [p3]", footer)
	}
}

func TestSections_NormalizesNullAndGarbage(t *testing.T) {
	cases := []json.RawMessage{nil, json.RawMessage("null"), json.RawMessage("{oops")}
	for _, raw := range cases {
		rec := Record{RawSections: raw}
		if got := rec.Sections(); got == nil || len(got) != 0 {
			t.Fatalf("Sections(%q) = %#v, want empty slice", raw, got)
		}
	}
}
