// internal/dashboard/api_test.go
//
// Route-level tests over httptest.  Page and section routes run against an
// in-memory page.Store fake; site routes run against a sqlmock-backed
// repository so the error mapping is exercised end to end.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/atelier/internal/apperr"
	"github.com/yanizio/atelier/internal/page"
	"github.com/yanizio/atelier/internal/site"
)

//
// in-memory page.Store fake
//

type fakeStore struct {
	recs map[string]*page.Record
}

func newFakeStore() *fakeStore { return &fakeStore{recs: map[string]*page.Record{}} }

func (f *fakeStore) put(rec page.Record) {
	if len(rec.RawSections) == 0 {
		rec.RawSections = json.RawMessage("[]")
	}
	f.recs[rec.ID] = &rec
}

func (f *fakeStore) Get(_ context.Context, pageID string) (*page.Record, error) {
	rec, ok := f.recs[pageID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "page %q not found", pageID)
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) ForSite(_ context.Context, siteID string) ([]page.Record, error) {
	var out []page.Record
	for _, rec := range f.recs {
		if rec.SiteID == siteID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeStore) BySlug(_ context.Context, siteID, slug string) (*page.Record, error) {
	for _, rec := range f.recs {
		if rec.SiteID == siteID && rec.Slug == slug {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "page %q not found", slug)
}

func (f *fakeStore) ReplaceSections(_ context.Context, pageID string, sections []page.Section) error {
	rec, ok := f.recs[pageID]
	if !ok {
		return apperr.New(apperr.NotFound, "page %q not found", pageID)
	}
	blob, err := json.Marshal(sections)
	if err != nil {
		return apperr.Wrap(apperr.Storage, err, "marshal sections")
	}
	rec.RawSections = blob
	rec.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) ReplaceSortOrder(_ context.Context, pageID string, sortOrder int) error {
	rec, ok := f.recs[pageID]
	if !ok {
		return apperr.New(apperr.NotFound, "page %q not found", pageID)
	}
	rec.SortOrder = sortOrder
	return nil
}

func (f *fakeStore) Create(_ context.Context, siteID string, fl page.Fields) (*page.Record, error) {
	rec := page.Record{
		ID:          "pg-" + fl.Slug,
		SiteID:      siteID,
		Name:        fl.Name,
		Slug:        fl.Slug,
		Visible:     fl.Visible == nil || *fl.Visible,
		RawSections: json.RawMessage("[]"),
	}
	f.recs[rec.ID] = &rec
	cp := rec
	return &cp, nil
}

func (f *fakeStore) UpdateFields(_ context.Context, pageID string, p page.Patch) error {
	rec, ok := f.recs[pageID]
	if !ok {
		return apperr.New(apperr.NotFound, "page %q not found", pageID)
	}
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Slug != nil {
		rec.Slug = *p.Slug
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, pageID string) error {
	delete(f.recs, pageID)
	return nil
}

//
// helpers
//

func newTestHandler(t *testing.T, store page.Store) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	sites := site.NewRepository(sqlx.NewDb(raw, "sqlmock"))
	return New(page.NewService(store), page.NewEngine(store), sites, nil), mock
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sectionsOf(t *testing.T, body []byte) []page.Section {
	t.Helper()
	var rec page.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return rec.Sections()
}

//
// section routes
//

func TestAddSectionRoute(t *testing.T) {
	store := newFakeStore()
	store.put(page.Record{ID: "p1", SiteID: "s1", Name: "Home", Slug: "home", Visible: true})
	h, _ := newTestHandler(t, store)
	router := h.Router()

	rr := doJSON(t, router, http.MethodPost, "/api/pages/p1/sections",
		`{"type":"Hero","content":{"title":"Welcome"}}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rr.Code, rr.Body)
	}

	secs := sectionsOf(t, rr.Body.Bytes())
	if len(secs) != 1 {
		t.Fatalf("sections = %d, want 1", len(secs))
	}
	if secs[0].Type != "Hero" || secs[0].SortOrder != 0 || secs[0].ID == "" {
		t.Errorf("unexpected section: %+v", secs[0])
	}
}

func TestAddSectionRouteValidation(t *testing.T) {
	store := newFakeStore()
	store.put(page.Record{ID: "p1", SiteID: "s1", Name: "Home", Slug: "home", Visible: true})
	h, _ := newTestHandler(t, store)
	router := h.Router()

	for name, body := range map[string]string{
		"missing type":    `{"content":{"title":"x"}}`,
		"missing content": `{"type":"Hero"}`,
		"malformed json":  `{"type":`,
	} {
		rr := doJSON(t, router, http.MethodPost, "/api/pages/p1/sections", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rr.Code)
		}
	}
}

func TestRemoveSectionRouteRenumbers(t *testing.T) {
	store := newFakeStore()
	blob, _ := json.Marshal([]page.Section{
		{ID: "a", Type: "Hero", Content: map[string]any{}, SortOrder: 0},
		{ID: "b", Type: "Faq", Content: map[string]any{}, SortOrder: 1},
		{ID: "c", Type: "Cta", Content: map[string]any{}, SortOrder: 2},
	})
	store.put(page.Record{ID: "p1", SiteID: "s1", Name: "Home", Slug: "home", Visible: true, RawSections: blob})
	h, _ := newTestHandler(t, store)
	router := h.Router()

	rr := doJSON(t, router, http.MethodDelete, "/api/pages/p1/sections/b", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rr.Code, rr.Body)
	}
	secs := sectionsOf(t, rr.Body.Bytes())
	if len(secs) != 2 || secs[0].ID != "a" || secs[1].ID != "c" {
		t.Fatalf("unexpected survivors: %+v", secs)
	}
	if secs[0].SortOrder != 0 || secs[1].SortOrder != 1 {
		t.Errorf("sort orders not renumbered: %+v", secs)
	}
}

func TestReorderSectionsRouteMismatch(t *testing.T) {
	store := newFakeStore()
	blob, _ := json.Marshal([]page.Section{
		{ID: "a", Type: "Hero", Content: map[string]any{}, SortOrder: 0},
		{ID: "b", Type: "Faq", Content: map[string]any{}, SortOrder: 1},
	})
	store.put(page.Record{ID: "p1", SiteID: "s1", Name: "Home", Slug: "home", Visible: true, RawSections: blob})
	h, _ := newTestHandler(t, store)
	router := h.Router()

	rr := doJSON(t, router, http.MethodPut, "/api/pages/p1/sections/order",
		`{"sectionIds":["a"]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rr.Code, rr.Body)
	}
}

func TestSectionRouteUnknownPage(t *testing.T) {
	h, _ := newTestHandler(t, newFakeStore())
	router := h.Router()

	rr := doJSON(t, router, http.MethodPost, "/api/pages/ghost/sections",
		`{"type":"Hero","content":{}}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rr.Code, rr.Body)
	}
}

//
// page routes
//

func TestDeleteLastPageRoute(t *testing.T) {
	store := newFakeStore()
	store.put(page.Record{ID: "p1", SiteID: "s1", Name: "Home", Slug: "home", Visible: true})
	h, _ := newTestHandler(t, store)
	router := h.Router()

	rr := doJSON(t, router, http.MethodDelete, "/api/pages/p1", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rr.Code, rr.Body)
	}
	if _, err := store.Get(context.Background(), "p1"); err != nil {
		t.Errorf("page deleted despite 409: %v", err)
	}
}

func TestCreatePageRouteDerivesSlug(t *testing.T) {
	store := newFakeStore()
	store.put(page.Record{ID: "p0", SiteID: "s1", Name: "Home", Slug: "home", Visible: true})
	h, _ := newTestHandler(t, store)
	router := h.Router()

	rr := doJSON(t, router, http.MethodPost, "/api/sites/s1/pages",
		`{"name":"Contact Us"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rr.Code, rr.Body)
	}
	var rec page.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if rec.Slug != "contact-us" {
		t.Errorf("slug = %q, want %q", rec.Slug, "contact-us")
	}
}

//
// site routes
//

func TestCreateSiteRouteDuplicateSubdomain(t *testing.T) {
	h, mock := newTestHandler(t, newFakeStore())
	router := h.Router()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO site")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate"})

	rr := doJSON(t, router, http.MethodPost, "/api/sites",
		`{"name":"Acme","subdomain":"acme"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rr.Code, rr.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGetSiteRouteNotFound(t *testing.T) {
	h, mock := newTestHandler(t, newFakeStore())
	router := h.Router()

	mock.ExpectQuery(`FROM\s+site\s+WHERE\s+id = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rr := doJSON(t, router, http.MethodGet, "/api/sites/ghost", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rr.Code, rr.Body)
	}
}
