// internal/site/repository_test.go
//
// sqlmock tests for the site repository.  The interesting cases are the
// two absence semantics: ByID misses are typed NotFound errors for the
// dashboard, ByHost misses are (nil, nil) for the public path.
package site

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/atelier/internal/apperr"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return NewRepository(sqlx.NewDb(raw, "sqlmock")), mock
}

func siteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "subdomain", "custom_domain",
		"settings", "created_at", "updated_at",
	})
}

func TestByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM\s+site\s+WHERE\s+id = \?`).
		WithArgs("ghost").
		WillReturnRows(siteRows())

	_, err := repo.ByID(context.Background(), "ghost")
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestByHostMissReturnsNilNil(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`subdomain = \? OR custom_domain = \?`).
		WithArgs("nobody.example.com", "nobody.example.com").
		WillReturnRows(siteRows())

	rec, err := repo.ByHost(context.Background(), "nobody.example.com")
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if rec != nil {
		t.Fatalf("rec = %+v, want nil", rec)
	}
}

func TestByHostMatchesCustomDomain(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	custom := "www.acme.com"
	mock.ExpectQuery(`subdomain = \? OR custom_domain = \?`).
		WithArgs(custom, custom).
		WillReturnRows(siteRows().AddRow(
			"s1", "Acme", nil, "acme.builder.test", custom,
			[]byte(`{"brand":"blue"}`), now, now))

	rec, err := repo.ByHost(context.Background(), custom)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if rec == nil || rec.ID != "s1" {
		t.Fatalf("rec = %+v, want site s1", rec)
	}
	if got := rec.Settings()["brand"]; got != "blue" {
		t.Errorf("settings brand = %v, want blue", got)
	}
}

func TestCreateDuplicateSubdomain(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO site")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate"})

	_, err := repo.Create(context.Background(), Fields{Name: "Acme", Subdomain: "acme"})
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("err = %v, want Conflict", err)
	}
}

func TestUpdateBuildsPartialSet(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	name := "Acme Rebranded"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE site SET name = ?, updated_at = NOW(3) WHERE id = ?")).
		WithArgs(name, "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM\s+site\s+WHERE\s+id = \?`).
		WithArgs("s1").
		WillReturnRows(siteRows().AddRow(
			"s1", name, nil, "acme.builder.test", nil,
			[]byte(`{}`), now, now))

	rec, err := repo.Update(context.Background(), "s1", Patch{Name: &name})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if rec.Name != name {
		t.Errorf("name = %q, want %q", rec.Name, name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
