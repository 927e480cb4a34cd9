// Package testutil provides test utilities for createpage integration tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/danielledeleo/createpage/internal/storage"
	"github.com/danielledeleo/createpage/wiki"
	"github.com/jmoiron/sqlx"
)

// TestBaseURL is the base URL used by TestConfig.
const TestBaseURL = "https://wiki.example.org"

// SetupTestDB creates an in-memory SQLite database with migrations applied.
func SetupTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := storage.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

// TestConfig returns a configuration suitable for tests.
func TestConfig() *wiki.Config {
	return &wiki.Config{
		DatabaseFile:    ":memory:",
		Host:            "localhost:8080",
		BaseURL:         TestBaseURL,
		ArticlePath:     wiki.DefaultArticlePath,
		LogFormat:       "text",
		LogLevel:        "error",
		ProjectName:     "Example",
		StoreTimeout:    time.Second,
		FormTokenMaxAge: time.Hour,
	}
}

// CreateTestPage stores a page directly, bypassing the services.
func CreateTestPage(t *testing.T, db *sqlx.DB, namespace wiki.NamespaceID, dbkey string) {
	t.Helper()

	store, err := storage.Init(db)
	if err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}
	if err := store.InsertPage(context.Background(), namespace, dbkey); err != nil {
		t.Fatalf("failed to create test page %d:%s: %v", namespace, dbkey, err)
	}
}

// FetchFormToken loads the form at path and returns the cookies it set and
// the value of its hidden wpEditToken field.
func FetchFormToken(t *testing.T, handler http.Handler, path string) ([]*http.Cookie, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GET %s: expected status 200, got %d", path, rr.Code)
	}

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatalf("GET %s: failed to parse response: %v", path, err)
	}
	token, ok := doc.Find(`input[name="wpEditToken"]`).Attr("value")
	if !ok || token == "" {
		t.Fatalf("GET %s: form has no wpEditToken", path)
	}

	return rr.Result().Cookies(), token
}

// NewFormPost builds a POST request carrying form and cookies.
func NewFormPost(path string, form url.Values, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}
