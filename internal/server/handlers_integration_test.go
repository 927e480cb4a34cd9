package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/danielledeleo/createpage/testutil"
	"github.com/danielledeleo/createpage/wiki"
	"github.com/jmoiron/sqlx"
)

const createPagePath = "/wiki/Special:CreatePage"

// setupHandlerTestRouter creates the full application router backed by an
// in-memory database.
func setupHandlerTestRouter(t *testing.T) (http.Handler, *App, func()) {
	t.Helper()

	db, cleanup := testutil.SetupTestDB(t)

	app, err := NewApp(testutil.TestConfig(), db)
	if err != nil {
		cleanup()
		t.Fatalf("NewApp failed: %v", err)
	}

	return NewRouter(app), app, cleanup
}

// submitTitle posts title to path with a valid form token and returns the
// response.
func submitTitle(t *testing.T, router http.Handler, path, title string) *httptest.ResponseRecorder {
	t.Helper()

	cookies, token := testutil.FetchFormToken(t, router, path)
	req := testutil.NewFormPost(path, url.Values{"wpTitle": {title}, "wpEditToken": {token}}, cookies)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return doc
}

func TestHomeHandler(t *testing.T) {
	router, _, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Errorf("expected status 302, got %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != testutil.TestBaseURL+createPagePath {
		t.Errorf("expected redirect to the create page form, got %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestCreatePageForm(t *testing.T) {
	router, _, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	t.Run("renders the form", func(t *testing.T) {
		req := httptest.NewRequest("GET", createPagePath, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		if got := rr.Header().Get("Cache-Control"); got != "no-store" {
			t.Errorf("Cache-Control = %q, want no-store", got)
		}
		if len(rr.Result().Cookies()) == 0 {
			t.Error("expected a form token cookie")
		}

		doc := parseBody(t, rr)
		form := doc.Find("form#createpage-form")
		if form.Length() != 1 {
			t.Fatal("expected the create page form")
		}
		if method, _ := form.Attr("method"); method != "post" {
			t.Errorf("form method = %q, want post", method)
		}
		if action, _ := form.Attr("action"); action != createPagePath {
			t.Errorf("form action = %q, want %q", action, createPagePath)
		}
		if form.Find(`input[name="wpTitle"]`).Length() != 1 {
			t.Error("expected a wpTitle input")
		}
		if got := strings.TrimSpace(doc.Find("h1#firstHeading").Text()); got != "Create a page" {
			t.Errorf("heading = %q, want %q", got, "Create a page")
		}
	})

	t.Run("prefills the title from the query", func(t *testing.T) {
		req := httptest.NewRequest("GET", createPagePath+"?wpTitle=Draft+idea", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		doc := parseBody(t, rr)
		if got, _ := doc.Find(`input[name="wpTitle"]`).Attr("value"); got != "Draft idea" {
			t.Errorf("wpTitle value = %q, want %q", got, "Draft idea")
		}
	})

	t.Run("form posts back to the subpage", func(t *testing.T) {
		req := httptest.NewRequest("GET", createPagePath+"/Template", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		doc := parseBody(t, rr)
		if action, _ := doc.Find("form#createpage-form").Attr("action"); action != createPagePath+"/Template" {
			t.Errorf("form action = %q, want %q", action, createPagePath+"/Template")
		}
	})

	t.Run("special namespace is case-insensitive", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/wiki/special:CreatePage", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rr.Code)
		}
	})
}

func TestCreatePageSubmit(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		title    string
		location string
	}{
		{
			name:     "new page in the main namespace",
			path:     createPagePath,
			title:    "foo_bar",
			location: "/wiki/Foo_bar?action=edit",
		},
		{
			name:     "subpage picks the namespace",
			path:     createPagePath + "/Template",
			title:    "Infobox person",
			location: "/wiki/Template:Infobox_person?action=edit",
		},
		{
			name:     "subpage namespace is case-insensitive",
			path:     createPagePath + "/template",
			title:    "Infobox person",
			location: "/wiki/Template:Infobox_person?action=edit",
		},
		{
			name:     "explicit prefix wins over the subpage",
			path:     createPagePath + "/Template",
			title:    "Help:Contents",
			location: "/wiki/Help:Contents?action=edit",
		},
		{
			name:     "trailing slash is served without a redirect",
			path:     createPagePath + "/",
			title:    "Something",
			location: "/wiki/Something?action=edit",
		},
		{
			name:     "unknown subpage falls back to main",
			path:     createPagePath + "/Nonsense",
			title:    "Something",
			location: "/wiki/Something?action=edit",
		},
		{
			name:     "project alias",
			path:     createPagePath,
			title:    "Project:About",
			location: "/wiki/Example:About?action=edit",
		},
		{
			name:     "empty title returns to the form",
			path:     createPagePath,
			title:    "   ",
			location: createPagePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, cleanup := setupHandlerTestRouter(t)
			defer cleanup()

			rr := submitTitle(t, router, tt.path, tt.title)

			if rr.Code != http.StatusSeeOther {
				t.Fatalf("expected status 303, got %d: %s", rr.Code, rr.Body.String())
			}
			if got := rr.Header().Get("Location"); got != testutil.TestBaseURL+tt.location {
				t.Errorf("Location = %q, want %q", got, testutil.TestBaseURL+tt.location)
			}
		})
	}
}

func TestCreatePageExisting(t *testing.T) {
	router, app, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	testutil.CreateTestPage(t, app.DB, wiki.NamespaceTemplate, "Foo_bar")

	rr := submitTitle(t, router, createPagePath+"/Template", "foo bar")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	doc := parseBody(t, rr)
	notice := doc.Find("#createpage-titleexists")
	if notice.Length() != 1 {
		t.Fatal("expected the page exists notice")
	}
	if !strings.Contains(notice.Text(), "Template:Foo bar") {
		t.Errorf("notice does not name the page: %q", notice.Text())
	}
	if href, _ := doc.Find("#createpage-editexisting").Attr("href"); href != testutil.TestBaseURL+"/wiki/Template:Foo_bar?action=edit" {
		t.Errorf("edit link = %q", href)
	}
	if href, _ := doc.Find("#createpage-tryagain").Attr("href"); href != testutil.TestBaseURL+createPagePath {
		t.Errorf("try again link = %q", href)
	}
	if doc.Find("form#createpage-form").Length() != 0 {
		t.Error("form should not be shown with the exists notice")
	}
}

func TestCreatePageInvalidTitle(t *testing.T) {
	router, _, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	rr := submitTitle(t, router, createPagePath, "a[b]")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if rr.Header().Get("Location") != "" {
		t.Error("invalid title must not redirect")
	}

	doc := parseBody(t, rr)
	callout := doc.Find(`[role="alert"]`)
	if !strings.Contains(callout.Text(), "forbidden character") {
		t.Errorf("expected the reason in the callout, got %q", callout.Text())
	}
	if got, _ := doc.Find(`input[name="wpTitle"]`).Attr("value"); got != "a[b]" {
		t.Errorf("wpTitle value = %q, want the submitted text", got)
	}
}

func TestCreatePageRejectsVirtualNamespace(t *testing.T) {
	router, _, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	rr := submitTitle(t, router, createPagePath, "Special:Foo")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestCreatePageFormToken(t *testing.T) {
	router, _, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	t.Run("missing token", func(t *testing.T) {
		req := testutil.NewFormPost(createPagePath, url.Values{"wpTitle": {"Foo"}}, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rr.Code)
		}
	})

	t.Run("token without cookie", func(t *testing.T) {
		_, token := testutil.FetchFormToken(t, router, createPagePath)
		req := testutil.NewFormPost(createPagePath, url.Values{"wpTitle": {"Foo"}, "wpEditToken": {token}}, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rr.Code)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		cookies, _ := testutil.FetchFormToken(t, router, createPagePath)
		req := testutil.NewFormPost(createPagePath, url.Values{"wpTitle": {"Foo"}, "wpEditToken": {"forged"}}, cookies)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rr.Code)
		}
		if rr.Header().Get("Location") != "" {
			t.Error("rejected submission must not redirect")
		}
	})
}

func TestCreatePageRichEditor(t *testing.T) {
	router, app, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	if err := wiki.UpdateSetting(app.DB.DB, wiki.SettingUseRichEditor, "true"); err != nil {
		t.Fatalf("UpdateSetting failed: %v", err)
	}

	rr := submitTitle(t, router, createPagePath, "Foo")

	if got := rr.Header().Get("Location"); got != testutil.TestBaseURL+"/wiki/Foo?veaction=edit" {
		t.Errorf("Location = %q, want the rich editor", got)
	}
}

func TestCreatePageStoreUnavailable(t *testing.T) {
	router, app, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	cookies, token := testutil.FetchFormToken(t, router, createPagePath)
	closeDB(t, app.DB)

	req := testutil.NewFormPost(createPagePath, url.Values{"wpTitle": {"Foo"}, "wpEditToken": {token}}, cookies)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header")
	}
	if rr.Header().Get("Location") != "" {
		t.Error("store failure must not redirect to the editor")
	}
}

func closeDB(t *testing.T, db *sqlx.DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}
}

func TestNotFound(t *testing.T) {
	router, _, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	paths := []string{
		"/nope",
		"/wiki/Special:NoSuchPage",
		"/wiki/Template:CreatePage",
		"/wiki/Special:createpage",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusNotFound {
				t.Errorf("expected status 404, got %d", rr.Code)
			}
			if got := rr.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", got)
			}
			doc := parseBody(t, rr)
			if !strings.Contains(doc.Find(".pw-error").Text(), "404") {
				t.Error("expected the error page")
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	router, _, cleanup := setupHandlerTestRouter(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/static/createpage.css", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q", got)
	}
}
