package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNoStore(t *testing.T) {
	inner := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}
	handler := noStore(inner)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want %q", got, "no-store")
	}
	if rr.Body.String() != "ok" {
		t.Error("inner handler was not called")
	}
}

func TestCacheControlHandler(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("body"))
	})
	handler := cacheControlHandler(inner, "public, max-age=86400")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/static/createpage.css", nil)
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q, want %q", got, "public, max-age=86400")
	}
	if rr.Body.String() != "body" {
		t.Error("inner handler was not called")
	}
}
