package handlers

import (
	"net/http"
	"strings"
	"testing"

	"ormtutor/internal/content"
)

func activeSection(body string) string {
	const marker = `data-section="`
	i := strings.Index(body, marker)
	if i < 0 {
		return ""
	}
	rest := body[i+len(marker):]
	return rest[:strings.IndexByte(rest, '"')]
}

func TestHomeShowsTheory(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	rec := env.get(t, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if got := activeSection(body); got != "theory" {
		t.Errorf("active section: got %q, want theory", got)
	}
	if !strings.Contains(body, "Database Basics") {
		t.Error("home page should show the theory title")
	}
	if !strings.Contains(body, "<html") {
		t.Error("plain request should get the full page")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if rec.Header().Get("Vary") != "HX-Request, HX-History-Restore-Request" {
		t.Errorf("Vary: got %q, want the htmx request headers", rec.Header().Get("Vary"))
	}
}

func TestHistoryRestoreGetsFullPage(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	rec := env.get(t, "/sections/setup", map[string]string{
		"HX-Request":                 "true",
		"HX-History-Restore-Request": "true",
	})

	body := rec.Body.String()
	if !strings.Contains(body, "<html") || !strings.Contains(body, `id="toasts"`) {
		t.Error("history restore should get the full page with the toast host")
	}
	if got := activeSection(body); got != "setup" {
		t.Errorf("active section: got %q, want setup", got)
	}
}

// TestSectionNavigation walks theory, setup and crud the way a reader
// clicking the tabs would.
func TestSectionNavigation(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	htmx := map[string]string{"HX-Request": "true"}

	steps := []struct {
		path  string
		want  string
		title string
	}{
		{"/", "theory", "Database Basics"},
		{"/sections/setup", "setup", "SQLAlchemy Setup"},
		{"/sections/crud", "crud", "Better CRUD"},
	}
	for _, step := range steps {
		rec := env.get(t, step.path, htmx)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", step.path, rec.Code)
		}
		body := rec.Body.String()
		if got := activeSection(body); got != step.want {
			t.Errorf("%s: active section %q, want %q", step.path, got, step.want)
		}
		if !strings.Contains(body, step.title) {
			t.Errorf("%s: missing title %q", step.path, step.title)
		}
		if strings.Contains(body, "<html") {
			t.Errorf("%s: htmx request should get a fragment", step.path)
		}
		if n := strings.Count(body, `aria-selected="true"`); n != 1 {
			t.Errorf("%s: %d selected tabs, want 1", step.path, n)
		}
	}
}

func TestUnknownSectionFallsBackToTheory(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	for _, path := range []string{"/sections/unknown", "/sections/THEORY2", "/sections/%20"} {
		rec := env.get(t, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d, want 200", path, rec.Code)
		}
		if got := activeSection(rec.Body.String()); got != "theory" {
			t.Errorf("%s: active section %q, want theory", path, got)
		}
	}
}

func TestSectionETag(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	first := env.get(t, "/sections/advanced", nil)
	tag := first.Header().Get("ETag")
	if tag == "" {
		t.Fatal("missing ETag")
	}
	if tag != ETag(first.Body.Bytes()) {
		t.Errorf("ETag %q does not match body hash", tag)
	}

	again := env.get(t, "/sections/advanced", map[string]string{"If-None-Match": tag})
	if again.Code != http.StatusNotModified {
		t.Errorf("status: got %d, want 304", again.Code)
	}
	if again.Body.Len() != 0 {
		t.Error("304 response should have no body")
	}

	fragment := env.get(t, "/sections/advanced", map[string]string{"HX-Request": "true", "If-None-Match": tag})
	if fragment.Code != http.StatusOK {
		t.Errorf("fragment with full-page ETag: got %d, want 200", fragment.Code)
	}
}

func TestEtagMatches(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"xyz", "abc"`, true},
		{`"xyz"`, false},
		{"*", true},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestSectionSourceFailure(t *testing.T) {
	env := newTestEnv(t, brokenSource{}, nil)
	rec := env.get(t, "/sections/setup", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestSectionFallsBackToEmbeddedWhenStoreFails(t *testing.T) {
	lib, err := content.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	env := newTestEnv(t, content.Chain{brokenSource{}, lib}, nil)
	rec := env.get(t, "/sections/setup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got := activeSection(rec.Body.String()); got != "setup" {
		t.Errorf("active section %q, want setup", got)
	}
}

func TestSectionPageCache(t *testing.T) {
	pc := testPageCache(t)
	env := newTestEnv(t, nil, pc)

	first := env.get(t, "/sections/crud", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status %d", first.Code)
	}

	// A broken source proves the second response comes from Valkey.
	cached := newTestEnv(t, brokenSource{}, pc)
	second := cached.get(t, "/sections/crud", nil)
	if second.Code != http.StatusOK {
		t.Fatalf("cached status: got %d, want 200", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Error("cached body differs from rendered body")
	}

	fragment := cached.get(t, "/sections/crud", map[string]string{"HX-Request": "true"})
	if fragment.Code != http.StatusInternalServerError {
		t.Errorf("uncached fragment: got %d, want 500", fragment.Code)
	}
}
