package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`

func newTestClient() *Client {
	return New(5*time.Second, "global-news-bot/test")
}

func TestFetch_ReturnsFeedBytes(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	body, err := newTestClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != sampleRSS {
		t.Errorf("body mismatch: %q", body)
	}
	if gotUA != "global-news-bot/test" {
		t.Errorf("user agent not sent, got %q", gotUA)
	}
}

func TestFetch_RejectsHTMLBodyDespiteFeedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte("\n  <!DOCTYPE html><html><body>blocked</body></html>"))
	}))
	defer srv.Close()

	if _, err := newTestClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected HTML-sniffed response to be rejected")
	}
}

func TestFetch_RejectsHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	if _, err := newTestClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected text/html content type to be rejected")
	}
}

func TestFetch_RejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	if _, err := newTestClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected 503 to be rejected")
	}
}

func TestFetch_RejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
	}))
	defer srv.Close()

	if _, err := newTestClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected empty body to be rejected")
	}
}

func TestFetch_NetworkErrorReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	if _, err := newTestClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected network error")
	}
}

func TestLooksLikeHTML(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
		want        bool
	}{
		{"doctype", "application/xml", "<!doctype html><html>", true},
		{"doctype upper", "", "  <!DOCTYPE HTML>", true},
		{"html tag", "", "<html lang=\"en\">", true},
		{"declared html", "text/html", sampleRSS, true},
		{"rss", "application/rss+xml", sampleRSS, false},
		{"xml prolog", "", sampleRSS, false},
	}
	for _, tc := range cases {
		if got := looksLikeHTML(tc.contentType, []byte(tc.body)); got != tc.want {
			t.Errorf("%s: looksLikeHTML = %v, want %v", tc.name, got, tc.want)
		}
	}
}
