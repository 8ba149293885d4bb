package viewer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"thaidigest/internal/storage"
)

type fakeStore struct {
	objects map[string][]byte
	getErr  error
	listErr error
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return body, nil
}

func (f *fakeStore) Put(_ context.Context, key string, body []byte, _, _ string) error {
	f.objects[key] = body
	return nil
}

func (f *fakeStore) ListPrefix(_ context.Context, prefix string) (map[string]struct{}, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	keys := make(map[string]struct{})
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys[k] = struct{}{}
		}
	}
	return keys, nil
}

func newTestServer(store storage.Store) *Server {
	s := NewServer(store, "Thailand", time.UTC)
	s.now = func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) }
	return s
}

// browse selects the given day for a fresh session and returns the
// rendered page.
func browse(t *testing.T, srv *Server, day string) string {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	jar := make([]*http.Cookie, 0)
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/?day="+day, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("select request: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("day selection status = %d, want 303", resp.StatusCode)
	}
	jar = append(jar, resp.Cookies()...)

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	for _, c := range jar {
		req.AddCookie(c)
	}
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("render request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func TestViewer_MissingDocumentShowsNotice(t *testing.T) {
	srv := newTestServer(&fakeStore{objects: map[string][]byte{}})
	page := browse(t, srv, "2026-02-14")

	if !strings.Contains(page, "まだありません") {
		t.Error("not-found state should show the informational notice")
	}
	if strings.Contains(page, "取得エラー") {
		t.Error("not-found state must not render as a generic error")
	}
	if !strings.Contains(page, "Thailand/2026_02_14.md") {
		t.Error("notice should name the missing key")
	}
}

func TestViewer_StorageErrorShowsErrorState(t *testing.T) {
	srv := newTestServer(&fakeStore{
		objects: map[string][]byte{},
		getErr:  fmt.Errorf("access denied"),
	})
	page := browse(t, srv, "2026-02-14")

	if !strings.Contains(page, "取得エラー") {
		t.Error("storage error should render the error state")
	}
	if strings.Contains(page, "まだありません") {
		t.Error("storage error must not render as not-found")
	}
}

func TestViewer_RendersMarkdownDocument(t *testing.T) {
	srv := newTestServer(&fakeStore{objects: map[string][]byte{
		"Thailand/2026_02_14.md": []byte("# Thailand Daily News (2026_02_14)\n\n## 政治\n\nbody text\n"),
	}})
	page := browse(t, srv, "2026-02-14")

	if !strings.Contains(page, "<h1") || !strings.Contains(page, "Thailand Daily News") {
		t.Error("markdown heading not rendered to HTML")
	}
	if !strings.Contains(page, "body text") {
		t.Error("document body missing")
	}
}

func TestViewer_MarksDaysWithDocuments(t *testing.T) {
	srv := newTestServer(&fakeStore{objects: map[string][]byte{
		"Thailand/2026_02_14.md": []byte("# doc"),
	}})
	page := browse(t, srv, "2026-02-01")

	if !strings.Contains(page, `href="/?day=2026-02-14">14`) {
		t.Fatalf("day cell for the 14th missing")
	}
	marked := strings.Contains(page, `14 &bull;`) || strings.Contains(page, "14 •")
	if !marked {
		t.Error("day with a stored document should carry a marker")
	}
}

func TestViewer_ListingFailureDegradesToNoMarkers(t *testing.T) {
	srv := newTestServer(&fakeStore{
		objects: map[string][]byte{"Thailand/2026_02_14.md": []byte("# doc")},
		listErr: fmt.Errorf("list denied"),
	})
	page := browse(t, srv, "2026-02-14")

	if strings.Contains(page, "14 &bull;") || strings.Contains(page, "14 •") {
		t.Error("listing failure must degrade to no markers")
	}
	// Day selection itself still works.
	if !strings.Contains(page, "Thailand Daily News") && !strings.Contains(page, "記事: 2026-02-14") {
		t.Error("page did not render after listing failure")
	}
}
