package viewer

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/yuin/goldmark"

	"thaidigest/internal/digest"
	"thaidigest/internal/logger"
	"thaidigest/internal/storage"
)

const sessionCookie = "thaidigest_sid"

// Server renders the calendar and the selected day's digest. Each
// session holds one State; a render cycle performs at most one document
// fetch.
type Server struct {
	store   storage.Store
	country string
	loc     *time.Location
	md      goldmark.Markdown
	tmpl    *template.Template

	mu       sync.Mutex
	sessions map[string]State

	now func() time.Time
}

func NewServer(store storage.Store, country string, loc *time.Location) *Server {
	return &Server{
		store:    store,
		country:  country,
		loc:      loc,
		md:       goldmark.New(),
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
		sessions: make(map[string]State),
		now:      func() time.Time { return time.Now() },
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	sid := s.sessionID(w, r)
	state := s.sessionState(sid)

	if action, ok := s.parseAction(r); ok {
		state = Apply(state, action)
		s.setSessionState(sid, state)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.render(w, r, state)
}

func (s *Server) parseAction(r *http.Request) (Action, bool) {
	q := r.URL.Query()
	switch q.Get("nav") {
	case "prev":
		return Action{Kind: ActionPrevMonth}, true
	case "next":
		return Action{Kind: ActionNextMonth}, true
	}
	if day := q.Get("day"); day != "" {
		if d, err := time.ParseInLocation("2006-01-02", day, s.loc); err == nil {
			return Action{Kind: ActionSelectDay, Day: d}, true
		}
	}
	return Action{}, false
}

type dayCell struct {
	Day      int
	Date     string
	InMonth  bool
	IsToday  bool
	HasDoc   bool
	Selected bool
}

type pageData struct {
	Title         string
	MonthLabel    string
	Weekdays      []string
	Weeks         [][]dayCell
	SelectedLabel string
	Doc           template.HTML
	Notice        string
	ErrorMsg      string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, state State) {
	today := s.today()
	mv := state.Month

	// Best-effort markers: a listing failure just means no dots.
	existing, err := s.store.ListPrefix(r.Context(), digest.MonthPrefix(s.country, mv.Year, int(mv.Month)))
	if err != nil {
		logger.Warn("month listing failed", "error", err)
		existing = map[string]struct{}{}
	}

	var weeks [][]dayCell
	for _, week := range MonthGrid(mv.Year, mv.Month, s.loc) {
		cells := make([]dayCell, 0, 7)
		for _, d := range week {
			_, hasDoc := existing[digest.Key(s.country, d)]
			cells = append(cells, dayCell{
				Day:      d.Day(),
				Date:     d.Format("2006-01-02"),
				InMonth:  d.Month() == mv.Month,
				IsToday:  sameDay(d, today),
				HasDoc:   hasDoc,
				Selected: sameDay(d, state.Selected),
			})
		}
		weeks = append(weeks, cells)
	}

	data := pageData{
		Title:         fmt.Sprintf("%s Daily News", s.country),
		MonthLabel:    fmt.Sprintf("%04d-%02d", mv.Year, int(mv.Month)),
		Weekdays:      []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Weeks:         weeks,
		SelectedLabel: state.Selected.Format("2006-01-02"),
	}

	key := digest.Key(s.country, state.Selected)
	doc, err := s.store.Get(r.Context(), key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		data.Notice = fmt.Sprintf("この日のファイルがまだありません: %s", key)
	case err != nil:
		logger.Error("document fetch failed", "key", key, "error", err)
		data.ErrorMsg = fmt.Sprintf("取得エラー: %v", err)
	default:
		var buf bytes.Buffer
		if convErr := s.md.Convert(doc, &buf); convErr != nil {
			data.ErrorMsg = fmt.Sprintf("表示エラー: %v", convErr)
		} else {
			data.Doc = template.HTML(buf.String())
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		logger.Error("template render failed", "error", err)
	}
}

func (s *Server) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	buf := make([]byte, 16)
	rand.Read(buf)
	sid := hex.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
	})
	return sid
}

func (s *Server) sessionState(sid string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[sid]; ok {
		return state
	}
	state := NewState(s.now().In(s.loc))
	s.sessions[sid] = state
	return state
}

func (s *Server) setSessionState(sid string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = state
}
