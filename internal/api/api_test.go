package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/service"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*gin.Engine, *sqlite.Store) {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "api.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	provider := storage.NewInstrumented(store)
	clock := service.WithClock(func() time.Time { return fixedNow })
	router := NewRouter(Options{
		Moods:          service.NewMoodService(provider, clock),
		Habits:         service.NewHabitService(provider, clock, service.WithLocation(time.UTC)),
		Store:          provider,
		CORSOrigins:    []string{"http://localhost:3000"},
		MoodWindowDays: 30,
	})
	return router, store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
}

func TestRoot(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodGet, "/api/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/ status = %d", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["message"] == "" {
		t.Error("expected a message")
	}
}

func TestMoodEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/moods",
		`{"moodValue":5,"moodLabel":"Happy","moodEmoji":"😄","notes":"Great day"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/moods status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	decode(t, w, &created)
	if created.ID <= 0 || created.Message != "Mood entry created" {
		t.Errorf("unexpected create response %+v", created)
	}

	w = do(t, router, http.MethodGet, "/api/moods", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/moods status = %d", w.Code)
	}
	var moods []models.MoodEntry
	decode(t, w, &moods)
	if len(moods) != 1 || moods[0].ID != created.ID || moods[0].Notes != "Great day" {
		t.Errorf("unexpected moods %+v", moods)
	}
	if !moods[0].Date.Equal(fixedNow) {
		t.Errorf("mood date = %v, want %v", moods[0].Date, fixedNow)
	}

	w = do(t, router, http.MethodGet, "/api/moods/summary?days=7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/moods/summary status = %d", w.Code)
	}
	var summary models.MoodSummary
	decode(t, w, &summary)
	if summary.Count != 1 || summary.Average != 5 || summary.WindowDays != 7 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestMoodEndpoints_EmptyList(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodGet, "/api/moods?days=0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestMoodEndpoints_BadRequests(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing moodValue", http.MethodPost, "/api/moods", `{"moodLabel":"Happy","moodEmoji":"😄"}`},
		{"missing label", http.MethodPost, "/api/moods", `{"moodValue":3,"moodEmoji":"😐"}`},
		{"missing emoji", http.MethodPost, "/api/moods", `{"moodValue":3,"moodLabel":"Meh"}`},
		{"malformed json", http.MethodPost, "/api/moods", `{"moodValue":`},
		{"wrong type", http.MethodPost, "/api/moods", `{"moodValue":"five","moodLabel":"x","moodEmoji":"y"}`},
		{"non-integer days", http.MethodGet, "/api/moods?days=abc", ""},
		{"negative days", http.MethodGet, "/api/moods?days=-1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
			var body map[string]string
			decode(t, w, &body)
			if body["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestHabitEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/habits", `{"name":"Exercise"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/habits status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	decode(t, w, &created)
	if created.Message != "Habit created" {
		t.Errorf("message = %q", created.Message)
	}

	togglePath := "/api/habits/" + strconv.FormatInt(created.ID, 10) + "/toggle"

	w = do(t, router, http.MethodPost, togglePath, "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, body %s", w.Code, w.Body.String())
	}
	var toggled struct {
		Message   string `json:"message"`
		Completed bool   `json:"completed"`
		Date      string `json:"date"`
	}
	decode(t, w, &toggled)
	if !toggled.Completed || toggled.Date != "2026-05-10" || toggled.Message != "Habit completion toggled" {
		t.Errorf("unexpected toggle response %+v", toggled)
	}

	w = do(t, router, http.MethodPost, togglePath, `{"date":"2026-05-09"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("dated toggle status = %d", w.Code)
	}

	w = do(t, router, http.MethodGet, "/api/habits", "")
	var habits []models.HabitView
	decode(t, w, &habits)
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	h := habits[0]
	if h.Name != "Exercise" || len(h.Completions) != 2 || h.Completions[0] != "2026-05-10" {
		t.Errorf("unexpected habit %+v", h)
	}
	if h.CurrentStreak != 2 {
		t.Errorf("streak = %d, want 2", h.CurrentStreak)
	}

	// Second toggle of today removes it
	w = do(t, router, http.MethodPost, togglePath, "")
	decode(t, w, &toggled)
	if toggled.Completed {
		t.Error("second toggle should leave the day incomplete")
	}

	w = do(t, router, http.MethodDelete, "/api/habits/"+strconv.FormatInt(created.ID, 10), "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d", w.Code)
	}
	var deleted map[string]string
	decode(t, w, &deleted)
	if deleted["message"] != "Habit deleted" {
		t.Errorf("message = %q", deleted["message"])
	}

	w = do(t, router, http.MethodGet, "/api/habits", "")
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("habits after delete = %s, want []", got)
	}

	// Deleting again is a no-op
	w = do(t, router, http.MethodDelete, "/api/habits/"+strconv.FormatInt(created.ID, 10), "")
	if w.Code != http.StatusOK {
		t.Errorf("repeated DELETE status = %d", w.Code)
	}
}

func TestHabitEndpoints_Errors(t *testing.T) {
	router, store := setupRouter(t)

	id, err := store.CreateHabit(context.Background(), "Read", fixedNow)
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"empty name", http.MethodPost, "/api/habits", `{"name":"   "}`, http.StatusBadRequest},
		{"missing body", http.MethodPost, "/api/habits", "", http.StatusBadRequest},
		{"toggle missing habit", http.MethodPost, "/api/habits/9999/toggle", "", http.StatusNotFound},
		{"toggle bad id", http.MethodPost, "/api/habits/abc/toggle", "", http.StatusBadRequest},
		{"toggle bad date", http.MethodPost, "/api/habits/" + strconv.FormatInt(id, 10) + "/toggle", `{"date":"05/10/2026"}`, http.StatusBadRequest},
		{"delete bad id", http.MethodDelete, "/api/habits/abc", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}

	n, err := store.CountOrphanCompletions(context.Background())
	if err != nil || n != 0 {
		t.Errorf("orphan completions = %d, %v", n, err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router, store := setupRouter(t)

	for _, path := range []string{"/health", "/healthz"} {
		if w := do(t, router, http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d", path, w.Code)
		}
		if w := do(t, router, http.MethodHead, path, ""); w.Code != http.StatusOK {
			t.Errorf("HEAD %s status = %d", path, w.Code)
		}
	}

	if w := do(t, router, http.MethodGet, "/readyz", ""); w.Code != http.StatusOK {
		t.Errorf("GET /readyz status = %d", w.Code)
	}

	store.Close()
	if w := do(t, router, http.MethodGet, "/readyz", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz after close status = %d, want 503", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	do(t, router, http.MethodGet, "/api/habits", "")
	w := do(t, router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tracklit_http_requests_total") {
		t.Error("metrics output missing request counter")
	}
}

func TestRequestID(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodGet, "/health", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestCORS(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/habits", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("Allow-Headers = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/habits", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Allow-Origin %q", got)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(cors([]string{"*"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://anything.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://anything.example" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	router, _ := setupRouter(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(ln.Addr().String(), router)
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/api/habits", "application/json",
		bytes.NewBufferString(`{"name":"Walk"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	if _, err := http.Get("http://" + ln.Addr().String() + "/health"); err == nil {
		t.Error("expected the listener to be closed")
	}
}
