package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"willspark/internal/repository"
)

// fakeBackend is an in-process booking backend. Routes use ServeMux patterns
// such as "GET /api/courts"; every request is recorded as "METHOD /path".
type fakeBackend struct {
	mux *http.ServeMux
	srv *httptest.Server

	mu    sync.Mutex
	calls []string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{mux: http.NewServeMux()}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)

	f.handle("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&req)
		switch {
		case req.Username == "membermock" && req.Password == "trial123":
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "member-token",
				"user":  map[string]any{"id": "u1", "username": "membermock", "email": "member@example.com", "is_resident": true},
			})
		case req.Username == "staffmock" && req.Password == "staff123":
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "staff-token",
				"user":  map[string]any{"id": "s1", "username": "staffmock", "is_staff": true},
			})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		}
	})
	return f
}

func (f *fakeBackend) handle(pattern string, h http.HandlerFunc) {
	f.mux.HandleFunc(pattern, h)
}

func (f *fakeBackend) reply(pattern string, status int, body any) {
	f.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

func (f *fakeBackend) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call || (strings.HasSuffix(call, "*") && strings.HasPrefix(c, strings.TrimSuffix(call, "*"))) {
			n++
		}
	}
	return n
}

func (f *fakeBackend) repo() *repository.BackendRepository {
	return repository.NewBackendRepository(f.srv.URL, 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

var twoCourts = map[string]any{"courts": []map[string]any{
	{"id": 1, "name": "Court 1", "available": true},
	{"id": 2, "name": "Court 2", "available": false},
}}
