package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	values map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{values: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func idempotentRouter(store *fakeIdempotencyStore, hits *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Post("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"order":"placed"}}`))
	})
	r.Get("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestIdempotencyRequiresHeaderOnMatchedRoute(t *testing.T) {
	hits := 0
	router := idempotentRouter(newFakeIdempotencyStore(), &hits)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without header, got %d", rec.Code)
	}
	if hits != 0 {
		t.Fatalf("handler should not run without key")
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	hits := 0
	router := idempotentRouter(newFakeIdempotencyStore(), &hits)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"note":"same"}`))
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("first call: %d", first.Code)
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("replay should keep status, got %d", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", second.Body.String(), first.Body.String())
	}
	if hits != 1 {
		t.Fatalf("handler should run once, ran %d times", hits)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	hits := 0
	router := idempotentRouter(newFakeIdempotencyStore(), &hits)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"note":"one"}`))
	first.Header.Set("Idempotency-Key", "key-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, first)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first call: %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"note":"two"}`))
	second.Header.Set("Idempotency-Key", "key-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for body mismatch, got %d", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("handler should not re-run on mismatch, ran %d times", hits)
	}
}

func TestIdempotencyIgnoresUnmatchedRoutes(t *testing.T) {
	hits := 0
	router := idempotentRouter(newFakeIdempotencyStore(), &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET should bypass idempotency, got %d", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("handler should run, ran %d times", hits)
	}
}

func TestIdempotencyScopesKeysPerUser(t *testing.T) {
	store := newFakeIdempotencyStore()
	hits := 0
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Post("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusCreated)
	})

	send := func(userID string) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "shared-key")
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
	}

	send("user-a")
	send("user-b")

	if hits != 2 {
		t.Fatalf("distinct users sharing a key should both execute, got %d hits", hits)
	}
}
