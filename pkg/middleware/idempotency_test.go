package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voltslot/pkg/model"
)

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"call":%d}`, calls)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	handler.ServeHTTP(first, req)

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	req2.Header.Set("Idempotency-Key", "key-1")
	handler.ServeHTTP(second, req2)

	if calls != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated {
		t.Errorf("expected replayed status 201, got %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("expected identical bodies, got %q and %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotency_DistinctKeysAreIndependent(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for _, key := range []string{"key-a", "key-b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Idempotency-Key", key)
		handler.ServeHTTP(w, req)
	}

	if calls != 2 {
		t.Errorf("expected 2 handler runs, got %d", calls)
	}
}

func TestIdempotency_ErrorsAreNotCached(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		handler.ServeHTTP(w, req)

		// The rejected first attempt must not be replayed; the retry runs
		// the handler again and may succeed.
		want := http.StatusConflict
		if i == 1 {
			want = http.StatusCreated
		}
		if w.Code != want {
			t.Errorf("attempt %d: expected status %d, got %d", i+1, want, w.Code)
		}
	}

	if calls != 2 {
		t.Errorf("expected 2 handler runs, got %d", calls)
	}
}

func TestIdempotency_KeysAreScopedPerActor(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"call":%d}`, calls)
	}))

	send := func(actorID string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		ctx := context.WithValue(req.Context(), ActorKey, model.Actor{ID: actorID, Role: model.RoleRider})
		handler.ServeHTTP(w, req.WithContext(ctx))
		return w
	}

	first := send("rider-a")
	second := send("rider-b")

	// Same key, different actors: both requests must reach the handler.
	if calls != 2 {
		t.Errorf("expected 2 handler runs, got %d", calls)
	}
	if first.Body.String() == second.Body.String() {
		t.Errorf("rider-b must not receive rider-a's cached response: %q", second.Body.String())
	}

	// The same actor retrying still replays.
	replay := send("rider-a")
	if calls != 2 {
		t.Errorf("expected replay for same actor, handler ran %d times", calls)
	}
	if replay.Body.String() != first.Body.String() {
		t.Errorf("expected rider-a's own response replayed, got %q", replay.Body.String())
	}
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	}

	if calls != 3 {
		t.Errorf("expected every keyless request to run, got %d runs", calls)
	}
}

func TestInMemoryIdempotencyStore_TTLExpiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore(10 * time.Millisecond)
	defer store.Stop()

	store.Set("key-1", &CachedResponse{StatusCode: http.StatusOK})
	if _, found := store.Get("key-1"); !found {
		t.Fatal("expected fresh entry to be found")
	}

	time.Sleep(20 * time.Millisecond)
	if _, found := store.Get("key-1"); found {
		t.Error("expected expired entry to be gone")
	}
}
