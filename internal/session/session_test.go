package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"actuweb/internal/models"
)

// testRedisClient returns a Redis client connected to the test instance.
// Skips the test if Redis is unavailable.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "flash:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestSessionCreateAndGet(t *testing.T) {
	client := testRedisClient(t)
	store := NewStore(client, false)

	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{
		UserID: 42,
		Email:  "test@session.local",
		Roles:  []string{models.RoleUser, models.RoleAdmin},
	}

	sessionID, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sessionID == "" {
		t.Error("expected non-empty session ID")
	}

	// Verify cookie was set.
	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
			break
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}

	// Get the session back.
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie)

	retrieved, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session data, got nil")
	}
	if retrieved.Email != "test@session.local" {
		t.Errorf("email: got %q, want %q", retrieved.Email, "test@session.local")
	}
	if retrieved.UserID != 42 {
		t.Errorf("userID: got %d, want 42", retrieved.UserID)
	}
	if !retrieved.IsAdmin() {
		t.Error("IsAdmin() = false for session with ROLE_ADMIN")
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	client := testRedisClient(t)
	store := NewStore(client, false)

	req := httptest.NewRequest("GET", "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get without cookie: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil session without cookie, got %+v", data)
	}
}

func TestSessionDestroy(t *testing.T) {
	client := testRedisClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	_, err := store.Create(ctx, w, &Data{UserID: 7, Email: "bye@session.local"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cookie := w.Result().Cookies()[0]

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	data, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if data != nil {
		t.Error("session still readable after Destroy")
	}
}

func TestFlashAddAndPop(t *testing.T) {
	client := testRedisClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := store.AddFlash(ctx, w, req, "success", "L'article a été publié."); err != nil {
		t.Fatalf("AddFlash: %v", err)
	}
	if err := store.AddFlash(ctx, w, req, "warning", "Attention."); err != nil {
		t.Fatalf("AddFlash second: %v", err)
	}

	flashes, err := store.PopFlashes(ctx, req)
	if err != nil {
		t.Fatalf("PopFlashes: %v", err)
	}
	if len(flashes) != 2 {
		t.Fatalf("len(flashes) = %d, want 2", len(flashes))
	}
	if flashes[0].Kind != "success" || flashes[1].Kind != "warning" {
		t.Errorf("flash kinds = %q, %q; want success, warning", flashes[0].Kind, flashes[1].Kind)
	}

	// A second pop returns nothing: flashes are one-time.
	again, err := store.PopFlashes(ctx, req)
	if err != nil {
		t.Fatalf("PopFlashes again: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second PopFlashes returned %d messages, want 0", len(again))
	}
}
