package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
	"github.com/lucas-hallgren/automatizador-backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seedSession(t *testing.T, store session.Store, identity *auth.Identity) string {
	t.Helper()

	payload, err := auth.JSONSerializer{}.Serialize(identity)
	require.NoError(t, err)

	id, err := session.GenerateID()
	require.NoError(t, err)

	require.NoError(t, store.Create(context.Background(), session.Session{
		SessionID: id,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
		Identity:  payload,
	}))

	return id
}

func testIdentity() *auth.Identity {
	return &auth.Identity{
		Profile:     auth.Profile{ID: "10001", Name: "Ada"},
		AccessToken: "tok-T",
	}
}

func TestRequireAuthRejectsWithoutCookie(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewAuthMiddleware(store, auth.JSONSerializer{})

	nextCalled := false
	handler := mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	res := rec.Result()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", res.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
	assert.False(t, nextCalled)
}

func TestRequireAuthRejectsUnknownSession(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewAuthMiddleware(store, auth.JSONSerializer{})

	handler := mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "unknown"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsExpiredSession(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewAuthMiddleware(store, auth.JSONSerializer{})

	payload, err := auth.JSONSerializer{}.Serialize(testIdentity())
	require.NoError(t, err)

	// Written as live, then aged past its expiry.
	require.NoError(t, store.Create(context.Background(), session.Session{
		SessionID: "sid-expired",
		ExpiresAt: time.Now().Add(20 * time.Millisecond),
		Identity:  payload,
	}))
	time.Sleep(50 * time.Millisecond)

	handler := mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-expired"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsAnonymousSession(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewAuthMiddleware(store, auth.JSONSerializer{})

	// A session record with no identity payload stays anonymous.
	require.NoError(t, store.Create(context.Background(), session.Session{
		SessionID: "sid-anon",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	handler := mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-anon"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewAuthMiddleware(store, auth.JSONSerializer{})

	want := testIdentity()
	sid := seedSession(t, store, want)

	var got *auth.Identity
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		got = identity
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, got)
}

func TestGinRequireAuthHaltsChain(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewAuthMiddleware(store, auth.JSONSerializer{})

	router := gin.New()
	group := router.Group("/api")
	group.Use(GinRequireAuth(mw))

	reached := false
	group.GET("/profile", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
	assert.False(t, reached)
}

func TestGinRequireAuthPassesIdentityThrough(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewAuthMiddleware(store, auth.JSONSerializer{})

	want := testIdentity()
	sid := seedSession(t, store, want)

	router := gin.New()
	group := router.Group("/api")
	group.Use(GinRequireAuth(mw))
	group.GET("/profile", func(c *gin.Context) {
		identity, ok := IdentityFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, identity)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	router.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get("X-Request-ID"))
}
