package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/backupdesk/internal/config"
)

func newTestServer(t *testing.T, backend http.Handler) *httptest.Server {
	t.Helper()

	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<!doctype html><title>BackupDesk</title>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "assets", "app.js"), []byte("console.log('hi')"), 0o644))

	srv, err := NewServer(zerolog.Nop(), &config.Config{
		BackendURL:     backendSrv.URL,
		HTTPListenAddr: ":0",
		StaticDir:      staticDir,
	})
	require.NoError(t, err)

	front := httptest.NewServer(srv.Handler())
	t.Cleanup(front.Close)
	return front
}

func TestProxy_CookieBecomesTokenHeader(t *testing.T) {
	var gotToken, gotCookie string
	front := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Session-Token")
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(`{"message": "ok", "data": null}`))
	}))

	req, err := http.NewRequest(http.MethodGet, front.URL+"/api/v1/backup-sources/list", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "ust-cafe"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "ust-cafe", gotToken)
	assert.Empty(t, gotCookie)
}

func TestProxy_LoginSetsSessionCookie(t *testing.T) {
	front := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/login", r.URL.Path)
		w.Write([]byte(`{"message": "Login successful", "data": {"session_token": "ust-deadbeef"}}`))
	}))

	resp, err := http.Post(front.URL+"/api/v1/users/login", "application/json",
		nil)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	// Body passes through unchanged.
	assert.Contains(t, string(body), "ust-deadbeef")

	var found *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			found = c
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "ust-deadbeef", found.Value)
	assert.True(t, found.HttpOnly)
	assert.Positive(t, found.MaxAge)
}

func TestProxy_UnauthorizedClearsCookie(t *testing.T) {
	front := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid session token"}`))
	}))

	resp, err := http.Get(front.URL + "/api/v1/backup-sources/list")
	require.NoError(t, err)
	resp.Body.Close()

	var found *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			found = c
		}
	}
	require.NotNil(t, found)
	assert.Empty(t, found.Value)
	assert.Negative(t, found.MaxAge)
}

func TestProxy_BackendDown(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backendURL := backendSrv.URL
	backendSrv.Close()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("x"), 0o644))

	srv, err := NewServer(zerolog.Nop(), &config.Config{
		BackendURL:     backendURL,
		HTTPListenAddr: ":0",
		StaticDir:      staticDir,
	})
	require.NoError(t, err)

	front := httptest.NewServer(srv.Handler())
	t.Cleanup(front.Close)

	resp, err := http.Get(front.URL + "/api/v1/system/logs")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), "backend unavailable")
}

func TestSPA_IndexFallback(t *testing.T) {
	front := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp, err := http.Get(front.URL + "/schedules/42/edit")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "BackupDesk")
}

func TestSPA_AssetCaching(t *testing.T) {
	front := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp, err := http.Get(front.URL + "/assets/app.js")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
}

func TestHealthz(t *testing.T) {
	front := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp, err := http.Get(front.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	front := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	resp, err := http.Get(front.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}
