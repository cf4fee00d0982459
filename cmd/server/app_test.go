package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(protect bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           0,
			LogLevel:       "debug",
			Environment:    "development",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Database: config.DatabaseConfig{
			Driver:       driverSQLite,
			URL:          ":memory:",
			MaxOpenConns: 1,
		},
		Auth: config.AuthConfig{
			JWTSecret:            "thisisasecretkeythatis32charslong!!",
			TokenLifetimeMinutes: 60,
			ProtectRoutes:        protect,
		},
		Tasks: config.TasksConfig{
			Categories:      domain.DefaultCategories,
			DefaultCategory: domain.CategoryTodo,
		},
	}
}

func newTestApp(t *testing.T, protect bool) *application {
	t.Helper()
	app, err := newApplication(testConfig(protect), testLogger, testdb.NewSQLite(t))
	require.NoError(t, err)
	return app
}

func newTestServer(t *testing.T, app *application) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(
	t *testing.T,
	srv *httptest.Server,
	method, path, body string,
	mutate func(*http.Request),
) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if mutate != nil {
		mutate(req)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(raw))
}

func TestRouter_BannerAndHealth(t *testing.T) {
	app := newTestApp(t, false)
	srv := newTestServer(t, app)

	resp := doRequest(t, srv, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, bannerText, readBody(t, resp))

	resp = doRequest(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", readBody(t, resp))

	require.NoError(t, app.db.Close())
	resp = doRequest(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_TaskLifecycle(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, false))

	resp := doRequest(t, srv, http.MethodPost, "/allTasks", `{"title":"Write spec","email":"a@x.com"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var inserted api.InsertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inserted))
	id := inserted.InsertedID.String()

	resp = doRequest(t, srv, http.MethodPut, "/allTasks/"+id, `{"category":"done"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, srv, http.MethodPut, "/allTasks/edit/"+id, `{"title":"Write the spec"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, srv, http.MethodGet, "/allTasks/a@x.com", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var owned []domain.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&owned))
	require.Len(t, owned, 1)
	assert.Equal(t, "Write the spec", owned[0].Title)
	assert.Equal(t, domain.CategoryDone, owned[0].Category)

	resp = doRequest(t, srv, http.MethodDelete, "/allTasks/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, readBody(t, resp))

	resp = doRequest(t, srv, http.MethodGet, "/allTasks", "", nil)
	assert.Equal(t, "[]", readBody(t, resp))
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, true))

	resp := doRequest(t, srv, http.MethodGet, "/allTasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var errBody shared.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "Unauthorized Access", errBody.Error)
	assert.Len(t, errBody.TraceID, 32)

	resp = doRequest(t, srv, http.MethodGet, "/users", "", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not-a-token")
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Forbidden Access"}`, stripTraceID(t, readBody(t, resp)))

	// Token issuance stays public.
	resp = doRequest(t, srv, http.MethodPost, "/jwt", `{"email":"ada@example.com","name":"Ada"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var token api.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	require.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == api.TokenCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	resp = doRequest(t, srv, http.MethodGet, "/allTasks", "", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token.Token)
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, srv, http.MethodGet, "/users", "", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, srv, http.MethodPost, "/logout", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, false))

	resp := doRequest(t, srv, http.MethodOptions, "/allTasks", "", func(r *http.Request) {
		r.Header.Set("Origin", "http://localhost:5173")
		r.Header.Set("Access-Control-Request-Method", http.MethodPut)
	})
	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	resp = doRequest(t, srv, http.MethodOptions, "/allTasks", "", func(r *http.Request) {
		r.Header.Set("Origin", "http://evil.example")
		r.Header.Set("Access-Control-Request-Method", http.MethodPut)
	})
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNewApplication_UnknownDriver(t *testing.T) {
	cfg := testConfig(false)
	cfg.Database.Driver = "mongodb"

	_, err := newApplication(cfg, testLogger, testdb.NewSQLite(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestApplicationRun_StopsOnContextCancel(t *testing.T) {
	app := newTestApp(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + 5*time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Error(t, app.db.Ping(), "database should be closed after shutdown")
}

func stripTraceID(t *testing.T, body string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	delete(m, "trace_id")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
