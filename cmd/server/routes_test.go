package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/naulin/internal/config"
	"github.com/Nixie-Tech-LLC/naulin/internal/db"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/notify"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
	"github.com/Nixie-Tech-LLC/naulin/internal/storage"
)

// listStore serves fixed lists; writes are not expected here.
type listStore struct {
	db.Store
	news []model.NewsArticle
}

func (s listStore) GetPrincipalMessage(context.Context) (model.PrincipalMessage, error) {
	return model.PrincipalMessage{}, db.ErrNotFound
}

func (s listStore) ListNewsArticles(context.Context) ([]model.NewsArticle, error) {
	return s.news, nil
}

func (s listStore) ListFacilities(context.Context) ([]model.Facility, error) {
	return nil, nil
}

func testConfig(t *testing.T, extra map[string]string) *config.Config {
	t.Helper()
	env := map[string]string{
		"DATABASE_URL":   "postgres://unused",
		"RENDER_TIMEOUT": "200ms",
		"ASSETS_DIR":     t.TempDir(),
		"UPLOAD_DIR":     t.TempDir(),
	}
	for k, v := range extra {
		env[k] = v
	}
	cfg, err := config.FromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	return cfg
}

func newServer(t *testing.T, cfg *config.Config, withStore bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := listStore{news: []model.NewsArticle{{ID: 42, Category: "Events", Date: "May 1, 2026", Title: "Open Day"}}}
	deps := Dependencies{Conn: provider.NewConnection(), Notifier: notify.Noop{}}
	sp := provider.NewStoreProvider(store, nil, time.Minute)
	deps.Conn.Establish(sp)
	if withStore {
		deps.Store = store
		deps.Cache = sp
	}

	r := gin.New()
	RegisterRoutes(r, cfg, deps, storage.NewLocalStorage(cfg.UploadDir, "/uploads"))
	return r
}

func serve(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_PublicSurface(t *testing.T) {
	r := newServer(t, testConfig(t, nil), true)

	w := serve(r, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Open Day")
	// missing message is a rejection, so the built-in one is shown
	assert.Contains(t, w.Body.String(), "Mr. Ramesh Kumar Sharma")

	w = serve(r, http.MethodGet, "/api/content/news", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":42,"category":"Events","date":"May 1, 2026","title":"Open Day","short_description":""}]`, w.Body.String())

	w = serve(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/news.rss", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/static/site.css", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodOptions, "/api/content/news", "", map[string]string{
		"Origin":                        "https://example.org",
		"Access-Control-Request-Method": "GET",
	})
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_AdminLoginAndProfile(t *testing.T) {
	hash, err := middleware.HashPassword("12345678")
	require.NoError(t, err)
	cfg := testConfig(t, map[string]string{
		"JWT_SECRET":          "supersecret",
		"ADMIN_EMAIL":         "admin@naulin.edu.np",
		"ADMIN_PASSWORD_HASH": hash,
	})
	r := newServer(t, cfg, true)

	w := serve(r, http.MethodPost, "/api/admin/auth/login",
		`{"email":"admin@naulin.edu.np","password":"12345678"}`,
		map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(r, http.MethodGet, "/api/admin/auth/current_profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := middleware.GenerateJWT(cfg.AdminEmail, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/api/admin/news", "", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Open Day")
}

func TestRoutes_AdminDisabled(t *testing.T) {
	hash, err := middleware.HashPassword("12345678")
	require.NoError(t, err)
	full := map[string]string{
		"JWT_SECRET":          "supersecret",
		"ADMIN_EMAIL":         "admin@naulin.edu.np",
		"ADMIN_PASSWORD_HASH": hash,
	}

	// no credentials
	r := newServer(t, testConfig(t, nil), true)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPost, "/api/admin/auth/login", "{}", nil).Code)

	// remote content source
	r = newServer(t, testConfig(t, full), false)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodPost, "/api/admin/auth/login", "{}", nil).Code)
}
