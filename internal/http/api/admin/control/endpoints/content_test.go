package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/naulin/internal/db"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/notify"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
	"github.com/Nixie-Tech-LLC/naulin/internal/storage"
)

const (
	secret     = "test-secret"
	adminEmail = "admin@naulin.edu.np"
)

// memStore is an in-memory db.Store.
type memStore struct {
	mu         sync.Mutex
	message    *model.PrincipalMessage
	news       []model.NewsArticle
	facilities []model.Facility
}

func (m *memStore) GetPrincipalMessage(context.Context) (model.PrincipalMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.message == nil {
		return model.PrincipalMessage{}, db.ErrNotFound
	}
	return *m.message, nil
}

func (m *memStore) ListNewsArticles(context.Context) ([]model.NewsArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.NewsArticle{}, m.news...), nil
}

func (m *memStore) ListFacilities(context.Context) ([]model.Facility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Facility{}, m.facilities...), nil
}

func (m *memStore) UpsertPrincipalMessage(_ context.Context, msg model.PrincipalMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message = &msg
	return nil
}

func (m *memStore) CreateNewsArticle(_ context.Context, a model.NewsArticle) (model.NewsArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		a.ID = uint64(len(m.news) + 1)
	}
	m.news = append(m.news, a)
	return a, nil
}

func (m *memStore) UpdateNewsArticle(_ context.Context, a model.NewsArticle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.news {
		if m.news[i].ID == a.ID {
			m.news[i] = a
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) DeleteNewsArticle(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.news {
		if m.news[i].ID == id {
			m.news = append(m.news[:i], m.news[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) CreateFacility(_ context.Context, f model.Facility) (model.Facility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == 0 {
		f.ID = uint64(len(m.facilities) + 1)
	}
	m.facilities = append(m.facilities, f)
	return f, nil
}

func (m *memStore) UpdateFacility(_ context.Context, f model.Facility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.facilities {
		if m.facilities[i].ID == f.ID {
			m.facilities[i] = f
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) DeleteFacility(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.facilities {
		if m.facilities[i].ID == id {
			m.facilities = append(m.facilities[:i], m.facilities[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) ReplaceContent(_ context.Context, msg model.PrincipalMessage, news []model.NewsArticle, facilities []model.Facility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message, m.news, m.facilities = &msg, news, facilities
	return nil
}

type recorder struct {
	mu          sync.Mutex
	invalidated []provider.Kind
	published   []provider.Kind
}

func (r *recorder) Invalidate(_ context.Context, kinds ...provider.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, kinds...)
	return nil
}

func (r *recorder) ContentUpdated(kind provider.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, kind)
	return nil
}

func (r *recorder) OnContentUpdated(notify.Handler) error { return nil }
func (r *recorder) Close()                                {}

func setup(t *testing.T) (*gin.Engine, *memStore, *recorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := &memStore{}
	rec := &recorder{}

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/admin",
		Auth:       true,
		SecretKey:  secret,
		AdminEmail: adminEmail,
	},
		ContentModule(store, rec, rec),
		AssetModule(storage.NewLocalStorage(t.TempDir(), "/uploads")),
	)

	token, err := middleware.GenerateJWT(adminEmail, secret, time.Hour)
	require.NoError(t, err)
	return r, store, rec, token
}

func call(r http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContent_RequiresAuth(t *testing.T) {
	r, _, _, _ := setup(t)
	w := call(r, "", http.MethodGet, "/api/admin/news", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrincipalMessage_Put(t *testing.T) {
	r, store, rec, token := setup(t)

	w := call(r, token, http.MethodGet, "/api/admin/principal-message", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, token, http.MethodPut, "/api/admin/principal-message",
		`{"title":"Principal","name":"Mrs. Sharma","image_url":"/uploads/p.jpg","message":"Welcome"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.message)
	assert.Equal(t, "Mrs. Sharma", store.message.Name)
	assert.Equal(t, []provider.Kind{provider.KindPrincipalMessage}, rec.invalidated)
	assert.Equal(t, []provider.Kind{provider.KindPrincipalMessage}, rec.published)

	w = call(r, token, http.MethodPut, "/api/admin/principal-message", `{"title":"Principal"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNews_CRUD(t *testing.T) {
	r, store, rec, token := setup(t)

	w := call(r, token, http.MethodPost, "/api/admin/news",
		`{"id":18446744073709551615,"category":"Events","date":"April 1, 2026","title":"Sports Week","short_description":"Annual sports week begins."}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created model.NewsArticle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint64(18446744073709551615), created.ID)

	w = call(r, token, http.MethodPut, "/api/admin/news/18446744073709551615",
		`{"category":"Events","date":"April 2, 2026","title":"Sports Week","short_description":"Moved."}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "April 2, 2026", store.news[0].Date)

	w = call(r, token, http.MethodPut, "/api/admin/news/99",
		`{"category":"Events","date":"x","title":"x","short_description":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, token, http.MethodDelete, "/api/admin/news/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, token, http.MethodDelete, "/api/admin/news/18446744073709551615", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.news)

	assert.Equal(t, []provider.Kind{provider.KindNews, provider.KindNews, provider.KindNews}, rec.published)
}

func TestFacilities_CreateResolvesIcon(t *testing.T) {
	r, _, rec, token := setup(t)

	w := call(r, token, http.MethodPost, "/api/admin/facilities",
		`{"name":"Music Room","description":"Instruments and practice space.","icon_name":"Hall"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"icon":"Music"`)
	assert.Contains(t, w.Body.String(), `"id":1`)

	w = call(r, token, http.MethodGet, "/api/admin/facilities", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Music Room"`)

	assert.Equal(t, []provider.Kind{provider.KindFacilities}, rec.invalidated)
}

func TestAssets_Upload(t *testing.T) {
	r, _, _, token := setup(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "principal.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/assets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"url":"/uploads/principal_`)
}
