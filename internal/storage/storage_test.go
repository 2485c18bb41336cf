package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestNormalizeFilename(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "principal_portrait_20260315_103000.jpg", normalizeFilename("principal portrait.JPG", now))
	assert.Equal(t, "file_20260315_103000.png", normalizeFilename("???.png", now))
	assert.Equal(t, "passwd_20260315_103000.png", normalizeFilename("../../etc/passwd.png", now))
}

func TestLocalStorage_SaveFile(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(dir, "/uploads/")

	url, err := ls.SaveFile(context.Background(), fileHeader(t, "campus.png", []byte("png")), "campus.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/campus_"), url)

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png", string(saved))
}

func TestLocalStorage_RejectsNonImages(t *testing.T) {
	ls := NewLocalStorage(t.TempDir(), "/uploads")
	_, err := ls.SaveFile(context.Background(), fileHeader(t, "notes.pdf", []byte("%PDF")), "notes.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
