package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	config "github.com/phillip/ngo-portal-go/config"
	dbtest "github.com/phillip/ngo-portal-go/database/dbtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAssets struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failOn   string
}

func (s *fakeAssets) Upload(_ context.Context, r io.Reader, filename, folder string) (string, error) {
	if filename == s.failOn {
		return "", errors.New("provider rejected file")
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://res.cloudinary.com/test/image/upload/" + folder + "/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeAssets) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *fakeAssets) deletedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Session.Secret = "test-secret"
	cfg.Admin.Email = "admin@example.org"
	cfg.Admin.Password = "s3cret"
	return cfg
}

func testDeps() (*Deps, *dbtest.Set, *fakeAssets) {
	repos, set := dbtest.NewRepositories()
	assets := &fakeAssets{}
	return &Deps{Config: testConfig(), Repos: repos, Assets: assets}, set, assets
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Fields  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

func (e envelope) fieldNames() []string {
	var out []string
	for _, f := range e.Fields {
		out = append(out, f.Field)
	}
	return out
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type upload struct {
	key, name string
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.key, f.name)
		require.NoError(t, err)
		_, _ = part.Write([]byte("bytes of " + f.name))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// mount registers the five CRUD handlers under path without a session gate.
func mount(e *gin.Engine, path string, list, get, create, update, del gin.HandlerFunc) {
	e.GET(path, list)
	e.GET(path+"/:id", get)
	e.POST(path, create)
	e.PUT(path+"/:id", update)
	e.DELETE(path+"/:id", del)
}
