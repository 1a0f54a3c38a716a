package utils

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
)

type recordingStore struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failOn   string
}

func (s *recordingStore) Upload(_ context.Context, r io.Reader, filename, folder string) (string, error) {
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

func (s *recordingStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return nil
}

func fileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, n := range names {
		part, err := w.CreateFormFile("images", n)
		require.NoError(t, err)
		_, _ = part.Write([]byte("content of " + n))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"]
}

func TestUploadBatch_AllOrNothing(t *testing.T) {
	store := &recordingStore{failOn: "c.jpg"}
	batch := NewUploadBatch(store)
	ctx := context.Background()

	var err error
	for _, fh := range fileHeaders(t, "a.jpg", "b.jpg", "c.jpg") {
		if _, err = batch.Add(ctx, "images", fh, "campaigns"); err != nil {
			break
		}
	}
	require.Error(t, err)

	var uerr *apperrors.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "images", uerr.Field)
	assert.Len(t, batch.URLs(), 2)

	batch.Rollback()
	assert.ElementsMatch(t, store.uploaded, store.deleted)
	assert.Empty(t, batch.URLs())
}

func TestUploadBatch_RollbackWithoutUploadsIsNoop(t *testing.T) {
	store := &recordingStore{}
	NewUploadBatch(store).Rollback()
	assert.Empty(t, store.deleted)
}
