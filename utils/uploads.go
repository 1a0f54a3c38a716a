package utils

import (
	"context"
	"log"
	"mime/multipart"
	"time"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	metrics "github.com/phillip/ngo-portal-go/metrics"
)

// UploadBatch stages the uploads of one request so they can be destroyed
// together if a later step fails.
type UploadBatch struct {
	store AssetStore
	urls  []string
}

func NewUploadBatch(store AssetStore) *UploadBatch {
	return &UploadBatch{store: store}
}

// Add uploads one multipart file into folder. field names the form key and
// ends up in the UploadError.
func (b *UploadBatch) Add(ctx context.Context, field string, fh *multipart.FileHeader, folder string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		metrics.AssetUploads.WithLabelValues("error").Inc()
		return "", &apperrors.UploadError{Field: field, Err: err}
	}
	defer file.Close()

	url, err := b.store.Upload(ctx, file, fh.Filename, folder)
	if err != nil {
		metrics.AssetUploads.WithLabelValues("error").Inc()
		return "", &apperrors.UploadError{Field: field, Err: err}
	}
	metrics.AssetUploads.WithLabelValues("ok").Inc()
	b.urls = append(b.urls, url)
	return url, nil
}

// URLs returns every URL uploaded so far.
func (b *UploadBatch) URLs() []string {
	return append([]string(nil), b.urls...)
}

// Rollback destroys everything uploaded by the batch. Failures are logged.
func (b *UploadBatch) Rollback() {
	if len(b.urls) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	DeleteAssets(ctx, b.store, b.urls)
	b.urls = nil
}

// DeleteAssets destroys urls best-effort.
func DeleteAssets(ctx context.Context, store AssetStore, urls []string) {
	for _, u := range urls {
		if err := store.Delete(ctx, u); err != nil {
			log.Printf("asset cleanup failed for %s: %v", u, err)
		}
	}
}
