package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	config "github.com/phillip/ngo-portal-go/config"
	database "github.com/phillip/ngo-portal-go/database"
	dto "github.com/phillip/ngo-portal-go/dto"
	models "github.com/phillip/ngo-portal-go/models"
	utils "github.com/phillip/ngo-portal-go/utils"
)

// Deps is what every handler factory needs.
type Deps struct {
	Config *config.Config
	Repos  *database.Repositories
	Assets utils.AssetStore
}

func (d *Deps) context(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := 15 * time.Second
	if d.Config != nil && d.Config.RequestTimeout > 0 {
		timeout = d.Config.RequestTimeout
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// UploadField is one multipart file key a resource accepts. Field is the
// stored field its URLs end up in.
type UploadField struct {
	Key    string
	Field  string
	Folder string
	Max    int
}

// Resource serves the five CRUD handlers for one collection.
type Resource[T any, PT models.Document[T]] struct {
	*Deps

	Label   string
	Repo    database.Repository[T]
	Sort    []database.SortKey
	Uploads []UploadField

	// New returns a document with defaults applied; nil means the zero value.
	New   func() T
	Input func() dto.Input[T]
	// BeforeSave runs after Apply and before the write. prev is nil on create.
	BeforeSave func(ctx context.Context, doc PT, prev *T) error
	// ActiveField, when set, enables ?active=true on List.
	ActiveField string
}

func (r *Resource[T, PT]) newDoc() T {
	if r.New != nil {
		return r.New()
	}
	var zero T
	return zero
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// ---------------- LIST ----------------
func (r *Resource[T, PT]) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := r.context(c)
		defer cancel()

		q := database.Query{Sort: r.Sort}
		if r.ActiveField != "" && c.Query("active") == "true" {
			q.Filter = map[string]any{r.ActiveField: true}
		}
		docs, err := r.Repo.Find(ctx, q)
		if err != nil {
			respondError(c, err)
			return
		}

		var (
			latest   time.Time
			latestID primitive.ObjectID
		)
		for i := range docs {
			d := PT(&docs[i])
			if d.GetUpdatedAt().After(latest) {
				latest, latestID = d.GetUpdatedAt(), d.GetID()
			}
		}
		etag := utils.ListETag(len(docs), latestID, latest)
		c.Header("ETag", etag)
		if !latest.IsZero() {
			c.Header("Last-Modified", latest.UTC().Format(http.TimeFormat))
		}
		if utils.ETagMatches(c.GetHeader("If-None-Match"), etag) {
			c.Status(http.StatusNotModified)
			return
		}

		respondOK(c, docs)
	}
}

// ---------------- GET ----------------
func (r *Resource[T, PT]) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := dto.ParseID(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		ctx, cancel := r.context(c)
		defer cancel()

		doc, err := r.Repo.FindByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("ETag", utils.GenerateETag(id, PT(doc).GetUpdatedAt()))
		respondOK(c, doc)
	}
}

// ---------------- CREATE ----------------
func (r *Resource[T, PT]) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := r.Input()
		files, err := bindInput(c, in)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := r.checkFiles(files); err != nil {
			respondError(c, err)
			return
		}
		if err := in.Validate(dto.Create, files); err != nil {
			respondError(c, err)
			return
		}

		ctx, cancel := r.context(c)
		defer cancel()

		batch := utils.NewUploadBatch(r.Assets)
		doc, err := r.create(ctx, in, files, batch)
		if err != nil {
			batch.Rollback()
			respondError(c, err)
			return
		}
		respondCreated(c, doc)
	}
}

func (r *Resource[T, PT]) create(ctx context.Context, in dto.Input[T], files dto.Files, batch *utils.UploadBatch) (*T, error) {
	uploaded, err := r.stage(ctx, batch, files)
	if err != nil {
		return nil, err
	}

	doc := r.newDoc()
	if err := in.Apply(&doc, uploaded); err != nil {
		return nil, err
	}
	p := PT(&doc)
	p.SetID(primitive.NewObjectID())
	p.SetOwnedAssets(intersect(assetURLs(p), r.flatten(uploaded)))
	p.Touch(now())
	if r.BeforeSave != nil {
		if err := r.BeforeSave(ctx, p, nil); err != nil {
			return nil, err
		}
	}
	if err := r.Repo.Insert(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ---------------- UPDATE ----------------
func (r *Resource[T, PT]) Update() gin.HandlerFunc {
	return r.Patch(r.Input)
}

// Patch is Update with a different request body, for endpoints that only
// touch part of a document.
func (r *Resource[T, PT]) Patch(input func() dto.Input[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := dto.ParseID(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		ctx, cancel := r.context(c)
		defer cancel()

		existing, err := r.Repo.FindByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}

		in := input()
		files, err := bindInput(c, in)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := r.checkFiles(files); err != nil {
			respondError(c, err)
			return
		}
		if err := in.Validate(dto.Update, files); err != nil {
			respondError(c, err)
			return
		}

		batch := utils.NewUploadBatch(r.Assets)
		doc, err := r.update(ctx, id, existing, in, files, batch)
		if err != nil {
			batch.Rollback()
			respondError(c, err)
			return
		}

		// owned assets the update dropped
		r.release(ctx, id, subtract(PT(existing).OwnedAssets(), assetURLs(PT(doc))))
		respondOK(c, doc)
	}
}

func (r *Resource[T, PT]) update(ctx context.Context, id primitive.ObjectID, existing *T, in dto.Input[T], files dto.Files, batch *utils.UploadBatch) (*T, error) {
	uploaded, err := r.stage(ctx, batch, files)
	if err != nil {
		return nil, err
	}

	doc := *existing
	if err := in.Apply(&doc, uploaded); err != nil {
		return nil, err
	}
	p := PT(&doc)
	p.SetID(id)
	owned := append(append([]string{}, PT(existing).OwnedAssets()...), r.flatten(uploaded)...)
	p.SetOwnedAssets(intersect(assetURLs(p), owned))
	p.Touch(now())
	if r.BeforeSave != nil {
		if err := r.BeforeSave(ctx, p, existing); err != nil {
			return nil, err
		}
	}

	// only fields that changed are written; counters bumped since the read survive
	ch, err := database.Diff(existing, &doc)
	if err != nil {
		return nil, err
	}
	if err := r.Repo.Update(ctx, id, ch); err != nil {
		return nil, err
	}
	if fresh, err := r.Repo.FindByID(ctx, id); err == nil {
		return fresh, nil
	}
	return &doc, nil
}

// ---------------- DELETE ----------------
func (r *Resource[T, PT]) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := dto.ParseID(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		ctx, cancel := r.context(c)
		defer cancel()

		doc, err := r.Repo.FindByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := r.Repo.Delete(ctx, id); err != nil {
			respondError(c, err)
			return
		}
		r.release(ctx, id, intersect(assetURLs(PT(doc)), PT(doc).OwnedAssets()))
		respondOK(c, gin.H{})
	}
}

func (r *Resource[T, PT]) checkFiles(files dto.Files) error {
	verr := &apperrors.ValidationError{}
	accepted := map[string]bool{}
	for _, u := range r.Uploads {
		accepted[u.Key] = true
		if u.Max > 0 && len(files[u.Key]) > u.Max {
			verr.Add(u.Key, fmt.Sprintf("at most %d files allowed for %s", u.Max, u.Key))
		}
	}
	for key := range files {
		if !accepted[key] {
			verr.Add(key, "unexpected file field "+key)
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// stage uploads every accepted file part. Nothing is written to the store
// when an upload fails; the caller rolls the batch back.
func (r *Resource[T, PT]) stage(ctx context.Context, batch *utils.UploadBatch, files dto.Files) (dto.Uploaded, error) {
	out := dto.Uploaded{}
	for _, u := range r.Uploads {
		for _, fh := range files[u.Key] {
			if fh == nil || fh.Size == 0 {
				continue
			}
			if r.Assets == nil {
				return nil, &apperrors.UploadError{Field: u.Key, Err: fmt.Errorf("no asset store configured")}
			}
			url, err := batch.Add(ctx, u.Key, fh, u.Folder)
			if err != nil {
				return nil, err
			}
			out[u.Key] = append(out[u.Key], url)
		}
	}
	return out, nil
}

// release destroys urls the document no longer uses, skipping any that
// another document of the same collection still references.
func (r *Resource[T, PT]) release(ctx context.Context, id primitive.ObjectID, urls []string) {
	if len(urls) == 0 || r.Assets == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	var free []string
	for _, url := range urls {
		shared, err := r.referenced(ctx, id, url)
		if err != nil {
			log.Printf("asset cleanup: keeping %s: %v", url, err)
			continue
		}
		if !shared {
			free = append(free, url)
		}
	}
	if len(free) > 0 {
		utils.DeleteAssets(ctx, r.Assets, free)
	}
}

func (r *Resource[T, PT]) referenced(ctx context.Context, id primitive.ObjectID, url string) (bool, error) {
	seen := map[string]bool{}
	for _, u := range r.Uploads {
		if u.Field == "" || seen[u.Field] {
			continue
		}
		seen[u.Field] = true
		ok, err := r.Repo.Exists(ctx, u.Field, url, id)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// flatten lists uploaded URLs in upload-field order.
func (r *Resource[T, PT]) flatten(up dto.Uploaded) []string {
	var out []string
	for _, u := range r.Uploads {
		out = append(out, up[u.Key]...)
	}
	return out
}

func assetURLs(doc any) []string {
	if h, ok := doc.(models.AssetHolder); ok {
		return h.AssetURLs()
	}
	return nil
}

// intersect returns the urls in a that are also in b, in a's order.
func intersect(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, u := range b {
		in[u] = true
	}
	var out []string
	for _, u := range a {
		if in[u] {
			out = append(out, u)
		}
	}
	return out
}

// subtract returns the urls in before that are missing from after.
func subtract(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, u := range after {
		keep[u] = true
	}
	var out []string
	for _, u := range before {
		if !keep[u] {
			out = append(out, u)
		}
	}
	return out
}
