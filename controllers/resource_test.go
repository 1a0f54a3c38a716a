package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	database "github.com/phillip/ngo-portal-go/database"
	models "github.com/phillip/ngo-portal-go/models"
)

func campaignRouter(d *Deps) *gin.Engine {
	r := Campaigns(d)
	e := gin.New()
	e.GET("/campaigns/slug/:slug", GetCampaignBySlug(d))
	mount(e, "/campaigns", r.List(), r.Get(), r.Create(), r.Update(), r.Delete())
	return e
}

func TestCampaignSlugsAreUnique(t *testing.T) {
	d, set, _ := testDeps()
	e := campaignRouter(d)
	body := `{"title":"Education for All","goalAmount":5000}`

	w := serve(e, jsonRequest(http.MethodPost, "/campaigns", body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := data[models.Campaign](t, w)
	assert.Equal(t, "education-for-all", first.Slug)
	assert.Equal(t, models.CampaignActive, first.Status)
	assert.False(t, first.ID.IsZero())

	w = serve(e, jsonRequest(http.MethodPost, "/campaigns", body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "education-for-all-1", data[models.Campaign](t, w).Slug)
	assert.Equal(t, 2, set.Campaigns.Len())

	w = serve(e, jsonRequest(http.MethodGet, "/campaigns/slug/education-for-all-1", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "education-for-all-1", data[models.Campaign](t, w).Slug)
}

func TestCampaignSlugFollowsTitle(t *testing.T) {
	d, _, _ := testDeps()
	e := campaignRouter(d)

	w := serve(e, jsonRequest(http.MethodPost, "/campaigns", `{"title":"Clean Water","goalAmount":100}`))
	require.Equal(t, http.StatusCreated, w.Code)
	id := data[models.Campaign](t, w).ID.Hex()

	w = serve(e, jsonRequest(http.MethodPut, "/campaigns/"+id, `{"shortDescription":"wells"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := data[models.Campaign](t, w)
	assert.Equal(t, "clean-water", got.Slug)
	assert.Equal(t, "wells", got.ShortDescription)
	assert.Equal(t, 100.0, got.GoalAmount)

	w = serve(e, jsonRequest(http.MethodPut, "/campaigns/"+id, `{"title":"Clean Water Now"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clean-water-now", data[models.Campaign](t, w).Slug)
}

func TestCampaignCreateRequiresTitleAndGoal(t *testing.T) {
	d, set, _ := testDeps()
	w := serve(campaignRouter(d), jsonRequest(http.MethodPost, "/campaigns", `{"shortDescription":"x"}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, []string{"goalAmount", "title"}, env.fieldNames())
	assert.Equal(t, 0, set.Campaigns.Len())
}

func TestBoardMemberPartialMultipartUpdate(t *testing.T) {
	d, set, assets := testDeps()
	r := BoardMembers(d)
	e := gin.New()
	mount(e, "/board-members", r.List(), r.Get(), r.Create(), r.Update(), r.Delete())

	oldURL := "https://res.cloudinary.com/test/image/upload/board-members/old.png"
	m := models.BoardMember{Name: "Grace", Designation: "Chair", Bio: "old bio", ImageURL: oldURL, Order: 2}
	m.ID = primitive.NewObjectID()
	m.Uploaded = []string{oldURL}
	set.BoardMembers.Seed(&m)
	path := "/board-members/" + m.ID.Hex()

	w := serve(e, multipartRequest(t, http.MethodPut, path, map[string]string{"name": "New Name"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := data[models.BoardMember](t, w)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "Chair", got.Designation)
	assert.Equal(t, "old bio", got.Bio)
	assert.Equal(t, 2, got.Order)
	assert.Equal(t, oldURL, got.ImageURL)
	assert.Empty(t, assets.deletedURLs())

	w = serve(e, multipartRequest(t, http.MethodPut, path, nil, upload{"image", "new.png"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = data[models.BoardMember](t, w)
	assert.Equal(t, "https://res.cloudinary.com/test/image/upload/board-members/new.png", got.ImageURL)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, []string{oldURL}, assets.deletedURLs())
}

func TestVolunteerMissingAreaIsRejected(t *testing.T) {
	d, set, _ := testDeps()
	r := Volunteers(d)
	e := gin.New()
	e.POST("/volunteers", r.Create())

	w := serve(e, jsonRequest(http.MethodPost, "/volunteers",
		`{"name":"Ada","email":"ada@example.org","phone":"0700000000","experience":"tutoring"}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, []string{"area"}, env.fieldNames())
	assert.Contains(t, env.Error, "area")
	assert.Equal(t, 0, set.Volunteers.Len())
}

func TestVolunteerBadEmailUsesJSONName(t *testing.T) {
	d, _, _ := testDeps()
	e := gin.New()
	e.POST("/volunteers", Volunteers(d).Create())

	w := serve(e, jsonRequest(http.MethodPost, "/volunteers",
		`{"name":"Ada","email":"not-an-email","phone":"1","area":"Education","experience":"x"}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"email"}, decode(t, w).fieldNames())
}

func TestDeleteMediaThenNotFound(t *testing.T) {
	d, set, assets := testDeps()
	r := Media(d)
	e := gin.New()
	mount(e, "/media", r.List(), r.Get(), r.Create(), r.Update(), r.Delete())

	keep := models.Media{Title: "Kept", ImageURL: "https://cdn.example.org/kept.png", Date: time.Now().UTC()}
	keep.ID = primitive.NewObjectID()
	gone := models.Media{Title: "Gone", ImageURL: "https://res.cloudinary.com/test/image/upload/media/gone.png", Date: time.Now().UTC()}
	gone.ID = primitive.NewObjectID()
	gone.Uploaded = []string{gone.ImageURL}
	set.Media.Seed(&keep, &gone)

	w := serve(e, jsonRequest(http.MethodDelete, "/media/"+gone.ID.Hex(), ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{gone.ImageURL}, assets.deletedURLs())

	w = serve(e, jsonRequest(http.MethodGet, "/media", ""))
	require.Equal(t, http.StatusOK, w.Code)
	list := data[[]models.Media](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	w = serve(e, jsonRequest(http.MethodDelete, "/media/"+gone.ID.Hex(), ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestMalformedIDIsBadRequest(t *testing.T) {
	d, _, _ := testDeps()
	r := Media(d)
	e := gin.New()
	mount(e, "/media", r.List(), r.Get(), r.Create(), r.Update(), r.Delete())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := serve(e, jsonRequest(method, "/media/not-an-id", ""))
		assert.Equal(t, http.StatusBadRequest, w.Code, method)
	}
}

func TestFailedUploadRollsBackBatch(t *testing.T) {
	d, set, assets := testDeps()
	assets.failOn = "b.png"
	e := gin.New()
	e.POST("/banners", Banners(d).Create())

	w := serve(e, multipartRequest(t, http.MethodPost, "/banners",
		map[string]string{"title": "Hero"},
		upload{"images", "a.png"}, upload{"images", "b.png"}))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to upload images", decode(t, w).Error)
	assert.Equal(t, []string{"https://res.cloudinary.com/test/image/upload/banners/a.png"}, assets.deletedURLs())
	assert.Equal(t, 0, set.Banners.Len())
}

func TestFailedInsertRemovesUploads(t *testing.T) {
	d, set, assets := testDeps()
	set.Gallery.FailOn("insert", errors.New("write concern timeout"))
	e := gin.New()
	e.POST("/gallery", Gallery(d).Create())

	w := serve(e, multipartRequest(t, http.MethodPost, "/gallery",
		map[string]string{"title": "Planting day", "category": "environment"},
		upload{"image", "tree.png"}))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w).Error)
	assert.Equal(t, []string{"https://res.cloudinary.com/test/image/upload/gallery/tree.png"}, assets.deletedURLs())
}

func TestTooManyFilesRejectedBeforeUpload(t *testing.T) {
	d, _, assets := testDeps()
	e := gin.New()
	e.POST("/board-members", BoardMembers(d).Create())

	w := serve(e, multipartRequest(t, http.MethodPost, "/board-members",
		map[string]string{"name": "Grace", "designation": "Chair"},
		upload{"image", "a.png"}, upload{"image", "b.png"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, assets.uploaded)
}

func TestListETagAndNotModified(t *testing.T) {
	d, set, _ := testDeps()
	p := models.NewProgram()
	p.Name = "Scholarships"
	p.ID = primitive.NewObjectID()
	p.Touch(time.Now().UTC().Truncate(time.Millisecond))
	set.Programs.Seed(&p)

	e := gin.New()
	e.GET("/programs", Programs(d).List())

	w := serve(e, jsonRequest(http.MethodGet, "/programs", ""))
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.NotEmpty(t, w.Header().Get("Last-Modified"))

	req := jsonRequest(http.MethodGet, "/programs", "")
	req.Header.Set("If-None-Match", etag)
	w = serve(e, req)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestActiveFilter(t *testing.T) {
	d, set, _ := testDeps()
	on := models.NewBanner()
	on.Title, on.Order = "On", 1
	off := models.NewBanner()
	off.Title, off.IsActive, off.Order = "Off", false, 0
	set.Banners.Seed(&on, &off)

	e := gin.New()
	e.GET("/banners", Banners(d).List())

	all := data[[]models.Banner](t, serve(e, jsonRequest(http.MethodGet, "/banners", "")))
	require.Len(t, all, 2)
	assert.Equal(t, "Off", all[0].Title)

	active := data[[]models.Banner](t, serve(e, jsonRequest(http.MethodGet, "/banners?active=true", "")))
	require.Len(t, active, 1)
	assert.Equal(t, "On", active[0].Title)
}

func TestSubtractAndIntersect(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, subtract([]string{"a", "b", "c"}, []string{"b", "d"}))
	assert.Nil(t, subtract(nil, []string{"x"}))
	assert.Equal(t, []string{"b"}, intersect([]string{"a", "b", "c"}, []string{"b", "d"}))
	assert.Nil(t, intersect([]string{"a"}, nil))
}

// registersDuringEdit bumps the counter right after the handler's read, the
// way a concurrent RegisterForEvent would.
type registersDuringEdit struct {
	database.Repository[models.Event]
	once sync.Once
}

func (r *registersDuringEdit) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	ev, err := r.Repository.FindByID(ctx, id)
	r.once.Do(func() {
		_ = r.Repository.Increment(ctx, id, "registered", 1)
	})
	return ev, err
}

func TestEventEditKeepsConcurrentRegistration(t *testing.T) {
	d, set, _ := testDeps()
	ev := seedEvent(set.Events)
	d.Repos.Events = &registersDuringEdit{Repository: d.Repos.Events}
	e := gin.New()
	e.PUT("/events/:id", Events(d).Update())

	w := serve(e, jsonRequest(http.MethodPut, "/events/"+ev.ID.Hex(), `{"title":"Run 2"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, data[models.Event](t, w).Registered)

	stored, err := set.Events.FindByID(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run 2", stored.Title)
	assert.Equal(t, 1, stored.Registered)
	assert.Equal(t, ev.Location, stored.Location)
}

func TestEventEditBlankStatusIsIgnored(t *testing.T) {
	d, set, _ := testDeps()
	ev := seedEvent(set.Events)
	e := gin.New()
	e.PUT("/events/:id", Events(d).Update())

	w := serve(e, multipartRequest(t, http.MethodPut, "/events/"+ev.ID.Hex(),
		map[string]string{"title": "Dune walk", "status": ""}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := data[models.Event](t, w)
	assert.Equal(t, "Dune walk", got.Title)
	assert.Equal(t, ev.Status, got.Status)
}

func boardRouter(d *Deps) *gin.Engine {
	r := BoardMembers(d)
	e := gin.New()
	mount(e, "/board-members", r.List(), r.Get(), r.Create(), r.Update(), r.Delete())
	return e
}

func TestDeleteKeepsTypedSharedURL(t *testing.T) {
	d, _, assets := testDeps()
	e := boardRouter(d)
	shared := "https://res.cloudinary.com/test/image/upload/board-members/shared.png"
	body := `{"name":"%s","designation":"Trustee","imageUrl":"` + shared + `"}`

	w := serve(e, jsonRequest(http.MethodPost, "/board-members", strings.Replace(body, "%s", "A", 1)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := data[models.BoardMember](t, w)
	w = serve(e, jsonRequest(http.MethodPost, "/board-members", strings.Replace(body, "%s", "B", 1)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(e, jsonRequest(http.MethodDelete, "/board-members/"+a.ID.Hex(), ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, assets.deletedURLs())
}

func TestDeleteKeepsUploadStillReferenced(t *testing.T) {
	d, set, assets := testDeps()
	e := boardRouter(d)

	w := serve(e, multipartRequest(t, http.MethodPost, "/board-members",
		map[string]string{"name": "A", "designation": "Chair"}, upload{"image", "a.png"}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := data[models.BoardMember](t, w)
	stored, err := set.BoardMembers.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ImageURL}, stored.Uploaded)

	w = serve(e, jsonRequest(http.MethodPost, "/board-members",
		`{"name":"B","designation":"Trustee","existingImageUrl":"`+a.ImageURL+`"}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := data[models.BoardMember](t, w)

	w = serve(e, jsonRequest(http.MethodDelete, "/board-members/"+a.ID.Hex(), ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, assets.deletedURLs())

	w = serve(e, jsonRequest(http.MethodDelete, "/board-members/"+b.ID.Hex(), ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, assets.deletedURLs())
}

func TestDeleteRemovesOwnUpload(t *testing.T) {
	d, _, assets := testDeps()
	e := boardRouter(d)

	w := serve(e, multipartRequest(t, http.MethodPost, "/board-members",
		map[string]string{"name": "A", "designation": "Chair"}, upload{"image", "a.png"}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := data[models.BoardMember](t, w)

	w = serve(e, jsonRequest(http.MethodDelete, "/board-members/"+a.ID.Hex(), ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{a.ImageURL}, assets.deletedURLs())
}

func TestListHonoursIfNoneMatchLists(t *testing.T) {
	d, _, _ := testDeps()
	e := gin.New()
	e.GET("/programs", Programs(d).List())

	etag := serve(e, jsonRequest(http.MethodGet, "/programs", "")).Header().Get("ETag")
	for _, header := range []string{"*", `W/"stale", ` + etag, strings.TrimPrefix(etag, "W/")} {
		req := jsonRequest(http.MethodGet, "/programs", "")
		req.Header.Set("If-None-Match", header)
		assert.Equal(t, http.StatusNotModified, serve(e, req).Code, header)
	}
}
