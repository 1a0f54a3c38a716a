// Package dbtest provides an in-process database.Repository for tests.
package dbtest

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	database "github.com/phillip/ngo-portal-go/database"
	models "github.com/phillip/ngo-portal-go/models"
)

// Repository keeps documents as bson maps so callers never share memory
// with what is stored, the same as a round trip through MongoDB.
type Repository[T any] struct {
	label string

	mu    sync.Mutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]bson.M
	fail  map[string]error
}

func New[T any](label string) *Repository[T] {
	return &Repository[T]{
		label: label,
		docs:  map[primitive.ObjectID]bson.M{},
		fail:  map[string]error{},
	}
}

// FailOn makes every later call of op ("find", "insert", "update",
// "delete", "increment", "exists") return err. A nil err clears it.
func (r *Repository[T]) FailOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.fail, op)
		return
	}
	r.fail[op] = err
}

// Len is the number of stored documents.
func (r *Repository[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// Seed inserts docs directly, bypassing failure injection.
func (r *Repository[T]) Seed(docs ...*T) {
	for _, d := range docs {
		m, id := mustMap(d)
		r.mu.Lock()
		r.docs[id] = m
		r.order = append(r.order, id)
		r.mu.Unlock()
	}
}

func (r *Repository[T]) Find(_ context.Context, q database.Query) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["find"]; err != nil {
		return nil, err
	}

	var rows []bson.M
	for _, id := range r.order {
		m := r.docs[id]
		if matches(m, q.Filter) {
			rows = append(rows, m)
		}
	}
	if len(q.Sort) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, k := range q.Sort {
				c := compare(rows[i][k.Field], rows[j][k.Field])
				if c == 0 {
					continue
				}
				if k.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	out := make([]T, 0, len(rows))
	for _, m := range rows {
		out = append(out, *mustDoc[T](m))
	}
	return out, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.FindOne(ctx, "_id", id)
}

func (r *Repository[T]) FindOne(_ context.Context, field string, value any) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["find"]; err != nil {
		return nil, err
	}
	for _, id := range r.order {
		if m := r.docs[id]; matches(m, map[string]any{field: value}) {
			return mustDoc[T](m), nil
		}
	}
	return nil, apperrors.NotFound(r.label)
}

func (r *Repository[T]) Insert(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["insert"]; err != nil {
		return err
	}
	m, id := mustMap(doc)
	if _, dup := r.docs[id]; dup {
		return apperrors.Validation("duplicate", "duplicate id")
	}
	r.docs[id] = m
	r.order = append(r.order, id)
	return nil
}

func (r *Repository[T]) Update(_ context.Context, id primitive.ObjectID, ch database.Changes) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["update"]; err != nil {
		return err
	}
	m, ok := r.docs[id]
	if !ok {
		return apperrors.NotFound(r.label)
	}
	for k, v := range ch.Set {
		if k != "_id" {
			m[k] = normalize(v)
		}
	}
	for _, k := range ch.Unset {
		delete(m, k)
	}
	return nil
}

func (r *Repository[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["delete"]; err != nil {
		return err
	}
	if _, ok := r.docs[id]; !ok {
		return apperrors.NotFound(r.label)
	}
	delete(r.docs, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repository[T]) Increment(_ context.Context, id primitive.ObjectID, field string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["increment"]; err != nil {
		return err
	}
	m, ok := r.docs[id]
	if !ok {
		return apperrors.NotFound(r.label)
	}
	n, _ := toFloat(m[field])
	m[field] = int64(n) + int64(delta)
	return nil
}

func (r *Repository[T]) Exists(_ context.Context, field string, value any, exclude primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["exists"]; err != nil {
		return false, err
	}
	for id, m := range r.docs {
		if id == exclude {
			continue
		}
		if matches(m, map[string]any{field: value}) {
			return true, nil
		}
	}
	return false, nil
}

// NewRepositories returns a database.Repositories backed entirely by memory,
// together with the concrete repositories for seeding and inspection.
func NewRepositories() (*database.Repositories, *Set) {
	s := &Set{
		Campaigns:           New[models.Campaign]("campaign"),
		Events:              New[models.Event]("event"),
		EventRegistrations:  New[models.EventRegistration]("event registration"),
		BoardMembers:        New[models.BoardMember]("board member"),
		TeamMembers:         New[models.TeamMember]("team member"),
		Media:               New[models.Media]("media article"),
		PressReleases:       New[models.PressRelease]("press release"),
		ComplianceDocuments: New[models.ComplianceDocument]("compliance document"),
		Banners:             New[models.Banner]("banner"),
		Collaborators:       New[models.Collaborator]("collaborator"),
		Gallery:             New[models.GalleryImage]("gallery image"),
		Programs:            New[models.Program]("program"),
		TrackRecords:        New[models.TrackRecord]("track record"),
		ImpactStats:         New[models.ImpactStat]("impact stat"),
		Videos:              New[models.Video]("video"),
		Volunteers:          New[models.Volunteer]("volunteer"),
		Donations:           New[models.Donation]("donation"),
		Messages:            New[models.Message]("message"),
	}
	return &database.Repositories{
		Campaigns:           s.Campaigns,
		Events:              s.Events,
		EventRegistrations:  s.EventRegistrations,
		BoardMembers:        s.BoardMembers,
		TeamMembers:         s.TeamMembers,
		Media:               s.Media,
		PressReleases:       s.PressReleases,
		ComplianceDocuments: s.ComplianceDocuments,
		Banners:             s.Banners,
		Collaborators:       s.Collaborators,
		Gallery:             s.Gallery,
		Programs:            s.Programs,
		TrackRecords:        s.TrackRecords,
		ImpactStats:         s.ImpactStats,
		Videos:              s.Videos,
		Volunteers:          s.Volunteers,
		Donations:           s.Donations,
		Messages:            s.Messages,
	}, s
}

// Set exposes the concrete memory repositories behind NewRepositories.
type Set struct {
	Campaigns           *Repository[models.Campaign]
	Events              *Repository[models.Event]
	EventRegistrations  *Repository[models.EventRegistration]
	BoardMembers        *Repository[models.BoardMember]
	TeamMembers         *Repository[models.TeamMember]
	Media               *Repository[models.Media]
	PressReleases       *Repository[models.PressRelease]
	ComplianceDocuments *Repository[models.ComplianceDocument]
	Banners             *Repository[models.Banner]
	Collaborators       *Repository[models.Collaborator]
	Gallery             *Repository[models.GalleryImage]
	Programs            *Repository[models.Program]
	TrackRecords        *Repository[models.TrackRecord]
	ImpactStats         *Repository[models.ImpactStat]
	Videos              *Repository[models.Video]
	Volunteers          *Repository[models.Volunteer]
	Donations           *Repository[models.Donation]
	Messages            *Repository[models.Message]
}

func mustMap[T any](doc *T) (bson.M, primitive.ObjectID) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("dbtest: marshal: %v", err))
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("dbtest: unmarshal: %v", err))
	}
	id, _ := m["_id"].(primitive.ObjectID)
	if id.IsZero() {
		id = primitive.NewObjectID()
		m["_id"] = id
	}
	return m, id
}

func mustDoc[T any](m bson.M) *T {
	raw, err := bson.Marshal(m)
	if err != nil {
		panic(fmt.Sprintf("dbtest: marshal: %v", err))
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("dbtest: decode: %v", err))
	}
	return &doc
}

func normalize(v any) any {
	raw, err := bson.Marshal(bson.M{"v": v})
	if err != nil {
		return v
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return v
	}
	return m["v"]
}

func matches(m bson.M, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := m[k]
		if !ok {
			return false
		}
		want = normalize(want)
		if arr, ok := got.(primitive.A); ok {
			if !contains(arr, want) {
				return false
			}
			continue
		}
		if _, numeric := toFloat(want); numeric {
			if compare(got, want) != 0 {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// contains mirrors MongoDB equality on an array field: any element matches.
func contains(arr primitive.A, want any) bool {
	for _, el := range arr {
		if reflect.DeepEqual(el, want) {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func compare(a, b any) int {
	if af, ok := toFloat(a); ok {
		bf, _ := toFloat(b)
		return cmpOrdered(af, bf)
	}
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return cmpOrdered(av, bv)
	case primitive.DateTime:
		bv, _ := b.(primitive.DateTime)
		return cmpOrdered(int64(av), int64(bv))
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case primitive.ObjectID:
		bv, _ := b.(primitive.ObjectID)
		return cmpOrdered(av.Hex(), bv.Hex())
	}
	return 0
}

func cmpOrdered[V int64 | float64 | string](a, b V) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
