package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
)

type SortKey struct {
	Field string
	Desc  bool
}

func Asc(field string) SortKey  { return SortKey{Field: field} }
func Desc(field string) SortKey { return SortKey{Field: field, Desc: true} }

// Query selects documents by equality on Filter, ordered by Sort.
type Query struct {
	Filter map[string]any
	Sort   []SortKey
	Limit  int
}

// Repository is the persistence contract every resource handler uses.
// Lookups that miss return *apperrors.NotFoundError.
type Repository[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	FindOne(ctx context.Context, field string, value any) (*T, error)
	Insert(ctx context.Context, doc *T) error
	Update(ctx context.Context, id primitive.ObjectID, ch Changes) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) error
	Exists(ctx context.Context, field string, value any, exclude primitive.ObjectID) (bool, error)
}

// MongoRepository is a Repository over one collection.
type MongoRepository[T any] struct {
	store *Store
	name  string
	label string
}

func NewMongoRepository[T any](store *Store, collection, label string) *MongoRepository[T] {
	return &MongoRepository[T]{store: store, name: collection, label: label}
}

func (r *MongoRepository[T]) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(r.name), nil
}

func (r *MongoRepository[T]) Find(ctx context.Context, q Query) ([]T, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	for k, v := range q.Filter {
		filter[k] = v
	}
	opts := options.Find()
	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, k := range q.Sort {
			dir := 1
			if k.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: k.Field, Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, r.translate(err, "fetch")
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, r.translate(err, "decode")
	}
	return out, nil
}

func (r *MongoRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.FindOne(ctx, "_id", id)
}

func (r *MongoRepository[T]) FindOne(ctx context.Context, field string, value any) (*T, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := col.FindOne(ctx, bson.M{field: value}).Decode(&doc); err != nil {
		return nil, r.translate(err, "fetch")
	}
	return &doc, nil
}

func (r *MongoRepository[T]) Insert(ctx context.Context, doc *T) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return r.translate(err, "create")
	}
	return nil
}

// Update applies a partial write. Fields outside ch keep whatever value the
// store holds, including counters moved by Increment in the meantime.
func (r *MongoRepository[T]) Update(ctx context.Context, id primitive.ObjectID, ch Changes) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	update := ch.document()
	if len(update) == 0 {
		n, err := col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if err != nil {
			return r.translate(err, "update")
		}
		if n == 0 {
			return apperrors.NotFound(r.label)
		}
		return nil
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return r.translate(err, "update")
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound(r.label)
	}
	return nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return r.translate(err, "delete")
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(r.label)
	}
	return nil
}

// Increment atomically adds delta to a numeric field.
func (r *MongoRepository[T]) Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return r.translate(err, "update")
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound(r.label)
	}
	return nil
}

func (r *MongoRepository[T]) Exists(ctx context.Context, field string, value any, exclude primitive.ObjectID) (bool, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return false, err
	}
	filter := bson.M{field: value}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, r.translate(err, "fetch")
	}
	return n > 0, nil
}

func (r *MongoRepository[T]) translate(err error, op string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.NotFound(r.label)
	case mongo.IsDuplicateKeyError(err):
		return apperrors.Validation("duplicate", "a "+r.label+" with the same unique value already exists")
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return &apperrors.ConnectionError{Err: err}
	default:
		return fmt.Errorf("could not %s %s: %w", op, r.label, err)
	}
}
