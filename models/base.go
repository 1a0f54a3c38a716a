package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base carries the fields every stored document has.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	// Uploaded lists the asset URLs stored by this service for the document.
	// Only these are ever destroyed on its behalf.
	Uploaded  []string           `bson:"uploadedAssets,omitempty" json:"-"`
}

func (b *Base) GetID() primitive.ObjectID { return b.ID }

func (b *Base) SetID(id primitive.ObjectID) { b.ID = id }

func (b *Base) GetUpdatedAt() time.Time { return b.UpdatedAt }

func (b *Base) OwnedAssets() []string { return b.Uploaded }

func (b *Base) SetOwnedAssets(urls []string) { b.Uploaded = urls }

// Touch stamps UpdatedAt, and CreatedAt when it is still zero.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Document is satisfied by a pointer to any model embedding Base.
type Document[T any] interface {
	*T
	GetID() primitive.ObjectID
	SetID(primitive.ObjectID)
	GetUpdatedAt() time.Time
	Touch(time.Time)
	OwnedAssets() []string
	SetOwnedAssets([]string)
}

// AssetHolder is implemented by documents that reference uploaded assets.
type AssetHolder interface {
	AssetURLs() []string
}

func nonEmpty(urls ...string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
