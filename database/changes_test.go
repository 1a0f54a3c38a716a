package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/phillip/ngo-portal-go/models"
)

func TestDiffOnlyCarriesChangedFields(t *testing.T) {
	before := models.NewEvent()
	before.ID = primitive.NewObjectID()
	before.Title = "Run"
	before.Registered = 4
	before.Touch(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

	after := before
	after.Title = "Run 2"
	after.Touch(time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC))

	ch, err := Diff(&before, &after)
	require.NoError(t, err)
	assert.Equal(t, "Run 2", ch.Set["title"])
	assert.Contains(t, ch.Set, "updatedAt")
	assert.NotContains(t, ch.Set, "registered")
	assert.NotContains(t, ch.Set, "createdAt")
	assert.NotContains(t, ch.Set, "_id")
	assert.Empty(t, ch.Unset)
}

func TestDiffUnsetsDroppedFields(t *testing.T) {
	before := models.Base{ID: primitive.NewObjectID(), Uploaded: []string{"a"}}
	after := before
	after.Uploaded = nil

	ch, err := Diff(&before, &after)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploadedAssets"}, ch.Unset)
	assert.Empty(t, ch.Set)
	assert.False(t, ch.Empty())
	assert.Equal(t, bson.M{"$unset": bson.M{"uploadedAssets": ""}}, ch.document())
}

func TestDiffOfIdenticalDocumentsIsEmpty(t *testing.T) {
	c := models.NewCampaign()
	c.Images = []string{"x", "y"}
	ch, err := Diff(&c, &c)
	require.NoError(t, err)
	assert.True(t, ch.Empty())
	assert.Empty(t, ch.document())
}
