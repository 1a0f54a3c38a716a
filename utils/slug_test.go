package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Education for All":          "education-for-all",
		"  Clean   Water -- Now!  ":  "clean-water-now",
		"Café & Co. 2024":            "caf-co-2024",
		"###":                        "",
		"already-a-slug":             "already-a-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestUniqueSlug_SuffixesOnCollision(t *testing.T) {
	existing := map[string]bool{"education-for-all": true, "education-for-all-1": true}
	taken := func(_ context.Context, s string) (bool, error) { return existing[s], nil }

	slug, err := UniqueSlug(context.Background(), "Education for All", "campaign", taken)
	require.NoError(t, err)
	assert.Equal(t, "education-for-all-2", slug)

	slug, err = UniqueSlug(context.Background(), "Brand New", "campaign", taken)
	require.NoError(t, err)
	assert.Equal(t, "brand-new", slug)
}

func TestUniqueSlug_Fallback(t *testing.T) {
	free := func(context.Context, string) (bool, error) { return false, nil }
	slug, err := UniqueSlug(context.Background(), "!!!", "campaign", free)
	require.NoError(t, err)
	assert.Equal(t, "campaign", slug)

	_, err = UniqueSlug(context.Background(), "", "", free)
	assert.Error(t, err)
}

func TestUniqueSlug_PropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := UniqueSlug(context.Background(), "x", "", func(context.Context, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
