package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareUpload_DownscalesLargeImages(t *testing.T) {
	out, err := PrepareUpload(bytes.NewReader(pngBytes(t, 400, 200)), 100, 100)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestPrepareUpload_KeepsSmallImages(t *testing.T) {
	in := pngBytes(t, 20, 10)
	out, err := PrepareUpload(bytes.NewReader(in), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPrepareUpload_PassesThroughNonImages(t *testing.T) {
	in := "%PDF-1.4 fake document"
	out, err := PrepareUpload(strings.NewReader(in), 10, 10)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestPrepareUpload_Empty(t *testing.T) {
	_, err := PrepareUpload(strings.NewReader(""), 10, 10)
	assert.ErrorIs(t, err, ErrEmptyFile)
}
