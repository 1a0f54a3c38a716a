package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var ErrEmptyFile = errors.New("empty file")

// PrepareUpload reads r fully and, for JPEG and PNG content larger than
// maxW x maxH, returns a downscaled re-encoding. Everything else (video,
// pdf, gif, webp) is returned untouched.
func PrepareUpload(r io.Reader, maxW, maxH int) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if maxW <= 0 && maxH <= 0 {
		return data, nil
	}

	var format imaging.Format
	switch mt := mimetype.Detect(data); {
	case mt.Is("image/jpeg"):
		format = imaging.JPEG
	case mt.Is("image/png"):
		format = imaging.PNG
	default:
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if (maxW <= 0 || b.Dx() <= maxW) && (maxH <= 0 || b.Dy() <= maxH) {
		return data, nil
	}
	if maxW <= 0 {
		maxW = b.Dx()
	}
	if maxH <= 0 {
		maxH = b.Dy()
	}

	resized := imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
