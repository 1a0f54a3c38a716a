package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	config "github.com/phillip/ngo-portal-go/config"
)

// AssetStore uploads binary content and hands back a public URL.
type AssetStore interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error)
	Delete(ctx context.Context, assetURL string) error
}

// CloudinaryStore is the AssetStore backed by Cloudinary.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	images config.ImageConfig
}

func NewCloudinaryStore(cfg config.CloudinaryConfig, images config.ImageConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld, images: images}, nil
}

// Upload stores r under folder. Images are downscaled first.
func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error) {
	data, err := PrepareUpload(r, s.images.MaxWidth, s.images.MaxHeight)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("upload returned no url")
	}
	return resp.SecureURL, nil
}

// Delete destroys the asset behind a Cloudinary delivery URL.
func (s *CloudinaryStore) Delete(ctx context.Context, assetURL string) error {
	ref, err := parseAssetURL(assetURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     ref.PublicID,
		ResourceType: ref.ResourceType,
	})
	if err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("delete error: %s", resp.Error.Message)
	}
	return nil
}

type assetRef struct {
	ResourceType string
	PublicID     string
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// parseAssetURL splits
// https://res.cloudinary.com/<cloud>/<type>/upload/v1234567890/events/abc123.jpg
// into its resource type and public id ("events/abc123").
func parseAssetURL(assetURL string) (assetRef, error) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return assetRef{}, err
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	upload := -1
	for i, p := range parts {
		if p == "upload" {
			upload = i
			break
		}
	}
	if upload < 1 || upload == len(parts)-1 {
		return assetRef{}, fmt.Errorf("invalid cloudinary URL format: %s", assetURL)
	}

	rest := parts[upload+1:]
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	ref := assetRef{ResourceType: parts[upload-1]}
	publicID := path.Join(rest...)
	// raw assets keep their extension in the public id
	if ref.ResourceType != "raw" {
		publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	}
	ref.PublicID = publicID
	return ref, nil
}
