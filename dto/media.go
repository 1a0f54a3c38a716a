package dto

import (
	"strings"
	"time"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	models "github.com/phillip/ngo-portal-go/models"
	utils "github.com/phillip/ngo-portal-go/utils"
)

const (
	DocumentKey  = "document"
	VideoKey     = "video"
	ThumbnailKey = "thumbnail"
)

// imageRequired is the create-time rule shared by the image-backed
// resources: an uploaded file or a usable URL string.
func imageRequired(files Files, urls ...*string) field {
	alts := []field{{ok: files.Has(ImageKey)}}
	for _, u := range urls {
		alts = append(alts, str("", u))
	}
	return oneOf("imageUrl", alts...)
}

// parseDated parses an optional date; unset yields the zero time.
func parseDated(verr *apperrors.ValidationError, v *string) time.Time {
	if v == nil || strings.TrimSpace(*v) == "" {
		return time.Time{}
	}
	t, err := utils.ParseDate(*v)
	if err != nil {
		verr.Add("date", err.Error())
	}
	return t
}

func applyDate(dst *time.Time, parsed time.Time) {
	switch {
	case !parsed.IsZero():
		*dst = parsed
	case dst.IsZero():
		*dst = time.Now().UTC()
	}
}

type MediaInput struct {
	Title            *string `form:"title" json:"title" binding:"omitempty,max=200"`
	LinkURL          *string `form:"linkUrl" json:"linkUrl"`
	Date             *string `form:"date" json:"date"`
	ImageURL         *string `form:"imageUrl" json:"imageUrl"`
	ExistingImageURL *string `form:"existingImageUrl" json:"existingImageUrl"`

	date time.Time
}

func (in *MediaInput) Validate(op Op, files Files) error {
	verr := need(op, str("title", in.Title), imageRequired(files, in.ImageURL, in.ExistingImageURL))
	in.date = parseDated(verr, in.Date)
	return finish(verr)
}

func (in *MediaInput) Apply(m *models.Media, up Uploaded) error {
	trimmed(&m.Title, in.Title)
	trimmed(&m.LinkURL, in.LinkURL)
	applyDate(&m.Date, in.date)
	if url := firstURL(up.First(ImageKey), deref(in.ExistingImageURL), deref(in.ImageURL)); url != "" {
		m.ImageURL = url
	}
	return nil
}

type PressReleaseInput struct {
	Title            *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Date             *string `form:"date" json:"date"`
	ImageURL         *string `form:"imageUrl" json:"imageUrl"`
	ExistingImageURL *string `form:"existingImageUrl" json:"existingImageUrl"`

	date time.Time
}

func (in *PressReleaseInput) Validate(op Op, files Files) error {
	verr := need(op, str("title", in.Title), imageRequired(files, in.ImageURL, in.ExistingImageURL))
	in.date = parseDated(verr, in.Date)
	return finish(verr)
}

func (in *PressReleaseInput) Apply(p *models.PressRelease, up Uploaded) error {
	trimmed(&p.Title, in.Title)
	applyDate(&p.Date, in.date)
	if url := firstURL(up.First(ImageKey), deref(in.ExistingImageURL), deref(in.ImageURL)); url != "" {
		p.ImageURL = url
	}
	return nil
}

type ComplianceDocumentInput struct {
	Title            *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Date             *string `form:"date" json:"date"`
	ImageURL         *string `form:"imageUrl" json:"imageUrl"`
	ExistingImageURL *string `form:"existingImageUrl" json:"existingImageUrl"`
	DocURL           *string `form:"docUrl" json:"docUrl"`
	ExistingDocURL   *string `form:"existingDocUrl" json:"existingDocUrl"`

	date time.Time
}

func (in *ComplianceDocumentInput) Validate(op Op, files Files) error {
	verr := need(op, str("title", in.Title), imageRequired(files, in.ImageURL, in.ExistingImageURL))
	in.date = parseDated(verr, in.Date)
	return finish(verr)
}

func (in *ComplianceDocumentInput) Apply(d *models.ComplianceDocument, up Uploaded) error {
	trimmed(&d.Title, in.Title)
	applyDate(&d.Date, in.date)
	if url := firstURL(up.First(ImageKey), deref(in.ExistingImageURL), deref(in.ImageURL)); url != "" {
		d.ImageURL = url
	}
	if url := firstURL(up.First(DocumentKey), deref(in.ExistingDocURL), deref(in.DocURL)); url != "" {
		d.DocURL = url
	} else if in.DocURL != nil {
		// an explicit empty docUrl removes the document
		d.DocURL = ""
	}
	return nil
}

type GalleryImageInput struct {
	Title            *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Category         *string `form:"category" json:"category"`
	ImageURL         *string `form:"imageUrl" json:"imageUrl"`
	ExistingImageURL *string `form:"existingImageUrl" json:"existingImageUrl"`
}

func (in *GalleryImageInput) Validate(op Op, files Files) error {
	return finish(need(op,
		str("title", in.Title),
		str("category", in.Category),
		imageRequired(files, in.ImageURL, in.ExistingImageURL),
	))
}

func (in *GalleryImageInput) Apply(g *models.GalleryImage, up Uploaded) error {
	trimmed(&g.Title, in.Title)
	trimmed(&g.Category, in.Category)
	if url := firstURL(up.First(ImageKey), deref(in.ExistingImageURL), deref(in.ImageURL)); url != "" {
		g.ImageURL = url
	}
	return nil
}

type VideoInput struct {
	Title                *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Description          *string `form:"description" json:"description"`
	Order                *int    `form:"order" json:"order"`
	VideoURL             *string `form:"videoUrl" json:"videoUrl"`
	ExistingVideoURL     *string `form:"existingVideoUrl" json:"existingVideoUrl"`
	ThumbnailURL         *string `form:"thumbnailUrl" json:"thumbnailUrl"`
	ExistingThumbnailURL *string `form:"existingThumbnailUrl" json:"existingThumbnailUrl"`
}

func (in *VideoInput) Validate(op Op, files Files) error {
	return finish(need(op,
		str("title", in.Title),
		oneOf("videoUrl", field{ok: files.Has(VideoKey)}, str("", in.VideoURL), str("", in.ExistingVideoURL)),
	))
}

func (in *VideoInput) Apply(v *models.Video, up Uploaded) error {
	trimmed(&v.Title, in.Title)
	assign(&v.Description, in.Description)
	assign(&v.Order, in.Order)
	if url := firstURL(up.First(VideoKey), deref(in.ExistingVideoURL), deref(in.VideoURL)); url != "" {
		v.VideoURL = url
	}
	if url := firstURL(up.First(ThumbnailKey), deref(in.ExistingThumbnailURL), deref(in.ThumbnailURL)); url != "" {
		v.ThumbnailURL = url
	}
	return nil
}
