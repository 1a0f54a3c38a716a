package dto

import (
	"fmt"
	"strings"

	models "github.com/phillip/ngo-portal-go/models"
)

const (
	BannerImagesKey = "images"
	LogoKey         = "logo"
)

type BannerInput struct {
	Title          *string  `form:"title" json:"title" binding:"omitempty,max=200"`
	Subtitle       *string  `form:"subtitle" json:"subtitle"`
	Description    *string  `form:"description" json:"description"`
	ImageURL       *string  `form:"imageUrl" json:"imageUrl"`
	Alt            *string  `form:"alt" json:"alt"`
	Link           *string  `form:"link" json:"link"`
	Order          *int     `form:"order" json:"order"`
	IsActive       *bool    `form:"isActive" json:"isActive"`
	Images         []string `form:"-" json:"images"`
	ExistingImages []string `form:"existingImages" json:"existingImages"`
}

func (in *BannerInput) Validate(op Op, files Files) error {
	verr := need(op)
	in.ExistingImages = expandList(in.ExistingImages)
	kept := in.ExistingImages
	if kept == nil {
		kept = in.Images
	}
	if n := len(kept) + len(files[BannerImagesKey]); n > models.MaxBannerImages {
		verr.Add("images", fmt.Sprintf("a banner holds at most %d images, got %d", models.MaxBannerImages, n))
	}
	return finish(verr)
}

func (in *BannerInput) Apply(b *models.Banner, up Uploaded) error {
	assign(&b.Title, in.Title)
	assign(&b.Subtitle, in.Subtitle)
	assign(&b.Description, in.Description)
	trimmed(&b.ImageURL, in.ImageURL)
	if in.Alt != nil {
		b.Alt = strings.TrimSpace(*in.Alt)
		if b.Alt == "" {
			b.Alt = models.DefaultBannerAlt
		}
	}
	trimmed(&b.Link, in.Link)
	assign(&b.Order, in.Order)
	assign(&b.IsActive, in.IsActive)

	kept := in.ExistingImages
	if kept == nil {
		kept = in.Images
	}
	if fresh := up[BannerImagesKey]; kept != nil || len(fresh) > 0 {
		b.Images = append(append([]string{}, kept...), fresh...)
	}
	return nil
}

type CollaboratorInput struct {
	Name         *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Logo         *string `form:"logo" json:"logo"`
	ExistingLogo *string `form:"existingLogo" json:"existingLogo"`
	Link         *string `form:"link" json:"link"`
	Order        *int    `form:"order" json:"order"`
	IsActive     *bool   `form:"isActive" json:"isActive"`
}

func (in *CollaboratorInput) Validate(op Op, files Files) error {
	return finish(need(op,
		str("name", in.Name),
		oneOf("logo", field{ok: files.Has(LogoKey)}, str("", in.Logo), str("", in.ExistingLogo)),
	))
}

func (in *CollaboratorInput) Apply(c *models.Collaborator, up Uploaded) error {
	trimmed(&c.Name, in.Name)
	if url := firstURL(up.First(LogoKey), deref(in.ExistingLogo), deref(in.Logo)); url != "" {
		c.Logo = url
	}
	trimmed(&c.Link, in.Link)
	assign(&c.Order, in.Order)
	assign(&c.IsActive, in.IsActive)
	return nil
}

type ProgramInput struct {
	Name        *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Tagline     *string `form:"tagline" json:"tagline"`
	Description *string `form:"description" json:"description"`
	Stats       *string `form:"stats" json:"stats"`
	Icon        *string `form:"icon" json:"icon"`
	Color       *string `form:"color" json:"color"`
	BorderColor *string `form:"borderColor" json:"borderColor"`
	Order       *int    `form:"order" json:"order"`
	IsActive    *bool   `form:"isActive" json:"isActive"`
}

func (in *ProgramInput) Validate(op Op, _ Files) error {
	return finish(need(op, str("name", in.Name)))
}

func (in *ProgramInput) Apply(p *models.Program, _ Uploaded) error {
	trimmed(&p.Name, in.Name)
	assign(&p.Tagline, in.Tagline)
	assign(&p.Description, in.Description)
	assign(&p.Stats, in.Stats)
	assign(&p.Icon, in.Icon)
	assign(&p.Color, in.Color)
	assign(&p.BorderColor, in.BorderColor)
	assign(&p.Order, in.Order)
	assign(&p.IsActive, in.IsActive)
	return nil
}

type TrackRecordInput struct {
	Title       *string `form:"title" json:"title" binding:"omitempty,max=100"`
	Value       *string `form:"value" json:"value" binding:"omitempty,max=50"`
	Description *string `form:"description" json:"description"`
	Icon        *string `form:"icon" json:"icon"`
	Color       *string `form:"color" json:"color"`
	Order       *int    `form:"order" json:"order"`
}

func (in *TrackRecordInput) Validate(op Op, _ Files) error {
	return finish(need(op, str("title", in.Title), str("value", in.Value)))
}

func (in *TrackRecordInput) Apply(t *models.TrackRecord, _ Uploaded) error {
	trimmed(&t.Title, in.Title)
	trimmed(&t.Value, in.Value)
	assign(&t.Description, in.Description)
	assign(&t.Icon, in.Icon)
	assign(&t.Color, in.Color)
	assign(&t.Order, in.Order)
	return nil
}

type ImpactStatInput struct {
	Label       *string `form:"label" json:"label" binding:"omitempty,max=100"`
	Value       *string `form:"value" json:"value" binding:"omitempty,max=50"`
	Description *string `form:"description" json:"description"`
	Icon        *string `form:"icon" json:"icon"`
	Color       *string `form:"color" json:"color"`
	Order       *int    `form:"order" json:"order"`
}

func (in *ImpactStatInput) Validate(op Op, _ Files) error {
	return finish(need(op, str("label", in.Label), str("value", in.Value)))
}

func (in *ImpactStatInput) Apply(s *models.ImpactStat, _ Uploaded) error {
	trimmed(&s.Label, in.Label)
	trimmed(&s.Value, in.Value)
	assign(&s.Description, in.Description)
	assign(&s.Icon, in.Icon)
	assign(&s.Color, in.Color)
	assign(&s.Order, in.Order)
	return nil
}
