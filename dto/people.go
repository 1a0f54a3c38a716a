package dto

import models "github.com/phillip/ngo-portal-go/models"

// ImageKey is the multipart key for single-image resources.
const ImageKey = "image"

type BoardMemberInput struct {
	Name             *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Designation      *string `form:"designation" json:"designation" binding:"omitempty,max=100"`
	Bio              *string `form:"bio" json:"bio"`
	Quote            *string `form:"quote" json:"quote"`
	LinkedinURL      *string `form:"linkedinUrl" json:"linkedinUrl"`
	Email            *string `form:"email" json:"email"`
	Order            *int    `form:"order" json:"order"`
	ImageURL         *string `form:"imageUrl" json:"imageUrl"`
	ExistingImageURL *string `form:"existingImageUrl" json:"existingImageUrl"`
}

func (in *BoardMemberInput) Validate(op Op, files Files) error {
	return finish(need(op,
		str("name", in.Name),
		str("designation", in.Designation),
		imageRequired(files, in.ImageURL, in.ExistingImageURL),
	))
}

func (in *BoardMemberInput) Apply(m *models.BoardMember, up Uploaded) error {
	trimmed(&m.Name, in.Name)
	trimmed(&m.Designation, in.Designation)
	assign(&m.Bio, in.Bio)
	assign(&m.Quote, in.Quote)
	trimmed(&m.LinkedinURL, in.LinkedinURL)
	trimmed(&m.Email, in.Email)
	assign(&m.Order, in.Order)
	if url := firstURL(up.First(ImageKey), deref(in.ExistingImageURL), deref(in.ImageURL)); url != "" {
		m.ImageURL = url
	}
	return nil
}

type TeamMemberInput struct {
	Name             *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Designation      *string `form:"designation" json:"designation" binding:"omitempty,max=100"`
	Order            *int    `form:"order" json:"order"`
	ImageURL         *string `form:"imageUrl" json:"imageUrl"`
	ExistingImageURL *string `form:"existingImageUrl" json:"existingImageUrl"`
}

func (in *TeamMemberInput) Validate(op Op, files Files) error {
	return finish(need(op,
		str("name", in.Name),
		str("designation", in.Designation),
		imageRequired(files, in.ImageURL, in.ExistingImageURL),
	))
}

func (in *TeamMemberInput) Apply(m *models.TeamMember, up Uploaded) error {
	trimmed(&m.Name, in.Name)
	trimmed(&m.Designation, in.Designation)
	assign(&m.Order, in.Order)
	if url := firstURL(up.First(ImageKey), deref(in.ExistingImageURL), deref(in.ImageURL)); url != "" {
		m.ImageURL = url
	}
	return nil
}
