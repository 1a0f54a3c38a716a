package controllers

import (
	"context"

	database "github.com/phillip/ngo-portal-go/database"
	dto "github.com/phillip/ngo-portal-go/dto"
	models "github.com/phillip/ngo-portal-go/models"
	utils "github.com/phillip/ngo-portal-go/utils"
)

var (
	byOrder       = []database.SortKey{database.Asc("order")}
	byOrderNewest = []database.SortKey{database.Asc("order"), database.Desc("createdAt")}
	byDateDesc    = []database.SortKey{database.Desc("date")}
	newestFirst   = []database.SortKey{database.Desc("createdAt")}
	inserted      = []database.SortKey{database.Asc("createdAt")}
)

func image(folder string) []UploadField {
	return []UploadField{{Key: dto.ImageKey, Field: "imageUrl", Folder: folder, Max: 1}}
}

func Campaigns(d *Deps) *Resource[models.Campaign, *models.Campaign] {
	return &Resource[models.Campaign, *models.Campaign]{
		Deps:       d,
		Label:      "campaign",
		Repo:       d.Repos.Campaigns,
		Sort:       inserted,
		Uploads:    []UploadField{{Key: dto.CampaignImagesKey, Field: "images", Folder: "campaigns", Max: 10}},
		New:        models.NewCampaign,
		Input:      func() dto.Input[models.Campaign] { return &dto.CampaignInput{} },
		BeforeSave: campaignSlug(d.Repos.Campaigns),
	}
}

// campaignSlug derives the slug on create and whenever the title changes.
func campaignSlug(repo database.Repository[models.Campaign]) func(context.Context, *models.Campaign, *models.Campaign) error {
	return func(ctx context.Context, c *models.Campaign, prev *models.Campaign) error {
		if prev != nil && prev.Title == c.Title && prev.Slug != "" {
			c.Slug = prev.Slug
			return nil
		}
		slug, err := utils.UniqueSlug(ctx, c.Title, "campaign", func(ctx context.Context, candidate string) (bool, error) {
			return repo.Exists(ctx, "slug", candidate, c.ID)
		})
		if err != nil {
			return err
		}
		c.Slug = slug
		return nil
	}
}

func Events(d *Deps) *Resource[models.Event, *models.Event] {
	return &Resource[models.Event, *models.Event]{
		Deps:    d,
		Label:   "event",
		Repo:    d.Repos.Events,
		Sort:    []database.SortKey{database.Asc("date")},
		Uploads: []UploadField{{Key: dto.EventImageKey, Field: "image", Folder: "events", Max: 1}},
		New:     models.NewEvent,
		Input:   func() dto.Input[models.Event] { return &dto.EventInput{} },
	}
}

func BoardMembers(d *Deps) *Resource[models.BoardMember, *models.BoardMember] {
	return &Resource[models.BoardMember, *models.BoardMember]{
		Deps:    d,
		Label:   "board member",
		Repo:    d.Repos.BoardMembers,
		Sort:    byOrderNewest,
		Uploads: image("board-members"),
		Input:   func() dto.Input[models.BoardMember] { return &dto.BoardMemberInput{} },
	}
}

func TeamMembers(d *Deps) *Resource[models.TeamMember, *models.TeamMember] {
	return &Resource[models.TeamMember, *models.TeamMember]{
		Deps:    d,
		Label:   "team member",
		Repo:    d.Repos.TeamMembers,
		Sort:    byOrderNewest,
		Uploads: image("team-members"),
		Input:   func() dto.Input[models.TeamMember] { return &dto.TeamMemberInput{} },
	}
}

func Media(d *Deps) *Resource[models.Media, *models.Media] {
	return &Resource[models.Media, *models.Media]{
		Deps:    d,
		Label:   "media article",
		Repo:    d.Repos.Media,
		Sort:    byDateDesc,
		Uploads: image("media"),
		Input:   func() dto.Input[models.Media] { return &dto.MediaInput{} },
	}
}

func PressReleases(d *Deps) *Resource[models.PressRelease, *models.PressRelease] {
	return &Resource[models.PressRelease, *models.PressRelease]{
		Deps:    d,
		Label:   "press release",
		Repo:    d.Repos.PressReleases,
		Sort:    byDateDesc,
		Uploads: image("press-releases"),
		Input:   func() dto.Input[models.PressRelease] { return &dto.PressReleaseInput{} },
	}
}

func ComplianceDocuments(d *Deps) *Resource[models.ComplianceDocument, *models.ComplianceDocument] {
	return &Resource[models.ComplianceDocument, *models.ComplianceDocument]{
		Deps:  d,
		Label: "compliance document",
		Repo:  d.Repos.ComplianceDocuments,
		Sort:  byDateDesc,
		Uploads: []UploadField{
			{Key: dto.ImageKey, Field: "imageUrl", Folder: "compliance-documents", Max: 1},
			{Key: dto.DocumentKey, Field: "docUrl", Folder: "compliance-documents", Max: 1},
		},
		Input: func() dto.Input[models.ComplianceDocument] { return &dto.ComplianceDocumentInput{} },
	}
}

func Banners(d *Deps) *Resource[models.Banner, *models.Banner] {
	return &Resource[models.Banner, *models.Banner]{
		Deps:        d,
		Label:       "banner",
		Repo:        d.Repos.Banners,
		Sort:        byOrder,
		Uploads:     []UploadField{{Key: dto.BannerImagesKey, Field: "images", Folder: "banners", Max: models.MaxBannerImages}},
		New:         models.NewBanner,
		Input:       func() dto.Input[models.Banner] { return &dto.BannerInput{} },
		ActiveField: "isActive",
	}
}

func Collaborators(d *Deps) *Resource[models.Collaborator, *models.Collaborator] {
	return &Resource[models.Collaborator, *models.Collaborator]{
		Deps:        d,
		Label:       "collaborator",
		Repo:        d.Repos.Collaborators,
		Sort:        byOrder,
		Uploads:     []UploadField{{Key: dto.LogoKey, Field: "logo", Folder: "collaborators", Max: 1}},
		New:         models.NewCollaborator,
		Input:       func() dto.Input[models.Collaborator] { return &dto.CollaboratorInput{} },
		ActiveField: "isActive",
	}
}

func Gallery(d *Deps) *Resource[models.GalleryImage, *models.GalleryImage] {
	return &Resource[models.GalleryImage, *models.GalleryImage]{
		Deps:    d,
		Label:   "gallery image",
		Repo:    d.Repos.Gallery,
		Sort:    newestFirst,
		Uploads: image("gallery"),
		Input:   func() dto.Input[models.GalleryImage] { return &dto.GalleryImageInput{} },
	}
}

func Programs(d *Deps) *Resource[models.Program, *models.Program] {
	return &Resource[models.Program, *models.Program]{
		Deps:        d,
		Label:       "program",
		Repo:        d.Repos.Programs,
		Sort:        byOrder,
		New:         models.NewProgram,
		Input:       func() dto.Input[models.Program] { return &dto.ProgramInput{} },
		ActiveField: "isActive",
	}
}

func TrackRecords(d *Deps) *Resource[models.TrackRecord, *models.TrackRecord] {
	return &Resource[models.TrackRecord, *models.TrackRecord]{
		Deps:  d,
		Label: "track record",
		Repo:  d.Repos.TrackRecords,
		Sort:  byOrder,
		Input: func() dto.Input[models.TrackRecord] { return &dto.TrackRecordInput{} },
	}
}

func ImpactStats(d *Deps) *Resource[models.ImpactStat, *models.ImpactStat] {
	return &Resource[models.ImpactStat, *models.ImpactStat]{
		Deps:  d,
		Label: "impact stat",
		Repo:  d.Repos.ImpactStats,
		Sort:  byOrder,
		Input: func() dto.Input[models.ImpactStat] { return &dto.ImpactStatInput{} },
	}
}

func Videos(d *Deps) *Resource[models.Video, *models.Video] {
	return &Resource[models.Video, *models.Video]{
		Deps:  d,
		Label: "video",
		Repo:  d.Repos.Videos,
		Sort:  byOrder,
		Uploads: []UploadField{
			{Key: dto.VideoKey, Field: "videoUrl", Folder: "videos", Max: 1},
			{Key: dto.ThumbnailKey, Field: "thumbnailUrl", Folder: "videos/thumbnails", Max: 1},
		},
		Input: func() dto.Input[models.Video] { return &dto.VideoInput{} },
	}
}

func Volunteers(d *Deps) *Resource[models.Volunteer, *models.Volunteer] {
	return &Resource[models.Volunteer, *models.Volunteer]{
		Deps:  d,
		Label: "volunteer",
		Repo:  d.Repos.Volunteers,
		Sort:  newestFirst,
		New:   models.NewVolunteer,
		Input: func() dto.Input[models.Volunteer] { return &dto.VolunteerInput{} },
	}
}

// VolunteerStatus is the admin's only edit on a volunteer application.
func VolunteerStatus(d *Deps) *Resource[models.Volunteer, *models.Volunteer] {
	r := Volunteers(d)
	r.Input = func() dto.Input[models.Volunteer] { return &dto.VolunteerStatusInput{} }
	return r
}

func Donations(d *Deps) *Resource[models.Donation, *models.Donation] {
	return &Resource[models.Donation, *models.Donation]{
		Deps:  d,
		Label: "donation",
		Repo:  d.Repos.Donations,
		Sort:  newestFirst,
		New:   models.NewDonation,
		Input: func() dto.Input[models.Donation] { return &dto.DonationInput{} },
	}
}

func Messages(d *Deps) *Resource[models.Message, *models.Message] {
	return &Resource[models.Message, *models.Message]{
		Deps:  d,
		Label: "message",
		Repo:  d.Repos.Messages,
		Sort:  newestFirst,
		New:   models.NewMessage,
		Input: func() dto.Input[models.Message] { return &dto.MessageInput{} },
	}
}

// PublicDonations serves the anonymous donation form.
func PublicDonations(d *Deps) *Resource[models.Donation, *models.Donation] {
	r := Donations(d)
	r.Input = func() dto.Input[models.Donation] { return &dto.PublicDonationInput{} }
	return r
}

// PublicMessages serves the anonymous contact form.
func PublicMessages(d *Deps) *Resource[models.Message, *models.Message] {
	r := Messages(d)
	r.Input = func() dto.Input[models.Message] { return &dto.PublicMessageInput{} }
	return r
}

// MarkMessageRead handles PATCH /messages/:id/read.
func MarkMessageRead(d *Deps) *Resource[models.Message, *models.Message] {
	r := Messages(d)
	r.Input = func() dto.Input[models.Message] { return &dto.MessageReadInput{} }
	return r
}
