package database

import models "github.com/phillip/ngo-portal-go/models"

const (
	CampaignsCollection           = "campaigns"
	EventsCollection              = "events"
	EventRegistrationsCollection  = "eventregistrations"
	BoardMembersCollection        = "boardmembers"
	TeamMembersCollection         = "teammembers"
	MediaCollection               = "media"
	PressReleasesCollection       = "pressreleases"
	ComplianceDocumentsCollection = "compliancedocuments"
	BannersCollection             = "banners"
	CollaboratorsCollection       = "collaborators"
	GalleryCollection             = "galleryimages"
	ProgramsCollection            = "programs"
	TrackRecordsCollection        = "trackrecords"
	ImpactStatsCollection         = "impactstats"
	VideosCollection              = "videos"
	VolunteersCollection          = "volunteers"
	DonationsCollection           = "donations"
	MessagesCollection            = "messages"
)

// Repositories holds one repository per collection.
type Repositories struct {
	Campaigns           Repository[models.Campaign]
	Events              Repository[models.Event]
	EventRegistrations  Repository[models.EventRegistration]
	BoardMembers        Repository[models.BoardMember]
	TeamMembers         Repository[models.TeamMember]
	Media               Repository[models.Media]
	PressReleases       Repository[models.PressRelease]
	ComplianceDocuments Repository[models.ComplianceDocument]
	Banners             Repository[models.Banner]
	Collaborators       Repository[models.Collaborator]
	Gallery             Repository[models.GalleryImage]
	Programs            Repository[models.Program]
	TrackRecords        Repository[models.TrackRecord]
	ImpactStats         Repository[models.ImpactStat]
	Videos              Repository[models.Video]
	Volunteers          Repository[models.Volunteer]
	Donations           Repository[models.Donation]
	Messages            Repository[models.Message]
}

// NewRepositories wires every collection to store.
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Campaigns:           NewMongoRepository[models.Campaign](store, CampaignsCollection, "campaign"),
		Events:              NewMongoRepository[models.Event](store, EventsCollection, "event"),
		EventRegistrations:  NewMongoRepository[models.EventRegistration](store, EventRegistrationsCollection, "event registration"),
		BoardMembers:        NewMongoRepository[models.BoardMember](store, BoardMembersCollection, "board member"),
		TeamMembers:         NewMongoRepository[models.TeamMember](store, TeamMembersCollection, "team member"),
		Media:               NewMongoRepository[models.Media](store, MediaCollection, "media article"),
		PressReleases:       NewMongoRepository[models.PressRelease](store, PressReleasesCollection, "press release"),
		ComplianceDocuments: NewMongoRepository[models.ComplianceDocument](store, ComplianceDocumentsCollection, "compliance document"),
		Banners:             NewMongoRepository[models.Banner](store, BannersCollection, "banner"),
		Collaborators:       NewMongoRepository[models.Collaborator](store, CollaboratorsCollection, "collaborator"),
		Gallery:             NewMongoRepository[models.GalleryImage](store, GalleryCollection, "gallery image"),
		Programs:            NewMongoRepository[models.Program](store, ProgramsCollection, "program"),
		TrackRecords:        NewMongoRepository[models.TrackRecord](store, TrackRecordsCollection, "track record"),
		ImpactStats:         NewMongoRepository[models.ImpactStat](store, ImpactStatsCollection, "impact stat"),
		Videos:              NewMongoRepository[models.Video](store, VideosCollection, "video"),
		Volunteers:          NewMongoRepository[models.Volunteer](store, VolunteersCollection, "volunteer"),
		Donations:           NewMongoRepository[models.Donation](store, DonationsCollection, "donation"),
		Messages:            NewMongoRepository[models.Message](store, MessagesCollection, "message"),
	}
}
