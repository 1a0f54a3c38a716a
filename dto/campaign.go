package dto

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	models "github.com/phillip/ngo-portal-go/models"
	utils "github.com/phillip/ngo-portal-go/utils"
)

// CampaignImagesKey is the multipart key for campaign image files.
const CampaignImagesKey = "images"

// CampaignInput accepts location and organizer either as nested JSON
// objects or, in multipart forms, as JSON-encoded strings.
type CampaignInput struct {
	Title              *string           `form:"title" json:"title" binding:"omitempty,max=100"`
	ShortDescription   *string           `form:"shortDescription" json:"shortDescription"`
	AboutCampaign      *string           `form:"aboutCampaign" json:"aboutCampaign"`
	GoalAmount         *float64          `form:"goalAmount" json:"goalAmount" binding:"omitempty,gte=0"`
	RaisedAmount       *float64          `form:"raisedAmount" json:"raisedAmount" binding:"omitempty,gte=0"`
	Location           *models.Location  `form:"-" json:"location"`
	LocationRaw        *string           `form:"location" json:"-"`
	Organizer          *models.Organizer `form:"-" json:"organizer"`
	OrganizerRaw       *string           `form:"organizer" json:"-"`
	Category           *string           `form:"category" json:"category"`
	Status             *string           `form:"status" json:"status"`
	BeneficiariesCount *int              `form:"beneficiariesCount" json:"beneficiariesCount" binding:"omitempty,gte=0"`
	StartDate          *string           `form:"startDate" json:"startDate"`
	EndDate            *string           `form:"endDate" json:"endDate"`
	ImpactDescription  *string           `form:"impactDescription" json:"impactDescription"`
	Images             []string          `form:"-" json:"images"`
	ExistingImages     []string          `form:"existingImages" json:"existingImages"`

	startDate *time.Time
	endDate   *time.Time
}

func (in *CampaignInput) Validate(op Op, _ Files) error {
	verr := need(op, str("title", in.Title), set("goalAmount", in.GoalAmount))

	if in.LocationRaw != nil && strings.TrimSpace(*in.LocationRaw) != "" {
		var loc models.Location
		if err := json.Unmarshal([]byte(*in.LocationRaw), &loc); err != nil {
			verr.Add("location", "location must be a JSON object")
		} else {
			in.Location = &loc
		}
	}
	if in.OrganizerRaw != nil && strings.TrimSpace(*in.OrganizerRaw) != "" {
		var org models.Organizer
		if err := json.Unmarshal([]byte(*in.OrganizerRaw), &org); err != nil {
			verr.Add("organizer", "organizer must be a JSON object")
		} else {
			in.Organizer = &org
		}
	}
	if given(in.Status) && !models.CampaignStatus(*in.Status).Valid() {
		verr.Add("status", "status must be one of active, paused, completed, cancelled")
	}
	in.startDate = optionalDate(verr, "startDate", in.StartDate)
	in.endDate = optionalDate(verr, "endDate", in.EndDate)
	if in.startDate != nil && in.endDate != nil && in.endDate.Before(*in.startDate) {
		verr.Add("endDate", "endDate must not be before startDate")
	}
	in.ExistingImages = expandList(in.ExistingImages)
	return finish(verr)
}

func (in *CampaignInput) Apply(c *models.Campaign, up Uploaded) error {
	trimmed(&c.Title, in.Title)
	assign(&c.ShortDescription, in.ShortDescription)
	assign(&c.AboutCampaign, in.AboutCampaign)
	assign(&c.GoalAmount, in.GoalAmount)
	assign(&c.RaisedAmount, in.RaisedAmount)
	assign(&c.Location, in.Location)
	assign(&c.Organizer, in.Organizer)
	assign(&c.Category, in.Category)
	if given(in.Status) {
		c.Status = models.CampaignStatus(*in.Status)
	}
	assign(&c.BeneficiariesCount, in.BeneficiariesCount)
	if in.StartDate != nil {
		c.StartDate = in.startDate
	}
	if in.EndDate != nil {
		c.EndDate = in.endDate
	}
	assign(&c.ImpactDescription, in.ImpactDescription)

	kept := in.ExistingImages
	if kept == nil {
		kept = in.Images
	}
	if fresh := up[CampaignImagesKey]; kept != nil || len(fresh) > 0 {
		c.Images = append(append([]string{}, kept...), fresh...)
	}
	return nil
}

// EventImageKey is the multipart key for the event image.
const EventImageKey = "image"

type EventInput struct {
	Title            *string  `form:"title" json:"title" binding:"omitempty,max=100"`
	Description      *string  `form:"description" json:"description"`
	Date             *string  `form:"date" json:"date"`
	Time             *string  `form:"time" json:"time"`
	Location         *string  `form:"location" json:"location"`
	Category         *string  `form:"category" json:"category"`
	Status           *string  `form:"status" json:"status"`
	ImageURL         *string  `form:"imageUrl" json:"imageUrl"`
	ExistingImageURL *string  `form:"existingImageUrl" json:"existingImageUrl"`
	Highlights       []string `form:"highlights" json:"highlights"`
	Interested       *string  `form:"interested" json:"interested"`
	Registered       *int     `form:"registered" json:"registered" binding:"omitempty,gte=0"`
	Capacity         *int     `form:"capacity" json:"capacity" binding:"omitempty,gte=0"`
	Volunteers       *int     `form:"volunteers" json:"volunteers" binding:"omitempty,gte=0"`

	date time.Time
}

func (in *EventInput) Validate(op Op, _ Files) error {
	verr := need(op,
		str("title", in.Title),
		str("description", in.Description),
		str("date", in.Date),
		str("time", in.Time),
		str("location", in.Location),
		str("category", in.Category),
	)
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		t, err := utils.ParseDate(*in.Date)
		if err != nil {
			verr.Add("date", err.Error())
		}
		in.date = t
	}
	if given(in.Status) && !models.EventStatus(*in.Status).Valid() {
		verr.Add("status", "status must be one of upcoming, completed, planned, cancelled")
	}
	in.Highlights = expandList(in.Highlights)
	return finish(verr)
}

func (in *EventInput) Apply(e *models.Event, up Uploaded) error {
	trimmed(&e.Title, in.Title)
	assign(&e.Description, in.Description)
	if in.Date != nil {
		e.Date = in.date
	}
	assign(&e.Time, in.Time)
	assign(&e.Location, in.Location)
	assign(&e.Category, in.Category)
	if given(in.Status) {
		e.Status = models.EventStatus(*in.Status)
	}
	if url := firstURL(up.First(EventImageKey), deref(in.ExistingImageURL), deref(in.ImageURL)); url != "" {
		e.Image = url
	}
	if in.Highlights != nil {
		e.Highlights = in.Highlights
	}
	assign(&e.Interested, in.Interested)
	assign(&e.Registered, in.Registered)
	assign(&e.Capacity, in.Capacity)
	assign(&e.Volunteers, in.Volunteers)
	return nil
}

// EventRegistrationInput is the public sign-up form for an event.
type EventRegistrationInput struct {
	EventID  *string `json:"eventId" form:"eventId"`
	Name     *string `json:"name" form:"name" binding:"omitempty,max=100"`
	Email    *string `json:"email" form:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Comments *string `json:"comments" form:"comments" binding:"omitempty,max=1000"`
}

func (in *EventRegistrationInput) Validate(op Op, _ Files) error {
	verr := need(op,
		str("eventId", in.EventID),
		str("name", in.Name),
		str("email", in.Email),
		str("phone", in.Phone),
	)
	if in.EventID != nil && strings.TrimSpace(*in.EventID) != "" {
		if _, err := ParseID(*in.EventID); err != nil {
			verr.Add("eventId", "eventId is not a valid id")
		}
	}
	return finish(verr)
}

func (in *EventRegistrationInput) Apply(r *models.EventRegistration, _ Uploaded) error {
	if in.EventID != nil {
		id, err := ParseID(*in.EventID)
		if err != nil {
			return err
		}
		r.EventID = id
	}
	trimmed(&r.Name, in.Name)
	trimmed(&r.Email, in.Email)
	trimmed(&r.Phone, in.Phone)
	assign(&r.Comments, in.Comments)
	return nil
}

func optionalDate(verr *apperrors.ValidationError, name string, v *string) *time.Time {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	t, err := utils.ParseDate(*v)
	if err != nil {
		verr.Add(name, err.Error())
		return nil
	}
	return &t
}

// expandList accepts repeated form values or a single JSON array string.
func expandList(in []string) []string {
	if len(in) == 1 {
		s := strings.TrimSpace(in[0])
		if strings.HasPrefix(s, "[") {
			var out []string
			if err := json.Unmarshal([]byte(s), &out); err == nil {
				return out
			}
		}
		if s == "" {
			return []string{}
		}
	}
	return in
}
