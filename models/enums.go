package models

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignActive, CampaignPaused, CampaignCompleted, CampaignCancelled:
		return true
	}
	return false
}

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventCompleted EventStatus = "completed"
	EventPlanned   EventStatus = "planned"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventUpcoming, EventCompleted, EventPlanned, EventCancelled:
		return true
	}
	return false
}

type VolunteerStatus string

const (
	VolunteerPending   VolunteerStatus = "pending"
	VolunteerReviewed  VolunteerStatus = "reviewed"
	VolunteerContacted VolunteerStatus = "contacted"
	VolunteerRejected  VolunteerStatus = "rejected"
	VolunteerAccepted  VolunteerStatus = "accepted"
	VolunteerActive    VolunteerStatus = "active"
)

func (s VolunteerStatus) Valid() bool {
	switch s {
	case VolunteerPending, VolunteerReviewed, VolunteerContacted,
		VolunteerRejected, VolunteerAccepted, VolunteerActive:
		return true
	}
	return false
}

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationPending, DonationCompleted, DonationFailed:
		return true
	}
	return false
}

type DonationType string

const (
	DonationOneTime DonationType = "one-time"
	DonationMonthly DonationType = "monthly"
)

func (t DonationType) Valid() bool {
	return t == DonationOneTime || t == DonationMonthly
}
