package models

import "time"

type Location struct {
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	Country  string `bson:"country" json:"country"`
	IsOnline bool   `bson:"isOnline" json:"isOnline"`
}

type Organizer struct {
	Name        string `bson:"name" json:"name"`
	Type        string `bson:"type" json:"type"`
	Description string `bson:"description" json:"description"`
}

type Campaign struct {
	Base               `bson:",inline"`
	Title              string         `bson:"title" json:"title"`
	Slug               string         `bson:"slug" json:"slug"`
	ShortDescription   string         `bson:"shortDescription" json:"shortDescription"`
	AboutCampaign      string         `bson:"aboutCampaign" json:"aboutCampaign"`
	Images             []string       `bson:"images" json:"images"`
	GoalAmount         float64        `bson:"goalAmount" json:"goalAmount"`
	RaisedAmount       float64        `bson:"raisedAmount" json:"raisedAmount"`
	Location           Location       `bson:"location" json:"location"`
	Organizer          Organizer      `bson:"organizer" json:"organizer"`
	Category           string         `bson:"category" json:"category"`
	Status             CampaignStatus `bson:"status" json:"status"`
	BeneficiariesCount int            `bson:"beneficiariesCount" json:"beneficiariesCount"`
	StartDate          *time.Time     `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate            *time.Time     `bson:"endDate,omitempty" json:"endDate,omitempty"`
	ImpactDescription  string         `bson:"impactDescription" json:"impactDescription"`
}

func NewCampaign() Campaign {
	return Campaign{Status: CampaignActive, Images: []string{}}
}

func (c *Campaign) AssetURLs() []string { return nonEmpty(c.Images...) }

// FundedPercent is raised/goal as a whole percentage capped at 100.
func (c *Campaign) FundedPercent() int {
	if c.GoalAmount <= 0 {
		return 0
	}
	p := int(c.RaisedAmount/c.GoalAmount*100 + 0.5)
	if p > 100 {
		return 100
	}
	return p
}
