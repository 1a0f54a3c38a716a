package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	Base        `bson:",inline"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	Date        time.Time   `bson:"date" json:"date"`
	Time        string      `bson:"time" json:"time"`
	Location    string      `bson:"location" json:"location"`
	Category    string      `bson:"category" json:"category"`
	Status      EventStatus `bson:"status" json:"status"`
	Image       string      `bson:"image" json:"image"`
	Highlights  []string    `bson:"highlights" json:"highlights"`
	Interested  string      `bson:"interested" json:"interested"`
	Registered  int         `bson:"registered" json:"registered"`
	Capacity    int         `bson:"capacity" json:"capacity"`
	Volunteers  int         `bson:"volunteers" json:"volunteers"`
}

func NewEvent() Event {
	return Event{
		Status:     EventUpcoming,
		Highlights: []string{},
		Interested: "0+",
		Capacity:   100,
	}
}

func (e *Event) AssetURLs() []string { return nonEmpty(e.Image) }

type EventRegistration struct {
	Base     `bson:",inline"`
	EventID  primitive.ObjectID `bson:"eventId" json:"eventId"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Phone    string             `bson:"phone" json:"phone"`
	Comments string             `bson:"comments,omitempty" json:"comments,omitempty"`
}
