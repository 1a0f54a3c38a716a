package models

type Volunteer struct {
	Base       `bson:",inline"`
	Name       string          `bson:"name" json:"name"`
	Email      string          `bson:"email" json:"email"`
	Phone      string          `bson:"phone" json:"phone"`
	Area       string          `bson:"area" json:"area"`
	Experience string          `bson:"experience" json:"experience"`
	Status     VolunteerStatus `bson:"status" json:"status"`
}

func NewVolunteer() Volunteer { return Volunteer{Status: VolunteerPending} }
