package models

type BoardMember struct {
	Base        `bson:",inline"`
	Name        string `bson:"name" json:"name"`
	Designation string `bson:"designation" json:"designation"`
	ImageURL    string `bson:"imageUrl" json:"imageUrl"`
	Bio         string `bson:"bio" json:"bio"`
	Quote       string `bson:"quote" json:"quote"`
	LinkedinURL string `bson:"linkedinUrl" json:"linkedinUrl"`
	Email       string `bson:"email" json:"email"`
	Order       int    `bson:"order" json:"order"`
}

func (m *BoardMember) AssetURLs() []string { return nonEmpty(m.ImageURL) }

type TeamMember struct {
	Base        `bson:",inline"`
	Name        string `bson:"name" json:"name"`
	Designation string `bson:"designation" json:"designation"`
	ImageURL    string `bson:"imageUrl" json:"imageUrl"`
	Order       int    `bson:"order" json:"order"`
}

func (m *TeamMember) AssetURLs() []string { return nonEmpty(m.ImageURL) }
