package models

const DefaultBannerAlt = "Banner image"

// MaxBannerImages is the number of image slots a banner exposes.
const MaxBannerImages = 3

type Banner struct {
	Base        `bson:",inline"`
	Title       string   `bson:"title" json:"title"`
	Subtitle    string   `bson:"subtitle" json:"subtitle"`
	Description string   `bson:"description" json:"description"`
	Images      []string `bson:"images" json:"images"`
	ImageURL    string   `bson:"imageUrl" json:"imageUrl"`
	Alt         string   `bson:"alt" json:"alt"`
	Link        string   `bson:"link" json:"link"`
	Order       int      `bson:"order" json:"order"`
	IsActive    bool     `bson:"isActive" json:"isActive"`
}

func NewBanner() Banner {
	return Banner{Alt: DefaultBannerAlt, Images: []string{}, IsActive: true}
}

func (b *Banner) AssetURLs() []string {
	return nonEmpty(append(append([]string{}, b.Images...), b.ImageURL)...)
}

type Collaborator struct {
	Base     `bson:",inline"`
	Name     string `bson:"name" json:"name"`
	Logo     string `bson:"logo" json:"logo"`
	Link     string `bson:"link" json:"link"`
	Order    int    `bson:"order" json:"order"`
	IsActive bool   `bson:"isActive" json:"isActive"`
}

func NewCollaborator() Collaborator { return Collaborator{IsActive: true} }

func (c *Collaborator) AssetURLs() []string { return nonEmpty(c.Logo) }

// Program is one of the organisation's focus areas shown on the home page.
type Program struct {
	Base        `bson:",inline"`
	Name        string `bson:"name" json:"name"`
	Tagline     string `bson:"tagline" json:"tagline"`
	Description string `bson:"description" json:"description"`
	Stats       string `bson:"stats" json:"stats"`
	Icon        string `bson:"icon" json:"icon"`
	Color       string `bson:"color" json:"color"`
	BorderColor string `bson:"borderColor" json:"borderColor"`
	Order       int    `bson:"order" json:"order"`
	IsActive    bool   `bson:"isActive" json:"isActive"`
}

func NewProgram() Program { return Program{IsActive: true} }

type TrackRecord struct {
	Base        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Value       string `bson:"value" json:"value"`
	Description string `bson:"description" json:"description"`
	Icon        string `bson:"icon" json:"icon"`
	Color       string `bson:"color" json:"color"`
	Order       int    `bson:"order" json:"order"`
}

type ImpactStat struct {
	Base        `bson:",inline"`
	Label       string `bson:"label" json:"label"`
	Value       string `bson:"value" json:"value"`
	Description string `bson:"description" json:"description"`
	Icon        string `bson:"icon" json:"icon"`
	Color       string `bson:"color" json:"color"`
	Order       int    `bson:"order" json:"order"`
}
