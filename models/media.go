package models

import "time"

// Media is a news/media coverage article.
type Media struct {
	Base     `bson:",inline"`
	Title    string    `bson:"title" json:"title"`
	ImageURL string    `bson:"imageUrl" json:"imageUrl"`
	LinkURL  string    `bson:"linkUrl" json:"linkUrl"`
	Date     time.Time `bson:"date" json:"date"`
}

func (m *Media) AssetURLs() []string { return nonEmpty(m.ImageURL) }

type PressRelease struct {
	Base     `bson:",inline"`
	Title    string    `bson:"title" json:"title"`
	ImageURL string    `bson:"imageUrl" json:"imageUrl"`
	Date     time.Time `bson:"date" json:"date"`
}

func (p *PressRelease) AssetURLs() []string { return nonEmpty(p.ImageURL) }

type ComplianceDocument struct {
	Base     `bson:",inline"`
	Title    string    `bson:"title" json:"title"`
	ImageURL string    `bson:"imageUrl" json:"imageUrl"`
	DocURL   string    `bson:"docUrl" json:"docUrl"`
	Date     time.Time `bson:"date" json:"date"`
}

func (d *ComplianceDocument) AssetURLs() []string { return nonEmpty(d.ImageURL, d.DocURL) }

type GalleryImage struct {
	Base     `bson:",inline"`
	Title    string `bson:"title" json:"title"`
	ImageURL string `bson:"imageUrl" json:"imageUrl"`
	Category string `bson:"category" json:"category"`
}

func (g *GalleryImage) AssetURLs() []string { return nonEmpty(g.ImageURL) }

type Video struct {
	Base         `bson:",inline"`
	Title        string `bson:"title" json:"title"`
	Description  string `bson:"description" json:"description"`
	VideoURL     string `bson:"videoUrl" json:"videoUrl"`
	ThumbnailURL string `bson:"thumbnailUrl" json:"thumbnailUrl"`
	Order        int    `bson:"order" json:"order"`
}

func (v *Video) AssetURLs() []string { return nonEmpty(v.VideoURL, v.ThumbnailURL) }
