package model

import "gorm.io/gorm"

// Beer is one version of a beer. Rows sharing a Name are successive recipe
// iterations; the highest Version is the current one.
type Beer struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex:idx_beer_version;not null"`
	Version     int    `gorm:"uniqueIndex:idx_beer_version;not null"`
	Type        string
	Description string
	ReviewCount int

	SensoryAggregates
	Score float64

	Reviews  []Review  `gorm:"constraint:OnDelete:CASCADE;"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE;"`
}

// BeerCandidate is a beer found through an external integration, used to
// prefill a new catalog entry.
type BeerCandidate struct {
	Name           string
	Type           string
	Description    string
	Brewery        string
	ImageURL       string
	ABV            *float64
	IBU            *uint64
	ExternalID     *uint64
	ExternalSource *string
	ExternalRating *float64
}
