package model

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	BeerID uint `gorm:"index;not null"`
	UserID uint `gorm:"index;not null"`

	SensoryScores
	Score *int
	Notes string

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

type Comment struct {
	gorm.Model
	BeerID uint `gorm:"index;not null"`
	UserID uint `gorm:"index;not null"`
	Text   string

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}
