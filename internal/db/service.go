package db

import "gorm.io/gorm"

// Service is an offering listed in the services section.
type Service struct {
	gorm.Model
	Title       string `gorm:"size:160;not null"`
	Description string `gorm:"type:text;not null"`
	Icon        string `gorm:"size:60"`
	SortOrder   int    `gorm:"default:0;index"`
}
