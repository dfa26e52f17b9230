package db

import "gorm.io/gorm"

// TeamMember 展示在“团队”区块的成员，SortOrder 越小越靠前
type TeamMember struct {
	gorm.Model
	Name      string `gorm:"size:120;not null"`
	Role      string `gorm:"size:120;not null"`
	Bio       string `gorm:"type:text"`
	ImageURL  string `gorm:"size:1024"`
	SortOrder int    `gorm:"default:0;index"`
}
