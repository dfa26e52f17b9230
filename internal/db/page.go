package db

import (
	"time"

	"gorm.io/gorm"
)

// Page statuses
const (
	PageStatusPublished = "Published"
	PageStatusDraft     = "Draft"
)

// Page represents a standalone content page of the marketing site.
type Page struct {
	gorm.Model
	Slug        string `gorm:"size:160;uniqueIndex;not null"`
	Title       string `gorm:"size:255;not null"`
	Summary     string `gorm:"size:512"`
	Content     string `gorm:"type:text"`
	Status      string `gorm:"size:20;not null;default:Draft;index"`
	PublishedAt *time.Time
}

// IsPublished returns true if the page is visible on the public site.
func (p *Page) IsPublished() bool {
	return p.Status == PageStatusPublished
}
