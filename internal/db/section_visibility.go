package db

import (
	"errors"

	"gorm.io/gorm"
)

// SectionVisibility 控制首页区块是否展示
type SectionVisibility struct {
	gorm.Model
	SectionID   string `gorm:"size:80;uniqueIndex;not null"`
	Name        string `gorm:"size:120;not null"`
	IsVisible   bool   `gorm:"not null"`
	Description string `gorm:"size:512"`
}

// TableName 返回自定义表名
func (SectionVisibility) TableName() string {
	return "section_visibilities"
}

// Homepage section ids
const (
	SectionHero         = "hero"
	SectionServices     = "services"
	SectionAbout        = "about"
	SectionTeam         = "team"
	SectionPortfolio    = "portfolio"
	SectionTestimonials = "testimonials"
	SectionContact      = "contact"
)

// DefaultSections are created at startup when missing.
var DefaultSections = []SectionVisibility{
	{SectionID: SectionHero, Name: "Hero", IsVisible: true, Description: "Landing banner with headline and call to action"},
	{SectionID: SectionServices, Name: "Services", IsVisible: true, Description: "Grid of offered services"},
	{SectionID: SectionAbout, Name: "About", IsVisible: true, Description: "Company introduction and feature list"},
	{SectionID: SectionTeam, Name: "Team", IsVisible: true, Description: "Team member cards"},
	{SectionID: SectionPortfolio, Name: "Portfolio", IsVisible: true, Description: "Selected projects"},
	{SectionID: SectionTestimonials, Name: "Testimonials", IsVisible: false, Description: "Client quotes"},
	{SectionID: SectionContact, Name: "Contact", IsVisible: true, Description: "Contact details and form"},
}

// EnsureSections 补齐缺失的默认区块，已有记录（包括已删除的）保持不变。
func EnsureSections(gdb *gorm.DB) (int, error) {
	if gdb == nil {
		return 0, errors.New("database not initialized")
	}

	created := 0
	for _, def := range DefaultSections {
		var count int64
		if err := gdb.Unscoped().Model(&SectionVisibility{}).Where("section_id = ?", def.SectionID).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		section := def
		if err := gdb.Create(&section).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
