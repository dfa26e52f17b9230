package service

import (
	"fmt"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

// SiteView 是公共站点首页所需的全部数据，隐藏区块对应的字段为 nil
type SiteView struct {
	Settings  SiteSettings
	Sections  SectionVisibilityMap
	Services  []db.Service
	Team      []db.TeamMember
	Portfolio []db.PortfolioItem
	About     *db.About
}

// SiteService joins settings, section visibility and content for the public site.
type SiteService struct {
	settings  *SettingService
	sections  *SectionService
	offerings *OfferingService
	team      *TeamMemberService
	portfolio *PortfolioService
	about     *AboutService
}

// NewSiteService creates a SiteService backed by gdb.
func NewSiteService(gdb *gorm.DB) *SiteService {
	return &SiteService{
		settings:  NewSettingService(gdb),
		sections:  NewSectionService(gdb),
		offerings: NewOfferingService(gdb),
		team:      NewTeamMemberService(gdb),
		portfolio: NewPortfolioService(gdb),
		about:     NewAboutService(gdb),
	}
}

// Build assembles the homepage view, skipping content of hidden sections.
func (s *SiteService) Build() (SiteView, error) {
	var view SiteView

	settings, err := s.settings.SiteSettings()
	if err != nil {
		return view, err
	}
	view.Settings = settings

	sections, err := s.sections.VisibilityMap()
	if err != nil {
		return view, fmt.Errorf("load sections: %w", err)
	}
	view.Sections = sections

	if sections.Visible(db.SectionServices) {
		if view.Services, err = s.offerings.List(); err != nil {
			return view, err
		}
		if view.Services == nil {
			view.Services = []db.Service{}
		}
	}
	if sections.Visible(db.SectionTeam) {
		if view.Team, err = s.team.List(); err != nil {
			return view, err
		}
		if view.Team == nil {
			view.Team = []db.TeamMember{}
		}
	}
	if sections.Visible(db.SectionPortfolio) {
		if view.Portfolio, err = s.portfolio.List(PortfolioFilter{}); err != nil {
			return view, err
		}
		if view.Portfolio == nil {
			view.Portfolio = []db.PortfolioItem{}
		}
	}
	if sections.Visible(db.SectionAbout) {
		if view.About, err = s.about.Get(); err != nil {
			return view, err
		}
	}

	return view, nil
}
