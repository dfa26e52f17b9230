package service

import (
	"gorm.io/gorm"
)

// DashboardStats 汇总后台首页展示的计数
type DashboardStats struct {
	Pages             map[string]int64 `json:"pages"`
	Media             map[string]int64 `json:"media"`
	TeamMembers       int64            `json:"teamMembers"`
	Services          int64            `json:"services"`
	PortfolioItems    int64            `json:"portfolioItems"`
	FeaturedPortfolio int64            `json:"featuredPortfolio"`
	Users             int64            `json:"users"`
	Settings          int64            `json:"settings"`
	VisibleSections   int64            `json:"visibleSections"`
}

// DashboardService computes admin overview counters.
type DashboardService struct {
	pages     *PageService
	media     *MediaService
	team      *TeamMemberService
	offerings *OfferingService
	portfolio *PortfolioService
	users     *UserService
	settings  *SettingService
	sections  *SectionService
}

// NewDashboardService creates a DashboardService; storage is not needed for counting.
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{
		pages:     NewPageService(gdb),
		media:     NewMediaService(gdb, nil, 0),
		team:      NewTeamMemberService(gdb),
		offerings: NewOfferingService(gdb),
		portfolio: NewPortfolioService(gdb),
		users:     NewUserService(gdb),
		settings:  NewSettingService(gdb),
		sections:  NewSectionService(gdb),
	}
}

// Stats returns the current counters.
func (s *DashboardService) Stats() (DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)

	if stats.Pages, err = s.pages.CountByStatus(); err != nil {
		return stats, err
	}
	if stats.Media, err = s.media.CountByType(); err != nil {
		return stats, err
	}
	if stats.TeamMembers, err = s.team.Count(); err != nil {
		return stats, err
	}
	if stats.Services, err = s.offerings.Count(); err != nil {
		return stats, err
	}
	if stats.PortfolioItems, stats.FeaturedPortfolio, err = s.portfolio.Count(); err != nil {
		return stats, err
	}
	if stats.Users, err = s.users.Count(); err != nil {
		return stats, err
	}
	if stats.Settings, err = s.settings.Count(); err != nil {
		return stats, err
	}
	if stats.VisibleSections, err = s.sections.CountVisible(); err != nil {
		return stats, err
	}
	return stats, nil
}
