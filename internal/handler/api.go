package handler

import (
	"github.com/sitecms/internal/ratelimit"
	"github.com/sitecms/internal/service"
	"github.com/sitecms/internal/storage"
	"gorm.io/gorm"
)

// Options 汇总构造 API 所需的外部依赖。
type Options struct {
	DB           *gorm.DB
	Store        storage.Store
	Tokens       *service.TokenService
	LoginLimiter ratelimit.Limiter
	PublicBucket *ratelimit.TokenBucket
	MaxUpload    int64
	SiteBaseURL  string
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	pages     *service.PageService
	media     *service.MediaService
	team      *service.TeamMemberService
	offerings *service.OfferingService
	portfolio *service.PortfolioService
	settings  *service.SettingService
	sections  *service.SectionService
	users     *service.UserService
	about     *service.AboutService
	site      *service.SiteService
	dashboard *service.DashboardService
	tokens    *service.TokenService

	loginLimiter ratelimit.Limiter
	publicBucket *ratelimit.TokenBucket
	siteBaseURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	registerValidators()

	tokens := opts.Tokens
	if tokens == nil {
		tokens = service.NewTokenService("", 0)
	}
	limiter := opts.LoginLimiter
	if limiter == nil {
		limiter = ratelimit.New(nil, 0, 0)
	}

	return &API{
		db:           opts.DB,
		pages:        service.NewPageService(opts.DB),
		media:        service.NewMediaService(opts.DB, opts.Store, opts.MaxUpload),
		team:         service.NewTeamMemberService(opts.DB),
		offerings:    service.NewOfferingService(opts.DB),
		portfolio:    service.NewPortfolioService(opts.DB),
		settings:     service.NewSettingService(opts.DB),
		sections:     service.NewSectionService(opts.DB),
		users:        service.NewUserService(opts.DB),
		about:        service.NewAboutService(opts.DB),
		site:         service.NewSiteService(opts.DB),
		dashboard:    service.NewDashboardService(opts.DB),
		tokens:       tokens,
		loginLimiter: limiter,
		publicBucket: opts.PublicBucket,
		siteBaseURL:  opts.SiteBaseURL,
	}
}
