package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/handler"
)

const sessionName = "sitecms_session"

// Config 描述路由层需要的会话与静态文件配置
type Config struct {
	SessionSecret string
	SecureCookies bool
	UploadDir     string
	UploadURL     string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger())

	// 配置会话中间件
	secret := cfg.SessionSecret
	if secret == "" {
		secret = "sitecms-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 本地存储的上传文件
	if cfg.UploadDir != "" {
		uploadURL := "/" + strings.Trim(cfg.UploadURL, "/")
		if uploadURL == "/" {
			uploadURL = "/static/uploads"
		}
		r.Static(uploadURL, cfg.UploadDir)
	}

	r.GET("/ping", api.Ping)
	r.GET("/healthz", api.HealthCheck)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "route not found"})
	})

	auth := api.Authenticate()
	editors := handler.RequireRoles(db.RoleEditor)
	admins := handler.RequireRoles(db.RoleAdmin)

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/login", api.Login)
		authGroup.POST("/register", api.Register)
		authGroup.POST("/logout", api.Logout)
		authGroup.GET("/me", auth, api.Me)
		authGroup.PUT("/password", auth, api.ChangePassword)
	}

	public := apiGroup.Group("/public", api.PublicRateLimit())
	{
		public.GET("/site", api.GetPublicSite)
		public.GET("/pages/:slug", api.GetPublicPage)
	}

	pages := apiGroup.Group("/pages")
	{
		pages.GET("", api.OptionalAuth(), api.ListPages)
		pages.GET("/:id", api.OptionalAuth(), api.GetPage)
		pages.POST("", auth, editors, api.CreatePage)
		pages.PUT("/:id", auth, editors, api.UpdatePage)
		pages.DELETE("/:id", auth, admins, api.DeletePage)
	}

	media := apiGroup.Group("/media", auth, editors)
	{
		media.GET("", api.ListMedia)
		media.GET("/:id", api.GetMedia)
		media.POST("", api.CreateMedia)
		media.POST("/upload", api.UploadMedia)
		media.PUT("/:id", api.UpdateMedia)
		media.DELETE("/:id", admins, api.DeleteMedia)
	}

	team := apiGroup.Group("/team-members")
	{
		team.GET("", api.ListTeamMembers)
		team.GET("/:id", api.GetTeamMember)
		team.POST("", auth, editors, api.CreateTeamMember)
		team.PUT("/reorder", auth, editors, api.ReorderTeamMembers)
		team.PUT("/:id", auth, editors, api.UpdateTeamMember)
		team.DELETE("/:id", auth, admins, api.DeleteTeamMember)
	}

	services := apiGroup.Group("/services")
	{
		services.GET("", api.ListServices)
		services.GET("/icons", api.ListServiceIcons)
		services.GET("/:id", api.GetService)
		services.POST("", auth, editors, api.CreateService)
		services.PUT("/reorder", auth, editors, api.ReorderServices)
		services.PUT("/:id", auth, editors, api.UpdateService)
		services.DELETE("/:id", auth, admins, api.DeleteService)
	}

	portfolio := apiGroup.Group("/portfolio")
	{
		portfolio.GET("", api.ListPortfolio)
		portfolio.GET("/categories", api.ListPortfolioCategories)
		portfolio.GET("/:id", api.GetPortfolioItem)
		portfolio.POST("", auth, editors, api.CreatePortfolioItem)
		portfolio.PUT("/:id", auth, editors, api.UpdatePortfolioItem)
		portfolio.DELETE("/:id", auth, admins, api.DeletePortfolioItem)
	}

	settings := apiGroup.Group("/settings")
	{
		settings.GET("", api.ListSettings)
		settings.GET("/:key", api.GetSetting)
		settings.POST("", auth, admins, api.UpsertSetting)
		settings.PUT("", auth, admins, api.BulkUpsertSettings)
		settings.DELETE("/:key", auth, admins, api.DeleteSetting)
	}

	sections := apiGroup.Group("/section-visibility")
	{
		sections.GET("", api.ListSections)
		sections.GET("/:sectionId", api.GetSection)
		sections.POST("", auth, admins, api.CreateSection)
		sections.PUT("", auth, admins, api.BulkToggleSections)
		sections.PUT("/:sectionId", auth, admins, api.UpdateSection)
		sections.DELETE("/:sectionId", auth, admins, api.DeleteSection)
	}

	users := apiGroup.Group("/users", auth, admins)
	{
		users.GET("", api.ListUsers)
		users.GET("/:id", api.GetUser)
		users.POST("", api.CreateUser)
		users.PUT("/:id", api.UpdateUser)
		users.DELETE("/:id", api.DeleteUser)
	}

	about := apiGroup.Group("/about")
	{
		about.GET("", api.GetAbout)
		about.PUT("", auth, editors, api.UpdateAbout)
	}

	apiGroup.GET("/dashboard/stats", auth, editors, api.DashboardStats)

	return r
}
