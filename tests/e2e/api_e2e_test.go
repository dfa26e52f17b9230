package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/handler"
	"github.com/sitecms/internal/ratelimit"
	"github.com/sitecms/internal/router"
	"github.com/sitecms/internal/service"
	"github.com/sitecms/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	baseURL       = "http://example.test"
	adminEmail    = "admin@example.com"
	adminPassword = "e2e-secret-pass"
	loginAttempts = 3
)

type e2eSuite struct {
	handler http.Handler
	public  httpClient
	admin   httpClient
	db      *gorm.DB
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_AllInterfaces(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("public site", suite.testPublicSite)
	t.Run("page lifecycle", suite.testPageLifecycle)
	t.Run("access control", suite.testAccessControl)
	t.Run("section toggles", suite.testSectionToggles)
	t.Run("logout", suite.testLogout)
	t.Run("login rate limit", suite.testLoginRateLimit)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:e2e?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	_, err = db.EnsureUser(gdb, adminEmail, adminPassword, db.RoleAdmin)
	require.NoError(t, err)
	_, err = db.EnsureSections(gdb)
	require.NoError(t, err)

	_, err = service.NewOfferingService(gdb).Create(service.OfferingInput{Title: "Web Development", Description: "Sites", Icon: "code"})
	require.NoError(t, err)
	_, err = service.NewTeamMemberService(gdb).Create(service.TeamMemberInput{Name: "Ada Park", Role: "Founder", ImageURL: "/static/uploads/ada.png"})
	require.NoError(t, err)
	_, err = service.NewSettingService(gdb).Upsert(service.SettingInput{Key: db.SettingKeySiteName, Value: "E2E Studio"})
	require.NoError(t, err)

	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(uploadDir, "/static/uploads")
	require.NoError(t, err)

	limiter := ratelimit.NewMemoryLimiter(loginAttempts, time.Minute)
	t.Cleanup(limiter.Close)
	bucket := ratelimit.NewTokenBucket(1000, 1000)
	t.Cleanup(bucket.Close)

	api := handler.NewAPI(handler.Options{
		DB:           gdb,
		Store:        store,
		Tokens:       service.NewTokenService("e2e-jwt-secret", time.Hour),
		LoginLimiter: limiter,
		PublicBucket: bucket,
		MaxUpload:    1 << 20,
		SiteBaseURL:  baseURL,
	})
	engine := router.SetupRouter(api, router.Config{
		SessionSecret: "e2e-session-secret",
		UploadDir:     uploadDir,
		UploadURL:     "/static/uploads",
	})

	return &e2eSuite{
		handler: engine,
		public:  newLocalClient(engine, false),
		admin:   newLocalClient(engine, true),
		db:      gdb,
	}
}

// login 通过会话 cookie 登录，后续 admin 请求不带 Bearer 头
func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	env := s.call(t, s.admin, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    adminEmail,
		"password": adminPassword,
	}, http.StatusOK)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, adminEmail, data.User.Email)
	assert.Equal(t, db.RoleAdmin, data.User.Role)
}

func (s *e2eSuite) testPublicSite(t *testing.T) {
	env := s.call(t, s.public, http.MethodGet, "/api/public/site", nil, http.StatusOK)

	var site struct {
		Settings struct {
			SiteName string `json:"siteName"`
		} `json:"settings"`
		Sections map[string]bool `json:"sections"`
		Services []struct {
			Title   string `json:"title"`
			IconSVG string `json:"iconSvg"`
		} `json:"services"`
		Team []struct {
			ImageURL string `json:"imageUrl"`
		} `json:"team"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &site))

	assert.Equal(t, "E2E Studio", site.Settings.SiteName)
	assert.True(t, site.Sections[db.SectionServices])
	assert.False(t, site.Sections[db.SectionTestimonials])
	require.Len(t, site.Services, 1)
	assert.Contains(t, site.Services[0].IconSVG, "<svg")
	require.Len(t, site.Team, 1)
	assert.Equal(t, baseURL+"/static/uploads/ada.png", site.Team[0].ImageURL)
}

func (s *e2eSuite) testPageLifecycle(t *testing.T) {
	env := s.call(t, s.admin, http.MethodPost, "/api/pages", map[string]any{
		"title":   "Privacy",
		"slug":    "privacy",
		"content": "# Privacy\n\nWe keep <script>alert(1)</script> nothing.",
		"status":  db.PageStatusDraft,
	}, http.StatusCreated)

	var page struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.NotZero(t, page.ID)
	assert.Equal(t, db.PageStatusDraft, page.Status)

	// 草稿对公众不可见
	s.call(t, s.public, http.MethodGet, "/api/public/pages/privacy", nil, http.StatusNotFound)

	dup := s.call(t, s.admin, http.MethodPost, "/api/pages", map[string]any{
		"title": "Privacy again",
		"slug":  "privacy",
	}, http.StatusConflict)
	assert.False(t, dup.Success)

	invalid := s.call(t, s.admin, http.MethodPost, "/api/pages", map[string]any{
		"title": "",
		"slug":  "Not A Slug",
	}, http.StatusBadRequest)
	assert.Contains(t, invalid.Details, "title")
	assert.Contains(t, invalid.Details, "slug")

	s.call(t, s.admin, http.MethodPut, fmt.Sprintf("/api/pages/%d", page.ID), map[string]any{
		"title":   "Privacy Policy",
		"slug":    "privacy",
		"content": "# Privacy\n\nWe keep <script>alert(1)</script> nothing.",
		"status":  db.PageStatusPublished,
	}, http.StatusOK)

	public := s.call(t, s.public, http.MethodGet, "/api/public/pages/privacy", nil, http.StatusOK)
	var rendered struct {
		Title string `json:"title"`
		HTML  string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(public.Data, &rendered))
	assert.Equal(t, "Privacy Policy", rendered.Title)
	assert.Contains(t, rendered.HTML, "<h1")
	assert.NotContains(t, rendered.HTML, "<script")

	list := s.call(t, s.public, http.MethodGet, "/api/pages", nil, http.StatusOK)
	var listed struct {
		Items []struct {
			Slug string `json:"slug"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(list.Data, &listed))
	assert.EqualValues(t, 1, listed.Total)

	s.call(t, s.admin, http.MethodDelete, fmt.Sprintf("/api/pages/%d", page.ID), nil, http.StatusOK)
	s.call(t, s.admin, http.MethodGet, fmt.Sprintf("/api/pages/%d", page.ID), nil, http.StatusNotFound)
}

func (s *e2eSuite) testAccessControl(t *testing.T) {
	anon := s.call(t, s.public, http.MethodPost, "/api/services", map[string]any{"title": "Nope"}, http.StatusUnauthorized)
	assert.False(t, anon.Success)
	assert.NotEmpty(t, anon.Error)

	s.call(t, s.admin, http.MethodPost, "/api/users", map[string]any{
		"email":    "editor@example.com",
		"name":     "Editor",
		"password": "editor-pass-1",
		"role":     db.RoleEditor,
	}, http.StatusCreated)

	editor := newLocalClient(s.handler, true)
	s.call(t, editor, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "editor@example.com",
		"password": "editor-pass-1",
	}, http.StatusOK)

	s.call(t, editor, http.MethodPost, "/api/services", map[string]any{"title": "Design", "description": "Interfaces", "icon": "design"}, http.StatusCreated)
	s.call(t, editor, http.MethodGet, "/api/users", nil, http.StatusForbidden)
	s.call(t, editor, http.MethodPut, "/api/settings", map[string]any{
		"settings": []map[string]any{{"key": "site_name", "value": "Hijacked"}},
	}, http.StatusForbidden)

	stats := s.call(t, editor, http.MethodGet, "/api/dashboard/stats", nil, http.StatusOK)
	assert.True(t, stats.Success)
}

func (s *e2eSuite) testSectionToggles(t *testing.T) {
	s.call(t, s.admin, http.MethodPut, "/api/section-visibility", map[string]any{
		"sections": []map[string]any{
			{"sectionId": db.SectionServices, "isVisible": false},
			{"sectionId": db.SectionTestimonials, "isVisible": true},
		},
	}, http.StatusOK)

	env := s.call(t, s.public, http.MethodGet, "/api/public/site", nil, http.StatusOK)
	var site map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &site))
	_, hasServices := site["services"]
	assert.False(t, hasServices, "hidden section should not be returned")
	_, hasTeam := site["team"]
	assert.True(t, hasTeam)

	// 未知 id 整体回滚
	s.call(t, s.admin, http.MethodPut, "/api/section-visibility", map[string]any{
		"sections": []map[string]any{
			{"sectionId": db.SectionServices, "isVisible": true},
			{"sectionId": "missing", "isVisible": true},
		},
	}, http.StatusNotFound)

	var section db.SectionVisibility
	require.NoError(t, s.db.Where("section_id = ?", db.SectionServices).First(&section).Error)
	assert.False(t, section.IsVisible)
}

func (s *e2eSuite) testLogout(t *testing.T) {
	client := newLocalClient(s.handler, true)
	s.call(t, client, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    adminEmail,
		"password": adminPassword,
	}, http.StatusOK)
	s.call(t, client, http.MethodGet, "/api/auth/me", nil, http.StatusOK)
	s.call(t, client, http.MethodPost, "/api/auth/logout", nil, http.StatusOK)
	s.call(t, client, http.MethodGet, "/api/auth/me", nil, http.StatusUnauthorized)
}

func (s *e2eSuite) testLoginRateLimit(t *testing.T) {
	client := newLocalClient(s.handler, false)
	for i := 0; i < loginAttempts; i++ {
		s.call(t, client, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    adminEmail,
			"password": "wrong-password",
		}, http.StatusUnauthorized)
	}

	resp := s.request(t, client, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    adminEmail,
		"password": adminPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func (s *e2eSuite) request(t *testing.T, client httpClient, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "192.0.2.10:4321"

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func (s *e2eSuite) call(t *testing.T, client httpClient, method, path string, body any, status int) envelope {
	t.Helper()

	resp := s.request(t, client, method, path, body)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equalf(t, status, resp.StatusCode, "%s %s: %s", method, path, raw)

	var env envelope
	require.NoErrorf(t, json.Unmarshal(raw, &env), "%s %s: invalid envelope %s", method, path, raw)
	assert.Equal(t, status < 400, env.Success)
	return env
}
