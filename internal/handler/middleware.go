package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logger"
	"github.com/sitecms/internal/service"
)

const (
	requestIDHeader   = "X-Request-ID"
	currentUserKey    = "currentUser"
	sessionTokenKey   = "token"
	sessionUserIDKey  = "user_id"
	maxRequestIDBytes = 64
)

var errMissingCredentials = errors.New("authentication required")

// RequestID 为每个请求分配 ID，写入响应头并挂到请求上下文的日志器上
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDBytes {
			requestID = uuid.NewString()
		}

		c.Header(requestIDHeader, requestID)
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger logs one line per request, at a level chosen by status class.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		logger.FromContext(c.Request.Context()).Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// Authenticate 要求携带有效凭证：优先读取 Bearer 头，其次读取会话中的令牌
func (a *API) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolveUser(c)
		if err != nil {
			if errors.Is(err, errMissingCredentials) || errors.Is(err, service.ErrInvalidToken) {
				respondError(c, http.StatusUnauthorized, err.Error())
				return
			}
			respondServiceError(c, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the caller when credentials are valid and never rejects.
func (a *API) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := a.resolveUser(c); err == nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RequireRoles 在 Authenticate 之后使用；admin 可以通过所有角色限制
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondError(c, http.StatusUnauthorized, errMissingCredentials.Error())
			return
		}
		if user.Role == db.RoleAdmin || slices.Contains(roles, user.Role) {
			c.Next()
			return
		}
		respondError(c, http.StatusForbidden, "insufficient permissions")
	}
}

// PublicRateLimit throttles anonymous reads per client IP.
func (a *API) PublicRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.publicBucket == nil {
			c.Next()
			return
		}
		if !a.publicBucket.Allow(c.ClientIP()) {
			respondTooManyRequests(c, a.publicBucket.RetryAfter())
			return
		}
		c.Next()
	}
}

func (a *API) resolveUser(c *gin.Context) (*db.User, error) {
	raw := bearerToken(c.GetHeader("Authorization"))
	if raw == "" {
		if session := sessionFrom(c); session != nil {
			if value, ok := session.Get(sessionTokenKey).(string); ok {
				raw = value
			}
		}
	}
	if raw == "" {
		return nil, errMissingCredentials
	}

	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}

	// 令牌签发后用户可能已被删除或调整角色，以数据库为准
	user, err := a.users.Get(claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, service.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// sessionFrom returns nil when the sessions middleware is not installed.
func sessionFrom(c *gin.Context) sessions.Session {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil
	}
	return sessions.Default(c)
}

func currentUser(c *gin.Context) *db.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*db.User)
	return user
}

// canEdit 判断当前调用者能否看到草稿等未公开内容
func canEdit(c *gin.Context) bool {
	user := currentUser(c)
	return user != nil && (user.Role == db.RoleAdmin || user.Role == db.RoleEditor)
}
