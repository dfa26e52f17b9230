package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logger"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"max=120"`
	Password string `json:"password" binding:"required,min=8"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// Login 校验邮箱密码并签发令牌，失败次数受登录限流器约束
func (a *API) Login(c *gin.Context) {
	ctx := c.Request.Context()
	key := "login:" + c.ClientIP()

	// 先计数再校验密码，并发请求无法绕过上限
	decision, err := a.loginLimiter.Hit(ctx, key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !decision.Allowed {
		respondTooManyRequests(c, decision.RetryAfter)
		return
	}

	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.users.Authenticate(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.loginLimiter.Reset(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("reset login attempts failed", "error", err)
	}

	a.startSession(c, user, http.StatusOK)
}

// Register creates a user-role account and signs it in.
func (a *API) Register(c *gin.Context) {
	ctx := c.Request.Context()
	key := "register:" + c.ClientIP()

	decision, err := a.loginLimiter.Hit(ctx, key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !decision.Allowed {
		respondTooManyRequests(c, decision.RetryAfter)
		return
	}

	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.users.Register(req.Email, req.Name, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.FromContext(ctx).Info("user registered", "user_id", user.ID)
	a.startSession(c, user, http.StatusCreated)
}

func (a *API) startSession(c *gin.Context, user *db.User, status int) {
	token, expiresAt, err := a.tokens.Issue(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if session := sessionFrom(c); session != nil {
		session.Set(sessionTokenKey, token)
		session.Set(sessionUserIDKey, user.ID)
		if err := session.Save(); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(status, gin.H{"success": true, "data": gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"user":      userPayload(user),
	}})
}

// Logout 清除会话；Bearer 令牌在过期前仍然有效
func (a *API) Logout(c *gin.Context) {
	if session := sessionFrom(c); session != nil {
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := session.Save(); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	respondOK(c, gin.H{"loggedOut": true})
}

// Me returns the authenticated user.
func (a *API) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, errMissingCredentials.Error())
		return
	}
	respondOK(c, userPayload(user))
}

// ChangePassword updates the caller's own password.
func (a *API) ChangePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, errMissingCredentials.Error())
		return
	}

	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := a.users.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"updated": true})
}
