package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sitecms/internal/logger"
	"github.com/sitecms/internal/service"
)

const internalErrorMessage = "internal server error"

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

func respondValidation(c *gin.Context, details map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "validation failed",
		"details": details,
	})
}

func respondTooManyRequests(c *gin.Context, retryAfter time.Duration) {
	seconds := int(retryAfter.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	respondError(c, http.StatusTooManyRequests, "too many requests, try again later")
}

// respondServiceError 将服务层哨兵错误映射为 HTTP 状态码，未知错误记录日志后返回 500
func respondServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondValidation(c, validationErr.Fields)
	case errors.Is(err, service.ErrMediaEmpty):
		respondValidation(c, map[string]string{"file": err.Error()})
	case errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrMediaNotFound),
		errors.Is(err, service.ErrTeamMemberNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrPortfolioNotFound),
		errors.Is(err, service.ErrSettingNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPageSlugTaken),
		errors.Is(err, service.ErrUserEmailTaken),
		errors.Is(err, service.ErrSectionExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrCannotDeleteSelf):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrMediaTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		respondError(c, http.StatusInternalServerError, internalErrorMessage)
	}
}

// bindJSON 解析并校验请求体，失败时直接写出 400
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondValidation(c, validationDetails(verrs))
			return false
		}
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// idParam reads :id and answers 400 when it is not a positive integer.
func idParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondValidation(c, map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// parseOptionalBool returns nil for an empty value so filters can tell "unset" from false.
func parseOptionalBool(raw string) (*bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// absoluteURL 将站内相对路径补全为带域名的地址，外链保持不变
func absoluteURL(base, raw string) string {
	if base == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return raw
	}
	return base + raw
}
