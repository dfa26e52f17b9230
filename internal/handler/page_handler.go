package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/service"
)

type pageRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Slug    string `json:"slug" binding:"required,max=160,slug"`
	Content string `json:"content"`
	Status  string `json:"status" binding:"omitempty,page_status"`
}

func (r pageRequest) input() service.PageInput {
	return service.PageInput{Title: r.Title, Slug: r.Slug, Content: r.Content, Status: r.Status}
}

// ListPages 编辑者可以按状态筛选，匿名访问只返回已发布页面
func (a *API) ListPages(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && service.NormalizePageStatus(status) == "" {
		respondValidation(c, map[string]string{"status": "must be Published or Draft"})
		return
	}
	if !canEdit(c) {
		status = db.PageStatusPublished
	}

	result, err := a.pages.List(service.PageFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Status:  status,
		Page:    parsePositiveInt(c.Query("page"), 1),
		PerPage: parsePositiveInt(c.Query("perPage"), 0),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, listPayload(mapItems(result.Items, pagePayload), result.Total, result.Page, result.PerPage, result.TotalPages))
}

// GetPage returns a page by id; drafts are hidden from non-editors.
func (a *API) GetPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	page, err := a.pages.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !page.IsPublished() && !canEdit(c) {
		respondServiceError(c, service.ErrPageNotFound)
		return
	}

	respondOK(c, pagePayload(page))
}

// CreatePage 创建新页面
func (a *API) CreatePage(c *gin.Context) {
	var req pageRequest
	if !bindJSON(c, &req) {
		return
	}

	page, err := a.pages.Create(req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, pagePayload(page))
}

// UpdatePage 全量更新页面
func (a *API) UpdatePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req pageRequest
	if !bindJSON(c, &req) {
		return
	}

	page, err := a.pages.Update(id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, pagePayload(page))
}

// DeletePage 删除页面
func (a *API) DeletePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.pages.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "deleted": true})
}

// GetPublicPage renders a published page to sanitized HTML.
func (a *API) GetPublicPage(c *gin.Context) {
	page, err := a.pages.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	html, err := service.RenderMarkdown(page.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := pagePayload(page)
	payload["html"] = html
	respondOK(c, payload)
}
