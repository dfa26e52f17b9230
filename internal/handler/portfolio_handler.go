package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

type portfolioRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Category    string `json:"category" binding:"required,max=80"`
	Description string `json:"description" binding:"max=4000"`
	ImageURL    string `json:"imageUrl" binding:"max=1024"`
	ProjectURL  string `json:"projectUrl" binding:"max=1024"`
	Featured    bool   `json:"featured"`
	SortOrder   *int   `json:"sortOrder" binding:"omitempty,gte=0"`
}

func (r portfolioRequest) input() service.PortfolioInput {
	return service.PortfolioInput{
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		ProjectURL:  r.ProjectURL,
		Featured:    r.Featured,
		SortOrder:   r.SortOrder,
	}
}

// ListPortfolio 支持按分类与是否精选过滤
func (a *API) ListPortfolio(c *gin.Context) {
	featured, err := parseOptionalBool(c.Query("featured"))
	if err != nil {
		respondValidation(c, map[string]string{"featured": "must be true or false"})
		return
	}

	items, err := a.portfolio.List(service.PortfolioFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Featured: featured,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mapItems(items, portfolioPayload))
}

// ListPortfolioCategories returns the distinct categories in use.
func (a *API) ListPortfolioCategories(c *gin.Context) {
	categories, err := a.portfolio.Categories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondOK(c, categories)
}

// GetPortfolioItem returns one item.
func (a *API) GetPortfolioItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := a.portfolio.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, portfolioPayload(item))
}

// CreatePortfolioItem 新增作品
func (a *API) CreatePortfolioItem(c *gin.Context) {
	var req portfolioRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := a.portfolio.Create(req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, portfolioPayload(item))
}

// UpdatePortfolioItem replaces an item's fields.
func (a *API) UpdatePortfolioItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req portfolioRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := a.portfolio.Update(id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, portfolioPayload(item))
}

// DeletePortfolioItem 删除作品
func (a *API) DeletePortfolioItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.portfolio.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "deleted": true})
}
