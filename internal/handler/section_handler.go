package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

type sectionRequest struct {
	SectionID   string `json:"sectionId" binding:"required,max=60,slug"`
	Name        string `json:"name" binding:"required,max=120"`
	IsVisible   *bool  `json:"isVisible"`
	Description string `json:"description" binding:"max=255"`
}

type sectionPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	IsVisible   *bool   `json:"isVisible"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type sectionToggleRequest struct {
	SectionID string `json:"sectionId" binding:"required"`
	IsVisible *bool  `json:"isVisible" binding:"required"`
}

type bulkSectionsRequest struct {
	Sections []sectionToggleRequest `json:"sections" binding:"required,min=1,dive"`
}

// ListSections 返回全部区块可见性配置
func (a *API) ListSections(c *gin.Context) {
	items, err := a.sections.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mapItems(items, sectionPayload))
}

// GetSection returns one section by its identifier.
func (a *API) GetSection(c *gin.Context) {
	section, err := a.sections.Get(c.Param("sectionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, sectionPayload(section))
}

// CreateSection registers a new section; duplicates answer 409.
func (a *API) CreateSection(c *gin.Context) {
	var req sectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := a.sections.Create(service.SectionInput{
		SectionID:   req.SectionID,
		Name:        req.Name,
		IsVisible:   req.IsVisible,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, sectionPayload(section))
}

// UpdateSection 部分更新，未提供的字段保持不变
func (a *API) UpdateSection(c *gin.Context) {
	var req sectionPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := a.sections.Update(c.Param("sectionId"), service.SectionPatch{
		Name:        req.Name,
		IsVisible:   req.IsVisible,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, sectionPayload(section))
}

// BulkToggleSections 在一个事务内切换多个区块，任一未知区块则整体回滚
func (a *API) BulkToggleSections(c *gin.Context) {
	var req bulkSectionsRequest
	if !bindJSON(c, &req) {
		return
	}

	toggles := make([]service.SectionToggle, 0, len(req.Sections))
	for _, item := range req.Sections {
		toggles = append(toggles, service.SectionToggle{SectionID: item.SectionID, IsVisible: *item.IsVisible})
	}

	items, err := a.sections.BulkToggle(toggles)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mapItems(items, sectionPayload))
}

// DeleteSection removes a section; the public site then treats it as visible.
func (a *API) DeleteSection(c *gin.Context) {
	sectionID := c.Param("sectionId")
	if err := a.sections.Delete(sectionID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"sectionId": sectionID, "deleted": true})
}
