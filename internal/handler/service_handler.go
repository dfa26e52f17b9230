package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
	"github.com/sitecms/internal/view"
)

type serviceRequest struct {
	Title       string `json:"title" binding:"required,max=160"`
	Description string `json:"description" binding:"required,max=2000"`
	Icon        string `json:"icon" binding:"max=40"`
	SortOrder   *int   `json:"sortOrder" binding:"omitempty,gte=0"`
}

func (r serviceRequest) input() service.OfferingInput {
	return service.OfferingInput{
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		SortOrder:   r.SortOrder,
	}
}

// ListServices 按 sortOrder 返回服务项目
func (a *API) ListServices(c *gin.Context) {
	items, err := a.offerings.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mapItems(items, servicePayload))
}

// ListServiceIcons returns the selectable icon catalog.
func (a *API) ListServiceIcons(c *gin.Context) {
	respondOK(c, view.ServiceIconOptions())
}

// GetService returns one service.
func (a *API) GetService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := a.offerings.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, servicePayload(item))
}

// CreateService 新增服务项目，未知图标返回 400
func (a *API) CreateService(c *gin.Context) {
	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := a.offerings.Create(req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, servicePayload(item))
}

// UpdateService replaces a service's fields.
func (a *API) UpdateService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := a.offerings.Update(id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, servicePayload(item))
}

// DeleteService 删除服务项目
func (a *API) DeleteService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.offerings.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "deleted": true})
}

// ReorderServices assigns sortOrder following the given ids.
func (a *API) ReorderServices(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := a.offerings.Reorder(req.IDs); err != nil {
		respondServiceError(c, err)
		return
	}
	a.ListServices(c)
}
