package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

type teamMemberRequest struct {
	Name      string `json:"name" binding:"required,max=120"`
	Role      string `json:"role" binding:"required,max=120"`
	Bio       string `json:"bio" binding:"max=2000"`
	ImageURL  string `json:"imageUrl" binding:"max=1024"`
	SortOrder *int   `json:"sortOrder" binding:"omitempty,gte=0"`
}

func (r teamMemberRequest) input() service.TeamMemberInput {
	return service.TeamMemberInput{
		Name:      r.Name,
		Role:      r.Role,
		Bio:       r.Bio,
		ImageURL:  r.ImageURL,
		SortOrder: r.SortOrder,
	}
}

type reorderRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// ListTeamMembers 按 sortOrder 返回全部成员
func (a *API) ListTeamMembers(c *gin.Context) {
	members, err := a.team.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mapItems(members, teamMemberPayload))
}

// GetTeamMember returns one member.
func (a *API) GetTeamMember(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	member, err := a.team.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, teamMemberPayload(member))
}

// CreateTeamMember appends a member unless sortOrder is given.
func (a *API) CreateTeamMember(c *gin.Context) {
	var req teamMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := a.team.Create(req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, teamMemberPayload(member))
}

// UpdateTeamMember 更新成员资料
func (a *API) UpdateTeamMember(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req teamMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := a.team.Update(id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, teamMemberPayload(member))
}

// DeleteTeamMember 删除成员
func (a *API) DeleteTeamMember(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.team.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "deleted": true})
}

// ReorderTeamMembers assigns sortOrder 0..n-1 following the given ids.
func (a *API) ReorderTeamMembers(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := a.team.Reorder(req.IDs); err != nil {
		respondServiceError(c, err)
		return
	}
	a.ListTeamMembers(c)
}
