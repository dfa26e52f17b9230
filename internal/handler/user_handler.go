package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

type userRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"max=120"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,user_role"`
}

type userUpdateRequest struct {
	Name     string `json:"name" binding:"max=120"`
	Role     string `json:"role" binding:"omitempty,user_role"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

// ListUsers 支持按角色与关键字过滤
func (a *API) ListUsers(c *gin.Context) {
	users, err := a.users.List(service.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mapItems(users, userPayload))
}

// GetUser returns one account.
func (a *API) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := a.users.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, userPayload(user))
}

// CreateUser 由管理员创建账号，重复邮箱返回 409
func (a *API) CreateUser(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.users.Create(service.UserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, userPayload(user))
}

// UpdateUser changes name, role and optionally the password.
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req userUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.users.Update(id, service.UserUpdate{Name: req.Name, Role: req.Role, Password: req.Password})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, userPayload(user))
}

// DeleteUser 删除账号，不允许删除自己
func (a *API) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var actorID uint
	if actor := currentUser(c); actor != nil {
		actorID = actor.ID
	}

	if err := a.users.Delete(actorID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "deleted": true})
}
