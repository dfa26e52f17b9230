package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

type aboutRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=4000"`
	ImageURL    string   `json:"imageUrl" binding:"max=1024"`
	Features    []string `json:"features" binding:"max=20,dive,max=200"`
	ButtonText  string   `json:"buttonText" binding:"max=80"`
	ButtonURL   string   `json:"buttonUrl" binding:"max=1024"`
}

// GetAbout 返回关于区块，未保存过时返回默认内容
func (a *API) GetAbout(c *gin.Context) {
	about, err := a.about.Get()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, aboutPayload(about))
}

// UpdateAbout upserts the singleton about block.
func (a *API) UpdateAbout(c *gin.Context) {
	var req aboutRequest
	if !bindJSON(c, &req) {
		return
	}

	about, err := a.about.Save(service.AboutInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Features:    req.Features,
		ButtonText:  req.ButtonText,
		ButtonURL:   req.ButtonURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, aboutPayload(about))
}
