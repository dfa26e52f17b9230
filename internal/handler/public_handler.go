package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/view"
)

// GetPublicSite 汇总首页所需数据，隐藏区块的内容不出现在响应中
func (a *API) GetPublicSite(c *gin.Context) {
	site, err := a.site.Build()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := gin.H{
		"settings": settingsPayload(site.Settings, a.siteBaseURL),
		"sections": site.Sections,
	}
	if site.Services != nil {
		payload["services"] = mapItems(site.Services, a.publicServicePayload)
	}
	if site.Team != nil {
		payload["team"] = mapItems(site.Team, a.publicTeamMemberPayload)
	}
	if site.Portfolio != nil {
		payload["portfolio"] = mapItems(site.Portfolio, a.publicPortfolioPayload)
	}
	if site.About != nil {
		about := aboutPayload(site.About)
		about["imageUrl"] = absoluteURL(a.siteBaseURL, site.About.ImageURL)
		delete(about, "updatedAt")
		payload["about"] = about
	}

	respondOK(c, payload)
}

func (a *API) publicServicePayload(item *db.Service) gin.H {
	return gin.H{
		"id":          item.ID,
		"title":       item.Title,
		"description": item.Description,
		"icon":        item.Icon,
		"iconLabel":   view.ServiceIconLabel(item.Icon),
		"iconSvg":     view.ServiceIconSVG(item.Icon),
	}
}

func (a *API) publicTeamMemberPayload(member *db.TeamMember) gin.H {
	return gin.H{
		"id":       member.ID,
		"name":     member.Name,
		"role":     member.Role,
		"bio":      member.Bio,
		"imageUrl": absoluteURL(a.siteBaseURL, member.ImageURL),
	}
}

func (a *API) publicPortfolioPayload(item *db.PortfolioItem) gin.H {
	return gin.H{
		"id":          item.ID,
		"title":       item.Title,
		"category":    item.Category,
		"description": item.Description,
		"imageUrl":    absoluteURL(a.siteBaseURL, item.ImageURL),
		"projectUrl":  item.ProjectURL,
		"featured":    item.Featured,
	}
}
