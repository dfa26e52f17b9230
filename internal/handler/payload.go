package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/service"
	"github.com/sitecms/internal/view"
)

func userPayload(user *db.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
	}
}

func pagePayload(page *db.Page) gin.H {
	return gin.H{
		"id":          page.ID,
		"slug":        page.Slug,
		"title":       page.Title,
		"summary":     page.Summary,
		"content":     page.Content,
		"status":      page.Status,
		"publishedAt": page.PublishedAt,
		"createdAt":   page.CreatedAt,
		"updatedAt":   page.UpdatedAt,
	}
}

func mediaPayload(item *db.Media) gin.H {
	tags := []string(item.Tags)
	if tags == nil {
		tags = []string{}
	}
	return gin.H{
		"id":         item.ID,
		"name":       item.Name,
		"type":       item.Type,
		"mimeType":   item.MimeType,
		"url":        item.URL,
		"size":       item.Size,
		"width":      item.Width,
		"height":     item.Height,
		"alt":        item.Alt,
		"tags":       tags,
		"stored":     item.StorageKey != "",
		"uploaderId": item.UploaderID,
		"createdAt":  item.CreatedAt,
		"updatedAt":  item.UpdatedAt,
	}
}

func teamMemberPayload(member *db.TeamMember) gin.H {
	return gin.H{
		"id":        member.ID,
		"name":      member.Name,
		"role":      member.Role,
		"bio":       member.Bio,
		"imageUrl":  member.ImageURL,
		"sortOrder": member.SortOrder,
		"createdAt": member.CreatedAt,
		"updatedAt": member.UpdatedAt,
	}
}

func servicePayload(item *db.Service) gin.H {
	return gin.H{
		"id":          item.ID,
		"title":       item.Title,
		"description": item.Description,
		"icon":        item.Icon,
		"iconLabel":   view.ServiceIconLabel(item.Icon),
		"sortOrder":   item.SortOrder,
		"createdAt":   item.CreatedAt,
		"updatedAt":   item.UpdatedAt,
	}
}

func portfolioPayload(item *db.PortfolioItem) gin.H {
	return gin.H{
		"id":          item.ID,
		"title":       item.Title,
		"category":    item.Category,
		"description": item.Description,
		"imageUrl":    item.ImageURL,
		"projectUrl":  item.ProjectURL,
		"featured":    item.Featured,
		"sortOrder":   item.SortOrder,
		"createdAt":   item.CreatedAt,
		"updatedAt":   item.UpdatedAt,
	}
}

func settingPayload(setting *db.Setting) gin.H {
	return gin.H{
		"key":       setting.Key,
		"value":     setting.Value,
		"category":  setting.Category,
		"updatedAt": setting.UpdatedAt,
	}
}

func sectionPayload(section *db.SectionVisibility) gin.H {
	return gin.H{
		"id":          section.ID,
		"sectionId":   section.SectionID,
		"name":        section.Name,
		"isVisible":   section.IsVisible,
		"description": section.Description,
		"updatedAt":   section.UpdatedAt,
	}
}

func aboutPayload(about *db.About) gin.H {
	features := []string(about.Features)
	if features == nil {
		features = []string{}
	}
	return gin.H{
		"title":       about.Title,
		"description": about.Description,
		"imageUrl":    about.ImageURL,
		"features":    features,
		"buttonText":  about.ButtonText,
		"buttonUrl":   about.ButtonURL,
		"updatedAt":   about.UpdatedAt,
	}
}

// listPayload 统一分页列表的响应结构
func listPayload(items []gin.H, total int64, page, perPage, totalPages int) gin.H {
	return gin.H{
		"items":      items,
		"total":      total,
		"page":       page,
		"perPage":    perPage,
		"totalPages": totalPages,
	}
}

func mapItems[T any](items []T, build func(*T) gin.H) []gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, build(&items[i]))
	}
	return out
}

func settingsPayload(settings service.SiteSettings, base string) service.SiteSettings {
	settings.LogoURL = absoluteURL(base, settings.LogoURL)
	settings.FaviconURL = absoluteURL(base, settings.FaviconURL)
	return settings
}
