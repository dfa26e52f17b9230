package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/service"
)

// multipart 头部与其他表单字段的额外余量
const multipartOverhead = 1 << 20

type mediaRequest struct {
	Name     string   `json:"name" binding:"required,max=255"`
	URL      string   `json:"url" binding:"required,max=1024"`
	MimeType string   `json:"mimeType" binding:"max=120"`
	Type     string   `json:"type" binding:"omitempty,media_type"`
	Size     int64    `json:"size" binding:"gte=0"`
	Width    int      `json:"width" binding:"gte=0"`
	Height   int      `json:"height" binding:"gte=0"`
	Alt      string   `json:"alt" binding:"max=255"`
	Tags     []string `json:"tags"`
}

type mediaUpdateRequest struct {
	Name string   `json:"name" binding:"required,max=255"`
	Alt  string   `json:"alt" binding:"max=255"`
	Tags []string `json:"tags"`
}

// ListMedia 分页查询媒体库
func (a *API) ListMedia(c *gin.Context) {
	mediaType := strings.ToLower(strings.TrimSpace(c.Query("type")))

	result, err := a.media.List(service.MediaFilter{
		Type:    mediaType,
		Search:  strings.TrimSpace(c.Query("search")),
		Tag:     strings.TrimSpace(c.Query("tag")),
		Page:    parsePositiveInt(c.Query("page"), 1),
		PerPage: parsePositiveInt(c.Query("perPage"), 0),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, listPayload(mapItems(result.Items, mediaPayload), result.Total, result.Page, result.PerPage, result.TotalPages))
}

// GetMedia returns a single media item.
func (a *API) GetMedia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := a.media.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mediaPayload(item))
}

// CreateMedia registers an externally hosted asset.
func (a *API) CreateMedia(c *gin.Context) {
	var req mediaRequest
	if !bindJSON(c, &req) {
		return
	}

	input := service.MediaInput{
		Name:     req.Name,
		Type:     req.Type,
		MimeType: req.MimeType,
		URL:      req.URL,
		Size:     req.Size,
		Width:    req.Width,
		Height:   req.Height,
		Alt:      req.Alt,
		Tags:     req.Tags,
	}
	if user := currentUser(c); user != nil {
		input.UploaderID = &user.ID
	}

	item, err := a.media.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, mediaPayload(item))
}

// UploadMedia 处理 multipart 上传，字段名为 file，可附带 alt 与逗号分隔的 tags
func (a *API) UploadMedia(c *gin.Context) {
	if limit := a.media.MaxBytes(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondServiceError(c, service.ErrMediaTooLarge)
			return
		}
		respondValidation(c, map[string]string{"file": "is required"})
		return
	}
	if limit := a.media.MaxBytes(); limit > 0 && fileHeader.Size > limit {
		respondServiceError(c, service.ErrMediaTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer file.Close()

	upload := service.MediaUpload{
		Filename: fileHeader.Filename,
		Reader:   file,
		Alt:      c.PostForm("alt"),
		Tags:     splitCommaList(c.PostForm("tags")),
	}
	if user := currentUser(c); user != nil {
		upload.UploaderID = &user.ID
	}

	item, err := a.media.Upload(c.Request.Context(), upload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, mediaPayload(item))
}

// UpdateMedia edits the descriptive fields of a media item.
func (a *API) UpdateMedia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req mediaUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := a.media.Update(id, service.MediaUpdate{Name: req.Name, Alt: req.Alt, Tags: req.Tags})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mediaPayload(item))
}

// DeleteMedia 删除媒体记录，本地或 S3 中的文件一并删除
func (a *API) DeleteMedia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.media.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "deleted": true})
}
