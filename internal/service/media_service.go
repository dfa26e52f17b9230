package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logger"
	"github.com/sitecms/internal/storage"
	_ "golang.org/x/image/webp"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMediaNotFound = errors.New("media not found")
	ErrMediaTooLarge = errors.New("file exceeds the upload limit")
	ErrMediaEmpty    = errors.New("uploaded file is empty")
)

// MediaService 管理媒体库记录以及底层对象存储
type MediaService struct {
	db       *gorm.DB
	store    storage.Store
	maxBytes int64
	now      func() time.Time
}

// MediaFilter describes filters for listing media.
type MediaFilter struct {
	Type    string
	Search  string
	Tag     string
	Page    int
	PerPage int
}

// MediaListResult aggregates paginated media results.
type MediaListResult struct {
	Items      []db.Media
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// MediaInput registers an externally hosted asset.
type MediaInput struct {
	Name       string
	Type       string
	MimeType   string
	URL        string
	Size       int64
	Width      int
	Height     int
	Alt        string
	Tags       []string
	UploaderID *uint
}

// MediaUpload is a file received from a client.
type MediaUpload struct {
	Filename   string
	Reader     io.Reader
	Alt        string
	Tags       []string
	UploaderID *uint
}

// MediaUpdate holds the editable metadata of a media record.
type MediaUpdate struct {
	Name string
	Alt  string
	Tags []string
}

// NewMediaService creates a MediaService; maxBytes <= 0 disables the size cap.
func NewMediaService(gdb *gorm.DB, store storage.Store, maxBytes int64) *MediaService {
	return &MediaService{db: gdb, store: store, maxBytes: maxBytes, now: time.Now}
}

// MaxBytes returns the configured upload cap.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// List returns media matching the filter, newest first.
func (s *MediaService) List(filter MediaFilter) (MediaListResult, error) {
	result := MediaListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, defaultPerPage),
	}

	query := s.db.Model(&db.Media{})
	if mediaType := strings.ToLower(strings.TrimSpace(filter.Type)); mediaType != "" {
		query = query.Where("type = ?", mediaType)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(alt) LIKE ?", like, like)
	}
	if tag := normalizeTag(filter.Tag); tag != "" {
		// tags 以 JSON 数组文本存储，按带引号的元素匹配
		query = query.Where("tags LIKE ?", `%"`+tag+`"%`)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count media: %w", err)
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("created_at desc").Order("id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, fmt.Errorf("list media: %w", err)
	}
	return result, nil
}

// Get fetches a media record by id.
func (s *MediaService) Get(id uint) (*db.Media, error) {
	var item db.Media
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("get media: %w", err)
	}
	return &item, nil
}

// Create registers an asset hosted elsewhere.
func (s *MediaService) Create(input MediaInput) (*db.Media, error) {
	name := strings.TrimSpace(input.Name)
	link := strings.TrimSpace(input.URL)
	mimeType := strings.ToLower(strings.TrimSpace(input.MimeType))
	mediaType := strings.ToLower(strings.TrimSpace(input.Type))
	if mediaType == "" {
		mediaType = MediaTypeFromMIME(mimeType)
	}

	errs := fieldErrors{}
	errs.required("name", name)
	errs.maxLen("name", name, 255)
	if link == "" {
		errs.add("url", "is required")
	} else if !isHTTPURL(link) && !strings.HasPrefix(link, "/") {
		errs.add("url", "must be an absolute http(s) URL or a site path")
	}
	if !isMediaType(mediaType) {
		errs.add("type", "must be one of image, video, audio, document, other")
	}
	if input.Size < 0 {
		errs.add("size", "must not be negative")
	}
	if input.Width < 0 || input.Height < 0 {
		errs.add("width", "dimensions must not be negative")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	item := db.Media{
		Name:       name,
		Type:       mediaType,
		MimeType:   mimeType,
		URL:        link,
		Size:       input.Size,
		Width:      input.Width,
		Height:     input.Height,
		Alt:        strings.TrimSpace(input.Alt),
		Tags:       normalizeTags(input.Tags),
		UploaderID: input.UploaderID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return &item, nil
}

// Upload sniffs, measures and stores an uploaded file, then records it.
func (s *MediaService) Upload(ctx context.Context, upload MediaUpload) (*db.Media, error) {
	if s.store == nil {
		return nil, errors.New("media storage not configured")
	}
	if upload.Reader == nil {
		return nil, ErrMediaEmpty
	}

	reader := upload.Reader
	if s.maxBytes > 0 {
		reader = io.LimitReader(upload.Reader, s.maxBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(content) == 0 {
		return nil, ErrMediaEmpty
	}
	if s.maxBytes > 0 && int64(len(content)) > s.maxBytes {
		return nil, ErrMediaTooLarge
	}

	detected := mimetype.Detect(content)
	mimeType := strings.SplitN(detected.String(), ";", 2)[0]
	mediaType := MediaTypeFromMIME(mimeType)

	width, height := 0, 0
	if mediaType == db.MediaTypeImage {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(content)); err == nil {
			width, height = cfg.Width, cfg.Height
		}
	}

	ext := detected.Extension()
	if ext == "" {
		ext = filepath.Ext(upload.Filename)
	}
	key := storage.NewKey(s.now(), ext)

	url, err := s.store.Put(ctx, key, bytes.NewReader(content), int64(len(content)), mimeType)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	name := strings.TrimSpace(filepath.Base(upload.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = filepath.Base(key)
	}

	item := db.Media{
		Name:       name,
		Type:       mediaType,
		MimeType:   mimeType,
		URL:        url,
		Size:       int64(len(content)),
		Width:      width,
		Height:     height,
		Alt:        strings.TrimSpace(upload.Alt),
		Tags:       normalizeTags(upload.Tags),
		StorageKey: key,
		UploaderID: upload.UploaderID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		// 记录写入失败时回收已上传的对象
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.FromContext(ctx).Warn("cleanup orphaned upload failed", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("create media: %w", err)
	}
	return &item, nil
}

// Update modifies the name, alt text and tags.
func (s *MediaService) Update(id uint, input MediaUpdate) (*db.Media, error) {
	name := strings.TrimSpace(input.Name)
	errs := fieldErrors{}
	errs.required("name", name)
	errs.maxLen("name", name, 255)
	if err := errs.err(); err != nil {
		return nil, err
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Name = name
	item.Alt = strings.TrimSpace(input.Alt)
	item.Tags = normalizeTags(input.Tags)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}
	return item, nil
}

// Delete removes the record and, for stored files, the underlying object.
func (s *MediaService) Delete(ctx context.Context, id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	if item.StorageKey != "" && s.store != nil {
		if err := s.store.Delete(ctx, item.StorageKey); err != nil {
			logger.FromContext(ctx).Warn("delete stored object failed", "media_id", item.ID, "key", item.StorageKey, "error", err)
		}
	}
	return nil
}

// CountByType returns media counts keyed by type.
func (s *MediaService) CountByType() (map[string]int64, error) {
	type row struct {
		Type  string
		Total int64
	}
	var rows []row
	if err := s.db.Model(&db.Media{}).
		Select("type, COUNT(*) AS total").
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count media by type: %w", err)
	}

	counts := make(map[string]int64, len(db.MediaTypes))
	for _, mediaType := range db.MediaTypes {
		counts[mediaType] = 0
	}
	for _, r := range rows {
		counts[r.Type] = r.Total
	}
	return counts, nil
}

// MediaTypeFromMIME maps a MIME type onto a media library category.
func MediaTypeFromMIME(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return db.MediaTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return db.MediaTypeVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return db.MediaTypeAudio
	case mimeType == "application/pdf",
		strings.HasPrefix(mimeType, "text/"),
		strings.Contains(mimeType, "officedocument"),
		mimeType == "application/msword",
		mimeType == "application/vnd.ms-excel",
		mimeType == "application/vnd.ms-powerpoint",
		mimeType == "application/rtf":
		return db.MediaTypeDocument
	default:
		return db.MediaTypeOther
	}
}

func isMediaType(value string) bool {
	for _, candidate := range db.MediaTypes {
		if value == candidate {
			return true
		}
	}
	return false
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.NewReplacer(`"`, "", `\`, "", "%", "", "_", "-").Replace(tag)
}

func normalizeTags(tags []string) datatypes.JSONSlice[string] {
	seen := make(map[string]struct{}, len(tags))
	out := make(datatypes.JSONSlice[string], 0, len(tags))
	for _, tag := range tags {
		normalized := normalizeTag(tag)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
