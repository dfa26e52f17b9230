package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrPageSlugTaken = errors.New("page slug already exists")
)

// PageService provides CRUD over site pages.
type PageService struct {
	db *gorm.DB
}

// PageFilter describes filters for listing pages.
type PageFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// PageListResult aggregates paginated page results.
type PageListResult struct {
	Items      []db.Page
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// PageInput represents fields accepted when creating or updating a page.
type PageInput struct {
	Title   string
	Slug    string
	Content string
	Status  string
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// List returns pages matching the filter, newest first.
func (s *PageService) List(filter PageFilter) (PageListResult, error) {
	result := PageListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, defaultPerPage),
	}

	query := s.db.Model(&db.Page{})
	if status := NormalizePageStatus(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR slug LIKE ? OR content LIKE ?", like, like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count pages: %w", err)
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("updated_at desc").Order("id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, fmt.Errorf("list pages: %w", err)
	}

	return result, nil
}

// Get fetches a page by id.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return &page, nil
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", normalizeSlug(slug)).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("get page by slug: %w", err)
	}
	return &page, nil
}

// GetPublishedBySlug 仅返回已发布页面，草稿视为不存在。
func (s *PageService) GetPublishedBySlug(slug string) (*db.Page, error) {
	page, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !page.IsPublished() {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// Create inserts a new page.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	sanitized, err := sanitizePageInput(input)
	if err != nil {
		return nil, err
	}

	page := db.Page{
		Title:   sanitized.Title,
		Slug:    sanitized.Slug,
		Content: sanitized.Content,
		Summary: summarizeContent(sanitized.Content),
		Status:  sanitized.Status,
	}
	if page.IsPublished() {
		now := time.Now()
		page.PublishedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureSlugAvailable(tx, page.Slug, 0); err != nil {
			return err
		}
		return tx.Create(&page).Error
	})
	if err != nil {
		if errors.Is(err, ErrPageSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

// Update replaces the editable fields of an existing page.
func (s *PageService) Update(id uint, input PageInput) (*db.Page, error) {
	sanitized, err := sanitizePageInput(input)
	if err != nil {
		return nil, err
	}

	var page db.Page
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}
		if err := ensureSlugAvailable(tx, sanitized.Slug, page.ID); err != nil {
			return err
		}

		page.Title = sanitized.Title
		page.Slug = sanitized.Slug
		page.Content = sanitized.Content
		page.Summary = summarizeContent(sanitized.Content)
		page.Status = sanitized.Status
		// 首次发布时记录发布时间，之后保持不变
		if page.IsPublished() && page.PublishedAt == nil {
			now := time.Now()
			page.PublishedAt = &now
		}

		return tx.Save(&page).Error
	})
	if err != nil {
		if errors.Is(err, ErrPageNotFound) || errors.Is(err, ErrPageSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("update page: %w", err)
	}
	return &page, nil
}

// Delete removes a page.
func (s *PageService) Delete(id uint) error {
	result := s.db.Delete(&db.Page{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete page: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

// CountByStatus returns page counts keyed by status.
func (s *PageService) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := s.db.Model(&db.Page{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count pages by status: %w", err)
	}

	counts := map[string]int64{
		db.PageStatusPublished: 0,
		db.PageStatusDraft:     0,
	}
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// NormalizePageStatus maps case-insensitive input onto Published/Draft, or "" when unknown.
func NormalizePageStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "published":
		return db.PageStatusPublished
	case "draft":
		return db.PageStatusDraft
	default:
		return ""
	}
}

func sanitizePageInput(input PageInput) (PageInput, error) {
	sanitized := PageInput{
		Title:   strings.TrimSpace(input.Title),
		Slug:    normalizeSlug(input.Slug),
		Content: strings.TrimSpace(input.Content),
		Status:  db.PageStatusDraft,
	}

	errs := fieldErrors{}
	errs.required("title", sanitized.Title)
	errs.maxLen("title", sanitized.Title, 255)
	if sanitized.Slug == "" {
		errs.add("slug", "is required")
	} else if !IsValidSlug(sanitized.Slug) {
		errs.add("slug", "must contain only lowercase letters, digits and single dashes")
	}
	if strings.TrimSpace(input.Status) != "" {
		status := NormalizePageStatus(input.Status)
		if status == "" {
			errs.add("status", "must be Published or Draft")
		}
		sanitized.Status = status
	}

	if err := errs.err(); err != nil {
		return PageInput{}, err
	}
	return sanitized, nil
}

func ensureSlugAvailable(tx *gorm.DB, slug string, selfID uint) error {
	var count int64
	query := tx.Model(&db.Page{}).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPageSlugTaken
	}
	return purgeSoftDeleted(tx, &db.Page{}, "slug", slug)
}
