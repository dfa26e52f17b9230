package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var ErrPortfolioNotFound = errors.New("portfolio item not found")

// PortfolioService handles portfolio CRUD.
type PortfolioService struct {
	db *gorm.DB
}

// PortfolioFilter narrows the portfolio listing.
type PortfolioFilter struct {
	Category string
	Featured *bool
}

// PortfolioInput represents fields accepted when creating or updating a portfolio item.
type PortfolioInput struct {
	Title       string
	Category    string
	Description string
	ImageURL    string
	ProjectURL  string
	Featured    bool
	SortOrder   *int
}

// NewPortfolioService creates a PortfolioService instance.
func NewPortfolioService(gdb *gorm.DB) *PortfolioService {
	return &PortfolioService{db: gdb}
}

// List returns portfolio items, featured first.
func (s *PortfolioService) List(filter PortfolioFilter) ([]db.PortfolioItem, error) {
	query := s.db.Model(&db.PortfolioItem{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var items []db.PortfolioItem
	if err := query.Order("featured desc").Order("sort_order asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	return items, nil
}

// Categories returns the distinct categories in alphabetical order.
func (s *PortfolioService) Categories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&db.PortfolioItem{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("list portfolio categories: %w", err)
	}
	return categories, nil
}

// Get fetches a portfolio item by id.
func (s *PortfolioService) Get(id uint) (*db.PortfolioItem, error) {
	var item db.PortfolioItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("get portfolio item: %w", err)
	}
	return &item, nil
}

// Create inserts a new portfolio item.
func (s *PortfolioService) Create(input PortfolioInput) (*db.PortfolioItem, error) {
	if err := validatePortfolioInput(input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSortOrder(s.db, &db.PortfolioItem{}, input.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("resolve portfolio sort: %w", err)
	}

	item := db.PortfolioItem{
		Title:       strings.TrimSpace(input.Title),
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		ProjectURL:  strings.TrimSpace(input.ProjectURL),
		Featured:    input.Featured,
		SortOrder:   sortOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}
	return &item, nil
}

// Update modifies an existing portfolio item.
func (s *PortfolioService) Update(id uint, input PortfolioInput) (*db.PortfolioItem, error) {
	if err := validatePortfolioInput(input); err != nil {
		return nil, err
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Category = strings.TrimSpace(input.Category)
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.ProjectURL = strings.TrimSpace(input.ProjectURL)
	item.Featured = input.Featured
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return item, nil
}

// Delete removes a portfolio item.
func (s *PortfolioService) Delete(id uint) error {
	result := s.db.Delete(&db.PortfolioItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete portfolio item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

// Count returns the total and featured portfolio counts.
func (s *PortfolioService) Count() (total int64, featured int64, err error) {
	if err = s.db.Model(&db.PortfolioItem{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count portfolio items: %w", err)
	}
	if err = s.db.Model(&db.PortfolioItem{}).Where("featured = ?", true).Count(&featured).Error; err != nil {
		return 0, 0, fmt.Errorf("count featured portfolio items: %w", err)
	}
	return total, featured, nil
}

func validatePortfolioInput(input PortfolioInput) error {
	errs := fieldErrors{}
	errs.required("title", input.Title)
	errs.maxLen("title", strings.TrimSpace(input.Title), 200)
	errs.required("category", input.Category)
	errs.maxLen("category", strings.TrimSpace(input.Category), 80)
	if link := strings.TrimSpace(input.ProjectURL); link != "" && !isHTTPURL(link) {
		errs.add("projectUrl", "must be an absolute http(s) URL")
	}
	return errs.err()
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
