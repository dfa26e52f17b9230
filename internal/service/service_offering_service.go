package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/view"
	"gorm.io/gorm"
)

// ErrServiceNotFound is returned when a service offering does not exist.
var ErrServiceNotFound = errors.New("service not found")

// OfferingService manages the services section entries.
type OfferingService struct {
	db *gorm.DB
}

// NewOfferingService creates an OfferingService.
func NewOfferingService(gdb *gorm.DB) *OfferingService {
	return &OfferingService{db: gdb}
}

// OfferingInput holds the editable fields of a service.
type OfferingInput struct {
	Title       string
	Description string
	Icon        string
	SortOrder   *int
}

// List returns services ordered by sort order.
func (s *OfferingService) List() ([]db.Service, error) {
	var items []db.Service
	if err := s.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

// Get fetches a service by id.
func (s *OfferingService) Get(id uint) (*db.Service, error) {
	var item db.Service
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &item, nil
}

// Create inserts a service, appending it when no sort order is given.
func (s *OfferingService) Create(input OfferingInput) (*db.Service, error) {
	if err := validateOfferingInput(input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSortOrder(s.db, &db.Service{}, input.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("resolve service sort: %w", err)
	}

	item := db.Service{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Icon:        view.NormalizeServiceIcon(input.Icon),
		SortOrder:   sortOrder,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &item, nil
}

// Update modifies an existing service.
func (s *OfferingService) Update(id uint, input OfferingInput) (*db.Service, error) {
	if err := validateOfferingInput(input); err != nil {
		return nil, err
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.Icon = view.NormalizeServiceIcon(input.Icon)
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return item, nil
}

// Delete removes a service.
func (s *OfferingService) Delete(id uint) error {
	result := s.db.Delete(&db.Service{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// Reorder assigns sort orders 0..n-1 following ids.
func (s *OfferingService) Reorder(ids []uint) error {
	return reorderRows(s.db, &db.Service{}, ids, ErrServiceNotFound)
}

// Count returns the number of services.
func (s *OfferingService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&db.Service{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return total, nil
}

func validateOfferingInput(input OfferingInput) error {
	errs := fieldErrors{}
	errs.required("title", input.Title)
	errs.maxLen("title", strings.TrimSpace(input.Title), 160)
	errs.required("description", input.Description)
	if icon := strings.TrimSpace(input.Icon); icon != "" && !view.IsKnownServiceIcon(icon) {
		errs.add("icon", "is not a known icon")
	}
	return errs.err()
}
