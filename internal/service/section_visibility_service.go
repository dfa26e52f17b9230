package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrSectionExists   = errors.New("section already exists")
)

// SectionService 管理首页区块的显示开关
type SectionService struct {
	db *gorm.DB
}

// NewSectionService 构造 SectionService
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// SectionInput 描述新建区块的字段，IsVisible 缺省为 true
type SectionInput struct {
	SectionID   string
	Name        string
	IsVisible   *bool
	Description string
}

// SectionPatch 描述部分更新，nil 字段保持不变
type SectionPatch struct {
	Name        *string
	IsVisible   *bool
	Description *string
}

// SectionToggle 是批量切换中的一项
type SectionToggle struct {
	SectionID string
	IsVisible bool
}

// List 返回全部区块
func (s *SectionService) List() ([]db.SectionVisibility, error) {
	var items []db.SectionVisibility
	if err := s.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return items, nil
}

// Get 根据 sectionId 获取区块
func (s *SectionService) Get(sectionID string) (*db.SectionVisibility, error) {
	var item db.SectionVisibility
	if err := s.db.Where("section_id = ?", normalizeSlug(sectionID)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	return &item, nil
}

// SectionVisibilityMap maps sectionId to whether the section is shown.
type SectionVisibilityMap map[string]bool

// Visible 未登记的区块视为可见
func (m SectionVisibilityMap) Visible(sectionID string) bool {
	visible, ok := m[sectionID]
	return !ok || visible
}

// VisibilityMap 返回 sectionId -> 是否显示
func (s *SectionService) VisibilityMap() (SectionVisibilityMap, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}
	result := make(SectionVisibilityMap, len(items))
	for _, item := range items {
		result[item.SectionID] = item.IsVisible
	}
	return result, nil
}

// Create 新建区块，sectionId 重复时返回 ErrSectionExists
func (s *SectionService) Create(input SectionInput) (*db.SectionVisibility, error) {
	section := db.SectionVisibility{
		SectionID:   normalizeSlug(input.SectionID),
		Name:        strings.TrimSpace(input.Name),
		IsVisible:   true,
		Description: strings.TrimSpace(input.Description),
	}
	if input.IsVisible != nil {
		section.IsVisible = *input.IsVisible
	}

	errs := fieldErrors{}
	if section.SectionID == "" {
		errs.add("sectionId", "is required")
	} else if !IsValidSlug(section.SectionID) {
		errs.add("sectionId", "must be a lowercase slug")
	}
	errs.required("name", section.Name)
	errs.maxLen("name", section.Name, 120)
	if err := errs.err(); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.SectionVisibility{}).Where("section_id = ?", section.SectionID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSectionExists
		}
		if err := purgeSoftDeleted(tx, &db.SectionVisibility{}, "section_id", section.SectionID); err != nil {
			return err
		}
		return tx.Create(&section).Error
	})
	if err != nil {
		if errors.Is(err, ErrSectionExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create section: %w", err)
	}
	return &section, nil
}

// Update 部分更新指定区块
func (s *SectionService) Update(sectionID string, patch SectionPatch) (*db.SectionVisibility, error) {
	section, err := s.Get(sectionID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, newFieldError("name", "must not be empty")
		}
		section.Name = name
	}
	if patch.Description != nil {
		section.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.IsVisible != nil {
		section.IsVisible = *patch.IsVisible
	}

	if err := s.db.Save(section).Error; err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}
	return section, nil
}

// BulkToggle 在一个事务内切换多个区块，任一 sectionId 不存在则全部回滚
func (s *SectionService) BulkToggle(toggles []SectionToggle) ([]db.SectionVisibility, error) {
	if len(toggles) == 0 {
		return nil, newFieldError("sections", "must not be empty")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, toggle := range toggles {
			var section db.SectionVisibility
			if err := tx.Where("section_id = ?", normalizeSlug(toggle.SectionID)).First(&section).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrSectionNotFound, toggle.SectionID)
				}
				return err
			}
			if err := tx.Model(&section).Update("is_visible", toggle.IsVisible).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSectionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("toggle sections: %w", err)
	}
	return s.List()
}

// Delete 删除区块
func (s *SectionService) Delete(sectionID string) error {
	result := s.db.Where("section_id = ?", normalizeSlug(sectionID)).Delete(&db.SectionVisibility{})
	if result.Error != nil {
		return fmt.Errorf("delete section: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// CountVisible returns how many registered sections are visible.
func (s *SectionService) CountVisible() (int64, error) {
	var total int64
	if err := s.db.Model(&db.SectionVisibility{}).Where("is_visible = ?", true).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count visible sections: %w", err)
	}
	return total, nil
}
