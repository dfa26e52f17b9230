package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrTeamMemberNotFound 在指定成员不存在时返回
	ErrTeamMemberNotFound = errors.New("team member not found")
)

// TeamMemberService 负责团队成员的增删改查与排序
type TeamMemberService struct {
	db *gorm.DB
}

// NewTeamMemberService 构造 TeamMemberService
func NewTeamMemberService(gdb *gorm.DB) *TeamMemberService {
	return &TeamMemberService{db: gdb}
}

// TeamMemberInput 描述创建或更新成员时可设置的字段
// SortOrder 使用指针判断是否显式传入
type TeamMemberInput struct {
	Name      string
	Role      string
	Bio       string
	ImageURL  string
	SortOrder *int
}

// List 返回全部成员，按排序值升序
func (s *TeamMemberService) List() ([]db.TeamMember, error) {
	var items []db.TeamMember
	if err := s.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return items, nil
}

// Get 根据主键获取成员
func (s *TeamMemberService) Get(id uint) (*db.TeamMember, error) {
	var item db.TeamMember
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	return &item, nil
}

// Create 新建成员，未指定排序时追加到末尾
func (s *TeamMemberService) Create(input TeamMemberInput) (*db.TeamMember, error) {
	if err := validateTeamMemberInput(input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSortOrder(s.db, &db.TeamMember{}, input.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("resolve team member sort: %w", err)
	}

	member := db.TeamMember{
		Name:      strings.TrimSpace(input.Name),
		Role:      strings.TrimSpace(input.Role),
		Bio:       strings.TrimSpace(input.Bio),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		SortOrder: sortOrder,
	}

	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return &member, nil
}

// Update 更新指定成员
func (s *TeamMemberService) Update(id uint, input TeamMemberInput) (*db.TeamMember, error) {
	if err := validateTeamMemberInput(input); err != nil {
		return nil, err
	}

	member, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	member.Name = strings.TrimSpace(input.Name)
	member.Role = strings.TrimSpace(input.Role)
	member.Bio = strings.TrimSpace(input.Bio)
	member.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.SortOrder != nil {
		member.SortOrder = *input.SortOrder
	}

	if err := s.db.Save(member).Error; err != nil {
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return member, nil
}

// Delete 删除指定成员
func (s *TeamMemberService) Delete(id uint) error {
	result := s.db.Delete(&db.TeamMember{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete team member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTeamMemberNotFound
	}
	return nil
}

// Reorder 按给定顺序重排，传入的 IDs 依次赋值 0,1,2...
func (s *TeamMemberService) Reorder(ids []uint) error {
	return reorderRows(s.db, &db.TeamMember{}, ids, ErrTeamMemberNotFound)
}

// Count returns the number of team members.
func (s *TeamMemberService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&db.TeamMember{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count team members: %w", err)
	}
	return total, nil
}

func validateTeamMemberInput(input TeamMemberInput) error {
	errs := fieldErrors{}
	errs.required("name", input.Name)
	errs.maxLen("name", strings.TrimSpace(input.Name), 120)
	errs.required("role", input.Role)
	errs.maxLen("role", strings.TrimSpace(input.Role), 120)
	return errs.err()
}
