package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSettingNotFound 表示设置项不存在。
var ErrSettingNotFound = errors.New("setting not found")

// SettingInput 描述单个设置项的写入。
type SettingInput struct {
	Key      string
	Value    string
	Category string
}

// SiteSettings 是公共站点读取的强类型设置视图，缺失的键使用默认值。
type SiteSettings struct {
	SiteName        string            `json:"siteName"`
	SiteTagline     string            `json:"siteTagline"`
	SiteDescription string            `json:"siteDescription"`
	SiteKeywords    []string          `json:"siteKeywords"`
	LogoURL         string            `json:"logoUrl"`
	FaviconURL      string            `json:"faviconUrl"`
	FooterText      string            `json:"footerText"`
	ContactEmail    string            `json:"contactEmail"`
	ContactPhone    string            `json:"contactPhone"`
	ContactAddress  string            `json:"contactAddress"`
	Social          map[string]string `json:"social"`
	Extra           map[string]string `json:"extra"`
}

// DefaultSiteSettings returns the values used before anything is configured.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:        "SiteCMS",
		SiteTagline:     "We build things that matter",
		SiteDescription: "A small studio crafting digital products.",
		SiteKeywords:    []string{},
		FooterText:      "© SiteCMS. All rights reserved.",
		Social:          map[string]string{},
		Extra:           map[string]string{},
	}
}

// SettingService 提供设置项的读取与更新能力。
type SettingService struct {
	db *gorm.DB
}

// NewSettingService 构造 SettingService。
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

// List 返回设置项，category 为空时返回全部。
func (s *SettingService) List(category string) ([]db.Setting, error) {
	query := s.db.Model(&db.Setting{})
	if trimmed := strings.ToLower(strings.TrimSpace(category)); trimmed != "" {
		query = query.Where(map[string]any{"category": trimmed})
	}

	var items []db.Setting
	if err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "category"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return items, nil
}

// Get 按键读取设置项。
func (s *SettingService) Get(key string) (*db.Setting, error) {
	var item db.Setting
	if err := s.db.Where(map[string]any{"key": strings.TrimSpace(key)}).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &item, nil
}

// Upsert 写入单个设置项，存在则覆盖值与分类。
func (s *SettingService) Upsert(input SettingInput) (*db.Setting, error) {
	sanitized, err := sanitizeSettingInput(input, "")
	if err != nil {
		return nil, err
	}

	if err := upsertSetting(s.db, sanitized); err != nil {
		return nil, err
	}
	return s.Get(sanitized.Key)
}

// BulkUpsert 在一个事务内写入多个设置项，任一失败则全部回滚。
func (s *SettingService) BulkUpsert(inputs []SettingInput) ([]db.Setting, error) {
	if len(inputs) == 0 {
		return nil, newFieldError("settings", "must not be empty")
	}

	sanitized := make([]SettingInput, 0, len(inputs))
	errs := fieldErrors{}
	for index, input := range inputs {
		clean, err := sanitizeSettingInput(input, fmt.Sprintf("settings[%d].", index))
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				for field, message := range verr.Fields {
					errs.add(field, message)
				}
				continue
			}
			return nil, err
		}
		sanitized = append(sanitized, clean)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(sanitized))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, input := range sanitized {
			if err := upsertSetting(tx, input); err != nil {
				return err
			}
			keys = append(keys, input.Key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bulk upsert settings: %w", err)
	}

	var items []db.Setting
	if err := s.db.Where(map[string]any{"key": keys}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("reload settings: %w", err)
	}
	return items, nil
}

// Delete 删除设置项。
func (s *SettingService) Delete(key string) error {
	result := s.db.Unscoped().Where(map[string]any{"key": strings.TrimSpace(key)}).Delete(&db.Setting{})
	if result.Error != nil {
		return fmt.Errorf("delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

// Count returns the number of stored settings.
func (s *SettingService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&db.Setting{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count settings: %w", err)
	}
	return total, nil
}

// SiteSettings 读取全部设置并组装成强类型视图，未设置的字段保留默认值。
func (s *SettingService) SiteSettings() (SiteSettings, error) {
	result := DefaultSiteSettings()

	records, err := s.List("")
	if err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		switch record.Key {
		case db.SettingKeySiteName:
			if value != "" {
				result.SiteName = value
			}
		case db.SettingKeySiteTagline:
			result.SiteTagline = value
		case db.SettingKeySiteDescription:
			result.SiteDescription = value
		case db.SettingKeySiteKeywords:
			result.SiteKeywords = splitList(value)
		case db.SettingKeySiteLogoURL:
			result.LogoURL = value
		case db.SettingKeySiteFaviconURL:
			result.FaviconURL = value
		case db.SettingKeyFooterText:
			result.FooterText = value
		case db.SettingKeyContactEmail:
			result.ContactEmail = value
		case db.SettingKeyContactPhone:
			result.ContactPhone = value
		case db.SettingKeyContactAddress:
			result.ContactAddress = value
		case db.SettingKeySocialTwitter, db.SettingKeySocialLinkedIn, db.SettingKeySocialGitHub, db.SettingKeySocialInstagram:
			if value != "" {
				result.Social[strings.TrimPrefix(record.Key, "social_")] = value
			}
		default:
			result.Extra[record.Key] = record.Value
		}
	}

	return result, nil
}

func sanitizeSettingInput(input SettingInput, prefix string) (SettingInput, error) {
	sanitized := SettingInput{
		Key:      strings.TrimSpace(input.Key),
		Value:    input.Value,
		Category: strings.ToLower(strings.TrimSpace(input.Category)),
	}
	if sanitized.Category == "" {
		sanitized.Category = db.SettingCategoryGeneral
	}

	errs := fieldErrors{}
	switch {
	case sanitized.Key == "":
		errs.add(prefix+"key", "is required")
	case !IsValidSettingKey(sanitized.Key):
		errs.add(prefix+"key", "must start with a lowercase letter and contain only a-z, 0-9, '_' or '.'")
	}
	errs.maxLen(prefix+"key", sanitized.Key, 100)
	if !IsValidSlug(sanitized.Category) {
		errs.add(prefix+"category", "must be a lowercase slug")
	}

	if err := errs.err(); err != nil {
		return SettingInput{}, err
	}
	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, input SettingInput) error {
	setting := db.Setting{Key: input.Key, Value: input.Value, Category: input.Category}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      input.Value,
			"category":   input.Category,
			"deleted_at": nil,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", input.Key, err)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
