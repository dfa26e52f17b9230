package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AboutInput holds the editable fields of the about block.
type AboutInput struct {
	Title       string
	Description string
	ImageURL    string
	Features    []string
	ButtonText  string
	ButtonURL   string
}

// AboutService 维护“关于我们”单例记录
type AboutService struct {
	db *gorm.DB
}

// NewAboutService returns a new AboutService instance.
func NewAboutService(gdb *gorm.DB) *AboutService {
	return &AboutService{db: gdb}
}

// DefaultAbout 返回尚未保存时展示的默认内容
func DefaultAbout() db.About {
	return db.About{
		Title:       "About Us",
		Description: "We are a small team of designers and engineers.",
		Features:    datatypes.JSONSlice[string]{},
		ButtonText:  "Get in touch",
		ButtonURL:   "#contact",
	}
}

// Get returns the stored about block, or defaults when none exists.
func (s *AboutService) Get() (*db.About, error) {
	var about db.About
	if err := s.db.Order("id asc").First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fallback := DefaultAbout()
			return &fallback, nil
		}
		return nil, fmt.Errorf("get about: %w", err)
	}
	if about.Features == nil {
		about.Features = datatypes.JSONSlice[string]{}
	}
	return &about, nil
}

// Save creates or updates the about block.
func (s *AboutService) Save(input AboutInput) (*db.About, error) {
	title := strings.TrimSpace(input.Title)

	errs := fieldErrors{}
	errs.required("title", title)
	errs.maxLen("title", title, 255)
	if link := strings.TrimSpace(input.ButtonURL); link != "" && !strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "#") && !isHTTPURL(link) {
		errs.add("buttonUrl", "must be a relative path, an anchor or an absolute http(s) URL")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	features := make(datatypes.JSONSlice[string], 0, len(input.Features))
	for _, feature := range input.Features {
		if trimmed := strings.TrimSpace(feature); trimmed != "" {
			features = append(features, trimmed)
		}
	}

	var about db.About
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id asc").First(&about).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		about.Title = title
		about.Description = strings.TrimSpace(input.Description)
		about.ImageURL = strings.TrimSpace(input.ImageURL)
		about.Features = features
		about.ButtonText = strings.TrimSpace(input.ButtonText)
		about.ButtonURL = strings.TrimSpace(input.ButtonURL)

		// ID 为 0 时 Save 会执行插入
		return tx.Save(&about).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save about: %w", err)
	}
	return &about, nil
}
