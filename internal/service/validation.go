package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ErrValidation 是所有字段校验失败的统一哨兵错误，可通过 errors.Is 判断。
var ErrValidation = errors.New("validation failed")

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	settingKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_.]*$`)
)

// ValidationError carries field level messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// fieldErrors 收集多个字段错误，最后统一返回
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "is required")
	}
}

func (f fieldErrors) maxLen(field, value string, limit int) {
	if len([]rune(value)) > limit {
		f.add(field, fmt.Sprintf("must be at most %d characters", limit))
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: map[string]string(f)}
}

func newFieldError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// IsValidSlug reports whether value is a lowercase dash separated slug.
func IsValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}

// IsValidSettingKey reports whether value is usable as a setting key.
func IsValidSettingKey(value string) bool {
	return settingKeyPattern.MatchString(value)
}

func normalizeSlug(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// purgeSoftDeleted 清理占用唯一键的软删除记录，避免唯一索引冲突
func purgeSoftDeleted(tx *gorm.DB, model any, column string, value any) error {
	return tx.Unscoped().
		Where(column+" = ? AND deleted_at IS NOT NULL", value).
		Delete(model).Error
}
