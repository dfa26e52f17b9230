package handler

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/service"
)

var validatorsOnce sync.Once

// registerValidators 为 gin 的校验引擎注册业务规则，并让错误字段使用 JSON 名称
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return service.IsValidSlug(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("setting_key", func(fl validator.FieldLevel) bool {
			return service.IsValidSettingKey(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("page_status", func(fl validator.FieldLevel) bool {
			return service.NormalizePageStatus(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
			return db.IsValidRole(strings.ToLower(strings.TrimSpace(fl.Field().String())))
		})
		_ = v.RegisterValidation("media_type", func(fl validator.FieldLevel) bool {
			return slices.Contains(db.MediaTypes, strings.ToLower(strings.TrimSpace(fl.Field().String())))
		})
	})
}

// validationDetails converts validator errors into {field: message}.
func validationDetails(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fieldPath(fe)
		if _, exists := details[field]; exists {
			continue
		}
		details[field] = validationMessage(fe)
	}
	return details
}

// fieldPath 去掉命名空间中的结构体名前缀，保留嵌套路径如 settings[0].key
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "slug":
		return "must contain only lowercase letters, numbers and dashes"
	case "setting_key":
		return "must start with a letter and contain only lowercase letters, numbers, dots and underscores"
	case "page_status":
		return "must be Published or Draft"
	case "user_role":
		return "must be one of admin, editor, user"
	case "media_type":
		return "must be one of " + strings.Join(db.MediaTypes, ", ")
	default:
		return "is invalid"
	}
}
