package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户角色
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

// Roles lists every assignable role.
var Roles = []string{RoleAdmin, RoleEditor, RoleUser}

// User 定义了后台账号模型，Password 保存 bcrypt 哈希
type User struct {
	gorm.Model
	Email    string `gorm:"size:255;uniqueIndex;not null"`
	Name     string `gorm:"size:120"`
	Password string `gorm:"not null"`
	Role     string `gorm:"size:20;not null;default:user"`
}

// IsValidRole reports whether role is one of Roles.
func IsValidRole(role string) bool {
	for _, candidate := range Roles {
		if role == candidate {
			return true
		}
	}
	return false
}

// EnsureUser 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
// 同邮箱的软删除记录会被清除后重建。返回值表示是否新建了账号。
func EnsureUser(gdb *gorm.DB, email, password, role string) (bool, error) {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return false, nil
	}

	if gdb == nil {
		return false, errors.New("database not initialized")
	}

	if !IsValidRole(role) {
		role = RoleAdmin
	}

	created := false
	err := gdb.Transaction(func(tx *gorm.DB) error {
		// Unscoped 才能看到软删除的旧账号，否则唯一索引冲突
		var existing User
		err := tx.Unscoped().Where("email = ?", trimmedEmail).First(&existing).Error
		switch {
		case err == nil && !existing.DeletedAt.Valid:
			return nil
		case err == nil:
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := User{Email: trimmedEmail, Name: "Administrator", Password: string(hashed), Role: role}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
