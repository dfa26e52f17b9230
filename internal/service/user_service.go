package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sitecms/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailTaken     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
)

const minPasswordLength = 8

// UserService manages accounts and credential checks.
type UserService struct {
	db *gorm.DB
}

// UserFilter narrows the user listing.
type UserFilter struct {
	Role   string
	Search string
}

// UserInput is used when creating an account.
type UserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// UserUpdate changes profile fields; an empty Password keeps the current one.
type UserUpdate struct {
	Name     string
	Role     string
	Password string
}

// NewUserService creates a UserService.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// List returns users ordered by id.
func (s *UserService) List(filter UserFilter) ([]db.User, error) {
	query := s.db.Model(&db.User{})
	if role := strings.ToLower(strings.TrimSpace(filter.Role)); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var users []db.User
	if err := query.Order("id asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get fetches a user by id.
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByEmail fetches a user by case-insensitive email.
func (s *UserService) GetByEmail(email string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// Create inserts an account with a bcrypt hashed password.
func (s *UserService) Create(input UserInput) (*db.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = db.RoleUser
	}

	errs := fieldErrors{}
	if email == "" {
		errs.add("email", "is required")
	} else if !isEmail(email) {
		errs.add("email", "must be a valid email address")
	}
	errs.maxLen("name", name, 120)
	if len(input.Password) < minPasswordLength {
		errs.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if !db.IsValidRole(role) {
		errs.add("role", "must be one of admin, editor, user")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{Email: email, Name: name, Password: string(hashed), Role: role}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserEmailTaken
		}
		if err := purgeSoftDeleted(tx, &db.User{}, "email", email); err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Register creates a self-service account with the user role.
func (s *UserService) Register(email, name, password string) (*db.User, error) {
	return s.Create(UserInput{Email: email, Name: name, Password: password, Role: db.RoleUser})
}

// Update modifies name, role and optionally the password.
func (s *UserService) Update(id uint, input UserUpdate) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	name := strings.TrimSpace(input.Name)
	errs.maxLen("name", name, 120)
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role != "" && !db.IsValidRole(role) {
		errs.add("role", "must be one of admin, editor, user")
	}
	if input.Password != "" && len(input.Password) < minPasswordLength {
		errs.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if role != "" {
		user.Role = role
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user; actors may not delete themselves.
func (s *UserService) Delete(actorID, id uint) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}
	result := s.db.Delete(&db.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Authenticate 校验邮箱与密码，失败统一返回 ErrInvalidCredentials 避免泄露账号是否存在。
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new one.
func (s *UserService) ChangePassword(id uint, current, next string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return newFieldError("currentPassword", "is incorrect")
	}
	if len(next) < minPasswordLength {
		return newFieldError("newPassword", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.Model(user).Update("password", string(hashed)).Error; err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// Count returns the number of accounts.
func (s *UserService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&db.User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailValidator = validator.New()

func isEmail(value string) bool {
	return emailValidator.Var(value, "required,email") == nil
}
