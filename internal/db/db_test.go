package db

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sitecms/internal/config"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:db_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: dsn}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gdb
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "oracle"}, nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if _, err := Open(config.DatabaseConfig{Driver: "postgres"}, nil); err == nil {
		t.Fatal("expected error for postgres without dsn")
	}
}

func TestEnsureUserCreatesAdminOnce(t *testing.T) {
	gdb := openTestDB(t)

	created, err := EnsureUser(gdb, " Admin@Example.com ", "secret123", RoleAdmin)
	if err != nil || !created {
		t.Fatalf("expected admin creation, created=%v err=%v", created, err)
	}

	created, err = EnsureUser(gdb, "admin@example.com", "other", RoleAdmin)
	if err != nil || created {
		t.Fatalf("expected existing admin to be kept, created=%v err=%v", created, err)
	}

	var user User
	if err := gdb.Where("email = ?", "admin@example.com").First(&user).Error; err != nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if user.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")) != nil {
		t.Fatal("expected bcrypt hash of the original password")
	}
}

func TestEnsureUserSkipsEmptyCredentials(t *testing.T) {
	gdb := openTestDB(t)

	created, err := EnsureUser(gdb, "", "", RoleAdmin)
	if err != nil || created {
		t.Fatalf("expected no-op, created=%v err=%v", created, err)
	}
}

func TestEnsureSectionsKeepsExistingRows(t *testing.T) {
	gdb := openTestDB(t)

	if err := gdb.Create(&SectionVisibility{SectionID: SectionHero, Name: "Custom hero", IsVisible: false}).Error; err != nil {
		t.Fatalf("seed hero: %v", err)
	}

	created, err := EnsureSections(gdb)
	if err != nil {
		t.Fatalf("ensure sections: %v", err)
	}
	if created != len(DefaultSections)-1 {
		t.Fatalf("expected %d new sections, got %d", len(DefaultSections)-1, created)
	}

	var hero SectionVisibility
	if err := gdb.Where("section_id = ?", SectionHero).First(&hero).Error; err != nil {
		t.Fatalf("load hero: %v", err)
	}
	if hero.IsVisible || hero.Name != "Custom hero" {
		t.Fatalf("existing section overwritten: %+v", hero)
	}

	again, err := EnsureSections(gdb)
	if err != nil || again != 0 {
		t.Fatalf("expected idempotent seeding, created=%d err=%v", again, err)
	}
}

func TestEnsureUserRecreatesSoftDeletedAdmin(t *testing.T) {
	gdb := openTestDB(t)

	if _, err := EnsureUser(gdb, "admin@example.com", "secret123", RoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := gdb.Where("email = ?", "admin@example.com").Delete(&User{}).Error; err != nil {
		t.Fatalf("soft delete admin: %v", err)
	}

	created, err := EnsureUser(gdb, "admin@example.com", "newsecret123", RoleAdmin)
	if err != nil || !created {
		t.Fatalf("expected admin to be recreated, created=%v err=%v", created, err)
	}

	var users []User
	if err := gdb.Unscoped().Where("email = ?", "admin@example.com").Find(&users).Error; err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 1 || users[0].DeletedAt.Valid {
		t.Fatalf("expected a single live admin row, got %+v", users)
	}
	if bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("newsecret123")) != nil {
		t.Fatal("expected the recreated admin to use the new password")
	}
}
