package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/pkg/response"
)

// setupTestDB opens a fresh in-memory database named after the test so
// parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         email,
		Role:         models.GlobalRoleSubmitter,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Errorf("error code = %s, expected %s", appErr.Code, code)
	}
}

// fakeStore records promote/remove calls without touching the filesystem.
type fakeStore struct {
	promoted    []string
	removed     []string
	failPromote bool
	failRemove  bool
}

func (f *fakeStore) Promote(tempPath, originalName string) (string, error) {
	if f.failPromote {
		return "", errors.New("promote failed")
	}
	p := "/uploads/submissions/stored-" + originalName
	f.promoted = append(f.promoted, p)
	return p, nil
}

func (f *fakeStore) Remove(storedPath string) error {
	if f.failRemove {
		return errors.New("remove failed")
	}
	f.removed = append(f.removed, storedPath)
	return nil
}
