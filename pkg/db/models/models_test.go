package models

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The schema must AutoMigrate on the sqlite test driver as well as postgres, so
// the gorm tags cannot carry postgres-only default expressions.
func TestSchemaMigratesOnSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:models_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := conn.AutoMigrate(&User{}, &Item{}, &SwapProposal{}, &Redemption{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// inserts rely on the BeforeCreate hooks for IDs on every driver
	user := &User{
		Email:        "hooks@example.com",
		PasswordHash: "x",
		DisplayName:  "hooks",
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatalf("hook must assign the user id")
	}

	item := &Item{
		UploaderID: user.ID,
		Title:      "Linen shirt",
		Category:   "tops",
		Condition:  "good",
		Images:     []string{},
		Points:     100,
		Status:     "available",
	}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ID == uuid.Nil {
		t.Fatalf("hook must assign the item id")
	}
}
