package db

import (
	"fmt"

	"gorm.io/gorm"

	"userapi/internal/model"
)

// Migrate creates or updates the users table. With reset set the table is dropped first.
func Migrate(gormDB *gorm.DB, reset bool) error {
	if reset {
		if err := gormDB.Migrator().DropTable(&model.User{}); err != nil {
			return fmt.Errorf("drop users: %w", err)
		}
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
