package Models

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the SQLite database at path and runs migrations. The
// returned handle is passed into the controllers explicitly; there is no
// package-level connection, so the lifecycle is owned by main.
func Connect(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	// 1. Base tables with no dependencies
	if err := db.AutoMigrate(&User{}, &Home{}); err != nil {
		return nil, err
	}

	// 2. Tables with simple foreign key relationships
	if err := db.AutoMigrate(&Room{}, &Equipment{}); err != nil {
		return nil, err
	}

	// 3. Tasks and their completion ledger
	if err := db.AutoMigrate(&Task{}, &TaskCompletion{}); err != nil {
		return nil, err
	}

	return db, nil
}
