// Package database opens the SQLite store and keeps its schema current.
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/solmara/cuna/internal/models"
)

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", path, err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Memory{},
		&models.JournalEntry{},
		&models.Task{},
		&models.Appointment{},
		&models.MedicalRecord{},
	); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}

	return db, nil
}

// SeedDefaultUser creates the single profile row when the users table is
// empty and returns its ID.
func SeedDefaultUser(db *gorm.DB) (uint, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("database: count users: %w", err)
	}
	if count > 0 {
		var user models.User
		if err := db.Order("id").First(&user).Error; err != nil {
			return 0, fmt.Errorf("database: load user: %w", err)
		}
		return user.ID, nil
	}

	user := models.User{
		Name:     "Primary User",
		DueDate:  time.Now().AddDate(0, 6, 0),
		BabyName: "My Baby",
		Gender:   "Surprise",
		Settings: models.JSONMap{
			"themeColor":    "#f472b6",
			"notifications": true,
			"language":      "en",
			"darkMode":      false,
		},
	}
	if err := db.Create(&user).Error; err != nil {
		return 0, fmt.Errorf("database: seed user: %w", err)
	}
	return user.ID, nil
}
