package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/models"
)

// UserRepo persists the pregnancy profile.
type UserRepo struct {
	db *gorm.DB
}

// Get returns the profile by ID.
func (r *UserRepo) Get(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, wrapNotFound(err, "get user")
	}
	return &u, nil
}

// Update saves u.
func (r *UserRepo) Update(u *models.User) error {
	if err := r.db.Save(u).Error; err != nil {
		return fmt.Errorf("repository: update user: %w", err)
	}
	return nil
}

// MergeSettings overlays patch onto the stored settings map and returns the
// merged result.
func (r *UserRepo) MergeSettings(id uint, patch models.JSONMap) (models.JSONMap, error) {
	u, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	merged := models.JSONMap{}
	for k, v := range u.Settings {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	u.Settings = merged
	if err := r.Update(u); err != nil {
		return nil, err
	}
	return merged, nil
}

// ListAll returns every profile row, for the backup snapshot.
func (r *UserRepo) ListAll() ([]models.User, error) {
	var out []models.User
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list all users: %w", err)
	}
	return out, nil
}
