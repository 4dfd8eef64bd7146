package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/models"
)

// MemoryRepo persists Memory records.
type MemoryRepo struct {
	db *gorm.DB
}

// MemoryFilter narrows List results. Zero values mean "no filter".
type MemoryFilter struct {
	Category  string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Favorite  bool
}

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// MemoryStats summarises a user's memories.
type MemoryStats struct {
	Total      int64           `json:"totalMemories"`
	WithMedia  int64           `json:"memoriesWithMedia"`
	Favorites  int64           `json:"favoriteMemories"`
	Categories []CategoryCount `json:"categoriesStats"`
}

// List returns the user's memories matching filter, newest first.
func (r *MemoryRepo) List(userID uint, filter MemoryFilter) ([]models.Memory, error) {
	q := r.db.Where("user_id = ?", userID)
	if filter.Category != "" && filter.Category != "All" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR text LIKE ?", like, like)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}
	if filter.Favorite {
		q = q.Where("is_favorite = ?", true)
	}

	var out []models.Memory
	if err := q.Order("date DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list memories: %w", err)
	}
	return out, nil
}

// Get returns a single memory owned by userID.
func (r *MemoryRepo) Get(userID, id uint) (*models.Memory, error) {
	var m models.Memory
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, wrapNotFound(err, "get memory")
	}
	return &m, nil
}

// Create inserts m.
func (r *MemoryRepo) Create(m *models.Memory) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("repository: create memory: %w", err)
	}
	return nil
}

// Update saves m; it must already carry a valid ID and UserID.
func (r *MemoryRepo) Update(m *models.Memory) error {
	if err := r.db.Save(m).Error; err != nil {
		return fmt.Errorf("repository: update memory: %w", err)
	}
	return nil
}

// Delete removes the memory if owned by userID. The referenced upload file,
// if any, is intentionally left on disk.
func (r *MemoryRepo) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Memory{})
	if res.Error != nil {
		return fmt.Errorf("repository: delete memory: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "delete memory")
	}
	return nil
}

// ListAll returns every memory regardless of user, for the backup snapshot.
func (r *MemoryRepo) ListAll() ([]models.Memory, error) {
	var out []models.Memory
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list all memories: %w", err)
	}
	return out, nil
}

// Stats aggregates counts for the user.
func (r *MemoryRepo) Stats(userID uint) (*MemoryStats, error) {
	s := &MemoryStats{Categories: []CategoryCount{}}

	if err := r.db.Model(&models.Memory{}).Where("user_id = ?", userID).
		Count(&s.Total).Error; err != nil {
		return nil, fmt.Errorf("repository: memory stats: %w", err)
	}
	if err := r.db.Model(&models.Memory{}).
		Where("user_id = ? AND (image <> '' OR video <> '')", userID).
		Count(&s.WithMedia).Error; err != nil {
		return nil, fmt.Errorf("repository: memory stats: %w", err)
	}
	if err := r.db.Model(&models.Memory{}).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Count(&s.Favorites).Error; err != nil {
		return nil, fmt.Errorf("repository: memory stats: %w", err)
	}
	if err := r.db.Model(&models.Memory{}).Where("user_id = ?", userID).
		Select("category, COUNT(id) AS count").Group("category").
		Scan(&s.Categories).Error; err != nil {
		return nil, fmt.Errorf("repository: memory stats: %w", err)
	}
	return s, nil
}
