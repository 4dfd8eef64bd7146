package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/models"
)

// JournalRepo persists JournalEntry records.
type JournalRepo struct {
	db *gorm.DB
}

// JournalFilter narrows List results.
type JournalFilter struct {
	Search    string
	Mood      string
	StartDate *time.Time
	EndDate   *time.Time
}

// MoodCount is one row of the per-mood breakdown.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int64  `json:"count"`
}

// JournalStats summarises a user's journal.
type JournalStats struct {
	Total         int64       `json:"totalEntries"`
	Moods         []MoodCount `json:"moodStats"`
	AverageEnergy float64     `json:"averageEnergy"`
}

// List returns the user's entries matching filter, newest first.
func (r *JournalRepo) List(userID uint, filter JournalFilter) ([]models.JournalEntry, error) {
	q := r.db.Where("user_id = ?", userID)
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR text LIKE ?", like, like)
	}
	if filter.Mood != "" {
		q = q.Where("mood = ?", filter.Mood)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}

	var out []models.JournalEntry
	if err := q.Order("date DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list journal: %w", err)
	}
	return out, nil
}

// Get returns a single entry owned by userID.
func (r *JournalRepo) Get(userID, id uint) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		return nil, wrapNotFound(err, "get journal entry")
	}
	return &e, nil
}

// Create inserts e.
func (r *JournalRepo) Create(e *models.JournalEntry) error {
	if err := r.db.Create(e).Error; err != nil {
		return fmt.Errorf("repository: create journal entry: %w", err)
	}
	return nil
}

// Update saves e.
func (r *JournalRepo) Update(e *models.JournalEntry) error {
	if err := r.db.Save(e).Error; err != nil {
		return fmt.Errorf("repository: update journal entry: %w", err)
	}
	return nil
}

// Delete removes the entry if owned by userID.
func (r *JournalRepo) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.JournalEntry{})
	if res.Error != nil {
		return fmt.Errorf("repository: delete journal entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "delete journal entry")
	}
	return nil
}

// ListAll returns every entry regardless of user, for the backup snapshot.
func (r *JournalRepo) ListAll() ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list all journal: %w", err)
	}
	return out, nil
}

// Stats aggregates counts and the mean energy level for the user.
func (r *JournalRepo) Stats(userID uint) (*JournalStats, error) {
	s := &JournalStats{Moods: []MoodCount{}}

	if err := r.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID).
		Count(&s.Total).Error; err != nil {
		return nil, fmt.Errorf("repository: journal stats: %w", err)
	}
	if err := r.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID).
		Select("mood, COUNT(id) AS count").Group("mood").
		Scan(&s.Moods).Error; err != nil {
		return nil, fmt.Errorf("repository: journal stats: %w", err)
	}
	if s.Total > 0 {
		if err := r.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID).
			Select("AVG(energy)").Scan(&s.AverageEnergy).Error; err != nil {
			return nil, fmt.Errorf("repository: journal stats: %w", err)
		}
	}
	return s, nil
}
