package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/models"
)

// MedicalRepo persists MedicalRecord rows.
type MedicalRepo struct {
	db *gorm.DB
}

// MedicalFilter narrows List results.
type MedicalFilter struct {
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

// List returns the user's records matching filter, newest first.
func (r *MedicalRepo) List(userID uint, filter MedicalFilter) ([]models.MedicalRecord, error) {
	q := r.db.Where("user_id = ?", userID)
	if filter.Type != "" && filter.Type != "All" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}

	var out []models.MedicalRecord
	if err := q.Order("date DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list medical records: %w", err)
	}
	return out, nil
}

// ByType returns all records of one measurement type, oldest first, suitable
// for charting a trend.
func (r *MedicalRepo) ByType(userID uint, recordType string) ([]models.MedicalRecord, error) {
	var out []models.MedicalRecord
	err := r.db.Where("user_id = ? AND type = ?", userID, recordType).
		Order("date ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("repository: medical records by type: %w", err)
	}
	return out, nil
}

// Get returns a single record owned by userID.
func (r *MedicalRepo) Get(userID, id uint) (*models.MedicalRecord, error) {
	var m models.MedicalRecord
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, wrapNotFound(err, "get medical record")
	}
	return &m, nil
}

// Create inserts m.
func (r *MedicalRepo) Create(m *models.MedicalRecord) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("repository: create medical record: %w", err)
	}
	return nil
}

// Update saves m.
func (r *MedicalRepo) Update(m *models.MedicalRecord) error {
	if err := r.db.Save(m).Error; err != nil {
		return fmt.Errorf("repository: update medical record: %w", err)
	}
	return nil
}

// Delete removes the record if owned by userID.
func (r *MedicalRepo) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.MedicalRecord{})
	if res.Error != nil {
		return fmt.Errorf("repository: delete medical record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "delete medical record")
	}
	return nil
}

// ListAll returns every record regardless of user, for the backup snapshot.
func (r *MedicalRepo) ListAll() ([]models.MedicalRecord, error) {
	var out []models.MedicalRecord
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list all medical records: %w", err)
	}
	return out, nil
}
