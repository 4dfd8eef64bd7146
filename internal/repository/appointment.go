package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/models"
)

// AppointmentRepo persists Appointment records.
type AppointmentRepo struct {
	db *gorm.DB
}

// AppointmentFilter narrows List results.
type AppointmentFilter struct {
	Type      string
	Completed *bool
	StartDate *time.Time
	EndDate   *time.Time
}

// List returns the user's appointments matching filter, soonest first.
func (r *AppointmentRepo) List(userID uint, filter AppointmentFilter) ([]models.Appointment, error) {
	q := r.db.Where("user_id = ?", userID)
	if filter.Type != "" && filter.Type != "All" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}

	var out []models.Appointment
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list appointments: %w", err)
	}
	return out, nil
}

// Upcoming returns at most limit pending appointments from now on.
func (r *AppointmentRepo) Upcoming(userID uint, limit int) ([]models.Appointment, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []models.Appointment
	err := r.db.Where("user_id = ? AND date >= ? AND completed = ?", userID, time.Now(), false).
		Order("date ASC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("repository: upcoming appointments: %w", err)
	}
	return out, nil
}

// Get returns a single appointment owned by userID.
func (r *AppointmentRepo) Get(userID, id uint) (*models.Appointment, error) {
	var a models.Appointment
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		return nil, wrapNotFound(err, "get appointment")
	}
	return &a, nil
}

// Create inserts a.
func (r *AppointmentRepo) Create(a *models.Appointment) error {
	if err := r.db.Create(a).Error; err != nil {
		return fmt.Errorf("repository: create appointment: %w", err)
	}
	return nil
}

// Update saves a.
func (r *AppointmentRepo) Update(a *models.Appointment) error {
	if err := r.db.Save(a).Error; err != nil {
		return fmt.Errorf("repository: update appointment: %w", err)
	}
	return nil
}

// Delete removes the appointment if owned by userID.
func (r *AppointmentRepo) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Appointment{})
	if res.Error != nil {
		return fmt.Errorf("repository: delete appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "delete appointment")
	}
	return nil
}

// ListAll returns every appointment regardless of user, for the backup
// snapshot.
func (r *AppointmentRepo) ListAll() ([]models.Appointment, error) {
	var out []models.Appointment
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list all appointments: %w", err)
	}
	return out, nil
}
