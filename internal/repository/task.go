package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/models"
)

// TaskRepo persists Task records.
type TaskRepo struct {
	db *gorm.DB
}

// TaskFilter narrows List results. Completed is a tri-state: nil means
// "either".
type TaskFilter struct {
	Category  string
	Completed *bool
	Priority  string
	Search    string
}

// TaskCategoryCount is one row of the per-category breakdown.
type TaskCategoryCount struct {
	Category  string `json:"category"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
}

// TaskStats summarises a user's checklist.
type TaskStats struct {
	Total      int64               `json:"totalTasks"`
	Completed  int64               `json:"completedTasks"`
	Categories []TaskCategoryCount `json:"categoryStats"`
	TotalCost  float64             `json:"totalEstimatedCost"`
}

// List returns the user's tasks matching filter, pending first then by due
// date.
func (r *TaskRepo) List(userID uint, filter TaskFilter) ([]models.Task, error) {
	q := r.db.Where("user_id = ?", userID)
	if filter.Category != "" && filter.Category != "All" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("text LIKE ? OR notes LIKE ?", like, like)
	}

	var out []models.Task
	if err := q.Order("completed ASC, due_date ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list tasks: %w", err)
	}
	return out, nil
}

// Get returns a single task owned by userID.
func (r *TaskRepo) Get(userID, id uint) (*models.Task, error) {
	var t models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		return nil, wrapNotFound(err, "get task")
	}
	return &t, nil
}

// Create inserts t.
func (r *TaskRepo) Create(t *models.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("repository: create task: %w", err)
	}
	return nil
}

// Update saves t.
func (r *TaskRepo) Update(t *models.Task) error {
	if err := r.db.Save(t).Error; err != nil {
		return fmt.Errorf("repository: update task: %w", err)
	}
	return nil
}

// Delete removes the task if owned by userID.
func (r *TaskRepo) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("repository: delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "delete task")
	}
	return nil
}

// ListAll returns every task regardless of user, for the backup snapshot.
func (r *TaskRepo) ListAll() ([]models.Task, error) {
	var out []models.Task
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("repository: list all tasks: %w", err)
	}
	return out, nil
}

// Stats aggregates completion counts and the summed estimated cost.
func (r *TaskRepo) Stats(userID uint) (*TaskStats, error) {
	s := &TaskStats{Categories: []TaskCategoryCount{}}

	if err := r.db.Model(&models.Task{}).Where("user_id = ?", userID).
		Count(&s.Total).Error; err != nil {
		return nil, fmt.Errorf("repository: task stats: %w", err)
	}
	if err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&s.Completed).Error; err != nil {
		return nil, fmt.Errorf("repository: task stats: %w", err)
	}
	if err := r.db.Model(&models.Task{}).Where("user_id = ?", userID).
		Select("category, COUNT(id) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Group("category").Scan(&s.Categories).Error; err != nil {
		return nil, fmt.Errorf("repository: task stats: %w", err)
	}
	if s.Total > 0 {
		if err := r.db.Model(&models.Task{}).Where("user_id = ?", userID).
			Select("COALESCE(SUM(estimated_cost), 0)").Scan(&s.TotalCost).Error; err != nil {
			return nil, fmt.Errorf("repository: task stats: %w", err)
		}
	}
	return s, nil
}
