// Package repository provides user-scoped data access over the SQLite store.
// Every query takes the owning user ID as an explicit parameter; nothing
// assumes a hidden current user.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/apperr"
)

// Repo bundles per-entity repositories sharing one database handle.
type Repo struct {
	Users        *UserRepo
	Memories     *MemoryRepo
	Journal      *JournalRepo
	Tasks        *TaskRepo
	Appointments *AppointmentRepo
	Medical      *MedicalRepo
}

// New creates a Repo over db.
func New(db *gorm.DB) *Repo {
	return &Repo{
		Users:        &UserRepo{db: db},
		Memories:     &MemoryRepo{db: db},
		Journal:      &JournalRepo{db: db},
		Tasks:        &TaskRepo{db: db},
		Appointments: &AppointmentRepo{db: db},
		Medical:      &MedicalRepo{db: db},
	}
}

func wrapNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return fmt.Errorf("repository: %s: %w", what, err)
}
