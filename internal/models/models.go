// Package models defines the domain types for Cuna.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a JSON-encoded list of strings stored in a single column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("models: marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// JSONMap is a JSON-encoded object stored in a single column.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("models: marshal map: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into JSONMap", src)
	}
	if len(data) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// User is the single pregnancy profile. Exactly one row is seeded at startup;
// every other table carries its ID as an explicit scope.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `json:"email"`
	DueDate        time.Time  `gorm:"not null" json:"dueDate"`
	BabyName       string     `gorm:"default:My Baby" json:"babyName"`
	Gender         string     `gorm:"default:Surprise" json:"gender"`
	ConceptionDate *time.Time `json:"conceptionDate,omitempty"`
	DoctorName     string     `json:"doctorName"`
	Hospital       string     `json:"hospital"`
	PartnerName    string     `json:"partnerName"`
	BloodType      string     `json:"bloodType"`
	Allergies      string     `json:"allergies"`
	Notes          string     `json:"notes"`
	Settings       JSONMap    `gorm:"type:text" json:"settings"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Memory is a recorded moment, optionally with an ingested photo or video.
// Image and Video hold web-servable relative paths under /uploads.
type Memory struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	Text       string     `gorm:"not null" json:"text"`
	Date       time.Time  `gorm:"not null;index" json:"date"`
	Category   string     `gorm:"not null" json:"category"`
	Mood       string     `gorm:"default:Neutral" json:"mood"`
	Image      string     `json:"image"`
	Video      string     `json:"video"`
	MediaType  string     `gorm:"default:none" json:"mediaType"`
	Location   string     `json:"location"`
	Tags       StringList `gorm:"type:text" json:"tags"`
	IsFavorite bool       `gorm:"default:false" json:"isFavorite"`
	Weather    string     `json:"weather"`
	Duration   int        `json:"duration"`
	UserID     uint       `gorm:"not null;index" json:"userId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// JournalEntry is a dated diary entry with mood and symptom tracking.
type JournalEntry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Text      string     `gorm:"not null" json:"text"`
	Date      time.Time  `gorm:"not null;index" json:"date"`
	Mood      string     `gorm:"default:Neutral" json:"mood"`
	Energy    int        `gorm:"default:5" json:"energy"`
	Symptoms  StringList `gorm:"type:text" json:"symptoms"`
	Gratitude string     `json:"gratitude"`
	Tags      StringList `gorm:"type:text" json:"tags"`
	IsPrivate bool       `gorm:"default:false" json:"isPrivate"`
	UserID    uint       `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Task is a to-do item on the preparation checklist.
type Task struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Text          string     `gorm:"not null" json:"text"`
	Category      string     `gorm:"default:General" json:"category"`
	Completed     bool       `gorm:"default:false" json:"completed"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Priority      string     `gorm:"default:Medium" json:"priority"`
	Notes         string     `json:"notes"`
	EstimatedCost float64    `gorm:"default:0" json:"estimatedCost"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	UserID        uint       `gorm:"not null;index" json:"userId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Appointment is a scheduled medical visit.
type Appointment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Doctor    string    `json:"doctor"`
	Location  string    `json:"location"`
	Type      string    `gorm:"default:Checkup" json:"type"`
	Notes     string    `json:"notes"`
	Completed bool      `gorm:"default:false" json:"completed"`
	Reminder  bool      `gorm:"default:true" json:"reminder"`
	Results   string    `json:"results"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MedicalRecord is a single measurement or test result.
type MedicalRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Type      string    `gorm:"not null" json:"type"`
	Value     string    `gorm:"not null" json:"value"`
	Unit      string    `json:"unit"`
	Notes     string    `json:"notes"`
	Week      int       `json:"week"`
	IsNormal  bool      `gorm:"default:true" json:"isNormal"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
