package api

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Accepted enum values, mirrored by the client.
var (
	memoryCategories = []any{"Milestones", "Photos", "Videos", "Medical", "Emotional", "Symptoms"}
	memoryMoods      = []any{"Happy", "Neutral", "Sad", "Excited", "Anxious"}
	journalMoods     = []any{"Happy", "Neutral", "Sad", "Excited", "Anxious", "Tired"}
	taskCategories   = []any{"General", "Shopping", "Preparations", "Medical", "Decisions", "Education"}
	taskPriorities   = []any{"Low", "Medium", "High"}
	appointmentTypes = []any{"Checkup", "Ultrasound", "LabWork", "FollowUp", "Emergency"}
	medicalTypes     = []any{"Weight", "BloodPressure", "Glucose", "Hemoglobin", "Ultrasound", "Other"}
)

// parseDate accepts RFC 3339 or a plain calendar date.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// MemoryRequest is the create/update body for a memory. Date is a string so
// the same struct serves JSON bodies and multipart form fields.
type MemoryRequest struct {
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Date       string   `json:"date"`
	Category   string   `json:"category"`
	Mood       string   `json:"mood"`
	Location   string   `json:"location"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
	Weather    string   `json:"weather"`
	Duration   int      `json:"duration"`
}

func (r MemoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Text, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Category, validation.Required, validation.In(memoryCategories...)),
		validation.Field(&r.Mood, validation.In(memoryMoods...)),
	)
}

// JournalRequest is the create/update body for a journal entry.
type JournalRequest struct {
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Date      string   `json:"date"`
	Mood      string   `json:"mood"`
	Energy    int      `json:"energy"`
	Symptoms  []string `json:"symptoms"`
	Gratitude string   `json:"gratitude"`
	Tags      []string `json:"tags"`
	IsPrivate bool     `json:"isPrivate"`
}

func (r JournalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Text, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Mood, validation.In(journalMoods...)),
		validation.Field(&r.Energy, validation.Min(0), validation.Max(10)),
	)
}

// TaskRequest is the create/update body for a task.
type TaskRequest struct {
	Text          string  `json:"text"`
	Category      string  `json:"category"`
	Completed     bool    `json:"completed"`
	DueDate       string  `json:"dueDate"`
	Priority      string  `json:"priority"`
	Notes         string  `json:"notes"`
	EstimatedCost float64 `json:"estimatedCost"`
}

func (r TaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Category, validation.In(taskCategories...)),
		validation.Field(&r.Priority, validation.In(taskPriorities...)),
		validation.Field(&r.EstimatedCost, validation.Min(0.0)),
	)
}

// AppointmentRequest is the create/update body for an appointment.
type AppointmentRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Doctor    string `json:"doctor"`
	Location  string `json:"location"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	Completed bool   `json:"completed"`
	Reminder  bool   `json:"reminder"`
	Results   string `json:"results"`
}

func (r AppointmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Type, validation.In(appointmentTypes...)),
	)
}

// MedicalRecordRequest is the create/update body for a medical record.
type MedicalRecordRequest struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	Unit     string `json:"unit"`
	Notes    string `json:"notes"`
	Week     int    `json:"week"`
	IsNormal *bool  `json:"isNormal"`
}

func (r MedicalRecordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In(medicalTypes...)),
		validation.Field(&r.Value, validation.Required),
		validation.Field(&r.Week, validation.Min(0), validation.Max(42)),
	)
}

// ProfileRequest updates the pregnancy profile.
type ProfileRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	DueDate        string `json:"dueDate"`
	BabyName       string `json:"babyName"`
	Gender         string `json:"gender"`
	ConceptionDate string `json:"conceptionDate"`
	DoctorName     string `json:"doctorName"`
	Hospital       string `json:"hospital"`
	PartnerName    string `json:"partnerName"`
	BloodType      string `json:"bloodType"`
	Allergies      string `json:"allergies"`
	Notes          string `json:"notes"`
}

func (r ProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.DueDate, validation.Required),
		validation.Field(&r.Gender, validation.In("Surprise", "Boy", "Girl")),
	)
}

// PruneRequest asks retention to keep only the N most recent archives.
type PruneRequest struct {
	Keep int `json:"keep"`
}

func (r PruneRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Keep, validation.Min(0)),
	)
}
