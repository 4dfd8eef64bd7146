package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/solmara/cuna/internal/apperr"
	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
	"github.com/solmara/cuna/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func seedMemories(t *testing.T, repo *repository.Repo, userID uint) {
	t.Helper()
	rows := []models.Memory{
		{UserID: userID, Title: "First kick", Text: "felt it today", Category: "Milestones", Date: date(2026, 3, 1), IsFavorite: true},
		{UserID: userID, Title: "Belly photo", Text: "week 20", Category: "Photos", Date: date(2026, 3, 10), Image: "/uploads/images/image-1-1_optimized.jpg", MediaType: "image"},
		{UserID: userID, Title: "Checkup notes", Text: "all good", Category: "Medical", Date: date(2026, 4, 2)},
	}
	for i := range rows {
		if err := repo.Memories.Create(&rows[i]); err != nil {
			t.Fatalf("create memory: %v", err)
		}
	}
}

func TestMemoryListFilters(t *testing.T) {
	repo, userID := testutil.Repo(t)
	seedMemories(t, repo, userID)

	all, err := repo.Memories.List(userID, repository.MemoryFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].Title != "Checkup notes" {
		t.Errorf("first = %q, want newest", all[0].Title)
	}

	byCategory, err := repo.Memories.List(userID, repository.MemoryFilter{Category: "Photos"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byCategory) != 1 || byCategory[0].Title != "Belly photo" {
		t.Errorf("category filter returned %+v", byCategory)
	}

	// "All" disables the category filter.
	allCat, err := repo.Memories.List(userID, repository.MemoryFilter{Category: "All"})
	if err != nil {
		t.Fatal(err)
	}
	if len(allCat) != 3 {
		t.Errorf("category=All returned %d rows", len(allCat))
	}

	bySearch, err := repo.Memories.List(userID, repository.MemoryFilter{Search: "kick"})
	if err != nil {
		t.Fatal(err)
	}
	if len(bySearch) != 1 || bySearch[0].Title != "First kick" {
		t.Errorf("search filter returned %+v", bySearch)
	}

	byRange, err := repo.Memories.List(userID, repository.MemoryFilter{
		StartDate: ptr(date(2026, 3, 5)),
		EndDate:   ptr(date(2026, 3, 31)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(byRange) != 1 || byRange[0].Title != "Belly photo" {
		t.Errorf("date range filter returned %+v", byRange)
	}

	favorites, err := repo.Memories.List(userID, repository.MemoryFilter{Favorite: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(favorites) != 1 || favorites[0].Title != "First kick" {
		t.Errorf("favorite filter returned %+v", favorites)
	}
}

func TestMemoryStats(t *testing.T) {
	repo, userID := testutil.Repo(t)
	seedMemories(t, repo, userID)

	stats, err := repo.Memories.Stats(userID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if stats.WithMedia != 1 {
		t.Errorf("with media = %d, want 1", stats.WithMedia)
	}
	if stats.Favorites != 1 {
		t.Errorf("favorites = %d, want 1", stats.Favorites)
	}
	if len(stats.Categories) != 3 {
		t.Errorf("categories = %+v", stats.Categories)
	}
}

func TestMemoryOwnershipScope(t *testing.T) {
	repo, userID := testutil.Repo(t)
	seedMemories(t, repo, userID)

	if _, err := repo.Memories.Get(userID+1, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cross-user get = %v, want ErrNotFound", err)
	}
	if err := repo.Memories.Delete(userID+1, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("cross-user delete = %v, want ErrNotFound", err)
	}
	// Still there for the owner.
	if _, err := repo.Memories.Get(userID, 1); err != nil {
		t.Errorf("owner get: %v", err)
	}
}

func TestMemoryDeleteMissing(t *testing.T) {
	repo, userID := testutil.Repo(t)

	if err := repo.Memories.Delete(userID, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("delete missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryTagsRoundTrip(t *testing.T) {
	repo, userID := testutil.Repo(t)

	m := &models.Memory{
		UserID:   userID,
		Title:    "Tagged",
		Text:     "t",
		Category: "Photos",
		Date:     date(2026, 5, 1),
		Tags:     models.StringList{"week20", "bump"},
	}
	if err := repo.Memories.Create(m); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Memories.Get(userID, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "week20" || got.Tags[1] != "bump" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestJournalStats(t *testing.T) {
	repo, userID := testutil.Repo(t)

	rows := []models.JournalEntry{
		{UserID: userID, Title: "a", Text: "x", Date: date(2026, 3, 1), Mood: "Happy", Energy: 8},
		{UserID: userID, Title: "b", Text: "y", Date: date(2026, 3, 2), Mood: "Happy", Energy: 6},
		{UserID: userID, Title: "c", Text: "z", Date: date(2026, 3, 3), Mood: "Tired", Energy: 4},
	}
	for i := range rows {
		if err := repo.Journal.Create(&rows[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := repo.Journal.Stats(userID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if stats.AverageEnergy != 6 {
		t.Errorf("average energy = %v, want 6", stats.AverageEnergy)
	}
	moods := map[string]int64{}
	for _, m := range stats.Moods {
		moods[m.Mood] = m.Count
	}
	if moods["Happy"] != 2 || moods["Tired"] != 1 {
		t.Errorf("moods = %v", moods)
	}
}

func TestJournalStatsEmpty(t *testing.T) {
	repo, userID := testutil.Repo(t)

	stats, err := repo.Journal.Stats(userID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 0 || stats.AverageEnergy != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestTaskFiltersAndStats(t *testing.T) {
	repo, userID := testutil.Repo(t)

	rows := []models.Task{
		{UserID: userID, Text: "Buy crib", Category: "Shopping", Priority: "High", EstimatedCost: 350, Completed: true},
		{UserID: userID, Text: "Pack hospital bag", Category: "Preparations", Priority: "Medium", EstimatedCost: 50},
		{UserID: userID, Text: "Pick name", Category: "Decisions", Priority: "Low"},
	}
	for i := range rows {
		if err := repo.Tasks.Create(&rows[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pending, err := repo.Tasks.List(userID, repository.TaskFilter{Completed: ptr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Errorf("pending = %d, want 2", len(pending))
	}

	highPriority, err := repo.Tasks.List(userID, repository.TaskFilter{Priority: "High"})
	if err != nil {
		t.Fatal(err)
	}
	if len(highPriority) != 1 || highPriority[0].Text != "Buy crib" {
		t.Errorf("priority filter returned %+v", highPriority)
	}

	stats, err := repo.Tasks.Stats(userID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 1 {
		t.Errorf("totals = %d/%d, want 3/1", stats.Total, stats.Completed)
	}
	if stats.TotalCost != 400 {
		t.Errorf("total cost = %v, want 400", stats.TotalCost)
	}
	for _, c := range stats.Categories {
		if c.Category == "Shopping" && c.Completed != 1 {
			t.Errorf("shopping completed = %d, want 1", c.Completed)
		}
	}
}

func TestAppointmentUpcoming(t *testing.T) {
	repo, userID := testutil.Repo(t)

	now := time.Now()
	rows := []models.Appointment{
		{UserID: userID, Title: "Past checkup", Date: now.Add(-48 * time.Hour)},
		{UserID: userID, Title: "Done ultrasound", Date: now.Add(24 * time.Hour), Completed: true},
		{UserID: userID, Title: "Next checkup", Date: now.Add(48 * time.Hour)},
		{UserID: userID, Title: "Lab work", Date: now.Add(72 * time.Hour)},
	}
	for i := range rows {
		if err := repo.Appointments.Create(&rows[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	upcoming, err := repo.Appointments.Upcoming(userID, 5)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("len = %d, want 2", len(upcoming))
	}
	if upcoming[0].Title != "Next checkup" || upcoming[1].Title != "Lab work" {
		t.Errorf("upcoming = %q, %q", upcoming[0].Title, upcoming[1].Title)
	}

	limited, err := repo.Appointments.Upcoming(userID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Title != "Next checkup" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestMedicalByType(t *testing.T) {
	repo, userID := testutil.Repo(t)

	rows := []models.MedicalRecord{
		{UserID: userID, Type: "Weight", Value: "68", Unit: "kg", Date: date(2026, 4, 1), Week: 22},
		{UserID: userID, Type: "Weight", Value: "66", Unit: "kg", Date: date(2026, 3, 1), Week: 18},
		{UserID: userID, Type: "BloodPressure", Value: "110/70", Date: date(2026, 3, 15), Week: 20},
	}
	for i := range rows {
		if err := repo.Medical.Create(&rows[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	weights, err := repo.Medical.ByType(userID, "Weight")
	if err != nil {
		t.Fatalf("ByType: %v", err)
	}
	if len(weights) != 2 {
		t.Fatalf("len = %d, want 2", len(weights))
	}
	// Oldest first for trend charts.
	if weights[0].Value != "66" || weights[1].Value != "68" {
		t.Errorf("order = %q, %q", weights[0].Value, weights[1].Value)
	}
}

func TestUserMergeSettings(t *testing.T) {
	repo, userID := testutil.Repo(t)

	merged, err := repo.Users.MergeSettings(userID, models.JSONMap{"notifications": false})
	if err != nil {
		t.Fatalf("MergeSettings: %v", err)
	}
	// The seeded theme survives the patch.
	if merged["themeColor"] != "#f472b6" {
		t.Errorf("themeColor = %v", merged["themeColor"])
	}
	if merged["notifications"] != false {
		t.Errorf("notifications = %v", merged["notifications"])
	}

	u, err := repo.Users.Get(userID)
	if err != nil {
		t.Fatal(err)
	}
	if u.Settings["notifications"] != false {
		t.Errorf("stored settings = %v", u.Settings)
	}
}
