// Package testutil provides shared test helpers for setting up databases,
// repositories and upload stores.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/solmara/cuna/internal/database"
	"github.com/solmara/cuna/internal/repository"
	"github.com/solmara/cuna/internal/upload"
)

// DB creates a temporary SQLite database with the schema migrated.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "cuna-test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return db
}

// Repo creates a repository over a temporary database with the default
// profile seeded, returning it together with the profile's user ID.
func Repo(t *testing.T) (*repository.Repo, uint) {
	t.Helper()
	db := DB(t)
	userID, err := database.SeedDefaultUser(db)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return repository.New(db), userID
}

// Uploads creates an upload store rooted in a temp directory.
func Uploads(t *testing.T, maxBytes int64) *upload.Store {
	t.Helper()
	store, err := upload.NewStore(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("new upload store: %v", err)
	}
	return store
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
