// Package backup produces and prunes full-dataset archive files. An archive
// is a ZIP holding a data.json manifest with every domain row plus a copy of
// the uploads tree.
package backup

import (
	"archive/zip"
	"compress/flate"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
)

const (
	archivePrefix = "backup-"
	archiveSuffix = ".zip"

	manifestName    = "data.json"
	uploadsDirInZip = "uploads"
	manifestTimeISO = "2006-01-02T15:04:05.000Z"
)

// archiveFilename derives the archive name from its creation time: the
// manifest timestamp with ':' and '.' replaced by '-' so the name is safe
// on any filesystem. parseArchiveStamp reverses the substitution.
func archiveFilename(t time.Time) string {
	replacer := strings.NewReplacer(":", "-", ".", "-")
	return archivePrefix + replacer.Replace(t.Format(manifestTimeISO)) + archiveSuffix
}

// Manifest is the structured snapshot document embedded in every archive.
type Manifest struct {
	Timestamp string       `json:"timestamp"`
	Version   string       `json:"version"`
	Data      ManifestData `json:"data"`
}

// ManifestData holds all rows of all domain tables, read in full at capture
// time. Reads are not isolated from concurrent writes; a small skew across
// tables is accepted.
type ManifestData struct {
	Users          []models.User          `json:"users"`
	Memories       []models.Memory        `json:"memories"`
	Journals       []models.JournalEntry  `json:"journals"`
	Tasks          []models.Task          `json:"tasks"`
	Appointments   []models.Appointment   `json:"appointments"`
	MedicalRecords []models.MedicalRecord `json:"medicalRecords"`
}

// Service builds archives and enforces retention.
type Service struct {
	repo       *repository.Repo
	uploadsDir string
	backupDir  string
	version    string
	logger     *slog.Logger
}

// NewService creates a backup service writing archives into backupDir.
func NewService(repo *repository.Repo, uploadsDir, backupDir, version string, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		uploadsDir: uploadsDir,
		backupDir:  backupDir,
		version:    version,
		logger:     logger,
	}
}

// Create builds one archive and returns its absolute path. The ZIP is
// streamed to a temporary file that only takes the final name on a
// successful close, so a failed run never leaves a valid-looking archive
// behind.
func (s *Service) Create(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("backup: create backup dir: %w", err)
	}

	now := time.Now().UTC()
	filename := archiveFilename(now)
	finalPath := filepath.Join(s.backupDir, filename)

	manifest, err := s.snapshot(now)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.backupDir, ".cuna-backup-*")
	if err != nil {
		return "", fmt.Errorf("backup: create temp: %w", err)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	if err := writeManifest(zw, manifest); err != nil {
		return "", err
	}
	if err := s.addUploads(ctx, zw); err != nil {
		return "", err
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("backup: finalize zip: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("backup: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("backup: close temp: %w", err)
	}
	if err := os.Rename(tmpName, finalPath); err != nil {
		return "", fmt.Errorf("backup: rename: %w", err)
	}
	success = true

	info, statErr := os.Stat(finalPath)
	size := int64(0)
	if statErr == nil {
		size = info.Size()
	}
	s.logger.Info("backup created",
		slog.String("filename", filename),
		slog.Int64("bytes", size))

	return finalPath, nil
}

// snapshot reads every domain table in full.
func (s *Service) snapshot(now time.Time) (*Manifest, error) {
	users, err := s.repo.Users.ListAll()
	if err != nil {
		return nil, fmt.Errorf("backup: snapshot users: %w", err)
	}
	memories, err := s.repo.Memories.ListAll()
	if err != nil {
		return nil, fmt.Errorf("backup: snapshot memories: %w", err)
	}
	journals, err := s.repo.Journal.ListAll()
	if err != nil {
		return nil, fmt.Errorf("backup: snapshot journal: %w", err)
	}
	tasks, err := s.repo.Tasks.ListAll()
	if err != nil {
		return nil, fmt.Errorf("backup: snapshot tasks: %w", err)
	}
	appointments, err := s.repo.Appointments.ListAll()
	if err != nil {
		return nil, fmt.Errorf("backup: snapshot appointments: %w", err)
	}
	records, err := s.repo.Medical.ListAll()
	if err != nil {
		return nil, fmt.Errorf("backup: snapshot medical records: %w", err)
	}

	return &Manifest{
		Timestamp: now.Format(manifestTimeISO),
		Version:   s.version,
		Data: ManifestData{
			Users:          users,
			Memories:       memories,
			Journals:       journals,
			Tasks:          tasks,
			Appointments:   appointments,
			MedicalRecords: records,
		},
	}, nil
}

func writeManifest(zw *zip.Writer, m *Manifest) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     manifestName,
		Method:   zip.Deflate,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("backup: create manifest entry: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("backup: encode manifest: %w", err)
	}
	return nil
}

// addUploads streams the uploads tree into the archive under uploads/.
// A missing uploads directory is tolerated and only logged.
func (s *Service) addUploads(ctx context.Context, zw *zip.Writer) error {
	if _, err := os.Stat(s.uploadsDir); os.IsNotExist(err) {
		s.logger.Warn("uploads directory missing, archiving data only",
			slog.String("path", s.uploadsDir))
		return nil
	}

	return filepath.WalkDir(s.uploadsDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("backup: walk uploads: %w", walkErr)
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.uploadsDir, p)
		if err != nil {
			return fmt.Errorf("backup: relativize %s: %w", p, err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("backup: stat %s: %w", rel, err)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     uploadsDirInZip + "/" + filepath.ToSlash(rel),
			Method:   zip.Deflate,
			Modified: info.ModTime(),
		})
		if err != nil {
			return fmt.Errorf("backup: create entry %s: %w", rel, err)
		}
		src, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("backup: open %s: %w", rel, err)
		}
		defer src.Close()
		if _, err := io.Copy(w, src); err != nil {
			return fmt.Errorf("backup: copy %s: %w", rel, err)
		}
		return nil
	})
}
