package backup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ArchiveInfo describes one archive on disk.
type ArchiveInfo struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// parseArchiveStamp recovers the creation time embedded in an archive name.
// The name carries the manifest timestamp with ':' and '.' replaced by '-',
// so the separators at the fixed offsets go back before parsing; the date
// dashes are untouched.
func parseArchiveStamp(raw string) (time.Time, error) {
	if len(raw) != len(manifestTimeISO) || raw[13] != '-' || raw[16] != '-' || raw[19] != '-' {
		return time.Time{}, fmt.Errorf("malformed archive timestamp %q", raw)
	}
	iso := raw[:13] + ":" + raw[14:16] + ":" + raw[17:19] + "." + raw[20:]
	return time.Parse(manifestTimeISO, iso)
}

// List returns all archives in the backup directory, newest first. Files
// not matching the archive naming pattern are ignored.
func (s *Service) List() ([]ArchiveInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ArchiveInfo{}, nil
		}
		return nil, fmt.Errorf("backup: read backup dir: %w", err)
	}

	out := []ArchiveInfo{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, archiveSuffix) {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimPrefix(name, archivePrefix), archiveSuffix)
		ts, err := parseArchiveStamp(raw)
		if err != nil {
			s.logger.Warn("skipping archive with unparsable timestamp",
				slog.String("filename", name))
			continue
		}
		out = append(out, ArchiveInfo{
			Filename:  name,
			Path:      filepath.Join(s.backupDir, name),
			Timestamp: ts,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Prune deletes every archive beyond the keep most recent and returns how
// many were removed. Each deletion is independent: a failure is logged and
// the remaining candidates are still processed.
func (s *Service) Prune(keep int) (int, error) {
	archives, err := s.List()
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(archives) <= keep {
		return 0, nil
	}

	deleted := 0
	for _, a := range archives[keep:] {
		if err := os.Remove(a.Path); err != nil {
			s.logger.Error("failed to delete old archive",
				slog.String("filename", a.Filename),
				slog.String("error", err.Error()))
			continue
		}
		s.logger.Info("old archive deleted", slog.String("filename", a.Filename))
		deleted++
	}
	return deleted, nil
}
