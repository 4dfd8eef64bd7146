// Package upload accepts media files and stores them under a
// kind-partitioned uploads directory.
package upload

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/solmara/cuna/internal/apperr"
)

// Kind is the declared media category of an ingested file.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindOther Kind = "other"
)

// KindFor maps a declared MIME type to a media kind.
func KindFor(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	default:
		return KindOther
	}
}

func (k Kind) subdir() string {
	switch k {
	case KindImage:
		return "images"
	case KindVideo:
		return "videos"
	default:
		return "other"
	}
}

func (k Kind) prefix() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

// StoredFile references an ingested file on disk. WebPath is the relative
// URL the rest of the system records against domain entities.
type StoredFile struct {
	Name    string
	AbsPath string
	WebPath string
	Kind    Kind
	Size    int64
}

// Store writes incoming files under a single uploads root.
type Store struct {
	root     string // absolute path to the uploads directory
	maxBytes int64
}

// NewStore creates a Store rooted at dir, creating it if absent.
// maxBytes caps the accepted file size.
func NewStore(dir string, maxBytes int64) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("upload: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create root: %w", err)
	}
	return &Store{root: abs, maxBytes: maxBytes}, nil
}

// Root returns the absolute uploads directory.
func (s *Store) Root() string {
	return s.root
}

// Ingest validates and stores an incoming file. The declared MIME type must
// be image/* or video/*, otherwise apperr.ErrUnsupportedMediaType is
// returned before anything touches disk. A declared size above the ceiling
// fails with apperr.ErrPayloadTooLarge; the actual stream is also capped so
// a lying client cannot exceed it. The stored name is
// {prefix}-{unix-millis}-{random}{ext}, unique without coordination.
func (s *Store) Ingest(r io.Reader, mimeType, originalName string, declaredSize int64) (*StoredFile, error) {
	kind := KindFor(mimeType)
	if kind == KindOther {
		return nil, fmt.Errorf("upload: %s: %w", mimeType, apperr.ErrUnsupportedMediaType)
	}
	if declaredSize > s.maxBytes {
		return nil, fmt.Errorf("upload: declared %d bytes: %w", declaredSize, apperr.ErrPayloadTooLarge)
	}

	dir := filepath.Join(s.root, kind.subdir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create %s dir: %w", kind.subdir(), err)
	}

	name := fmt.Sprintf("%s-%d-%d%s",
		kind.prefix(), time.Now().UnixMilli(), rand.Int64N(1_000_000_000),
		filepath.Ext(originalName))
	abs := filepath.Join(dir, name)

	// Stage in a temp file so a rejected or failed upload never occupies
	// the final path.
	tmp, err := os.CreateTemp(dir, ".cuna-upload-*")
	if err != nil {
		return nil, fmt.Errorf("upload: create temp: %w", err)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	written, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("upload: write: %w", err)
	}
	if written > s.maxBytes {
		return nil, fmt.Errorf("upload: stream exceeds %d bytes: %w", s.maxBytes, apperr.ErrPayloadTooLarge)
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("upload: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("upload: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return nil, fmt.Errorf("upload: rename: %w", err)
	}
	success = true

	return &StoredFile{
		Name:    name,
		AbsPath: abs,
		WebPath: path.Join("/uploads", kind.subdir(), name),
		Kind:    kind,
		Size:    written,
	}, nil
}
