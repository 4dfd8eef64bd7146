package upload

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	maxImageDim = 1200
	jpegQuality = 85
)

// NormalizeImage re-encodes a just-ingested image as a JPEG bounded to
// 1200x1200 (aspect-preserving, never upscaled) and replaces the original:
// the new file is written first, then the original removed, then f is
// updated in place. Non-image files pass through untouched. On any failure
// the original file is left intact.
func (s *Store) NormalizeImage(f *StoredFile) error {
	if f.Kind != KindImage {
		return nil
	}

	img, err := imaging.Open(f.AbsPath)
	if err != nil {
		return fmt.Errorf("upload: decode image %s: %w", f.Name, err)
	}

	// Fit only shrinks; images already inside the bound keep their size
	// but are still re-encoded at the target quality.
	bounded := imaging.Fit(img, maxImageDim, maxImageDim, imaging.Lanczos)

	newName := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + "_optimized.jpg"
	newAbs := filepath.Join(filepath.Dir(f.AbsPath), newName)

	if err := imaging.Save(bounded, newAbs, imaging.JPEGQuality(jpegQuality)); err != nil {
		_ = os.Remove(newAbs)
		return fmt.Errorf("upload: encode image %s: %w", newName, err)
	}
	if err := os.Remove(f.AbsPath); err != nil {
		return fmt.Errorf("upload: remove original %s: %w", f.Name, err)
	}

	info, err := os.Stat(newAbs)
	if err != nil {
		return fmt.Errorf("upload: stat %s: %w", newName, err)
	}

	f.Name = newName
	f.AbsPath = newAbs
	f.WebPath = path.Join("/uploads", f.Kind.subdir(), newName)
	f.Size = info.Size()
	return nil
}
