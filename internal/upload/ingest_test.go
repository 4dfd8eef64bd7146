package upload

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/solmara/cuna/internal/apperr"
)

func tempStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

// countFiles walks the store root and counts regular files.
func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	return n
}

func TestIngestImage(t *testing.T) {
	s := tempStore(t, 1<<20)

	f, err := s.Ingest(strings.NewReader("fake image bytes"), "image/jpeg", "photo.jpg", 16)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if f.Kind != KindImage {
		t.Errorf("kind = %q, want image", f.Kind)
	}
	if f.Size != 16 {
		t.Errorf("size = %d, want 16", f.Size)
	}

	pattern := regexp.MustCompile(`^image-\d+-\d+\.jpg$`)
	if !pattern.MatchString(f.Name) {
		t.Errorf("name %q does not match generated pattern", f.Name)
	}
	if !strings.HasPrefix(f.WebPath, "/uploads/images/") {
		t.Errorf("web path = %q", f.WebPath)
	}
	if _, err := os.Stat(f.AbsPath); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
	got, _ := os.ReadFile(f.AbsPath)
	if string(got) != "fake image bytes" {
		t.Errorf("content = %q", got)
	}
}

func TestIngestVideoGoesToVideosDir(t *testing.T) {
	s := tempStore(t, 1<<20)

	f, err := s.Ingest(strings.NewReader("mp4"), "video/mp4", "clip.mp4", 3)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if f.Kind != KindVideo {
		t.Errorf("kind = %q, want video", f.Kind)
	}
	if !strings.HasPrefix(f.WebPath, "/uploads/videos/video-") {
		t.Errorf("web path = %q", f.WebPath)
	}
}

func TestIngestRejectsUnsupportedType(t *testing.T) {
	s := tempStore(t, 1<<20)

	_, err := s.Ingest(strings.NewReader("%PDF-1.4"), "application/pdf", "doc.pdf", 8)
	if !errors.Is(err, apperr.ErrUnsupportedMediaType) {
		t.Fatalf("err = %v, want ErrUnsupportedMediaType", err)
	}
	if n := countFiles(t, s.Root()); n != 0 {
		t.Errorf("%d files on disk after rejection, want 0", n)
	}
}

func TestIngestRejectsDeclaredTooLarge(t *testing.T) {
	s := tempStore(t, 100)

	_, err := s.Ingest(strings.NewReader("x"), "image/png", "big.png", 101)
	if !errors.Is(err, apperr.ErrPayloadTooLarge) {
		t.Fatalf("err = %v, want ErrPayloadTooLarge", err)
	}
	if n := countFiles(t, s.Root()); n != 0 {
		t.Errorf("%d files on disk after rejection, want 0", n)
	}
}

func TestIngestRejectsOversizedStream(t *testing.T) {
	// Declared size lies; the actual stream is over the ceiling.
	s := tempStore(t, 10)

	_, err := s.Ingest(strings.NewReader(strings.Repeat("a", 64)), "image/png", "x.png", 5)
	if !errors.Is(err, apperr.ErrPayloadTooLarge) {
		t.Fatalf("err = %v, want ErrPayloadTooLarge", err)
	}
	if n := countFiles(t, s.Root()); n != 0 {
		t.Errorf("%d files on disk after rejection, want 0", n)
	}
}

func TestIngestUniqueNames(t *testing.T) {
	s := tempStore(t, 1<<20)

	seen := map[string]bool{}
	for range 20 {
		f, err := s.Ingest(strings.NewReader("x"), "image/png", "a.png", 1)
		if err != nil {
			t.Fatalf("Ingest: %v", err)
		}
		if seen[f.Name] {
			t.Fatalf("duplicate generated name %q", f.Name)
		}
		seen[f.Name] = true
	}
}

func TestKindFor(t *testing.T) {
	cases := []struct {
		mime string
		want Kind
	}{
		{"image/jpeg", KindImage},
		{"image/png", KindImage},
		{"video/mp4", KindVideo},
		{"application/pdf", KindOther},
		{"text/plain", KindOther},
		{"", KindOther},
	}
	for _, c := range cases {
		if got := KindFor(c.mime); got != c.want {
			t.Errorf("KindFor(%q) = %q, want %q", c.mime, got, c.want)
		}
	}
}
