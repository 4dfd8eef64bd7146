package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	_ "image/jpeg"
)

// pngImage renders a w×h PNG with a simple gradient so the encoder has
// real pixel data to work with.
func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeImageResizesAndReplaces(t *testing.T) {
	s := tempStore(t, 64<<20)

	data := pngImage(t, 2000, 1600)
	f, err := s.Ingest(bytes.NewReader(data), "image/png", "big.png", int64(len(data)))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	original := f.AbsPath

	if err := s.NormalizeImage(f); err != nil {
		t.Fatalf("NormalizeImage: %v", err)
	}

	if !strings.HasSuffix(f.Name, "_optimized.jpg") {
		t.Errorf("name = %q, want _optimized.jpg suffix", f.Name)
	}
	if _, err := os.Stat(original); !os.IsNotExist(err) {
		t.Errorf("original file still present")
	}
	if n := countFiles(t, s.Root()); n != 1 {
		t.Errorf("%d files on disk, want 1", n)
	}

	out, err := os.Open(f.AbsPath)
	if err != nil {
		t.Fatalf("open normalized: %v", err)
	}
	defer out.Close()
	cfg, format, err := image.DecodeConfig(out)
	if err != nil {
		t.Fatalf("decode normalized: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	// 2000×1600 fit into 1200×1200 keeps the aspect ratio.
	if cfg.Width != 1200 || cfg.Height != 960 {
		t.Errorf("dimensions = %dx%d, want 1200x960", cfg.Width, cfg.Height)
	}
}

func TestNormalizeImageSkipsSmallImages(t *testing.T) {
	s := tempStore(t, 1<<20)

	data := pngImage(t, 400, 300)
	f, err := s.Ingest(bytes.NewReader(data), "image/png", "small.png", int64(len(data)))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := s.NormalizeImage(f); err != nil {
		t.Fatalf("NormalizeImage: %v", err)
	}

	// Small images still get re-encoded to JPEG but keep their size.
	out, err := os.Open(f.AbsPath)
	if err != nil {
		t.Fatalf("open normalized: %v", err)
	}
	defer out.Close()
	cfg, _, err := image.DecodeConfig(out)
	if err != nil {
		t.Fatalf("decode normalized: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("dimensions = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}
}

func TestNormalizeImageIgnoresVideos(t *testing.T) {
	s := tempStore(t, 1<<20)

	f, err := s.Ingest(strings.NewReader("mp4"), "video/mp4", "clip.mp4", 3)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	name := f.Name

	if err := s.NormalizeImage(f); err != nil {
		t.Fatalf("NormalizeImage: %v", err)
	}
	if f.Name != name {
		t.Errorf("video file renamed to %q", f.Name)
	}
}

func TestNormalizeImageRejectsCorruptData(t *testing.T) {
	s := tempStore(t, 1<<20)

	f, err := s.Ingest(strings.NewReader("not an image"), "image/png", "bad.png", 12)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := s.NormalizeImage(f); err == nil {
		t.Fatal("NormalizeImage accepted corrupt data")
	}
	// The original stays on disk so the caller can clean up.
	if _, err := os.Stat(f.AbsPath); err != nil {
		t.Errorf("original removed after failed normalize: %v", err)
	}
}
