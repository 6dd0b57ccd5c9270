package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "mapproj")
	sc.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }

	tests := []struct {
		tag  string
		want string
	}{
		{"", filepath.Join("shots", "mapproj_2024-03-05_14-07-09.png")},
		{"gnomonic", filepath.Join("shots", "mapproj_gnomonic_2024-03-05_14-07-09.png")},
	}
	for _, tt := range tests {
		if got := sc.GenerateFilename(tt.tag); got != tt.want {
			t.Errorf("GenerateFilename(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestCapture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "frame")

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	path, err := sc.Capture(img, "ortho")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", got.Bounds())
	}
	r, g, b, _ := got.At(2, 1).RGBA()
	if r>>8 != 9 || g>>8 != 8 || b>>8 != 7 {
		t.Errorf("pixel = %d %d %d", r>>8, g>>8, b>>8)
	}
}
