package imageio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8(x * 7), uint8(y * 5), 200, 255})
		}
	}
	return img
}

func TestIsImageFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.png", true},
		{"a.bmp", true},
		{"a.tif", true},
		{"a.tiff", true},
		{"a.txt", false},
		{"a.webp", false}, // not a dataset image extension
		{"a", false},
	}
	for _, tc := range cases {
		if got := IsImageFile(tc.name); got != tc.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := createTestImage(32, 24)

	// Lossless formats must round trip exactly.
	for _, ext := range []string{".png", ".bmp", ".tif"} {
		path := filepath.Join(dir, "img"+ext)
		if err := Save(src, path, 95); err != nil {
			t.Fatalf("Save %s failed: %v", ext, err)
		}

		img, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s failed: %v", ext, err)
		}
		b := img.Bounds()
		if b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("%s: expected 32x24, got %dx%d", ext, b.Dx(), b.Dy())
		}

		r0, g0, b0, _ := src.At(10, 10).RGBA()
		r1, g1, b1, _ := img.At(10, 10).RGBA()
		if r0 != r1 || g0 != g1 || b0 != b1 {
			t.Errorf("%s: pixel mismatch after round trip", ext)
		}
	}
}

func TestSaveLoadJPEG(t *testing.T) {
	dir := t.TempDir()
	src := createTestImage(32, 24)
	path := filepath.Join(dir, "img.jpg")

	if err := Save(src, path, 95); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("expected 32x24, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.jpg")
	if err := os.WriteFile(path, []byte("definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for garbage content")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
