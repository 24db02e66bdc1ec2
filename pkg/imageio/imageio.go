// Package imageio decodes and encodes the image formats found in YOLO
// dataset trees: jpg/jpeg, png, bmp, tif/tiff, plus webp.
package imageio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExts lists the image extensions (lowercase, with dot) that are
// treated as dataset images.
var SupportedExts = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

// IsImageFile reports whether the filename carries a supported image
// extension.
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SupportedExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads and decodes an image from path. Decoding goes through the
// registered format decoders first, with an explicit WebP fallback for
// files whose header the generic path does not recognize.
func Load(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// Save encodes img to path, choosing the encoder from the file extension.
// quality applies to JPEG and WebP output.
func Save(img image.Image, path string, quality int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Quality: float32(quality)})
	case ".bmp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return bmp.Encode(f, img)
	case ".tif", ".tiff":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".png":
		return imaging.Save(img, path)
	default: // jpg/jpeg
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	}
}
