// Package splitter materializes overlapping tiles from a YOLO dataset:
// it crops each source image into the regions computed by pkg/tiling,
// re-projects the image's annotations into each tile, and writes the
// resulting image/label pairs.
//
// The core is the pure Split function; Processor owns all directory
// traversal, file I/O, and counters.
package splitter

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/cvtool/yolo-tiler/internal/utils"
	"github.com/cvtool/yolo-tiler/pkg/imageio"
	"github.com/cvtool/yolo-tiler/pkg/tiling"
	"github.com/cvtool/yolo-tiler/pkg/types"
	"github.com/cvtool/yolo-tiler/pkg/yolo"
)

// Options configures a split run.
type Options struct {
	// OverlapRatio is the overlap band as a fraction of each image
	// dimension, 0 to 0.5.
	OverlapRatio float64
	// GenerateCenter adds a fifth tile centered on the image middle.
	GenerateCenter bool
	// RequireFullBBox drops any tile that does not fully contain at
	// least one annotation.
	RequireFullBBox bool
	// KeepOriginal keeps the unmodified source image and label next to
	// the tiles (copied into the output tree, or left in place).
	KeepOriginal bool
	// Quality is the JPEG/WebP encode quality for tile images.
	Quality int
	// Debug writes PNG overlays of the re-projected boxes into a debug/
	// directory under the output root.
	Debug bool
}

// Tile is one materialized crop: the region it came from, the cropped
// pixels, and the annotations that survived reprojection.
type Tile struct {
	Region      tiling.Region
	Image       *image.NRGBA
	Annotations []types.Annotation
	// Full[i] reports whether Annotations[i] was entirely inside the
	// region (no clipping loss).
	Full []bool
	// HasFullBBox is set when at least one annotation was entirely
	// inside the region.
	HasFullBBox bool
}

// Split crops img into the given regions and re-projects anns into each.
// Empty regions are skipped. With requireFull set, a tile whose surviving
// annotations are all clipped (none fully contained) is omitted from the
// result. Tiles with no surviving annotations at all are still produced
// (their label file will be empty); emptiness alone never suppresses a
// tile.
//
// Annotation order within a tile follows the input order, so the output
// is deterministic for a given input.
func Split(img image.Image, anns []types.Annotation, regions []tiling.Region, requireFull bool) []Tile {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	tiles := make([]Tile, 0, len(regions))
	for _, region := range regions {
		if region.Empty() {
			continue
		}

		tile := Tile{Region: region}
		for _, a := range anns {
			na, full, ok := tiling.Reproject(a, w, h, region)
			if !ok {
				continue
			}
			tile.Annotations = append(tile.Annotations, na)
			tile.Full = append(tile.Full, full)
			if full {
				tile.HasFullBBox = true
			}
		}

		if requireFull && len(tile.Annotations) > 0 && !tile.HasFullBBox {
			continue
		}

		tile.Image = imaging.Crop(img, region.Rect())
		tiles = append(tiles, tile)
	}

	return tiles
}

// Counters accumulates the per-run totals reported in the final summary.
type Counters struct {
	ImagesFound   int
	ImagesSplit   int
	ImagesFailed  int
	Tiles         int
	Annotations   int
	LabelLinesBad int
}

// Processor walks a dataset root containing images/ and labels/ and
// writes tiles for every image. Per-image and per-tile failures are
// logged and skipped; only configuration problems abort the run.
type Processor struct {
	root      string
	outputDir string // empty means split in place
	exportDir string
	overwrite bool
	opts      Options

	Counters Counters
}

// New returns a Processor for the dataset at root. outputDir may be empty
// to write tiles back into the source tree. exportDir, when set, receives
// a copy of every newly generated tile.
func New(root, outputDir, exportDir string, overwrite bool, opts Options) *Processor {
	return &Processor{
		root:      root,
		outputDir: outputDir,
		exportDir: exportDir,
		overwrite: overwrite,
		opts:      opts,
	}
}

// Validate checks the dataset layout and options before any side effect.
// Failures here are configuration errors and abort the whole run.
func (p *Processor) Validate() error {
	if !utils.DirExists(p.root) {
		return fmt.Errorf("root directory does not exist: %s", p.root)
	}
	if !utils.DirExists(p.imagesDir()) {
		return fmt.Errorf("images directory does not exist: %s", p.imagesDir())
	}
	if !utils.DirExists(p.labelsDir()) {
		return fmt.Errorf("labels directory does not exist: %s", p.labelsDir())
	}
	if p.opts.OverlapRatio < 0 || p.opts.OverlapRatio > 0.5 {
		return fmt.Errorf("overlap ratio must be between 0 and 0.5, got %g", p.opts.OverlapRatio)
	}
	if p.outputDir != "" && utils.DirExists(p.outputDir) && !p.overwrite {
		return fmt.Errorf("output directory already exists: %s (use -overwrite)", p.outputDir)
	}
	if p.exportDir != "" && utils.DirExists(p.exportDir) && !p.overwrite {
		return fmt.Errorf("export directory already exists: %s (use -overwrite)", p.exportDir)
	}
	return nil
}

func (p *Processor) imagesDir() string { return filepath.Join(p.root, "images") }
func (p *Processor) labelsDir() string { return filepath.Join(p.root, "labels") }

// Run validates, prepares the output tree, and processes every image.
func (p *Processor) Run() error {
	if err := p.Validate(); err != nil {
		return err
	}

	outImages, outLabels, err := p.setupOutputDirs()
	if err != nil {
		return err
	}
	expImages, expLabels, err := p.setupExportDirs()
	if err != nil {
		return err
	}

	images, err := p.listImages()
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no image files found in %s", p.imagesDir())
	}
	p.Counters.ImagesFound = len(images)

	if p.opts.KeepOriginal && p.outputDir != "" {
		if err := p.copyOriginals(outImages, outLabels); err != nil {
			return err
		}
	}
	if p.opts.KeepOriginal && p.exportDir != "" {
		if err := p.copyOriginals(expImages, expLabels); err != nil {
			return err
		}
	}

	for i, imagePath := range images {
		log.Printf("[%d/%d] %s", i+1, len(images), filepath.Base(imagePath))

		n, err := p.processImage(imagePath, outImages, outLabels, expImages, expLabels)
		if err != nil {
			// Per-image failures do not abort the batch.
			log.Printf("  warning: %v", err)
			p.Counters.ImagesFailed++
			continue
		}
		if n > 0 {
			p.Counters.ImagesSplit++
		}
	}

	// In-place split without keep-original: the tiles replace the
	// sources.
	if !p.opts.KeepOriginal && p.outputDir == "" {
		p.removeOriginals(images)
	}

	p.logSummary()
	return nil
}

// processImage splits one image and writes its tiles. The returned count
// is the number of tiles written.
func (p *Processor) processImage(imagePath string, outImages, outLabels, expImages, expLabels string) (int, error) {
	img, err := imageio.Load(imagePath)
	if err != nil {
		return 0, fmt.Errorf("unreadable image: %w", err)
	}

	stem := utils.Stem(imagePath)
	ext := filepath.Ext(imagePath)

	anns, skipped, err := yolo.ReadLabels(filepath.Join(p.labelsDir(), stem+".txt"))
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		log.Printf("  warning: skipped %d malformed label line(s) for %s", skipped, stem)
		p.Counters.LabelLinesBad += skipped
	}

	bounds := img.Bounds()
	regions := tiling.Regions(bounds.Dx(), bounds.Dy(), p.opts.OverlapRatio, p.opts.GenerateCenter)
	tiles := Split(img, anns, regions, p.opts.RequireFullBBox)

	written := 0
	for _, tile := range tiles {
		name := fmt.Sprintf("%s_%s", stem, tile.Region.Name)
		imgPath := filepath.Join(outImages, name+ext)
		lblPath := filepath.Join(outLabels, name+".txt")

		if err := imageio.Save(tile.Image, imgPath, p.opts.Quality); err != nil {
			// Per-tile failures do not abort the image.
			log.Printf("  warning: failed to write %s: %v", imgPath, err)
			continue
		}
		if err := yolo.SaveLabels(lblPath, tile.Annotations); err != nil {
			log.Printf("  warning: failed to write %s: %v", lblPath, err)
			continue
		}

		written++
		p.Counters.Tiles++
		p.Counters.Annotations += len(tile.Annotations)

		if p.exportDir != "" {
			if err := utils.CopyFile(imgPath, filepath.Join(expImages, name+ext)); err != nil {
				log.Printf("  warning: export failed: %v", err)
			} else if err := utils.CopyFile(lblPath, filepath.Join(expLabels, name+".txt")); err != nil {
				log.Printf("  warning: export failed: %v", err)
			}
		}

		if p.opts.Debug {
			overlayPath := filepath.Join(p.debugDir(), name+".png")
			if err := saveOverlay(tile, overlayPath); err != nil {
				log.Printf("  warning: overlay failed: %v", err)
			}
		}
	}

	return written, nil
}

func (p *Processor) setupOutputDirs() (imagesDir, labelsDir string, err error) {
	if p.outputDir == "" {
		imagesDir, labelsDir = p.imagesDir(), p.labelsDir()
	} else {
		if p.overwrite && utils.DirExists(p.outputDir) {
			log.Printf("removing existing output directory: %s", p.outputDir)
			if err := os.RemoveAll(p.outputDir); err != nil {
				return "", "", fmt.Errorf("failed to remove output directory: %w", err)
			}
		}
		imagesDir = filepath.Join(p.outputDir, "images")
		labelsDir = filepath.Join(p.outputDir, "labels")
		for _, d := range []string{imagesDir, labelsDir} {
			if err := utils.EnsureDir(d); err != nil {
				return "", "", fmt.Errorf("failed to create %s: %w", d, err)
			}
		}
	}

	if p.opts.Debug {
		if err := utils.EnsureDir(p.debugDir()); err != nil {
			return "", "", fmt.Errorf("failed to create debug directory: %w", err)
		}
	}

	return imagesDir, labelsDir, nil
}

func (p *Processor) setupExportDirs() (imagesDir, labelsDir string, err error) {
	if p.exportDir == "" {
		return "", "", nil
	}
	if p.overwrite && utils.DirExists(p.exportDir) {
		log.Printf("removing existing export directory: %s", p.exportDir)
		if err := os.RemoveAll(p.exportDir); err != nil {
			return "", "", fmt.Errorf("failed to remove export directory: %w", err)
		}
	}
	imagesDir = filepath.Join(p.exportDir, "images")
	labelsDir = filepath.Join(p.exportDir, "labels")
	for _, d := range []string{imagesDir, labelsDir} {
		if err := utils.EnsureDir(d); err != nil {
			return "", "", fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return imagesDir, labelsDir, nil
}

func (p *Processor) debugDir() string {
	root := p.outputDir
	if root == "" {
		root = p.root
	}
	return filepath.Join(root, "debug")
}

// listImages returns the sorted image paths under images/.
func (p *Processor) listImages() ([]string, error) {
	entries, err := os.ReadDir(p.imagesDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImageFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(p.imagesDir(), e.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}

// copyOriginals copies every source image and label file unchanged.
func (p *Processor) copyOriginals(imagesDir, labelsDir string) error {
	images, err := p.listImages()
	if err != nil {
		return err
	}
	for _, src := range images {
		if err := utils.CopyFile(src, filepath.Join(imagesDir, filepath.Base(src))); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(p.labelsDir())
	if err != nil {
		return fmt.Errorf("failed to read labels directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		src := filepath.Join(p.labelsDir(), e.Name())
		if err := utils.CopyFile(src, filepath.Join(labelsDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// removeOriginals deletes the source images and their labels after an
// in-place split.
func (p *Processor) removeOriginals(images []string) {
	log.Printf("removing original images and labels")
	for _, imagePath := range images {
		if err := os.Remove(imagePath); err != nil {
			log.Printf("  warning: failed to remove %s: %v", imagePath, err)
		}
		lblPath := filepath.Join(p.labelsDir(), utils.Stem(imagePath)+".txt")
		if utils.FileExists(lblPath) {
			if err := os.Remove(lblPath); err != nil {
				log.Printf("  warning: failed to remove %s: %v", lblPath, err)
			}
		}
	}
}

func (p *Processor) logSummary() {
	c := p.Counters
	log.Printf("split complete: %d/%d images, %d tiles, %d annotations",
		c.ImagesSplit, c.ImagesFound, c.Tiles, c.Annotations)
	if c.ImagesFailed > 0 {
		log.Printf("  %d image(s) skipped due to errors", c.ImagesFailed)
	}
	if c.LabelLinesBad > 0 {
		log.Printf("  %d malformed label line(s) skipped", c.LabelLinesBad)
	}
}
