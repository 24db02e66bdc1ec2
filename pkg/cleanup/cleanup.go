// Package cleanup segregates derived tiles from original images in a
// dataset tree produced by the splitter. Derived tiles are recognized
// purely by filename suffix; this matcher is the counterpart of the
// splitter's naming scheme and the two must stay in sync.
package cleanup

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cvtool/yolo-tiler/internal/utils"
	"github.com/cvtool/yolo-tiler/pkg/imageio"
)

// TileSuffixes is the fixed set of stem suffixes that mark a file as a
// derived tile. The short forms (_tl, _tr, _bl, _br) are legacy names
// kept for datasets produced by older runs.
//
// Known limitation: an original legitimately named e.g. photo_center.jpg
// is indistinguishable from a tile. The default dry-run preview exists so
// the operator can catch such cases before anything is removed.
var TileSuffixes = []string{
	"_top_left",
	"_top_right",
	"_bottom_left",
	"_bottom_right",
	"_tl",
	"_tr",
	"_bl",
	"_br",
	"_center",
}

// MatchSuffix returns the tile suffix carried by stem, if any.
func MatchSuffix(stem string) (string, bool) {
	for _, s := range TileSuffixes {
		if strings.HasSuffix(stem, s) {
			return s, true
		}
	}
	return "", false
}

// OriginalStem strips the tile suffix from stem, returning the stem of
// the source image the tile was derived from.
func OriginalStem(stem string) (string, bool) {
	s, ok := MatchSuffix(stem)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(stem, s), true
}

// Cleaner plans and executes the removal or relocation of either the
// derived tiles or the originals they were derived from.
type Cleaner struct {
	root      string
	backupDir string // when set, move instead of delete
	dryRun    bool
	// keepOriginal selects the tiles for removal instead of the
	// originals.
	keepOriginal bool
}

// New returns a Cleaner for the dataset at root. With dryRun set, Run
// only previews. backupDir, when non-empty, switches delete to move.
func New(root, backupDir string, dryRun, keepOriginal bool) *Cleaner {
	return &Cleaner{
		root:         root,
		backupDir:    backupDir,
		dryRun:       dryRun,
		keepOriginal: keepOriginal,
	}
}

// Validate checks the dataset layout before any side effect.
func (c *Cleaner) Validate() error {
	if !utils.DirExists(c.root) {
		return fmt.Errorf("root directory does not exist: %s", c.root)
	}
	if !utils.DirExists(c.imagesDir()) {
		return fmt.Errorf("images directory does not exist: %s", c.imagesDir())
	}
	if !utils.DirExists(c.labelsDir()) {
		return fmt.Errorf("labels directory does not exist: %s", c.labelsDir())
	}
	return nil
}

func (c *Cleaner) imagesDir() string { return filepath.Join(c.root, "images") }
func (c *Cleaner) labelsDir() string { return filepath.Join(c.root, "labels") }

// tileImages returns the filenames under images/ recognized as derived
// tiles.
func (c *Cleaner) tileImages() ([]string, error) {
	entries, err := os.ReadDir(c.imagesDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	var tiles []string
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImageFile(e.Name()) {
			continue
		}
		if _, ok := MatchSuffix(utils.Stem(e.Name())); ok {
			tiles = append(tiles, e.Name())
		}
	}

	return tiles, nil
}

// Plan returns the sorted list of file paths selected for removal or
// relocation: the derived tiles themselves with keepOriginal, otherwise
// the originals whose tile siblings exist.
func (c *Cleaner) Plan() ([]string, error) {
	tiles, err := c.tileImages()
	if err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, nil
	}

	var files []string
	if c.keepOriginal {
		for _, name := range tiles {
			files = append(files, filepath.Join(c.imagesDir(), name))
			lbl := filepath.Join(c.labelsDir(), utils.Stem(name)+".txt")
			if utils.FileExists(lbl) {
				files = append(files, lbl)
			}
		}
	} else {
		files, err = c.planOriginals(tiles)
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// planOriginals selects the original image/label pairs whose derived
// tiles are present.
func (c *Cleaner) planOriginals(tiles []string) ([]string, error) {
	entries, err := os.ReadDir(c.imagesDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	// All image stems present, mapped back to their filenames.
	byStem := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImageFile(e.Name()) {
			continue
		}
		byStem[utils.Stem(e.Name())] = e.Name()
	}

	// Original stems referenced by at least one tile.
	originals := make(map[string]bool)
	for _, name := range tiles {
		if stem, ok := OriginalStem(utils.Stem(name)); ok {
			originals[stem] = true
		}
	}

	var files []string
	for stem := range originals {
		name, ok := byStem[stem]
		if !ok {
			continue
		}
		files = append(files, filepath.Join(c.imagesDir(), name))
		lbl := filepath.Join(c.labelsDir(), stem+".txt")
		if utils.FileExists(lbl) {
			files = append(files, lbl)
		}
	}

	return files, nil
}

// Run previews the plan and, unless in dry-run mode, deletes or moves the
// selected files. Individual file failures are logged and do not abort
// the rest of the batch.
func (c *Cleaner) Run() error {
	if err := c.Validate(); err != nil {
		return err
	}

	files, err := c.Plan()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Printf("nothing to clean up: no derived tiles found under %s", c.imagesDir())
		return nil
	}

	c.preview(files)

	if c.dryRun {
		log.Printf("dry run: no files were changed")
		return nil
	}

	if c.backupDir != "" {
		return c.move(files)
	}
	return c.remove(files)
}

func (c *Cleaner) preview(files []string) {
	target := "originals"
	if c.keepOriginal {
		target = "derived tiles"
	}
	action := "delete"
	if c.backupDir != "" {
		action = "move to " + c.backupDir
	}
	log.Printf("selected %s (%d files, action: %s):", target, len(files), action)

	var total int64
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			log.Printf("  %s (stat failed: %v)", filepath.Base(f), err)
			continue
		}
		total += info.Size()
		log.Printf("  %-50s %10s", filepath.Base(f), utils.FormatFileSize(info.Size()))
	}
	log.Printf("total: %d files, %s", len(files), utils.FormatFileSize(total))
}

func (c *Cleaner) remove(files []string) error {
	removed := 0
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			log.Printf("  warning: failed to remove %s: %v", f, err)
			continue
		}
		removed++
	}
	log.Printf("cleanup complete: removed %d/%d files", removed, len(files))
	return nil
}

func (c *Cleaner) move(files []string) error {
	backupImages := filepath.Join(c.backupDir, "images")
	backupLabels := filepath.Join(c.backupDir, "labels")
	for _, d := range []string{backupImages, backupLabels} {
		if err := utils.EnsureDir(d); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	moved := 0
	for _, f := range files {
		dest := backupLabels
		if imageio.IsImageFile(f) {
			dest = backupImages
		}
		if err := utils.MoveFile(f, filepath.Join(dest, filepath.Base(f))); err != nil {
			log.Printf("  warning: failed to move %s: %v", f, err)
			continue
		}
		moved++
	}
	log.Printf("cleanup complete: moved %d/%d files to %s", moved, len(files), c.backupDir)
	return nil
}
