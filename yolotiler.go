// Package yolotiler splits YOLO object-detection datasets into overlapping
// tiles and cleans up the derived files afterwards.
//
// A dataset root contains an images/ directory and a labels/ directory,
// with each label file named after its image stem and holding one
// annotation per line in YOLO format (class id plus four normalized
// fields). The splitter crops every image into four overlapping quadrant
// tiles (optionally plus a center tile) and re-projects each annotation
// into the tiles it survives in, applying clipping and an area-retention
// threshold at tile boundaries.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/cvtool/yolo-tiler/pkg/splitter"
//	)
//
//	func main() {
//		proc := splitter.New("./dataset", "./dataset_split", "", false, splitter.Options{
//			OverlapRatio: 0.1,
//			KeepOriginal: true,
//			Quality:      95,
//		})
//		if err := proc.Run(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of these components:
//
//  1. Tiling (pkg/tiling): region calculation and bounding-box reprojection,
//     both pure functions
//  2. Splitter (pkg/splitter): crops tiles and writes image/label pairs
//  3. Cleanup (pkg/cleanup): recognizes derived tiles by filename suffix and
//     deletes or relocates them (or the originals)
//  4. YOLO codec (pkg/yolo): label file reading/writing and statistics
//
// Derived tiles are named {stem}_{region}{ext}; the cleanup matcher
// recognizes the region suffixes top_left, top_right, bottom_left,
// bottom_right, center and the legacy short forms tl, tr, bl, br.
package yolotiler

import (
	"github.com/cvtool/yolo-tiler/pkg/cleanup"
	"github.com/cvtool/yolo-tiler/pkg/splitter"
)

// Version of the yolo-tiler library
const Version = "1.0.0"

// NewSplitter returns a dataset splitter. outputDir may be empty to split
// in place; exportDir, when set, receives a copy of every generated tile.
func NewSplitter(root, outputDir, exportDir string, overwrite bool, opts splitter.Options) *splitter.Processor {
	return splitter.New(root, outputDir, exportDir, overwrite, opts)
}

// NewCleaner returns a cleanup runner for a previously split dataset.
func NewCleaner(root, backupDir string, dryRun, keepOriginal bool) *cleanup.Cleaner {
	return cleanup.New(root, backupDir, dryRun, keepOriginal)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
