// Package tiling computes overlapping split regions for an image and
// re-projects normalized YOLO annotations into each region's local
// coordinate frame. Both operations are pure functions of their inputs;
// all file I/O lives in pkg/splitter.
package tiling

import "image"

// Region names used in output filenames. The cleanup tool matches these
// (plus legacy short forms) as filename suffixes, so they must not change.
const (
	TopLeft     = "top_left"
	TopRight    = "top_right"
	BottomLeft  = "bottom_left"
	BottomRight = "bottom_right"
	Center      = "center"
)

// Region is one tile's extent in the pixel space of the source image.
type Region struct {
	Name string
	X1   int
	Y1   int
	X2   int
	Y2   int
}

// Width returns the region width in pixels.
func (r Region) Width() int {
	return r.X2 - r.X1
}

// Height returns the region height in pixels.
func (r Region) Height() int {
	return r.Y2 - r.Y1
}

// Empty reports whether the region has zero area. Degenerate source images
// (width or height below 2) can produce empty regions; the materializer
// must skip them before writing.
func (r Region) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Rect returns the region as an image.Rectangle for cropping.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Regions computes the split regions for a width x height image with the
// given overlap ratio (fraction of each image dimension, 0 to 0.5). The
// four quadrant regions each reach from an image edge past the middle, so
// neighbours share an overlap band of floor(width*overlap) by
// floor(height*overlap) pixels. With generateCenter set a fifth region the
// size of the top_left tile is centered on the image middle and clipped to
// the image bounds.
//
// The result order is fixed: top_left, top_right, bottom_left,
// bottom_right, center.
func Regions(width, height int, overlap float64, generateCenter bool) []Region {
	overlapW := int(float64(width) * overlap)
	overlapH := int(float64(height) * overlap)

	midX := width / 2
	midY := height / 2

	leftSplit := midX - overlapW/2
	rightSplit := midX + overlapW/2
	topSplit := midY - overlapH/2
	bottomSplit := midY + overlapH/2

	regions := []Region{
		{TopLeft, 0, 0, rightSplit, bottomSplit},
		{TopRight, leftSplit, 0, width, bottomSplit},
		{BottomLeft, 0, topSplit, rightSplit, height},
		{BottomRight, leftSplit, topSplit, width, height},
	}

	if generateCenter {
		// Same size as the top_left tile, centered on the image middle.
		subW := rightSplit
		subH := bottomSplit

		x1 := midX - subW/2
		y1 := midY - subH/2
		x2 := x1 + subW
		y2 := y1 + subH

		if x1 < 0 {
			x1 = 0
		}
		if y1 < 0 {
			y1 = 0
		}
		if x2 > width {
			x2 = width
		}
		if y2 > height {
			y2 = height
		}

		regions = append(regions, Region{Center, x1, y1, x2, y2})
	}

	return regions
}
