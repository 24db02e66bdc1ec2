package tiling

import "github.com/cvtool/yolo-tiler/pkg/types"

// MinAreaRatio is the fraction of a box's original area that must survive
// clipping against a region for the box to be kept. The threshold is
// inclusive: a box retaining exactly 10% of its area is accepted.
const MinAreaRatio = 0.10

// fullEpsilon absorbs float rounding when deciding whether a box was
// entirely inside a region (area ratio of 1.0).
const fullEpsilon = 1e-6

// Reproject converts one annotation from the normalized space of a
// width x height source image into the local normalized space of region.
//
// The box is denormalized to pixels, clipped against the region, and
// rejected when no intersection remains or when less than MinAreaRatio of
// its original area survives. A surviving box is translated into
// region-local pixels, renormalized by the region dimensions, and each
// field clamped to [0,1].
//
// ok reports whether the box survives. full reports whether the box was
// entirely contained in the region (no clipping loss, up to float
// tolerance); callers use it for the require-full-box gating policy.
func Reproject(a types.Annotation, width, height int, region Region) (out types.Annotation, full, ok bool) {
	fw := float64(width)
	fh := float64(height)

	// Absolute pixel box of the annotation.
	boxW := a.W * fw
	boxH := a.H * fh
	x1 := a.X*fw - boxW/2
	y1 := a.Y*fh - boxH/2
	x2 := a.X*fw + boxW/2
	y2 := a.Y*fh + boxH/2

	// Clip against the region.
	cx1 := maxf(x1, float64(region.X1))
	cy1 := maxf(y1, float64(region.Y1))
	cx2 := minf(x2, float64(region.X2))
	cy2 := minf(y2, float64(region.Y2))

	if cx1 >= cx2 || cy1 >= cy2 {
		return types.Annotation{}, false, false
	}

	originalArea := boxW * boxH
	if originalArea <= 0 {
		return types.Annotation{}, false, false
	}

	areaRatio := (cx2 - cx1) * (cy2 - cy1) / originalArea
	if areaRatio < MinAreaRatio {
		return types.Annotation{}, false, false
	}

	// Translate into region-local pixels and renormalize.
	rw := float64(region.Width())
	rh := float64(region.Height())

	nx1 := cx1 - float64(region.X1)
	ny1 := cy1 - float64(region.Y1)
	nx2 := cx2 - float64(region.X1)
	ny2 := cy2 - float64(region.Y1)

	out = types.Annotation{
		Class: a.Class,
		X:     clamp01((nx1 + nx2) / 2 / rw),
		Y:     clamp01((ny1 + ny2) / 2 / rh),
		W:     clamp01((nx2 - nx1) / rw),
		H:     clamp01((ny2 - ny1) / rh),
	}

	return out, areaRatio >= 1.0-fullEpsilon, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
