package splitter

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/cvtool/yolo-tiler/pkg/imageio"
	"github.com/cvtool/yolo-tiler/pkg/types"
)

// saveOverlay writes a PNG of the tile with its re-projected boxes drawn
// on top: green for boxes entirely inside the tile, gold for boxes that
// were clipped at a tile boundary.
func saveOverlay(tile Tile, path string) error {
	nrgba := imaging.Clone(tile.Image)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	green := color.NRGBA{0, 255, 0, 255}
	gold := color.NRGBA{255, 204, 0, 255}
	stroke := int(math.Max(1, 0.004*float64(minInt(w, h))))

	for i, a := range tile.Annotations {
		c := gold
		if tile.Full[i] {
			c = green
		}
		drawBox(nrgba, a, w, h, c, stroke)
	}

	return imageio.Save(nrgba, path, 100)
}

func annToPixels(a types.Annotation, w, h int) (int, int, int, int) {
	x0 := int(clamp(a.X-a.W/2, 0, 1)*float64(w) + 0.5)
	y0 := int(clamp(a.Y-a.H/2, 0, 1)*float64(h) + 0.5)
	x1 := int(clamp(a.X+a.W/2, 0, 1)*float64(w) + 0.5)
	y1 := int(clamp(a.Y+a.H/2, 0, 1)*float64(h) + 0.5)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func drawBox(img *image.NRGBA, a types.Annotation, w, h int, color color.NRGBA, stroke int) {
	x0, y0, x1, y1 := annToPixels(a, w, h)
	for s := 0; s < stroke; s++ {
		drawHLine(img, y0+s, x0, x1, color)
		drawHLine(img, y1-1-s, x0, x1, color)
		drawVLine(img, x0+s, y0, y1, color)
		drawVLine(img, x1-1-s, y0, y1, color)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
