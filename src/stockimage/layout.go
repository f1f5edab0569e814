package stockimage

import "image"

const (
	CanvasWidth  = 1080
	CanvasHeight = 650

	// TileBorder is the width of the transparent edge left around every tile.
	TileBorder = 3
)

// TileRect is a tile's bounds in canvas pixels. X2 and Y2 are inclusive.
type TileRect struct {
	X1, Y1, X2, Y2 int
}

func (r TileRect) Width() int {
	return r.X2 - r.X1
}

func (r TileRect) Height() int {
	return r.Y2 - r.Y1
}

// Bounds is the half-open rectangle covering every pixel of the tile.
func (r TileRect) Bounds() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2+1, r.Y2+1)
}

// Fill is the area painted with the tile color.
func (r TileRect) Fill() image.Rectangle {
	return r.Bounds().Inset(TileBorder)
}

// tileFractions are (x1, y1, x2, y2) as fractions of the canvas: four large tiles
// on the left 60% in a 2x2 grid, then six small tiles on the right 40% in a 3x2 grid.
var tileFractions = [][4]float64{
	{0, 0.1, 0.3, 0.5},
	{0.3, 0.1, 0.6, 0.5},
	{0, 0.5, 0.3, 0.9},
	{0.3, 0.5, 0.6, 0.9},
	{0.6, 0.1, 0.8, 0.41},
	{0.8, 0.1, 1, 0.41},
	{0.6, 0.41, 0.8, 0.72},
	{0.8, 0.41, 1, 0.72},
	{0.6, 0.72, 0.8, 0.9},
	{0.8, 0.72, 1, 0.9},
}

// MaxTiles is the number of quotes a single image can hold.
var MaxTiles = len(tileFractions)

// TileLayout returns the tile rectangles for a width x height canvas, in fill order.
func TileLayout(width, height int) []TileRect {
	w, h := float64(width), float64(height)

	rects := make([]TileRect, 0, len(tileFractions))
	for _, f := range tileFractions {
		rects = append(rects, TileRect{
			X1: int(w * f[0]),
			Y1: int(h * f[1]),
			X2: int(w * f[2]),
			Y2: int(h * f[3]),
		})
	}

	return rects
}
