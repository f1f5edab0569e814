package stockimage

import "image/color"

var (
	StrongGreen = color.RGBA{R: 101, G: 249, B: 93, A: 255}
	StrongRed   = color.RGBA{R: 250, G: 103, B: 103, A: 255}
	LightGreen  = color.RGBA{R: 157, G: 247, B: 149, A: 255}
	LightRed    = color.RGBA{R: 252, G: 130, B: 130, A: 255}
	Neutral     = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// StrongMoveThreshold is the absolute percent change at which a tile turns to the strong shade.
const StrongMoveThreshold = 0.5

// TileColor resolves the fill for a percent change. The checks run in order, so
// exactly +0.5 is strong green and exactly -0.5 is strong red.
func TileColor(change float64) color.RGBA {
	switch {
	case change >= StrongMoveThreshold:
		return StrongGreen
	case change <= -StrongMoveThreshold:
		return StrongRed
	case change > 0:
		return LightGreen
	case change < 0:
		return LightRed
	default:
		return Neutral
	}
}
