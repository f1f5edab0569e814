package stockimage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jiaming2012/daily-stock-update/src/eventmodels"
)

const (
	DefaultFontPath = "fonts/arial-bold.ttf"
	DefaultLogoDir  = "logos"
	DefaultOutDir   = "examples"

	logoScale      = 0.35
	logoTopDivisor = 13
	bigFontScale   = 0.17
	smallFontScale = 0.11
)

// Tile describes what was drawn for one quote.
type Tile struct {
	Symbol    eventmodels.StockSymbol
	Rect      TileRect
	Color     color.RGBA
	Lines     [3]string
	LogoDrawn bool
}

type Renderer struct {
	FontPath string
	LogoDir  string
	OutDir   string
	Now      func() time.Time
}

func NewRenderer(fontPath, logoDir, outDir string) *Renderer {
	return &Renderer{
		FontPath: fontPath,
		LogoDir:  logoDir,
		OutDir:   outDir,
		Now:      time.Now,
	}
}

// FileName is the output name for the given day; one file per calendar date.
func FileName(day time.Time) string {
	return fmt.Sprintf("stock_update_%s.png", day.Format("2006-01-02"))
}

// Render draws quotes and writes the PNG into OutDir, returning its path. A
// file from an earlier run on the same day is overwritten.
func (r *Renderer) Render(quotes *eventmodels.DailyQuotes) (string, error) {
	img, tiles, err := r.Draw(quotes)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("Render: failed to create %s: %w", r.OutDir, err)
	}

	path := filepath.Join(r.OutDir, FileName(r.now()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("Render: failed to create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("Render: failed to encode png: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("Render: failed to close %s: %w", path, err)
	}

	log.Infof("rendered %d tile(s) to %s", len(tiles), path)

	return path, nil
}

// Draw paints up to MaxTiles quotes onto a transparent canvas. Quotes past the
// last tile are dropped and unused tiles stay transparent.
func (r *Renderer) Draw(quotes *eventmodels.DailyQuotes) (*image.RGBA, []Tile, error) {
	fnt, err := loadFont(r.FontPath)
	if err != nil {
		return nil, nil, err
	}

	faces := newFaceCache(fnt)
	defer faces.Close()

	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	layout := TileLayout(CanvasWidth, CanvasHeight)

	items := quotes.Items()
	if len(items) > len(layout) {
		log.Warnf("only %d of %d quotes fit on the image", len(layout), len(items))
		items = items[:len(layout)]
	}

	tiles := make([]Tile, 0, len(items))
	for i, q := range items {
		tile, err := r.drawTile(img, layout[i], q, faces)
		if err != nil {
			return nil, nil, err
		}

		tiles = append(tiles, tile)
	}

	return img, tiles, nil
}

func (r *Renderer) drawTile(img *image.RGBA, rect TileRect, q eventmodels.StockQuote, faces *faceCache) (Tile, error) {
	tile := Tile{
		Symbol: q.Symbol,
		Rect:   rect,
		Color:  TileColor(q.ChangePercent),
		Lines: [3]string{
			q.Symbol.String(),
			eventmodels.FormatPrice(q.Price),
			eventmodels.FormatChangePercent(q.ChangePercent),
		},
	}

	draw.Draw(img, rect.Bounds(), image.Transparent, image.Point{}, draw.Src)
	draw.Draw(img, rect.Fill(), image.NewUniform(tile.Color), image.Point{}, draw.Src)

	h := rect.Height()
	logoSize := roundHalfEven(float64(h) * logoScale)
	logoX := rect.X1 + floorDiv(rect.Width()-logoSize, 2)
	logoY := rect.Y1 + h/logoTopDivisor

	logo, err := r.loadLogo(q.Symbol)
	if err != nil {
		log.Warnf("skipping logo for %s: %v", q.Symbol, err)
	}

	if logo != nil && logoSize > 0 {
		pasteLogo(img, logo, logoX, logoY, logoSize)
		tile.LogoDrawn = true
	}

	bigSize := roundHalfEven(float64(h) * bigFontScale)
	smallSize := roundHalfEven(float64(h) * smallFontScale)

	bigFace, err := faces.Face(bigSize)
	if err != nil {
		return Tile{}, err
	}

	smallFace, err := faces.Face(smallSize)
	if err != nil {
		return Tile{}, err
	}

	// Line tops are measured from the bottom of the logo box, whether or not a logo was drawn.
	logoBottom := float64(logoY + logoSize)
	big, small := float64(bigSize), float64(smallSize)

	drawCentered(img, bigFace, rect, logoBottom+big*0.1, tile.Lines[0])
	drawCentered(img, smallFace, rect, logoBottom+big*1.3, tile.Lines[1])
	drawCentered(img, smallFace, rect, logoBottom+big*1.4+small, tile.Lines[2])

	return tile, nil
}

// loadLogo returns nil without an error when the symbol has no logo file.
func (r *Renderer) loadLogo(symbol eventmodels.StockSymbol) (image.Image, error) {
	if r.LogoDir == "" {
		return nil, nil
	}

	path := filepath.Join(r.LogoDir, symbol.String()+".png")

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loadLogo: failed to open %s: %w", path, err)
	}

	defer f.Close()

	logo, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loadLogo: failed to decode %s: %w", path, err)
	}

	return logo, nil
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}

	return r.Now()
}

func pasteLogo(img *image.RGBA, logo image.Image, x, y, size int) {
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, logo.Bounds(), xdraw.Src, nil)

	dst := image.Rect(x, y, x+size, y+size)
	draw.Draw(img, dst, scaled, image.Point{}, draw.Over)
}

// drawCentered writes text centered across rect with the top of the line at top.
func drawCentered(img *image.RGBA, face font.Face, rect TileRect, top float64, text string) {
	width := font.MeasureString(face, text).Round()
	x := rect.X1 + floorDiv(rect.Width()-width, 2)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.Int26_6(math.Round(top*64)) + face.Metrics().Ascent,
		},
	}

	d.DrawString(text)
}

func loadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadFont: failed to read font %s: %w", path, err)
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loadFont: failed to parse font %s: %w", path, err)
	}

	return fnt, nil
}

// faceCache holds one face per pixel size for the duration of a Draw.
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache(fnt *opentype.Font) *faceCache {
	return &faceCache{font: fnt, faces: make(map[int]font.Face)}
}

func (c *faceCache) Face(size int) (font.Face, error) {
	if face, found := c.faces[size]; found {
		return face, nil
	}

	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("faceCache: failed to create face of size %d: %w", size, err)
	}

	c.faces[size] = face
	return face, nil
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		face.Close()
	}
}

func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
