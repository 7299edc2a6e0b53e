package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/rotisserie/eris"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Options configures an Engine.
type Options struct {
	FontPaths        []string // body text candidates, in lookup order
	HeadingFontPaths []string // title candidates, tried before FontPaths
	LogoPath         string   // certifying-body logo; optional
}

// Engine draws certificates. It holds only immutable state after
// construction and may be shared by concurrent callers.
type Engine struct {
	body    *FontResolver
	heading *FontResolver
	logo    image.Image
}

// NewEngine resolves the logo once and prepares font resolvers. Missing
// assets never make construction fail.
func NewEngine(opts Options) *Engine {
	// The title prefers a heavier face and falls back to the body font.
	headingPaths := make([]string, 0, len(opts.HeadingFontPaths)+len(opts.FontPaths))
	headingPaths = append(headingPaths, opts.HeadingFontPaths...)
	headingPaths = append(headingPaths, opts.FontPaths...)
	return &Engine{
		body:    NewFontResolver(opts.FontPaths),
		heading: NewFontResolver(headingPaths),
		logo:    LoadLogo(opts.LogoPath),
	}
}

// HasLogo reports whether a logo image was loaded.
func (e *Engine) HasLogo() bool { return e.logo != nil }

// FontPath returns the resolved body font file, "" for the built-in font.
func (e *Engine) FontPath() string { return e.body.Path() }

// HeadingFontPath returns the resolved title font file.
func (e *Engine) HeadingFontPath() string { return e.heading.Path() }

// Render draws c and encodes it as PNG. Output is byte-identical for the
// same certificate, logo and fonts.
func (e *Engine) Render(c Certificate) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, e.Draw(c)); err != nil {
		return nil, eris.Wrap(err, "render: encode png")
	}
	return buf.Bytes(), nil
}

// Draw lays c out on a fresh Width x Height canvas. Rows past MaxRows are
// not drawn.
func (e *Engine) Draw(c Certificate) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	drawFrame(img)

	heading := e.heading.Face(HeadingSize)
	defer heading.Close()
	body := e.body.Face(BodySize)
	defer body.Close()

	drawText(img, heading, titleX, titleY, c.Title, frameColor, img.Bounds())

	valueClip := image.Rect(valueX, 0, ruleX1, Height)
	for i, row := range c.Rows {
		if i >= MaxRows {
			break
		}
		y := rowTop(i)
		fillRect(img, image.Rect(ruleX0, y+ruleOffset, ruleX1, y+ruleOffset+ruleWidth), ruleColor)
		drawText(img, body, labelX, y, row.Label+":", labelColor, img.Bounds())

		if row.Marker && e.logo != nil {
			compositeLogo(img, e.logo, valueX, y+logoOffsetY)
			continue
		}
		drawText(img, body, valueX, y, row.Value, valueColor, valueClip)
	}
	return img
}

func drawFrame(img *image.RGBA) {
	x0, y0 := frameInset, frameInset
	x1, y1 := Width-frameInset, Height-frameInset
	fillRect(img, image.Rect(x0, y0, x1, y0+frameWidth), frameColor)
	fillRect(img, image.Rect(x0, y1-frameWidth, x1, y1), frameColor)
	fillRect(img, image.Rect(x0, y0, x0+frameWidth, y1), frameColor)
	fillRect(img, image.Rect(x1-frameWidth, y0, x1, y1), frameColor)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawText draws s with its top edge at y. Glyphs outside clip are dropped.
func drawText(img *image.RGBA, face font.Face, x, y int, s string, c color.Color, clip image.Rectangle) {
	if s == "" {
		return
	}
	dst, ok := img.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
