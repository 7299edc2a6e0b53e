// Package render lays out inspection certificates as fixed-size PNG images.
package render

import "image/color"

// Canvas geometry. The height fits the header plus MaxRows rows; it does
// not depend on the record being drawn.
const (
	Width        = 800
	HeaderHeight = 160
	RowHeight    = 95
	MaxRows      = 11
	BottomMargin = 55
	Height       = HeaderHeight + MaxRows*RowHeight + BottomMargin

	HeadingSize = 40
	BodySize    = 32
)

const (
	frameInset = 20
	frameWidth = 6

	titleX = 60
	titleY = 60

	labelX = 80
	valueX = 320

	ruleX0     = 60
	ruleX1     = 740
	ruleOffset = 80
	ruleWidth  = 2

	logoMaxW    = 200
	logoMaxH    = 80
	logoOffsetY = -5
)

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	frameColor = color.RGBA{R: 0, G: 64, B: 128, A: 255}
	ruleColor  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	labelColor = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	valueColor = color.RGBA{A: 255}
)

// Row is one label/value line of the certificate. Marker marks the
// certifying-body row, where the logo replaces the value text when a logo
// is available.
type Row struct {
	Label  string
	Value  string
	Marker bool
}

// Certificate is everything the engine draws for one record.
type Certificate struct {
	Title string
	Rows  []Row
}

// rowTop returns the y offset of the i-th row.
func rowTop(i int) int {
	return HeaderHeight + i*RowHeight
}
