package render

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontResolver picks the first usable font file from an ordered candidate
// list. The search runs once; when nothing is usable every face comes from
// basicfont, which has no CJK glyphs but always works.
type FontResolver struct {
	paths []string

	once sync.Once
	font *opentype.Font
	path string
}

// NewFontResolver creates a resolver over candidate font file paths.
// TrueType, OpenType and collection (.ttc) files are accepted.
func NewFontResolver(paths []string) *FontResolver {
	return &FontResolver{paths: paths}
}

// Path returns the resolved font file, or "" when the built-in font is used.
func (r *FontResolver) Path() string {
	r.once.Do(r.resolve)
	return r.path
}

// Face returns a face at size pixels. Faces are not safe for concurrent
// use, so each render asks for its own.
func (r *FontResolver) Face(size float64) font.Face {
	r.once.Do(r.resolve)
	if r.font == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		zap.L().Warn("font face creation failed, using built-in font",
			zap.String("path", r.path),
			zap.Float64("size", size),
			zap.Error(err),
		)
		return basicfont.Face7x13
	}
	return face
}

func (r *FontResolver) resolve() {
	for _, p := range r.paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := parseFont(data)
		if err != nil {
			zap.L().Debug("font candidate unreadable", zap.String("path", p), zap.Error(err))
			continue
		}
		r.font = f
		r.path = p
		zap.L().Debug("font resolved", zap.String("path", p))
		return
	}
	zap.L().Warn("no font candidate found, using built-in font", zap.Strings("candidates", r.paths))
}

// parseFont accepts single fonts and collections; for a collection the
// first font is used.
func parseFont(data []byte) (*opentype.Font, error) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return coll.Font(0)
}
