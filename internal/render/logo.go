package render

import (
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// LoadLogo decodes the logo at path. A missing or unreadable file yields
// nil; callers then fall back to drawing the marker text.
func LoadLogo(path string) image.Image {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		zap.L().Debug("logo not available", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		zap.L().Warn("logo unreadable, using text marker", zap.String("path", path), zap.Error(err))
		return nil
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	return img
}

// fitBox scales w x h down to fit within maxW x maxH keeping the aspect
// ratio. Images that already fit are left at their size.
func fitBox(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// compositeLogo draws logo with its top-left corner at (x, y), alpha
// blended over dst.
func compositeLogo(dst *image.RGBA, logo image.Image, x, y int) {
	b := logo.Bounds()
	w, h := fitBox(b.Dx(), b.Dy(), logoMaxW, logoMaxH)
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), logo, b, xdraw.Over, nil)
}
