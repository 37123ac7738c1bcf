package stacker

import(
	"fmt"
	"image"

	"github.com/abworrall/drift-stacker/pkg/emath"
)

// CanvasSize is the size of the zero-padded canvas every frame is
// placed onto. There is a margin of half the frame on every side, which
// is the largest shift phase correlation can tell apart from its alias.
func CanvasSize(w, h int) (int, int) {
	return w + 2*(w/2), h + 2*(h/2)
}

// PlacementOrigin is where the top-left corner of a w*h frame lands on
// the canvas, for a given shift. Shift{} centers it.
func PlacementOrigin(w, h int, s Shift) image.Point {
	return image.Point{X: w/2 + s.DX, Y: h/2 + s.DY}
}

// Place returns a new canvas with img written onto it at its shifted
// position, zero everywhere else. A shift that doesn't fit is an error;
// we never clip or wrap.
func Place(img emath.FloatGrid, s Shift) (emath.FloatGrid, error) {
	w, h := img.Dx(), img.Dy()
	cw, ch := CanvasSize(w, h)
	canvas := emath.NewFloatGrid(cw, ch)

	o := PlacementOrigin(w, h, s)
	if !canvas.Contains(o.X, o.Y, w, h) {
		return emath.FloatGrid{}, fmt.Errorf("shift %s of %dx%d image on %dx%d canvas: %w", s, w, h, cw, ch, ErrBounds)
	}

	canvas.Paste(img, o.X, o.Y)
	return canvas, nil
}
