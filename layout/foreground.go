package layout

import "github.com/dasdy/flaykeys/model"

const (
	// DrawableInset is the inset factor used for key icons.
	DrawableInset = 0.21
	// LabelInset is the inset factor used for key labels.
	LabelInset = 0.28
)

// Foreground centers a box inside visible. The shorter side is inset by factor,
// the longer side by whatever leaves the same extent, so the box is square.
func Foreground(visible model.Rect, factor float64) model.Rect {
	width := float64(visible.Width())
	height := float64(visible.Height())

	var xOffset, yOffset float64

	if width < height {
		xOffset = factor * width
		yOffset = (height - (width - 2*xOffset)) / 2
	} else {
		yOffset = factor * height
		xOffset = (width - (height - 2*yOffset)) / 2
	}

	x, y := int(xOffset), int(yOffset)

	return visible.Inset(x, y, x, y)
}
