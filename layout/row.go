package layout

import (
	"github.com/dasdy/flaykeys/model"
)

// Row lays out a single row of keys. available is the container width expressed
// in reference units, row is the index used to place the row vertically.
//
// A row that fits gets its slack distributed by grow weight. When nothing grows,
// the slack goes to the outer keys instead and their faces stay centered.
// A row that overflows is shrunk by shrink weight; keys that do not shrink keep
// their natural width even if the row still overflows.
func Row(flays []model.Flay, row int, available float64, desired model.DesiredKey) []model.Bounds {
	unit := float64(desired.Touch.Width())
	rowHeight := desired.Touch.Height()
	posY := rowHeight * row

	var requested, growSum, shrinkSum float64

	for _, f := range flays {
		requested += f.WidthFactor
		growSum += f.Grow
		shrinkSum += f.Shrink
	}

	marginLeft, marginTop, marginRight, marginBottom := desired.Margins()

	result := make([]model.Bounds, len(flays))
	last := len(flays) - 1
	posX := 0

	for i, f := range flays {
		width := f.WidthFactor
		extraLeft, extraRight := 0, 0

		if requested <= available {
			additional := available - requested

			if growSum == 0 {
				half := additional / 2
				halfPixels := int(half * unit)

				// A single key is both first and last and gets the slack once.
				switch {
				case i == 0 && i == last:
					width += additional
					extraLeft = halfPixels
					extraRight = halfPixels
				case i == 0:
					width += half
					extraLeft = halfPixels
				case i == last:
					width += half
					extraRight = halfPixels
				}
			} else {
				width += additional * (f.Grow / growSum)
			}
		} else if f.Shrink != 0 {
			clipping := requested - available
			width -= clipping * (f.Shrink / shrinkSum)
		}

		keyWidth := int(width * unit)

		touch := model.Rect{
			Left:   posX,
			Top:    posY,
			Right:  posX + keyWidth,
			Bottom: posY + rowHeight,
		}
		visible := touch.Inset(marginLeft+extraLeft, marginTop, marginRight+extraRight, marginBottom)

		result[i] = model.Bounds{
			Touch:    touch,
			Visible:  visible,
			Drawable: Foreground(visible, DrawableInset),
			Label:    Foreground(visible, LabelInset),
		}

		posX += keyWidth
	}

	return result
}
