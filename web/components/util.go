package components

import (
	"fmt"
	"math"

	"github.com/dasdy/flaykeys/model"
)

// LinkForPosition points at the transitions page of a key.
func LinkForPosition(position model.RowCol) string {
	return fmt.Sprintf("/transitions?row=%d&col=%d", position.Row, position.Col)
}

func pageTitle(page PageType) string {
	switch page {
	case PageTypeTransitions:
		return "Following keys"
	case PageTypeStats:
		return "Key presses"
	default:
		return ""
	}
}

// HeatColor maps count/maxVal onto a blue-green-red gradient blended halfway
// towards white. Zero maxVal yields the coldest color.
func HeatColor(count, maxVal int) string {
	value := 0.0
	if maxVal > 0 {
		value = math.Min(1, math.Max(0, float64(count)/float64(maxVal)))
	}

	var r, g, b float64

	if value <= 0.5 {
		ratio := value / 0.5
		g = 255 * ratio
		b = 255 * (1 - ratio)
	} else {
		ratio := (value - 0.5) / 0.5
		r = 255 * ratio
		g = 255 * (1 - ratio)
	}

	const blendFactor = 0.5

	blend := func(c float64) int {
		return int(math.Round(math.Round(c) + (255-math.Round(c))*blendFactor))
	}

	return fmt.Sprintf("rgb(%d, %d, %d)", blend(r), blend(g), blend(b))
}

func viewBox(rc *RenderContext) string {
	return fmt.Sprintf("0 0 %d %d", rc.Width, rc.Height)
}

func strokeColor(item *Item) string {
	if item.Highlight {
		return "#000"
	}

	return "#888"
}
