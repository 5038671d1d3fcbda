package layout_test

import (
	"testing"

	"github.com/dasdy/flaykeys/layout"
	"github.com/dasdy/flaykeys/model"
	"github.com/stretchr/testify/assert"
)

func TestForeground(t *testing.T) {
	testCases := []struct {
		name     string
		visible  model.Rect
		factor   float64
		expected model.Rect
	}{
		{
			name:     "wide key label",
			visible:  model.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50},
			factor:   layout.LabelInset,
			expected: model.Rect{Left: 39, Top: 14, Right: 61, Bottom: 36},
		},
		{
			name:     "wide key drawable",
			visible:  model.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50},
			factor:   layout.DrawableInset,
			expected: model.Rect{Left: 35, Top: 10, Right: 65, Bottom: 40},
		},
		{
			name:     "tall key label",
			visible:  model.Rect{Left: 0, Top: 0, Right: 40, Bottom: 100},
			factor:   layout.LabelInset,
			expected: model.Rect{Left: 11, Top: 41, Right: 29, Bottom: 59},
		},
		{
			name:     "square key keeps offset",
			visible:  model.Rect{Left: 10, Top: 10, Right: 110, Bottom: 110},
			factor:   0.25,
			expected: model.Rect{Left: 35, Top: 35, Right: 85, Bottom: 85},
		},
		{
			name:     "zero factor fills short side",
			visible:  model.Rect{Left: 0, Top: 0, Right: 80, Bottom: 40},
			factor:   0,
			expected: model.Rect{Left: 20, Top: 0, Right: 60, Bottom: 40},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := layout.Foreground(tc.visible, tc.factor)

			assert.Equal(t, tc.expected, got)
			assert.True(t, tc.visible.ContainsRect(got))
		})
	}
}

func TestForegroundIsSquare(t *testing.T) {
	for _, size := range [][2]int{{90, 52}, {52, 90}, {200, 60}, {60, 200}, {64, 64}} {
		visible := model.Rect{Right: size[0], Bottom: size[1]}

		for _, factor := range []float64{layout.DrawableInset, layout.LabelInset} {
			got := layout.Foreground(visible, factor)

			assert.InDelta(t, got.Width(), got.Height(), 1, "size %v factor %v: %+v", size, factor, got)
		}
	}
}
