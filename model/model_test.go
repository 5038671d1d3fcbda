package model_test

import (
	"testing"

	"github.com/dasdy/flaykeys/model"
	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := model.Rect{Left: 10, Top: 20, Right: 30, Bottom: 40}

	testCases := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top left corner is inside", 10, 20, true},
		{"interior point", 15, 25, true},
		{"right edge is outside", 30, 25, false},
		{"bottom edge is outside", 15, 40, false},
		{"left of rect", 9, 25, false},
		{"above rect", 15, 19, false},
		{"last pixel", 29, 39, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.Contains(tc.x, tc.y))
		})
	}
}

func TestRectInset(t *testing.T) {
	r := model.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50}

	inset := r.Inset(1, 2, 3, 4)

	assert.Equal(t, model.Rect{Left: 1, Top: 2, Right: 97, Bottom: 46}, inset)
	assert.Equal(t, 96, inset.Width())
	assert.Equal(t, 44, inset.Height())
	assert.True(t, r.ContainsRect(inset))
	assert.False(t, inset.ContainsRect(r))
	assert.Equal(t, model.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50}, r, "original must not change")
}

func TestRectIsEmpty(t *testing.T) {
	assert.True(t, model.Rect{}.IsEmpty())
	assert.True(t, model.Rect{Left: 5, Right: 2, Bottom: 1}.IsEmpty())
	assert.False(t, model.Rect{Right: 1, Bottom: 1}.IsEmpty())
}

func TestDesiredKeyMargins(t *testing.T) {
	t.Run("symmetric margins", func(t *testing.T) {
		desired := model.NewDesiredKey(100, 60, 4, 6)

		left, top, right, bottom := desired.Margins()

		assert.Equal(t, []int{4, 6, 4, 6}, []int{left, top, right, bottom})
		assert.Equal(t, model.Rect{Left: 4, Top: 6, Right: 96, Bottom: 54}, desired.Visible)
	})

	t.Run("margins are absolute", func(t *testing.T) {
		desired := model.DesiredKey{
			Touch:   model.Rect{Left: 10, Top: 10, Right: 110, Bottom: 70},
			Visible: model.Rect{Left: 12, Top: 13, Right: 105, Bottom: 69},
		}

		left, top, right, bottom := desired.Margins()

		assert.Equal(t, []int{2, 3, 5, 1}, []int{left, top, right, bottom})
	})
}

func TestDefaultFlay(t *testing.T) {
	assert.Equal(t, model.Flay{WidthFactor: 1, Grow: 0, Shrink: 1}, model.DefaultFlay())
}
