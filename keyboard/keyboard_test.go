package keyboard_test

import (
	"math"
	"testing"

	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(label string) model.Key {
	return model.Key{Label: label, Flay: model.DefaultFlay()}
}

func testRows() [][]model.Key {
	return [][]model.Key{
		{key("q"), key("w"), key("e")},
		{key("a"), key("s")},
		{key("space")},
	}
}

func TestNew(t *testing.T) {
	t.Run("assigns positions", func(t *testing.T) {
		kb, err := keyboard.New(testRows())
		require.NoError(t, err)

		assert.Equal(t, 3, kb.RowCount())
		assert.Equal(t, 6, kb.KeyCount())

		k, ok := kb.At(1, 1)
		require.True(t, ok)
		assert.Equal(t, "s", k.Label)
		assert.Equal(t, model.RowCol{Row: 1, Col: 1}, k.Position)
	})

	t.Run("rejects empty arrangement", func(t *testing.T) {
		_, err := keyboard.New(nil)

		require.ErrorIs(t, err, keyboard.ErrEmptyArrangement)
	})

	t.Run("rejects empty row", func(t *testing.T) {
		_, err := keyboard.New([][]model.Key{{key("a")}, {}})

		require.ErrorIs(t, err, keyboard.ErrEmptyRow)
	})

	invalidFlays := map[string]model.Flay{
		"negative width":  {WidthFactor: -1, Shrink: 1},
		"negative grow":   {WidthFactor: 1, Grow: -0.5},
		"negative shrink": {WidthFactor: 1, Shrink: -2},
		"nan width":       {WidthFactor: math.NaN()},
		"infinite grow":   {WidthFactor: 1, Grow: math.Inf(1)},
	}

	for name, flay := range invalidFlays {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := keyboard.New([][]model.Key{{{Flay: flay}}})

			require.ErrorIs(t, err, keyboard.ErrInvalidFlay)
		})
	}

	t.Run("does not alias input rows", func(t *testing.T) {
		rows := testRows()
		kb, err := keyboard.New(rows)
		require.NoError(t, err)

		rows[0][0].Label = "changed"

		k, _ := kb.At(0, 0)
		assert.Equal(t, "q", k.Label)
	})
}

func TestIteration(t *testing.T) {
	kb, err := keyboard.New(testRows())
	require.NoError(t, err)

	flat := make([]string, 0)
	for k := range kb.Keys() {
		flat = append(flat, k.Label)
	}

	nested := make([]string, 0)
	rowIndexes := make([]int, 0)

	for r, row := range kb.Rows() {
		rowIndexes = append(rowIndexes, r)

		for _, k := range row {
			nested = append(nested, k.Label)
		}
	}

	assert.Equal(t, []string{"q", "w", "e", "a", "s", "space"}, flat)
	assert.Equal(t, flat, nested)
	assert.Equal(t, []int{0, 1, 2}, rowIndexes)

	t.Run("is restartable", func(t *testing.T) {
		again := make([]string, 0)
		for k := range kb.Keys() {
			again = append(again, k.Label)
		}

		assert.Equal(t, flat, again)
	})

	t.Run("stops early", func(t *testing.T) {
		count := 0
		for range kb.Keys() {
			count++
			if count == 2 {
				break
			}
		}

		assert.Equal(t, 2, count)
	})

	t.Run("row views write through", func(t *testing.T) {
		for _, row := range kb.Rows() {
			row[0].Bounds.Touch = model.Rect{Right: 7, Bottom: 7}
		}

		k, _ := kb.At(2, 0)
		assert.Equal(t, 7, k.Bounds.Touch.Right)
	})
}

func TestRowViewsDoNotGrowIntoNextRow(t *testing.T) {
	kb, err := keyboard.New([][]model.Key{{key("a")}, {key("b")}})
	require.NoError(t, err)

	t.Run("append to Row", func(t *testing.T) {
		_ = append(kb.Row(0), model.Key{Label: "intruder"})

		k, ok := kb.At(1, 0)
		require.True(t, ok)
		assert.Equal(t, "b", k.Label)
	})

	t.Run("append to Rows", func(t *testing.T) {
		for _, row := range kb.Rows() {
			_ = append(row, model.Key{Label: "intruder"})
		}

		k, ok := kb.At(1, 0)
		require.True(t, ok)
		assert.Equal(t, "b", k.Label)
		assert.Equal(t, 2, kb.KeyCount())
	})
}

func TestAt(t *testing.T) {
	kb, err := keyboard.New(testRows())
	require.NoError(t, err)

	for _, rc := range []model.RowCol{{Row: -1, Col: 0}, {Row: 3, Col: 0}, {Row: 1, Col: 2}, {Row: 0, Col: -1}} {
		_, ok := kb.At(rc.Row, rc.Col)
		assert.False(t, ok, "position %+v", rc)
	}
}

func TestKeyForPos(t *testing.T) {
	kb, err := keyboard.New([][]model.Key{{key("a"), key("b")}})
	require.NoError(t, err)

	a, _ := kb.At(0, 0)
	b, _ := kb.At(0, 1)
	a.Bounds.Touch = model.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50}
	b.Bounds.Touch = model.Rect{Left: 100, Top: 0, Right: 200, Bottom: 50}

	t.Run("finds key by interior point", func(t *testing.T) {
		found, ok := kb.KeyForPos(150, 25)

		require.True(t, ok)
		assert.Equal(t, "b", found.Label)
	})

	t.Run("shared edge belongs to right key", func(t *testing.T) {
		found, ok := kb.KeyForPos(100, 0)

		require.True(t, ok)
		assert.Equal(t, "b", found.Label)
	})

	t.Run("returns not found outside", func(t *testing.T) {
		found, ok := kb.KeyForPos(200, 25)

		assert.False(t, ok)
		assert.Nil(t, found)

		_, ok = kb.KeyForPos(-1, -1)
		assert.False(t, ok)
	})

	t.Run("first match wins on overlap", func(t *testing.T) {
		b.Bounds.Touch = model.Rect{Left: 50, Top: 0, Right: 200, Bottom: 50}

		found, ok := kb.KeyForPos(60, 10)

		require.True(t, ok)
		assert.Equal(t, "a", found.Label)
	})
}
