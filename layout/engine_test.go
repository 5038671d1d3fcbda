package layout_test

import (
	"sync"
	"testing"

	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/layout"
	"github.com/dasdy/flaykeys/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyWith(label string, width, grow, shrink float64) model.Key {
	return model.Key{Label: label, Flay: model.Flay{WidthFactor: width, Grow: grow, Shrink: shrink}}
}

func qwertyRows() [][]model.Key {
	top := make([]model.Key, 0)
	for _, l := range []string{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"} {
		top = append(top, keyWith(l, 1, 0, 1))
	}

	home := make([]model.Key, 0)
	for _, l := range []string{"a", "s", "d", "f", "g", "h", "j", "k", "l"} {
		home = append(home, keyWith(l, 1, 0, 1))
	}

	bottom := []model.Key{keyWith("shift", 1.5, 0, 0)}
	for _, l := range []string{"z", "x", "c", "v", "b", "n", "m"} {
		bottom = append(bottom, keyWith(l, 1, 0, 1))
	}

	bottom = append(bottom, keyWith("bspc", 1.5, 0, 0))

	space := []model.Key{
		keyWith("sym", 1.5, 0, 1),
		keyWith(",", 1, 0, 1),
		keyWith("space", 5, 1, 1),
		keyWith(".", 1, 0, 1),
		keyWith("enter", 1.5, 0, 1),
	}

	return [][]model.Key{top, home, bottom, space}
}

func newQwerty(t *testing.T) *keyboard.Keyboard {
	t.Helper()

	kb, err := keyboard.New(qwertyRows())
	require.NoError(t, err)

	return kb
}

func snapshot(kb *keyboard.Keyboard) []model.Bounds {
	result := make([]model.Bounds, 0, kb.KeyCount())
	for k := range kb.Keys() {
		result = append(result, k.Bounds)
	}

	return result
}

func TestNewEngine(t *testing.T) {
	t.Run("accepts nested reference key", func(t *testing.T) {
		engine, err := layout.NewEngine(desired)

		require.NoError(t, err)
		assert.Equal(t, desired, engine.Desired())
	})

	t.Run("rejects empty touch bounds", func(t *testing.T) {
		_, err := layout.NewEngine(model.DesiredKey{})

		require.ErrorIs(t, err, layout.ErrInvalidDesiredKey)
	})

	t.Run("rejects visible bounds outside touch bounds", func(t *testing.T) {
		_, err := layout.NewEngine(model.DesiredKey{
			Touch:   model.Rect{Right: 100, Bottom: 60},
			Visible: model.Rect{Left: -1, Right: 90, Bottom: 50},
		})

		require.ErrorIs(t, err, layout.ErrInvalidDesiredKey)
	})
}

func TestEngineLayout(t *testing.T) {
	engine, err := layout.NewEngine(desired)
	require.NoError(t, err)

	for _, containerWidth := range []int{1000, 1080, 733, 1999} {
		kb := newQwerty(t)
		require.NoError(t, engine.Layout(kb, containerWidth))

		t.Run("rows fill the container", func(t *testing.T) {
			for r, row := range kb.Rows() {
				sum := 0
				for _, k := range row {
					sum += k.Bounds.Touch.Width()
				}

				assert.LessOrEqual(t, sum, containerWidth, "row %d", r)
				assert.GreaterOrEqual(t, sum, containerWidth-len(row), "row %d", r)
			}
		})

		t.Run("keys are adjacent", func(t *testing.T) {
			for _, row := range kb.Rows() {
				assert.Equal(t, 0, row[0].Bounds.Touch.Left)

				for i := 1; i < len(row); i++ {
					assert.Equal(t, row[i-1].Bounds.Touch.Right, row[i].Bounds.Touch.Left)
				}
			}
		})

		t.Run("rectangles are nested", func(t *testing.T) {
			for k := range kb.Keys() {
				b := k.Bounds
				assert.True(t, b.Touch.ContainsRect(b.Visible), "key %s: %+v", k.Label, b)
				assert.True(t, b.Visible.ContainsRect(b.Drawable), "key %s: %+v", k.Label, b)
				assert.True(t, b.Visible.ContainsRect(b.Label), "key %s: %+v", k.Label, b)
			}
		})

		t.Run("rows are stacked", func(t *testing.T) {
			for r, row := range kb.Rows() {
				for _, k := range row {
					assert.Equal(t, r*60, k.Bounds.Touch.Top)
					assert.Equal(t, 60, k.Bounds.Touch.Height())
				}
			}

			assert.Equal(t, 240, engine.Height(kb))
		})
	}
}

func TestEngineLayoutIsIdempotent(t *testing.T) {
	engine, err := layout.NewEngine(desired)
	require.NoError(t, err)

	kb := newQwerty(t)

	require.NoError(t, engine.Layout(kb, 1080))
	first := snapshot(kb)

	require.NoError(t, engine.Layout(kb, 1080))
	assert.Equal(t, first, snapshot(kb))
}

func TestEngineRejectsOverlappingPass(t *testing.T) {
	engine, err := layout.NewEngine(desired)
	require.NoError(t, err)

	kb := newQwerty(t)

	layout.SetRunning(engine, true)
	require.ErrorIs(t, engine.Layout(kb, 1080), layout.ErrPassInProgress)

	t.Run("rejected pass leaves bounds alone", func(t *testing.T) {
		k, ok := kb.At(0, 0)
		require.True(t, ok)
		assert.True(t, k.Bounds.Touch.IsEmpty())
	})

	layout.SetRunning(engine, false)
	require.NoError(t, engine.Layout(kb, 1080))

	t.Run("guard resets after a pass", func(t *testing.T) {
		require.NoError(t, engine.Layout(kb, 1080))
		require.NoError(t, engine.Layout(kb, 720))
	})
}

func TestEngineConcurrentPasses(t *testing.T) {
	engine, err := layout.NewEngine(desired)
	require.NoError(t, err)

	const passes = 16

	kbs := make([]*keyboard.Keyboard, passes)
	for i := range kbs {
		kbs[i] = newQwerty(t)
	}

	errs := make([]error, passes)

	var wg sync.WaitGroup
	for i := range passes {
		wg.Add(1)

		go func() {
			defer wg.Done()
			errs[i] = engine.Layout(kbs[i], 1080)
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, layout.ErrPassInProgress)
		}
	}

	require.NoError(t, engine.Layout(kbs[0], 1080))
}

func TestEngineLayoutOverwritesOnResize(t *testing.T) {
	engine, err := layout.NewEngine(desired)
	require.NoError(t, err)

	kb := newQwerty(t)

	require.NoError(t, engine.Layout(kb, 2000))
	wide := snapshot(kb)

	require.NoError(t, engine.Layout(kb, 1000))
	narrow := snapshot(kb)

	fresh := newQwerty(t)
	require.NoError(t, engine.Layout(fresh, 1000))

	assert.NotEqual(t, wide, narrow)
	assert.Equal(t, snapshot(fresh), narrow)
}

func TestEngineLookupAfterLayout(t *testing.T) {
	engine, err := layout.NewEngine(desired)
	require.NoError(t, err)

	kb := newQwerty(t)
	require.NoError(t, engine.Layout(kb, 1000))

	found, ok := kb.KeyForPos(450, 30)
	require.True(t, ok)
	assert.Equal(t, "t", found.Label)

	found, ok = kb.KeyForPos(500, 200)
	require.True(t, ok)
	assert.Equal(t, "space", found.Label)

	_, ok = kb.KeyForPos(500, 240)
	assert.False(t, ok)
}
