package render_test

import (
	"bytes"
	"testing"

	"github.com/dasdy/flaykeys/arrangement"
	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/layout"
	"github.com/dasdy/flaykeys/model"
	"github.com/dasdy/flaykeys/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qwerty(t *testing.T) (*keyboard.Keyboard, int) {
	t.Helper()

	rows, err := arrangement.Load("data/qwerty.toml")
	require.NoError(t, err)

	kb, err := keyboard.New(rows)
	require.NoError(t, err)

	engine, err := layout.NewEngine(model.NewDesiredKey(100, 60, 5, 4))
	require.NoError(t, err)
	require.NoError(t, engine.Layout(kb, 1000))

	return kb, engine.Height(kb)
}

func TestPDF(t *testing.T) {
	t.Run("renders a laid out keyboard", func(t *testing.T) {
		kb, height := qwerty(t)

		data, err := render.PDF(kb, 1000, height)
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("renders keys without bounds", func(t *testing.T) {
		kb, err := keyboard.New([][]model.Key{{{Code: "a", Flay: model.DefaultFlay()}}})
		require.NoError(t, err)

		data, err := render.NewRenderer(render.WithPixelSize(1)).Render(kb, 100, 100)
		require.NoError(t, err)

		assert.NotEmpty(t, data)
	})

	t.Run("rejects empty page", func(t *testing.T) {
		kb, _ := qwerty(t)

		_, err := render.PDF(kb, 0, 100)

		require.ErrorIs(t, err, render.ErrEmptyPage)
	})

	t.Run("fails on missing font", func(t *testing.T) {
		kb, height := qwerty(t)

		_, err := render.NewRenderer(render.WithFont("data/missing.ttf")).Render(kb, 1000, height)

		require.Error(t, err)
	})
}
