package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rectJSON struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

type keyJSON struct {
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	Label   string   `json:"label"`
	Touch   rectJSON `json:"touch"`
	Visible rectJSON `json:"visible"`
}

type layoutJSON struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Keys   []keyJSON `json:"keys"`
}

func getLayout(t *testing.T, handler MockServerHandler, target string) layoutJSON {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	handler.LayoutHandle(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result layoutJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	return result
}

func TestLayoutHandle(t *testing.T) {
	t.Run("returns every key", func(t *testing.T) {
		handler := setupMockServerHandler(t)

		result := getLayout(t, handler, "/layout")

		assert.Equal(t, 200, result.Width)
		assert.Equal(t, 100, result.Height)
		require.Len(t, result.Keys, 3)
		assert.Equal(t, keyJSON{
			Row:     1,
			Col:     0,
			Label:   "C",
			Touch:   rectJSON{Left: 0, Top: 50, Right: 200, Bottom: 100},
			Visible: rectJSON{Left: 52, Top: 52, Right: 148, Bottom: 98},
		}, result.Keys[2])
	})

	t.Run("width parameter lays the keyboard out again", func(t *testing.T) {
		handler := setupMockServerHandler(t)

		result := getLayout(t, handler, "/layout?width=400")

		assert.Equal(t, 400, result.Width)
		assert.Equal(t, rectJSON{Left: 200, Top: 0, Right: 400, Bottom: 50}, result.Keys[1].Touch)

		// the new width sticks
		result = getLayout(t, handler, "/layout")
		assert.Equal(t, 400, result.Width)
	})
}

func TestKeyHandle(t *testing.T) {
	handler := setupMockServerHandler(t)

	tests := []struct {
		target string
		status int
		label  string
	}{
		{"/key?x=10&y=10", http.StatusOK, "A"},
		{"/key?x=100&y=0", http.StatusOK, "B"},
		{"/key?x=199&y=99", http.StatusOK, "C"},
		{"/key?x=200&y=10", http.StatusNotFound, ""},
		{"/key?x=10&y=100", http.StatusNotFound, ""},
		{"/key?x=ten&y=10", http.StatusBadRequest, ""},
		{"/key?y=10", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()

			handler.KeyHandle(w, req)

			require.Equal(t, tt.status, w.Code)

			if tt.status != http.StatusOK {
				return
			}

			var key keyJSON
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &key))
			assert.Equal(t, tt.label, key.Label)
		})
	}
}

func TestKeyForPos(t *testing.T) {
	handler := setupMockServerHandler(t)

	key, ok := handler.KeyForPos(150, 25)
	require.True(t, ok)
	assert.Equal(t, "B", key.Label)

	// returned keys are copies
	key.Label = "changed"
	again, _ := handler.KeyForPos(150, 25)
	assert.Equal(t, "B", again.Label)

	_, ok = handler.KeyForPos(-1, 0)
	assert.False(t, ok)
}
