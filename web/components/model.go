package components

import "github.com/dasdy/flaykeys/model"

type PageType int

const (
	PageTypeStats PageType = iota
	PageTypeTransitions
)

type Item struct {
	Position  model.RowCol
	Label     string
	Count     int
	Touch     model.Rect
	Visible   model.Rect
	Highlight bool
}

type RenderContext struct {
	Width  int
	Height int
	Items  []Item
	MaxVal int
	Page   PageType
	// Highlight is the key transitions are shown for.
	Highlight model.RowCol
}
