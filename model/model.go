package model

import (
	"time"
)

// Rect is an axis-aligned rectangle. Left and Top are inclusive, Right and
// Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func (r Rect) Width() int {
	return r.Right - r.Left
}

func (r Rect) Height() int {
	return r.Bottom - r.Top
}

func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// ContainsRect reports whether inner lies entirely within r.
func (r Rect) ContainsRect(inner Rect) bool {
	return inner.Left >= r.Left && inner.Top >= r.Top &&
		inner.Right <= r.Right && inner.Bottom <= r.Bottom
}

// Inset moves every edge of r inwards by the given amounts.
func (r Rect) Inset(left, top, right, bottom int) Rect {
	return Rect{
		Left:   r.Left + left,
		Top:    r.Top + top,
		Right:  r.Right - right,
		Bottom: r.Bottom - bottom,
	}
}

// Flay holds the width, grow and shrink weights of a key.
type Flay struct {
	WidthFactor float64
	Grow        float64
	Shrink      float64
}

// DefaultFlay shrinks by default and does not grow.
func DefaultFlay() Flay {
	return Flay{WidthFactor: 1.0, Grow: 0.0, Shrink: 1.0}
}

// Bounds are the rectangles a layout pass writes for a single key.
type Bounds struct {
	Touch    Rect
	Visible  Rect
	Drawable Rect
	Label    Rect
}

type RowCol struct {
	Row int
	Col int
}

type Key struct {
	Position RowCol
	Code     string
	Label    string
	Flay     Flay
	Bounds   Bounds
}

// DesiredKey is the pre-measured reference key every pass scales against.
type DesiredKey struct {
	Touch   Rect
	Visible Rect
}

// NewDesiredKey builds a reference key of the given unit size whose visible
// rect is inset by marginH on the left and right and marginV on the top and bottom.
func NewDesiredKey(width, height, marginH, marginV int) DesiredKey {
	touch := Rect{Left: 0, Top: 0, Right: width, Bottom: height}

	return DesiredKey{
		Touch:   touch,
		Visible: touch.Inset(marginH, marginV, marginH, marginV),
	}
}

// Margins returns the absolute per-side distance between the touch and visible rects.
func (d DesiredKey) Margins() (left, top, right, bottom int) {
	return abs(d.Touch.Left - d.Visible.Left),
		abs(d.Touch.Top - d.Visible.Top),
		abs(d.Touch.Right - d.Visible.Right),
		abs(d.Touch.Bottom - d.Visible.Bottom)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

type TouchEvent struct {
	X       int
	Y       int
	Pressed bool
}

// KeyTouch is a touch event resolved to the key under it.
type KeyTouch struct {
	Position RowCol
	TouchEvent
}

type KeyTouchWithTimestamp struct {
	KeyTouch
	Timestamp time.Time
}

type KeyHitCount struct {
	Position RowCol
	Count    int
}

// Transition counts how often To was pressed directly after From.
type Transition struct {
	From    RowCol
	To      RowCol
	Pressed int
}
