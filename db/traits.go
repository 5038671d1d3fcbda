package db

import (
	"iter"

	"github.com/dasdy/flaykeys/model"
)

// Tracker counts which keys are pressed directly after each other.
type Tracker interface {
	HandleKeyNow(position model.RowCol, pressed bool, verbose bool)
	GatherTransitions(from model.RowCol) []model.Transition
}

type Storage interface {
	Store(touch *model.KeyTouch) error
	GatherAll() ([]model.KeyHitCount, error)
	AllIterator() (iter.Seq[model.KeyTouchWithTimestamp], error)
	Close()
}
