package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/logging"
	"github.com/dasdy/flaykeys/model"
)

var (
	ErrInvalidDesiredKey = errors.New("invalid desired key")
	ErrPassInProgress    = errors.New("layout pass already in progress")
)

// Engine runs layout passes against a fixed reference key.
type Engine struct {
	desired model.DesiredKey
	running atomic.Bool
}

func NewEngine(desired model.DesiredKey) (*Engine, error) {
	if desired.Touch.IsEmpty() {
		return nil, fmt.Errorf("%w: touch bounds %+v are empty", ErrInvalidDesiredKey, desired.Touch)
	}

	if !desired.Touch.ContainsRect(desired.Visible) {
		return nil, fmt.Errorf("%w: visible bounds %+v are not inside touch bounds %+v",
			ErrInvalidDesiredKey, desired.Visible, desired.Touch)
	}

	return &Engine{desired: desired}, nil
}

func (e *Engine) Desired() model.DesiredKey {
	return e.desired
}

// Height is the total height a keyboard occupies after a pass.
func (e *Engine) Height(kb *keyboard.Keyboard) int {
	return kb.RowCount() * e.desired.Touch.Height()
}

// Layout overwrites the bounds of every key in kb for a container of the given pixel width.
// Passes on the same engine must not overlap.
func (e *Engine) Layout(kb *keyboard.Keyboard, containerWidth int) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrPassInProgress
	}
	defer e.running.Store(false)

	available := float64(containerWidth) / float64(e.desired.Touch.Width())
	flays := make([]model.Flay, 0)

	for r, row := range kb.Rows() {
		flays = flays[:0]
		for _, key := range row {
			flays = append(flays, key.Flay)
		}

		for i, bounds := range Row(flays, r, available, e.desired) {
			row[i].Bounds = bounds
		}
	}

	slog.DebugContext(logging.PackageCtx("layout"), "Layout pass done",
		"containerWidth", containerWidth,
		"availableUnits", available,
		"rows", kb.RowCount(),
		"keys", kb.KeyCount())

	return nil
}
