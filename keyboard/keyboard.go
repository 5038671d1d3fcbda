package keyboard

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/dasdy/flaykeys/model"
)

var (
	ErrEmptyArrangement = errors.New("arrangement has no rows")
	ErrEmptyRow         = errors.New("arrangement row has no keys")
	ErrInvalidFlay      = errors.New("flay factor must be a non-negative number")
)

// Keyboard owns the keys of an arrangement in a single row-major buffer.
// Layout passes write key bounds directly into that buffer.
type Keyboard struct {
	keys     []model.Key
	rowStart []int
}

// New copies rows into a new Keyboard. The topology is fixed afterwards.
func New(rows [][]model.Key) (*Keyboard, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyArrangement
	}

	total := 0

	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d: %w", i, ErrEmptyRow)
		}

		total += len(row)
	}

	kb := &Keyboard{
		keys:     make([]model.Key, 0, total),
		rowStart: make([]int, 0, len(rows)+1),
	}

	for i, row := range rows {
		kb.rowStart = append(kb.rowStart, len(kb.keys))

		for j, key := range row {
			if err := validateFlay(key.Flay); err != nil {
				return nil, fmt.Errorf("key at row %d, col %d: %w", i, j, err)
			}

			key.Position = model.RowCol{Row: i, Col: j}
			kb.keys = append(kb.keys, key)
		}
	}

	kb.rowStart = append(kb.rowStart, len(kb.keys))

	return kb, nil
}

func validateFlay(f model.Flay) error {
	for _, v := range []float64{f.WidthFactor, f.Grow, f.Shrink} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: got %v", ErrInvalidFlay, f)
		}
	}

	return nil
}

func (kb *Keyboard) RowCount() int {
	return len(kb.rowStart) - 1
}

func (kb *Keyboard) KeyCount() int {
	return len(kb.keys)
}

// Row returns a view of the given row. Writes through the view change the keyboard.
func (kb *Keyboard) Row(row int) []model.Key {
	if row < 0 || row >= kb.RowCount() {
		return nil
	}

	start, end := kb.rowStart[row], kb.rowStart[row+1]

	return kb.keys[start:end:end]
}

func (kb *Keyboard) At(row, col int) (*model.Key, bool) {
	keys := kb.Row(row)
	if col < 0 || col >= len(keys) {
		return nil, false
	}

	return &keys[col], true
}

// Keys yields every key in row-major order.
func (kb *Keyboard) Keys() iter.Seq[*model.Key] {
	return func(yield func(*model.Key) bool) {
		for i := range kb.keys {
			if !yield(&kb.keys[i]) {
				return
			}
		}
	}
}

// Rows yields each row index together with a view of its keys.
func (kb *Keyboard) Rows() iter.Seq2[int, []model.Key] {
	return func(yield func(int, []model.Key) bool) {
		for r := range kb.RowCount() {
			if !yield(r, kb.Row(r)) {
				return
			}
		}
	}
}

// KeyForPos returns the first key, in row-major order, whose touch bounds contain (x, y).
func (kb *Keyboard) KeyForPos(x, y int) (*model.Key, bool) {
	for key := range kb.Keys() {
		if key.Bounds.Touch.Contains(x, y) {
			return key, true
		}
	}

	return nil, false
}
