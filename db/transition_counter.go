package db

import (
	"cmp"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/dasdy/flaykeys/model"
)

// TransitionCounter counts keys pressed directly after each other.
type TransitionCounter struct {
	lastKey   model.RowCol
	hasLast   bool
	counts    map[model.RowCol]map[model.RowCol]int
	stateLock sync.RWMutex
}

func NewTransitionCounter() *TransitionCounter {
	return &TransitionCounter{
		counts: make(map[model.RowCol]map[model.RowCol]int),
	}
}

// NewTransitionCounterFromDB replays the stored history before returning.
func NewTransitionCounterFromDB(storage Storage) (*TransitionCounter, error) {
	tracker := NewTransitionCounter()

	iterator, err := storage.AllIterator()
	if err != nil {
		return nil, err
	}

	tracker.initCounter(iterator)

	return tracker, nil
}

func (tc *TransitionCounter) HandleKeyNow(position model.RowCol, pressed bool, verbose bool) {
	tc.stateLock.Lock()
	defer tc.stateLock.Unlock()

	tc.handleKey(position, pressed, verbose)
}

// GatherTransitions returns how often every key followed from, most frequent first.
func (tc *TransitionCounter) GatherTransitions(from model.RowCol) []model.Transition {
	tc.stateLock.RLock()
	defer tc.stateLock.RUnlock()

	counts := tc.counts[from]

	result := make([]model.Transition, 0, len(counts))

	for to, pressed := range counts {
		result = append(result, model.Transition{From: from, To: to, Pressed: pressed})
	}

	slices.SortFunc(result, func(a, b model.Transition) int {
		return cmp.Or(
			-cmp.Compare(a.Pressed, b.Pressed),
			cmp.Compare(a.To.Row, b.To.Row),
			cmp.Compare(a.To.Col, b.To.Col),
		)
	})

	return result
}

func (tc *TransitionCounter) initCounter(items iter.Seq[model.KeyTouchWithTimestamp]) {
	tc.stateLock.Lock()
	defer tc.stateLock.Unlock()

	for item := range items {
		tc.handleKey(item.Position, item.Pressed, false)
	}
}

func (tc *TransitionCounter) handleKey(position model.RowCol, pressed, verbose bool) {
	// only presses start a transition
	if !pressed {
		return
	}

	if tc.hasLast {
		if _, exists := tc.counts[tc.lastKey]; !exists {
			tc.counts[tc.lastKey] = make(map[model.RowCol]int)
		}

		if verbose {
			slog.Info("key press sequence",
				"current", position,
				"previous", tc.lastKey)
		}

		tc.counts[tc.lastKey][position]++
	}

	tc.lastKey = position
	tc.hasLast = true
}
