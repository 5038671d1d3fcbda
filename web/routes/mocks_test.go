package routes_test

import (
	"iter"
	"testing"

	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/layout"
	"github.com/dasdy/flaykeys/model"
	"github.com/dasdy/flaykeys/web/routes"
	"github.com/stretchr/testify/require"
)

// SimpleStorageMock is a simple manual mock implementation of the Storage interface
type SimpleStorageMock struct {
	ReturnStats []model.KeyHitCount
	ReturnError error
	CallCount   int
}

func (m *SimpleStorageMock) GatherAll() ([]model.KeyHitCount, error) {
	m.CallCount++

	return m.ReturnStats, m.ReturnError
}

func (m *SimpleStorageMock) AllIterator() (iter.Seq[model.KeyTouchWithTimestamp], error) {
	return func(func(model.KeyTouchWithTimestamp) bool) {}, nil
}

func (m *SimpleStorageMock) Close() {}

func (m *SimpleStorageMock) Store(*model.KeyTouch) error {
	return nil
}

// TrackerMock is a simple mock implementation of the Tracker interface
type TrackerMock struct {
	ReturnTransitions []model.Transition
	CallCount         int
	LastPosition      model.RowCol
}

func (m *TrackerMock) HandleKeyNow(model.RowCol, bool, bool) {}

func (m *TrackerMock) GatherTransitions(from model.RowCol) []model.Transition {
	m.CallCount++
	m.LastPosition = from

	return m.ReturnTransitions
}

type MockServerHandler struct {
	*routes.ServerHandler
	MockStorage *SimpleStorageMock
	MockTracker *TrackerMock
}

// setupMockServerHandler lays out
//
//	A B
//	 C
//
// with 100x50 keys in a 200 wide container.
func setupMockServerHandler(t *testing.T) MockServerHandler {
	t.Helper()

	kb, err := keyboard.New([][]model.Key{
		{
			{Code: "A", Label: "A", Flay: model.DefaultFlay()},
			{Code: "B", Label: "B", Flay: model.DefaultFlay()},
		},
		{
			{Code: "C", Label: "C", Flay: model.DefaultFlay()},
		},
	})
	require.NoError(t, err)

	engine, err := layout.NewEngine(model.NewDesiredKey(100, 50, 2, 2))
	require.NoError(t, err)

	storage := &SimpleStorageMock{}
	tracker := &TrackerMock{}

	handler, err := routes.NewServerHandler(storage, tracker, kb, engine, 200)
	require.NoError(t, err)

	return MockServerHandler{
		ServerHandler: handler,
		MockStorage:   storage,
		MockTracker:   tracker,
	}
}
