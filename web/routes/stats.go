package routes

import (
	"log/slog"
	"net/http"

	"github.com/dasdy/flaykeys/model"
	cs "github.com/dasdy/flaykeys/web/components"
)

// buildItems lists every key with a zero count. Caller holds the read lock.
func (s *ServerHandler) buildItems() ([]cs.Item, map[model.RowCol]int) {
	items := make([]cs.Item, 0, s.keyboard.KeyCount())
	index := make(map[model.RowCol]int, s.keyboard.KeyCount())

	for key := range s.keyboard.Keys() {
		index[key.Position] = len(items)
		items = append(items, cs.Item{
			Position: key.Position,
			Label:    key.Label,
			Touch:    key.Bounds.Touch,
			Visible:  key.Bounds.Visible,
		})
	}

	return items, index
}

// BuildStatsRenderContext builds the render context for the stats page.
func (s *ServerHandler) BuildStatsRenderContext(dbStats []model.KeyHitCount) cs.RenderContext {
	s.lock.RLock()
	defer s.lock.RUnlock()

	items, index := s.buildItems()

	maxVal := 0

	for _, hit := range dbStats {
		i, ok := index[hit.Position]
		if !ok {
			// the arrangement changed since these were recorded
			slog.Debug("Position not found in arrangement", "position", hit.Position)

			continue
		}

		items[i].Count += hit.Count
		maxVal = max(maxVal, items[i].Count)
	}

	return cs.RenderContext{
		Width:  s.width,
		Height: s.engine.Height(s.keyboard),
		Items:  items,
		MaxVal: maxVal,
		Page:   cs.PageTypeStats,
	}
}

// StatsHandle handles requests to the stats page.
func (s *ServerHandler) StatsHandle(w http.ResponseWriter, r *http.Request) {
	slog.Info("Handling stats page request")

	if err := s.applyWidth(r); err != nil {
		writeError(w, err)

		return
	}

	curStats, err := s.Storage.GatherAll()
	if err != nil {
		writeError(w, err)

		return
	}

	renderContext := s.BuildStatsRenderContext(curStats)

	if err := SafeRenderTemplate(cs.HeatMap(&renderContext), w); err != nil {
		writeError(w, err)
	}
}
