package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dasdy/flaykeys/model"
	cs "github.com/dasdy/flaykeys/web/components"
)

type transitionResponse struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Label   string `json:"label"`
	Pressed int    `json:"pressed"`
}

// BuildTransitionsRenderContext colors every key by how often it followed from.
func (s *ServerHandler) BuildTransitionsRenderContext(transitions []model.Transition, from model.RowCol) cs.RenderContext {
	s.lock.RLock()
	defer s.lock.RUnlock()

	items, index := s.buildItems()

	if i, ok := index[from]; ok {
		items[i].Highlight = true
	}

	maxVal := 0

	for _, tr := range transitions {
		i, ok := index[tr.To]
		if !ok {
			continue
		}

		items[i].Count += tr.Pressed
		maxVal = max(maxVal, items[i].Count)
	}

	return cs.RenderContext{
		Width:     s.width,
		Height:    s.engine.Height(s.keyboard),
		Items:     items,
		MaxVal:    maxVal,
		Page:      cs.PageTypeTransitions,
		Highlight: from,
	}
}

// TransitionsHandle lists keys pressed right after ?row=&col=. Browsers asking
// for HTML get the heatmap, everything else gets JSON.
func (s *ServerHandler) TransitionsHandle(w http.ResponseWriter, r *http.Request) {
	if err := s.applyWidth(r); err != nil {
		writeError(w, err)

		return
	}

	row, err := intQuery(r, "row")
	if err != nil {
		writeError(w, err)

		return
	}

	col, err := intQuery(r, "col")
	if err != nil {
		writeError(w, err)

		return
	}

	from := model.RowCol{Row: row, Col: col}

	s.lock.RLock()
	_, exists := s.keyboard.At(row, col)
	s.lock.RUnlock()

	if !exists {
		http.Error(w, fmt.Sprintf("no key at row %d col %d", row, col), http.StatusNotFound)

		return
	}

	transitions := s.Tracker.GatherTransitions(from)

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		renderContext := s.BuildTransitionsRenderContext(transitions, from)

		if err := SafeRenderTemplate(cs.HeatMap(&renderContext), w); err != nil {
			writeError(w, err)
		}

		return
	}

	response := make([]transitionResponse, 0, len(transitions))

	s.lock.RLock()
	for _, tr := range transitions {
		label := ""
		if key, ok := s.keyboard.At(tr.To.Row, tr.To.Col); ok {
			label = key.Label
		}

		response = append(response, transitionResponse{
			Row:     tr.To.Row,
			Col:     tr.To.Col,
			Label:   label,
			Pressed: tr.Pressed,
		})
	}
	s.lock.RUnlock()

	writeJSON(w, response)
}
