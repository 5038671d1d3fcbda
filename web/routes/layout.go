package routes

import (
	"net/http"

	"github.com/dasdy/flaykeys/model"
)

type keyResponse struct {
	Row      int        `json:"row"`
	Col      int        `json:"col"`
	Code     string     `json:"code"`
	Label    string     `json:"label"`
	Touch    model.Rect `json:"touch"`
	Visible  model.Rect `json:"visible"`
	Drawable model.Rect `json:"drawable"`
	LabelBox model.Rect `json:"labelBox"`
}

type layoutResponse struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Keys   []keyResponse `json:"keys"`
}

func toKeyResponse(key *model.Key) keyResponse {
	return keyResponse{
		Row:      key.Position.Row,
		Col:      key.Position.Col,
		Code:     key.Code,
		Label:    key.Label,
		Touch:    key.Bounds.Touch,
		Visible:  key.Bounds.Visible,
		Drawable: key.Bounds.Drawable,
		LabelBox: key.Bounds.Label,
	}
}

// LayoutHandle returns the bounds of every key.
func (s *ServerHandler) LayoutHandle(w http.ResponseWriter, r *http.Request) {
	if err := s.applyWidth(r); err != nil {
		writeError(w, err)

		return
	}

	s.lock.RLock()

	response := layoutResponse{
		Width:  s.width,
		Height: s.engine.Height(s.keyboard),
		Keys:   make([]keyResponse, 0, s.keyboard.KeyCount()),
	}

	for key := range s.keyboard.Keys() {
		response.Keys = append(response.Keys, toKeyResponse(key))
	}

	s.lock.RUnlock()

	writeJSON(w, response)
}

// KeyHandle resolves ?x=&y= to a key, 404 when the point misses every key.
func (s *ServerHandler) KeyHandle(w http.ResponseWriter, r *http.Request) {
	if err := s.applyWidth(r); err != nil {
		writeError(w, err)

		return
	}

	x, err := intQuery(r, "x")
	if err != nil {
		writeError(w, err)

		return
	}

	y, err := intQuery(r, "y")
	if err != nil {
		writeError(w, err)

		return
	}

	key, ok := s.KeyForPos(x, y)
	if !ok {
		http.Error(w, "no key at this position", http.StatusNotFound)

		return
	}

	writeJSON(w, toKeyResponse(key))
}
