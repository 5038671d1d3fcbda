package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/a-h/templ"
	"github.com/dasdy/flaykeys/db"
	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/layout"
	"github.com/dasdy/flaykeys/logging"
	"github.com/dasdy/flaykeys/model"
)

var errBadQuery = errors.New("bad query")

// ServerHandler holds all dependencies needed for the web server handlers.
// Layout passes triggered by requests hold the write lock, everything else
// reads under the read lock.
type ServerHandler struct {
	Storage  db.Storage
	Tracker  db.Tracker
	keyboard *keyboard.Keyboard
	engine   *layout.Engine

	lock  sync.RWMutex
	width int
}

// NewServerHandler lays kb out for width before serving it.
func NewServerHandler(
	storage db.Storage,
	tracker db.Tracker,
	kb *keyboard.Keyboard,
	engine *layout.Engine,
	width int,
) (*ServerHandler, error) {
	if err := engine.Layout(kb, width); err != nil {
		return nil, fmt.Errorf("could not lay out keyboard: %w", err)
	}

	return &ServerHandler{
		Storage:  storage,
		Tracker:  tracker,
		keyboard: kb,
		engine:   engine,
		width:    width,
	}, nil
}

// KeyForPos resolves a point under the read lock and returns a copy of the key.
func (s *ServerHandler) KeyForPos(x, y int) (*model.Key, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	key, ok := s.keyboard.KeyForPos(x, y)
	if !ok {
		return nil, false
	}

	result := *key

	return &result, true
}

// Relayout runs a new pass when width differs from the current one.
func (s *ServerHandler) Relayout(width int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if width == s.width {
		return nil
	}

	if err := s.engine.Layout(s.keyboard, width); err != nil {
		return err
	}

	slog.InfoContext(logging.PackageCtx("web"), "Keyboard laid out again", "from", s.width, "to", width)

	s.width = width

	return nil
}

// applyWidth honors an optional ?width= query parameter.
func (s *ServerHandler) applyWidth(r *http.Request) error {
	raw := r.URL.Query().Get("width")
	if raw == "" {
		return nil
	}

	width, err := strconv.Atoi(raw)
	if err != nil || width <= 0 {
		return fmt.Errorf("%w: width %q must be a positive integer", errBadQuery, raw)
	}

	return s.Relayout(width)
}

func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", errBadQuery, name, raw)
	}

	return value, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errBadQuery) {
		status = http.StatusBadRequest
	}

	slog.Error("Request failed", "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, value any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(value); err != nil {
		writeError(w, fmt.Errorf("could not encode response: %w", err))

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// SafeRenderTemplate safely renders a templ component to an http.ResponseWriter.
func SafeRenderTemplate(component templ.Component, w http.ResponseWriter) error {
	// Do not write to w because it implies 200 status
	var buf bytes.Buffer

	err := component.Render(context.Background(), &buf)
	if err != nil {
		return fmt.Errorf("could not render template: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", "error", err)

		return fmt.Errorf("could not write to response writer: %w", err)
	}

	return nil
}
