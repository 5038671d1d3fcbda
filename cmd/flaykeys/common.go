package flaykeys

import (
	"fmt"

	"github.com/dasdy/flaykeys/arrangement"
	"github.com/dasdy/flaykeys/keyboard"
	"github.com/dasdy/flaykeys/layout"
	"github.com/dasdy/flaykeys/model"
)

// loadKeyboard reads the arrangement and builds an engine from the key flags.
// The keyboard is not laid out yet.
func loadKeyboard() (*keyboard.Keyboard, *layout.Engine, error) {
	rows, err := arrangement.Load(arrangementPath)
	if err != nil {
		return nil, nil, err
	}

	kb, err := keyboard.New(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid arrangement %s: %w", arrangementPath, err)
	}

	engine, err := layout.NewEngine(model.NewDesiredKey(keyWidth, keyHeight, keyMarginH, keyMarginV))
	if err != nil {
		return nil, nil, err
	}

	return kb, engine, nil
}

func loadLaidOutKeyboard() (*keyboard.Keyboard, *layout.Engine, error) {
	kb, engine, err := loadKeyboard()
	if err != nil {
		return nil, nil, err
	}

	if err := engine.Layout(kb, width); err != nil {
		return nil, nil, err
	}

	return kb, engine, nil
}
