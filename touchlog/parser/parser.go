package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasdy/flaykeys/model"
)

// ParseLine reads a touch report such as
//
//	[23:09:36.886,444] <dbg> input: touch x: 120, y: 45, pressed: true
//
// Lines that are not touch reports yield (nil, nil).
func ParseLine(line string) (*model.TouchEvent, error) {
	splits := strings.Split(line, " ")

	var (
		x, y, foundCount int
		pressed          bool
		err              error
	)

	ix := 0
	limit := len(splits) - 1 // We always care about the next token, so stop before it's too late

	for ix < limit {
		curItem := splits[ix]
		nextItem := strings.TrimRight(splits[ix+1], ",")

		switch curItem {
		case "x:":
			x, err = strconv.Atoi(nextItem)
			if err != nil {
				return nil, fmt.Errorf("could not parse x: %w", err)
			}

			ix++
			foundCount++
		case "y:":
			y, err = strconv.Atoi(nextItem)
			if err != nil {
				return nil, fmt.Errorf("could not parse y: %w", err)
			}

			ix++
			foundCount++
		case "pressed:":
			// Trim the reset escape code some consoles append to the line.
			nextItem = strings.TrimSuffix(nextItem, "\x1b[0m")

			switch nextItem {
			case "true":
				pressed = true
			case "false":
				pressed = false
			default:
				return nil, fmt.Errorf("pressed value unexpected: '%s'", nextItem)
			}

			ix++
			foundCount++
		default:
		}

		ix++
	}

	if foundCount == 3 {
		return &model.TouchEvent{X: x, Y: y, Pressed: pressed}, nil
	}

	return nil, nil
}
