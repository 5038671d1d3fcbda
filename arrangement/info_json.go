package arrangement

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/dasdy/flaykeys/model"
)

// ZMKKeyDescriptor is one entry of a keyboard info.json layout. Grow and
// shrink are extensions; the remaining fields follow the ZMK configurator format.
type ZMKKeyDescriptor struct {
	keySpec

	Row int     `json:"row"`
	Col int     `json:"col"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

type ZMKLayoutCollection struct {
	Layout []ZMKKeyDescriptor `json:"layout"`
}

type ZmkInfoJSON struct {
	ID      string                         `json:"id"`
	Name    string                         `json:"name"`
	Layouts map[string]ZMKLayoutCollection `json:"layouts"`
}

// LoadJSON reads an info.json file. Keys are grouped by row and ordered by column.
func LoadJSON(reader io.Reader) ([][]model.Key, error) {
	decoder := json.NewDecoder(reader)

	var info ZmkInfoJSON

	if err := decoder.Decode(&info); err != nil {
		return nil, fmt.Errorf("could not decode ZMK info JSON: %w", err)
	}

	if len(info.Layouts) != 1 {
		return nil, fmt.Errorf("expected exactly one layout, got %d", len(info.Layouts))
	}

	byRow := make(map[int][]ZMKKeyDescriptor)

	for _, layout := range info.Layouts {
		for _, key := range layout.Layout {
			if key.Row < 0 || key.Col < 0 {
				return nil, fmt.Errorf("key %q has negative row/col %d/%d", key.Label, key.Row, key.Col)
			}

			byRow[key.Row] = append(byRow[key.Row], key)
		}
	}

	rowIndexes := make([]int, 0, len(byRow))
	for r := range byRow {
		rowIndexes = append(rowIndexes, r)
	}

	slices.Sort(rowIndexes)

	rows := make([][]model.Key, 0, len(rowIndexes))

	for _, r := range rowIndexes {
		descriptors := byRow[r]
		slices.SortStableFunc(descriptors, func(a, b ZMKKeyDescriptor) int {
			return cmp.Compare(a.Col, b.Col)
		})

		keys := make([]model.Key, 0, len(descriptors))
		for _, d := range descriptors {
			keys = append(keys, d.toKey())
		}

		rows = append(rows, keys)
	}

	return rows, nil
}
