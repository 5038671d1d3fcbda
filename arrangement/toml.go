package arrangement

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/dasdy/flaykeys/model"
)

type tomlArrangement struct {
	Name string    `toml:"name"`
	Rows []tomlRow `toml:"rows"`
}

type tomlRow struct {
	Keys []keySpec `toml:"keys"`
}

// LoadTOML reads an arrangement of [[rows]] tables, each holding [[rows.keys]].
// Unknown fields are rejected.
func LoadTOML(reader io.Reader) ([][]model.Key, error) {
	var doc tomlArrangement

	md, err := toml.NewDecoder(reader).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("could not decode arrangement TOML: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown arrangement fields: %v", undecoded)
	}

	if len(doc.Rows) == 0 {
		return nil, errors.New("expected at least 1 row in arrangement")
	}

	rows := make([][]model.Key, 0, len(doc.Rows))

	for _, row := range doc.Rows {
		keys := make([]model.Key, 0, len(row.Keys))
		for _, spec := range row.Keys {
			keys = append(keys, spec.toKey())
		}

		rows = append(rows, keys)
	}

	return rows, nil
}
