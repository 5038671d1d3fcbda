package arrangement

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dasdy/flaykeys/model"
)

var ErrUnknownFormat = errors.New("unknown arrangement format")

func GetProjectPath() string {
	//nolint:dogsled
	_, b, _, _ := runtime.Caller(0)

	// Root folder of this project
	fp := filepath.Join(filepath.Dir(b), "..")

	return fp
}

// OpenPath opens path as given and falls back to resolving relative paths
// against the project root, so bundled files under data/ are always found.
func OpenPath(path string) (*os.File, error) {
	if filepath.IsAbs(path) {
		slog.Info("Opening absolute path", "path", path)

		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open file %s: %w", path, err)
		}

		return file, nil
	}

	file, err := os.Open(path)
	if err == nil {
		slog.Info("Opening relative path", "path", path)

		return file, nil
	}

	fallback := filepath.Join(GetProjectPath(), path)
	slog.Info("Opening path relative to project", "path", fallback)

	file, err = os.Open(fallback)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}

	return file, nil
}

// Load reads an arrangement file, picking the format from its extension.
func Load(path string) ([][]model.Key, error) {
	var loader func(io.Reader) ([][]model.Key, error)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		loader = LoadJSON
	case ".toml":
		loader = LoadTOML
	case ".keys":
		loader = LoadDSL
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	file, err := OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("could not open arrangement file %s. %w", path, err)
	}
	defer file.Close()

	rows, err := loader(file)
	if err != nil {
		return nil, fmt.Errorf("could not parse arrangement file %s. %w", path, err)
	}

	return rows, nil
}

var labels = map[string]string{
	"LEFT_SHIFT":  "⇧",
	"LSHFT":       "⇧",
	"RIGHT_SHIFT": "R⇧",
	"RSHFT":       "R⇧",
	"LCTRL":       "^",
	"RCTRL":       "⌃",
	"RET":         "↵",
	"ENTER":       "↵",
	"LCMD":        "⌘",
	"RCMD":        "⌘",
	"LALT":        "⌥",
	"RALT":        "⌥",
	"BSPC":        "⌫",
	"SPACE":       "␣",
	"TAB":         "⇥",

	"RIGHT_ARROW": "→",
	"RIGHT":       "→",
	"LEFT_ARROW":  "←",
	"LEFT":        "←",
	"UP_ARROW":    "↑",
	"DOWN_ARROW":  "↓",
	"EQUAL":       "=",
	"N1":          "1",
	"N2":          "2",
	"N3":          "3",
	"N4":          "4",
	"N5":          "5",
	"N6":          "6",
	"N7":          "7",
	"N8":          "8",
	"N9":          "9",
	"N0":          "0",
	"COMMA":       ",",
	"LBKT":        "[",
	"RBKT":        "]",
	"DOT":         ".",
	"SEMI":        ":",
	"BSLH":        "\\",
	"FSLH":        "/",
	"SQT":         "'",
	"MINUS":       "-",
	"GRAVE":       "`",
}

// DisplayLabel maps a key code to the symbol drawn on the key. Unknown codes are returned as is.
func DisplayLabel(code string) string {
	if v, ok := labels[strings.ToUpper(code)]; ok {
		return v
	}

	return code
}

// keySpec is the common shape of a key in every arrangement format.
// Nil factors take the defaults from model.DefaultFlay.
type keySpec struct {
	Code   string   `json:"code"   toml:"code"`
	Label  string   `json:"label"  toml:"label"`
	Width  *float64 `json:"w"      toml:"width"`
	Grow   *float64 `json:"grow"   toml:"grow"`
	Shrink *float64 `json:"shrink" toml:"shrink"`
}

func (s keySpec) toKey() model.Key {
	flay := model.DefaultFlay()

	if s.Width != nil {
		flay.WidthFactor = *s.Width
	}

	if s.Grow != nil {
		flay.Grow = *s.Grow
	}

	if s.Shrink != nil {
		flay.Shrink = *s.Shrink
	}

	label := s.Label
	if label == "" {
		label = DisplayLabel(s.Code)
	}

	return model.Key{Code: s.Code, Label: label, Flay: flay}
}
