package arrangement

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/dasdy/flaykeys/model"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[{}(),=]`},
	})

	dslParser = participle.MustBuild[dslArrangement](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// dslArrangement is the root of the compact text form:
//
//	keyboard "qwerty"
//	row { q w e r t y }
//	row { LSHFT(width=1.5, shrink=0) z x c "space"(width=5, grow=1) }
type dslArrangement struct {
	Name string    `parser:"( 'keyboard' @String )?"`
	Rows []*dslRow `parser:"@@*"`
}

type dslRow struct {
	Pos  lexer.Position
	Keys []*dslKey `parser:"'row' '{' @@* '}'"`
}

type dslKey struct {
	Pos    lexer.Position
	Code   string     `parser:"( @Ident | @Number"`
	Quoted string     `parser:"| @String )"`
	Attrs  []*dslAttr `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
}

type dslAttr struct {
	Name  string  `parser:"@Ident '='"`
	Value float64 `parser:"@Number"`
}

func (k *dslKey) toSpec() (keySpec, error) {
	spec := keySpec{Code: k.Code}
	if k.Quoted != "" {
		spec.Code = k.Quoted
		spec.Label = k.Quoted
	}

	for _, attr := range k.Attrs {
		value := attr.Value

		switch attr.Name {
		case "width":
			spec.Width = &value
		case "grow":
			spec.Grow = &value
		case "shrink":
			spec.Shrink = &value
		default:
			return keySpec{}, fmt.Errorf("%s: unknown key attribute %q", k.Pos, attr.Name)
		}
	}

	return spec, nil
}

// LoadDSL parses the compact arrangement form.
func LoadDSL(reader io.Reader) ([][]model.Key, error) {
	doc, err := dslParser.Parse("", reader)
	if err != nil {
		return nil, fmt.Errorf("could not parse arrangement: %w", err)
	}

	rows := make([][]model.Key, 0, len(doc.Rows))

	for _, row := range doc.Rows {
		keys := make([]model.Key, 0, len(row.Keys))

		for _, k := range row.Keys {
			spec, err := k.toSpec()
			if err != nil {
				return nil, err
			}

			keys = append(keys, spec.toKey())
		}

		rows = append(rows, keys)
	}

	return rows, nil
}
