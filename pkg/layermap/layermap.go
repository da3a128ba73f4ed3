// Package layermap reads layer mapping tables that give human-readable
// names to GDSII layer/datatype pairs. The format is one entry per
// line, with # comments:
//
//	# process stack
//	METAL1:  12/0
//	VIA1:    13/0
//	METAL2:  14/0
package layermap

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Entry is one named layer/datatype pair.
type Entry struct {
	Name     string
	Layer    int
	Datatype int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %d/%d", e.Name, e.Layer, e.Datatype)
}

// Map is a parsed layer table with lookup by name and by pair.
type Map struct {
	entries []Entry
	byName  map[string]Entry
	byPair  map[[2]int]Entry
}

// Entries returns the entries in file order.
func (m *Map) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// ByName looks up an entry by its layer name.
func (m *Map) ByName(name string) (Entry, bool) {
	e, ok := m.byName[name]
	return e, ok
}

// ByPair looks up an entry by its layer/datatype pair.
func (m *Map) ByPair(layer, datatype int) (Entry, bool) {
	e, ok := m.byPair[[2]int{layer, datatype}]
	return e, ok
}

// NameForLayer returns the name of the first entry on the given layer,
// regardless of datatype, or "" if none is mapped.
func (m *Map) NameForLayer(layer int) string {
	for _, e := range m.entries {
		if e.Layer == layer {
			return e.Name
		}
	}
	return ""
}

// layermapLexer defines the lexical structure of layermap files.
var layermapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.$-]*`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Slash", Pattern: `/`},
})

type fileNode struct {
	Entries []*entryNode `parser:"@@*"`
}

type entryNode struct {
	Name     string `parser:"@Ident Colon"`
	Layer    int    `parser:"@Int Slash"`
	Datatype int    `parser:"@Int"`
}

// Parser parses layermap files.
type Parser struct {
	parser *participle.Parser[fileNode]
}

// NewParser builds a layermap parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[fileNode](
		participle.Lexer(layermapLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads a layermap from r.
func (p *Parser) Parse(r io.Reader) (*Map, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return buildMap(file)
}

// ParseString reads a layermap from a string.
func (p *Parser) ParseString(input string) (*Map, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return buildMap(file)
}

// ParseFile reads a layermap from the file at path.
func (p *Parser) ParseFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

func buildMap(file *fileNode) (*Map, error) {
	m := &Map{
		byName: make(map[string]Entry),
		byPair: make(map[[2]int]Entry),
	}
	for _, n := range file.Entries {
		if n.Layer > 255 || n.Datatype > 255 {
			return nil, fmt.Errorf("entry %q: layer and datatype must be 0-255, got %d/%d", n.Name, n.Layer, n.Datatype)
		}
		if _, dup := m.byName[n.Name]; dup {
			return nil, fmt.Errorf("duplicate layer name %q", n.Name)
		}
		e := Entry{Name: n.Name, Layer: n.Layer, Datatype: n.Datatype}
		m.entries = append(m.entries, e)
		m.byName[e.Name] = e
		m.byPair[[2]int{e.Layer, e.Datatype}] = e
	}
	return m, nil
}
