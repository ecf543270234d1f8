package inp

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/emalab/ematools/pkg/textbuf"
)

// Probe block grammar. Each probe definition spans five lines after its
// marker; the lexer keeps line ends significant because the card format
// is line-oriented.
var probeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "ProbeKw", Pattern: `!PROBE`},
	{Name: "TypeKw", Pattern: `!![A-Z][A-Z ]*[A-Z]`},
	{Name: "Float", Pattern: `[-+]?[0-9]+\.[0-9]+(?:[eE][-+]?[0-9]+)?`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

type probeBlock struct {
	Type      string  `parser:"ProbeKw EOL @TypeKw EOL"`
	File      string  `parser:"@Ident EOL"`
	Start     float64 `parser:"@Float"`
	End       float64 `parser:"@Float"`
	Step      float64 `parser:"@Float EOL"`
	Segment   string  `parser:"@Ident"`
	Conductor string  `parser:"@Ident"`
	Index     int     `parser:"@Int EOL*"`
}

var probeParser = participle.MustBuild[probeBlock](
	participle.Lexer(probeLexer),
	participle.Elide("Whitespace"),
)

// Probe is a parsed probe definition.
type Probe struct {
	Type      ProbeType
	Name      string
	Segment   string
	Conductor string
	Index     int
	Start     float64
	End       float64
	Step      float64

	// Line is the zero-based buffer index of the !PROBE marker.
	Line int
}

// Probes parses every probe-definition block out of the deck. Malformed
// blocks are reported and skipped.
func (d *Deck) Probes() []Probe {
	var probes []Probe
	for _, i := range d.buf.FindAll("!PROBE", textbuf.Search{Exact: true}) {
		if i+5 > d.buf.Len() {
			d.sink.Warnf("truncated probe block at line %d", i+1)
			continue
		}
		text := strings.Join(d.buf.Range(i, i+4), "\n") + "\n"
		block, err := probeParser.ParseString("", text)
		if err != nil {
			d.sink.Warnf("failed to parse probe block at line %d: %v", i+1, err)
			continue
		}
		probes = append(probes, Probe{
			Type:      ProbeType(strings.TrimSpace(strings.TrimPrefix(block.Type, "!!"))),
			Name:      strings.TrimSuffix(block.File, ".dat"),
			Segment:   block.Segment,
			Conductor: block.Conductor,
			Index:     block.Index,
			Start:     block.Start,
			End:       block.End,
			Step:      block.Step,
			Line:      i,
		})
	}
	return probes
}
