package sv

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
)

// Parser represents a SystemVerilog module header parser
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new SystemVerilog parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(SVLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a SystemVerilog source from a reader
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a SystemVerilog source from a string
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses a SystemVerilog source from a file path
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

// Module converts the declaration into the generator's port map. A port
// without a direction inherits the previous one; the first defaults to inout.
// A port with no header of its own (no direction, kind or packed range) also
// inherits the previous packed ranges, as in "input logic [7:0] a, b".
func (m *Module) Module() (*hdl.Module, error) {
	params := m.Parameters()
	module := hdl.NewModule(m.Name)

	dir := hdl.Inout
	var packed []*Range
	for _, port := range m.Ports {
		if port.Direction != "" {
			d, err := hdl.ParseDirection(port.Direction)
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Name, err)
			}
			dir = d
		}

		name, own, unpacked, err := port.split()
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}
		if port.Direction != "" || len(port.Kinds) > 0 || len(own) > 0 {
			packed = own
		}

		ranges := append(append([]*Range(nil), packed...), unpacked...)
		dims := make([]hdl.Range, 0, len(ranges))
		for _, r := range ranges {
			bits, err := r.bits(params)
			if err != nil {
				return nil, fmt.Errorf("module %s port %s: %w", m.Name, name, err)
			}
			dims = append(dims, bits)
		}

		module.Ports[name] = hdl.PortProperties{
			Direction:  dir,
			Dimensions: dims,
		}
	}

	return module, nil
}

// Parameters evaluates the parameter port list and parameter/localparam
// declarations of the body. Declarations that do not reduce to a constant
// are left out.
func (m *Module) Parameters() map[string]int64 {
	params := make(map[string]int64)
	if m.Params != nil {
		tokens := m.Params.Tokens()
		collectAssignments(tokens[1:len(tokens)-1], params)
	}

	for i := 0; i < len(m.Body); i++ {
		if m.Body[i] != "parameter" && m.Body[i] != "localparam" {
			continue
		}
		end := i + 1
		for end < len(m.Body) && m.Body[end] != ";" {
			end++
		}
		collectAssignments(m.Body[i+1:end], params)
		i = end
	}
	return params
}

// collectAssignments scans "NAME = expr" pairs separated by top-level commas.
func collectAssignments(tokens []string, params map[string]int64) {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i+1] != "=" {
			continue
		}
		name := tokens[i]
		depth, end := 0, i+2
		for ; end < len(tokens); end++ {
			switch tokens[end] {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			if depth < 0 || (depth == 0 && (tokens[end] == "," || tokens[end] == ";")) {
				break
			}
		}
		if v, err := evaluate(tokens[i+2:end], params); err == nil {
			params[name] = v
		}
		i = end
	}
}

// split separates the port name from its packed and unpacked ranges.
func (p *Port) split() (name string, packed, unpacked []*Range, err error) {
	nameIdx := -1
	for i, part := range p.Parts {
		if part.Ident != nil {
			nameIdx = i
		}
	}
	if nameIdx < 0 {
		return "", nil, nil, fmt.Errorf("port declaration without a name")
	}

	for i, part := range p.Parts {
		if part.Range == nil {
			continue
		}
		if i < nameIdx {
			packed = append(packed, part.Range)
		} else {
			unpacked = append(unpacked, part.Range)
		}
	}
	return *p.Parts[nameIdx].Ident, packed, unpacked, nil
}

func (r *Range) bits(params map[string]int64) (hdl.Range, error) {
	high, err := evaluate(r.High, params)
	if err != nil {
		return hdl.Range{}, err
	}
	low, err := evaluate(r.Low, params)
	if err != nil {
		return hdl.Range{}, err
	}
	if high < 0 || low < 0 {
		return hdl.Range{}, fmt.Errorf("negative range [%d:%d]", high, low)
	}
	if high > math.MaxUint32 || low > math.MaxUint32 {
		return hdl.Range{}, fmt.Errorf("range [%d:%d] out of bounds", high, low)
	}
	return hdl.Range{High: uint32(high), Low: uint32(low)}, nil
}
