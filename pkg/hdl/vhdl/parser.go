package vhdl

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
)

// Parser represents a VHDL entity parser
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new VHDL parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(VHDLLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a VHDL source from a reader
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a VHDL source from a string
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses a VHDL source from a file path
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

// Module converts an entity into the generator's port map. Only literal
// integer bounds are supported in index constraints.
func (e *Entity) Module() (*hdl.Module, error) {
	module := hdl.NewModule(e.Name)
	if e.Port == nil {
		return module, nil
	}

	for _, decl := range e.Port.Ports {
		dir, err := hdl.ParseDirection(decl.Mode)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", e.Name, err)
		}
		if decl.Mode == "" {
			// VHDL ports default to mode in
			dir = hdl.Input
		}

		var dims []hdl.Range
		if decl.Range != nil {
			r, err := decl.Range.bits()
			if err != nil {
				return nil, fmt.Errorf("entity %s port %s: %w", e.Name, strings.Join(decl.Names, ","), err)
			}
			dims = append(dims, r)
		}

		for _, name := range decl.Names {
			module.Ports[name] = hdl.PortProperties{
				Direction:  dir,
				Dimensions: append([]hdl.Range(nil), dims...),
			}
		}
	}

	return module, nil
}

// bits converts (left downto right) into a (high, low) range; an ascending
// (left to right) constraint keeps its textual order.
func (r *RangeSpec) bits() (hdl.Range, error) {
	left, err := bound(r.Left)
	if err != nil {
		return hdl.Range{}, err
	}
	right, err := bound(r.Right)
	if err != nil {
		return hdl.Range{}, err
	}
	return hdl.Range{High: left, Low: right}, nil
}

func bound(tokens []string) (uint32, error) {
	text := strings.Join(tokens, " ")
	if len(tokens) != 1 {
		return 0, fmt.Errorf("unsupported range bound %q (expected integer literal)", text)
	}
	v, err := strconv.ParseUint(tokens[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unsupported range bound %q: %w", text, err)
	}
	return uint32(v), nil
}
