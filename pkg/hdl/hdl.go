// Package hdl holds the hardware-side data model shared by the HDL front ends
// and the testbench generator: port directions, bit ranges and the port map of
// a design under test.
package hdl

import (
	"fmt"
	"sort"
	"strings"
)

// Direction is the electrical direction of a port.
type Direction int

const (
	// Inout is the zero value so that an unresolved port is bidirectional.
	Inout Direction = iota
	Input
	Output
)

// String returns the SystemVerilog keyword for the direction.
func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "inout"
	}
}

// Not returns the complementary direction. INPUT and OUTPUT swap, INOUT is
// its own complement.
func (d Direction) Not() Direction {
	switch d {
	case Input:
		return Output
	case Output:
		return Input
	default:
		return Inout
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(strings.ToUpper(d.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both the upper-case
// model spelling and the HDL keywords are accepted.
func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// ParseDirection converts a direction keyword into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input", "in":
		return Input, nil
	case "output", "out", "buffer":
		return Output, nil
	case "inout", "linkage", "":
		return Inout, nil
	}
	return Inout, fmt.Errorf("hdl: unknown direction %q", s)
}

// Range is a (high, low) bit range such as [7:0]. No ordering between High
// and Low is enforced.
type Range struct {
	High uint32 `yaml:"high"`
	Low  uint32 `yaml:"low"`
}

// String formats the range in SystemVerilog notation.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d]", r.High, r.Low)
}

// Width returns the number of bits spanned by the range.
func (r Range) Width() uint32 {
	if r.High >= r.Low {
		return r.High - r.Low + 1
	}
	return r.Low - r.High + 1
}

// PortProperties are the direction and dimensions of a single port.
type PortProperties struct {
	Direction  Direction `yaml:"direction"`
	Dimensions []Range   `yaml:"dimensions,omitempty"`
}

// Module is a parsed design unit: its name and the port map that acts as
// ground truth for direction inference.
type Module struct {
	Name  string                    `yaml:"name"`
	Ports map[string]PortProperties `yaml:"ports"`
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:  name,
		Ports: make(map[string]PortProperties),
	}
}

// Port looks up a port by name.
func (m *Module) Port(name string) (PortProperties, bool) {
	if m == nil {
		return PortProperties{}, false
	}
	p, ok := m.Ports[name]
	return p, ok
}

// PortNames returns the port names in lexical order.
func (m *Module) PortNames() []string {
	names := make([]string, 0, len(m.Ports))
	for name := range m.Ports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
