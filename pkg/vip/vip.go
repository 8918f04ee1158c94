// Package vip models reusable verification components: their interface ports,
// their transaction item, and the textual descriptors they are declared with.
package vip

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
)

// Config is a VIP as declared in its configuration file. Ports and members
// are still raw descriptor text.
type Config struct {
	Name          string     `toml:"name"`
	Ports         []string   `toml:"ports"`
	Clock         string     `toml:"clock,omitempty"`
	Reset         string     `toml:"reset,omitempty"`
	UseClockBlock *bool      `toml:"use_clock_block,omitempty"`
	Item          ItemConfig `toml:"item"`
}

// ItemConfig declares the transaction item of a VIP.
type ItemConfig struct {
	Members     []string `toml:"members"`
	Constraints []string `toml:"constraints"`
}

// VIP is a fully parsed template.
type VIP struct {
	Name          string `yaml:"name"`
	Ports         []Port `yaml:"ports"`
	Clock         string `yaml:"clock,omitempty"`
	Reset         string `yaml:"reset,omitempty"`
	UseClockBlock bool   `yaml:"use_clock_block"`
	Item          Item   `yaml:"item"`
}

// Item is the parsed transaction item. Constraints are passed through
// verbatim.
type Item struct {
	Members     []Member `yaml:"members"`
	Constraints []string `yaml:"constraints"`
}

// New parses the descriptors of c. The first malformed descriptor aborts the
// conversion.
func New(c Config) (*VIP, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("vip: missing name")
	}

	v := &VIP{
		Name:          c.Name,
		Clock:         c.Clock,
		Reset:         c.Reset,
		UseClockBlock: c.UseClockBlock == nil || *c.UseClockBlock,
		Item: Item{
			Constraints: append([]string(nil), c.Item.Constraints...),
		},
	}

	for _, p := range c.Ports {
		port, err := ParsePort(p)
		if err != nil {
			return nil, fmt.Errorf("vip %s: invalid port: %w", c.Name, err)
		}
		v.Ports = append(v.Ports, port)
	}

	for _, m := range c.Item.Members {
		member, err := ParseMember(m)
		if err != nil {
			return nil, fmt.Errorf("vip %s: invalid member: %w", c.Name, err)
		}
		v.Item.Members = append(v.Item.Members, member)
	}

	return v, nil
}

// Port returns the port with the given name.
func (v *VIP) Port(name string) (*Port, bool) {
	for i := range v.Ports {
		if v.Ports[i].Name == name {
			return &v.Ports[i], true
		}
	}
	return nil, false
}

// PortNames returns the port names in declaration order.
func (v *VIP) PortNames() []string {
	names := make([]string, len(v.Ports))
	for i, p := range v.Ports {
		names[i] = p.Name
	}
	return names
}

// Clone returns a deep copy of v.
func (v *VIP) Clone() *VIP {
	out := *v
	out.Ports = make([]Port, len(v.Ports))
	for i, p := range v.Ports {
		p.Dimensions = append([]hdl.Range(nil), p.Dimensions...)
		out.Ports[i] = p
	}
	out.Item.Members = append([]Member(nil), v.Item.Members...)
	out.Item.Constraints = append([]string(nil), v.Item.Constraints...)
	return &out
}
