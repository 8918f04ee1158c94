// Package instance describes placements of VIP templates and assigns them
// identifiers.
package instance

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

// Mode selects how an instance drives the signals it is connected to.
type Mode int

const (
	// Controller drives the opposite direction of the hardware port.
	Controller Mode = iota
	// Responder matches the hardware port direction.
	Responder
	// Passive only observes and takes no part in direction inference.
	Passive
)

var modeNames = [...]string{
	Controller: "Controller",
	Responder:  "Responder",
	Passive:    "Passive",
}

// Modes lists every mode in declaration order.
var Modes = []Mode{Controller, Responder, Passive}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name. Matching ignores case.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(name, s) {
			return Mode(i), nil
		}
	}
	return Controller, fmt.Errorf("instance: unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("instance: invalid mode %d", int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Instance places a template and connects its ports, by position, to
// hardware ports.
type Instance struct {
	VIPName     string   `toml:"vip_name" yaml:"vip_name"`
	ConnectedTo []string `toml:"connected_to" yaml:"connected_to"`
	ID          *uint32  `toml:"id,omitempty" yaml:"id,omitempty"`
	Mode        Mode     `toml:"mode" yaml:"mode"`
}

// Bucket is the scope within which identifiers must be unique.
type Bucket struct {
	VIP  string
	Mode Mode
}

// Bucket returns the identifier scope of the instance.
func (i Instance) Bucket() Bucket {
	return Bucket{VIP: i.VIPName, Mode: i.Mode}
}

// HasID reports whether an identifier is set.
func (i Instance) HasID() bool {
	return i.ID != nil
}

// Name returns "<vip>_<mode>_<id>" in lower case, the identifier used for
// the instance in generated code. Unset identifiers render as "x".
func (i Instance) Name() string {
	id := "x"
	if i.HasID() {
		id = fmt.Sprint(*i.ID)
	}
	return fmt.Sprintf("%s_%s_%s", i.VIPName, strings.ToLower(i.Mode.String()), id)
}

func (i Instance) String() string {
	id := "unset"
	if i.HasID() {
		id = fmt.Sprint(*i.ID)
	}
	return fmt.Sprintf("ID %s mode %s vip %s", id, i.Mode, i.VIPName)
}

// Clone returns a copy that shares no memory with i.
func (i Instance) Clone() Instance {
	out := i
	out.ConnectedTo = append([]string(nil), i.ConnectedTo...)
	if i.HasID() {
		id := *i.ID
		out.ID = &id
	}
	return out
}

// CloneAll clones every instance of list.
func CloneAll(list []Instance) []Instance {
	if list == nil {
		return nil
	}
	out := make([]Instance, len(list))
	for i, inst := range list {
		out[i] = inst.Clone()
	}
	return out
}

// ID returns a pointer to id, for literal instance declarations.
func ID(id uint32) *uint32 {
	return &id
}

// SelfTest returns the instances used to check a template in isolation: one
// per mode, each with identifier 0 and connected to signals named after the
// template ports.
func SelfTest(v *vip.VIP) []Instance {
	modes := []Mode{Controller, Passive, Responder}
	out := make([]Instance, 0, len(modes))
	for _, m := range modes {
		out = append(out, Instance{
			VIPName:     v.Name,
			ConnectedTo: v.PortNames(),
			ID:          ID(0),
			Mode:        m,
		})
	}
	return out
}
