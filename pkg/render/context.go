package render

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/instance"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/pipeline"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

// Default signal names used when neither the project nor a VIP names one.
const (
	DefaultClock = "clk"
	DefaultReset = "rst_n"
)

// Top describes the generated top-level environment.
type Top struct {
	Name                  string
	DefaultSequenceRepeat uint32
	DUTName               string
	DUTPath               string
	DUTClock              string
	DUTReset              string
	SelfTest              bool
}

// Connection ties one template port of an instance to a hardware signal.
type Connection struct {
	Instance string
	Port     vip.Port
	Signal   string
	// Drives is set when the instance interface drives the signal.
	Drives bool
}

// Context is the data every template is executed with.
type Context struct {
	Header    bool
	File      string
	Top       Top
	VIP       *vip.VIP
	VIPs      []*vip.VIP
	Instances []instance.Instance
	DUT       *hdl.Module

	VIPClock map[string]string
	VIPReset map[string]string

	Clocks []string
	Resets []string
	// Wires are the DUT ports declared as nets in the harness. Ports that
	// are also clocks or resets are left out, they are driven as variables.
	Wires       []string
	Connections []Connection
}

func newContext(m *pipeline.Model, top Top, header bool) *Context {
	c := &Context{
		Header:    header,
		Top:       top,
		VIPs:      m.VIPs,
		Instances: m.Instances,
		DUT:       m.DUT,
		VIPClock:  make(map[string]string),
		VIPReset:  make(map[string]string),
	}

	clocks := map[string]bool{orDefault(top.DUTClock, DefaultClock): true}
	resets := map[string]bool{orDefault(top.DUTReset, DefaultReset): true}
	for _, v := range m.VIPs {
		c.VIPClock[v.Name] = orDefault(v.Clock, orDefault(top.DUTClock, DefaultClock))
		c.VIPReset[v.Name] = orDefault(v.Reset, orDefault(top.DUTReset, DefaultReset))
		clocks[c.VIPClock[v.Name]] = true
		resets[c.VIPReset[v.Name]] = true
	}
	c.Clocks = sortedKeys(clocks)
	c.Resets = sortedKeys(resets)
	if m.DUT != nil {
		for _, name := range m.DUT.PortNames() {
			if !clocks[name] && !resets[name] {
				c.Wires = append(c.Wires, name)
			}
		}
	}

	for _, inst := range m.Instances {
		v, ok := m.VIP(inst.VIPName)
		if !ok {
			continue
		}
		pairs := min(len(v.Ports), len(inst.ConnectedTo))
		for k := 0; k < pairs; k++ {
			c.Connections = append(c.Connections, Connection{
				Instance: inst.Name(),
				Port:     v.Ports[k],
				Signal:   inst.ConnectedTo[k],
				Drives:   drives(m, inst, v.Ports[k], inst.ConnectedTo[k]),
			})
		}
	}
	return c
}

// drives reports whether the interface of inst is the source of signal,
// which port p is connected to. A DUT drives its own outputs; in a self-test
// the controller drives every port it sees as an output.
func drives(m *pipeline.Model, inst instance.Instance, p vip.Port, signal string) bool {
	if m.SelfTest {
		return inst.Mode == instance.Controller && p.Direction == hdl.Output
	}
	if inst.Mode == instance.Passive {
		return false
	}
	hw, ok := m.DUT.Port(signal)
	return ok && hw.Direction == hdl.Input
}

// with returns a shallow copy of c for rendering file under v.
func (c *Context) with(file string, v *vip.VIP) *Context {
	out := *c
	out.File = file
	out.VIP = v
	return &out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
