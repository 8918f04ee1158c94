// Package direction infers the direction of every template port from the
// hardware ports its instances are connected to.
package direction

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/diag"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/instance"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

// Component tags diagnostics raised by the resolver.
const Component = "direction"

// ErrUnknownHardwarePort is returned when an instance is connected to a port
// the hardware module does not declare. Resolution must only run on a
// validated topology.
var ErrUnknownHardwarePort = errors.New("hardware port not found")

// Expected returns the direction a template port takes when an instance in
// mode m connects it to a hardware port of direction hw. Passive instances
// imply nothing.
func Expected(m instance.Mode, hw hdl.Direction) (hdl.Direction, bool) {
	switch m {
	case instance.Controller:
		return hw.Not(), true
	case instance.Responder:
		return hw, true
	case instance.Passive:
		return hdl.Inout, false
	default:
		return hdl.Inout, false
	}
}

// Table maps a template port name to its resolved direction. One table is
// built per template and discarded once written back.
type Table map[string]hdl.Direction

// Resolver assigns directions to template ports.
type Resolver struct {
	dut    *hdl.Module
	diags  *diag.Collector
	logger *slog.Logger
}

// NewResolver creates a resolver using dut as ground truth.
func NewResolver(dut *hdl.Module, d *diag.Collector) *Resolver {
	return &Resolver{
		dut:    dut,
		diags:  d,
		logger: d.Logger().With(slog.String("component", Component)),
	}
}

// Resolve resolves every template in turn.
func (r *Resolver) Resolve(templates []*vip.VIP, instances []instance.Instance) error {
	for _, v := range templates {
		if err := r.ResolveTemplate(v, instances); err != nil {
			return err
		}
	}
	return nil
}

// ResolveTemplate resolves the ports of v from the instances placing it and
// writes the result onto v.Ports.
func (r *Resolver) ResolveTemplate(v *vip.VIP, instances []instance.Instance) error {
	table, err := r.Table(v, instances)
	if err != nil {
		return err
	}
	r.apply(v, table)
	return nil
}

// Table builds the direction table of v without modifying it. Conflicting
// instances are reported and the first direction seen is kept.
func (r *Resolver) Table(v *vip.VIP, instances []instance.Instance) (Table, error) {
	table := make(Table)
	origin := make(map[string]string)

	for _, inst := range instances {
		if inst.VIPName != v.Name || inst.Mode == instance.Passive {
			continue
		}
		pairs := min(len(v.Ports), len(inst.ConnectedTo))
		for k := 0; k < pairs; k++ {
			port, hwName := v.Ports[k].Name, inst.ConnectedTo[k]

			hw, ok := r.dut.Port(hwName)
			if !ok {
				return nil, fmt.Errorf("%w: %s (vip %s, port %s)", ErrUnknownHardwarePort, hwName, v.Name, port)
			}
			want, ok := Expected(inst.Mode, hw.Direction)
			if !ok {
				continue
			}

			if prev, seen := table[port]; seen {
				if prev != want {
					r.diags.Errorf(Component, "vip %s: port %s is %s from %s but %s from %s (connected to %s)",
						v.Name, port, prev, origin[port], want, inst, hwName)
				}
				continue
			}
			table[port] = want
			origin[port] = inst.String()
		}
	}
	return table, nil
}

func (r *Resolver) apply(v *vip.VIP, table Table) {
	for i := range v.Ports {
		p := &v.Ports[i]
		dir, ok := table[p.Name]
		if !ok {
			r.diags.Warnf(Component, "vip %s: port %s direction not set", v.Name, p.Name)
			continue
		}
		p.Direction = dir
		r.logger.Debug("port direction set", slog.String("vip", v.Name),
			slog.String("port", p.Name), slog.String("direction", dir.String()))
	}
}
