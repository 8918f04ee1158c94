// Package topology cross-checks instance connections against their
// templates and against the hardware module.
package topology

import (
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/diag"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/instance"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

// Component tags diagnostics raised by the validator.
const Component = "topology"

// Validator reports topology problems. It never modifies its inputs.
type Validator struct {
	templates vip.Repository
	dut       *hdl.Module
	diags     *diag.Collector
	logger    *slog.Logger
}

// NewValidator creates a validator for the given templates and hardware
// module.
func NewValidator(templates vip.Repository, dut *hdl.Module, d *diag.Collector) *Validator {
	return &Validator{
		templates: templates,
		dut:       dut,
		diags:     d,
		logger:    d.Logger().With(slog.String("component", Component)),
	}
}

// Validate runs every check.
func (v *Validator) Validate(instances []instance.Instance) {
	v.CheckArity(instances)
	v.CheckConnections(instances)
}

// CheckArity compares the connection count of each instance with the port
// count of its template.
func (v *Validator) CheckArity(instances []instance.Instance) {
	for _, inst := range instances {
		tmpl, ok := v.templates.Lookup(inst.VIPName)
		if !ok {
			v.diags.Errorf(Component, "%s: unknown template %s", inst, inst.VIPName)
			continue
		}

		declared, connected := len(tmpl.Ports), len(inst.ConnectedTo)
		switch {
		case declared > connected:
			v.diags.Warnf(Component, "%s: fewer connections than declared (%d ports, %d connections)",
				inst, declared, connected)
		case declared < connected:
			v.diags.Errorf(Component, "%s: more connections than declared (%d ports, %d connections)",
				inst, declared, connected)
		default:
			v.logger.Debug("arity ok", slog.String("instance", inst.String()))
		}
	}
}

// CheckConnections verifies that every connected hardware port exists and
// is claimed by a single pairing across all instances.
func (v *Validator) CheckConnections(instances []instance.Instance) {
	claimed := make(map[string]string)
	for _, inst := range instances {
		for _, name := range inst.ConnectedTo {
			if _, ok := v.dut.Port(name); !ok {
				v.diags.Errorf(Component, "%s: port %s not found in %s", inst, name, v.dutName())
				continue
			}
			if owner, ok := claimed[name]; ok {
				v.diags.Errorf(Component, "%s: port %s already connected by an earlier instance (%s)",
					inst, name, owner)
				continue
			}
			claimed[name] = inst.String()
		}
	}
}

func (v *Validator) dutName() string {
	if v.dut == nil {
		return "<no module>"
	}
	return v.dut.Name
}
