// Package pipeline turns loaded configuration into a resolved testbench
// model: descriptors are parsed, identifiers allocated, the topology checked
// and port directions inferred.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/diag"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/direction"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/instance"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/topology"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

// Input is everything the pipeline consumes. It is not modified.
type Input struct {
	Templates []vip.Config
	Instances []instance.Instance
	DUT       *hdl.Module
}

// Model is the resolved testbench handed to the renderer.
type Model struct {
	DUT       *hdl.Module         `yaml:"dut"`
	VIPs      []*vip.VIP          `yaml:"vips"`
	Instances []instance.Instance `yaml:"instances"`
	SelfTest  bool                `yaml:"self_test,omitempty"`
}

// VIP returns the template with the given name.
func (m *Model) VIP(name string) (*vip.VIP, bool) {
	for _, v := range m.VIPs {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Build runs the whole pipeline. The returned collector holds every condition
// reported along the way, also when an error is returned. Only malformed
// descriptors, duplicate template names and connections to undeclared
// hardware ports abort the run.
func Build(in Input, logger *slog.Logger) (*Model, *diag.Collector, error) {
	d := diag.NewCollector(logger)
	log := d.Logger().With(slog.String("component", "pipeline"))

	if in.DUT == nil {
		return nil, d, fmt.Errorf("pipeline: no hardware module")
	}

	repo := vip.NewMemoryRepository()
	for _, c := range in.Templates {
		if _, err := repo.AddConfig(c); err != nil {
			return nil, d, fmt.Errorf("pipeline: %w", err)
		}
	}
	log.Info("templates parsed", slog.Int("count", repo.Len()))

	instances := instance.CloneAll(in.Instances)
	instance.NewAllocator(d).Allocate(instances)

	topology.NewValidator(repo, in.DUT, d).Validate(instances)

	vips := repo.All()
	if err := direction.NewResolver(in.DUT, d).Resolve(vips, instances); err != nil {
		return nil, d, fmt.Errorf("pipeline: %w", err)
	}

	log.Info("model resolved",
		slog.Int("instances", len(instances)),
		slog.Int("warnings", d.Count(diag.Warning)),
		slog.Int("errors", d.Count(diag.Error)))

	return &Model{
		DUT:       in.DUT,
		VIPs:      vips,
		Instances: instances,
	}, d, nil
}

// SelfTests derives one stand-alone model per template of m. Each places the
// already resolved template once per mode against a module that mirrors the
// template ports.
func SelfTests(m *Model) []*Model {
	out := make([]*Model, 0, len(m.VIPs))
	for _, v := range m.VIPs {
		v = v.Clone()
		dut := hdl.NewModule(v.Name + "_self_test")
		for _, p := range v.Ports {
			dut.Ports[p.Name] = hdl.PortProperties{
				Direction:  p.Direction,
				Dimensions: p.Dimensions,
			}
		}
		out = append(out, &Model{
			DUT:       dut,
			VIPs:      []*vip.VIP{v},
			Instances: instance.SelfTest(v),
			SelfTest:  true,
		})
	}
	return out
}
