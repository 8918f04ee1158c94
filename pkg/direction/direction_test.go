package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/diag"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/instance"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

func newVIP(t *testing.T, name string, ports ...string) *vip.VIP {
	t.Helper()
	v, err := vip.New(vip.Config{Name: name, Ports: ports})
	require.NoError(t, err)
	return v
}

func newDUT(ports map[string]hdl.Direction) *hdl.Module {
	m := hdl.NewModule("dut")
	for name, dir := range ports {
		m.Ports[name] = hdl.PortProperties{Direction: dir}
	}
	return m
}

func direction(t *testing.T, v *vip.VIP, name string) hdl.Direction {
	t.Helper()
	p, ok := v.Port(name)
	require.True(t, ok, "port %s", name)
	return p.Direction
}

func TestExpected(t *testing.T) {
	tests := []struct {
		mode instance.Mode
		hw   hdl.Direction
		want hdl.Direction
		ok   bool
	}{
		{instance.Controller, hdl.Output, hdl.Input, true},
		{instance.Controller, hdl.Input, hdl.Output, true},
		{instance.Controller, hdl.Inout, hdl.Inout, true},
		{instance.Responder, hdl.Output, hdl.Output, true},
		{instance.Responder, hdl.Input, hdl.Input, true},
		{instance.Responder, hdl.Inout, hdl.Inout, true},
		{instance.Passive, hdl.Output, hdl.Inout, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.hw.String(), func(t *testing.T) {
			got, ok := Expected(tt.mode, tt.hw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveControllerAndResponder(t *testing.T) {
	v := newVIP(t, "t", "p", "q")
	dut := newDUT(map[string]hdl.Direction{"x": hdl.Output, "y": hdl.Input, "w": hdl.Output})

	instances := []instance.Instance{
		{VIPName: "t", Mode: instance.Controller, ConnectedTo: []string{"x"}},
		{VIPName: "t", Mode: instance.Responder, ConnectedTo: []string{"y", "x"}},
	}

	d := diag.NewCollector(nil)
	require.NoError(t, NewResolver(dut, d).ResolveTemplate(v, instances))

	assert.Equal(t, hdl.Input, direction(t, v, "p"))
	assert.Equal(t, hdl.Output, direction(t, v, "q"))
	assert.Empty(t, d.Diagnostics())

	// A controller now drives q from x, which disagrees with the responder.
	instances = append(instances, instance.Instance{
		VIPName: "t", Mode: instance.Controller, ConnectedTo: []string{"w", "x"},
	})
	v = newVIP(t, "t", "p", "q")
	d = diag.NewCollector(nil)
	require.NoError(t, NewResolver(dut, d).ResolveTemplate(v, instances))

	require.Equal(t, 1, d.Count(diag.Error))
	assert.Contains(t, d.Diagnostics()[0].Message, "port q is output")
	assert.Equal(t, hdl.Output, direction(t, v, "q"), "first seen direction wins")
	assert.Equal(t, hdl.Input, direction(t, v, "p"))
}

func TestResolveIgnoresPassiveInstances(t *testing.T) {
	v := newVIP(t, "t", "p", "q")
	dut := newDUT(map[string]hdl.Direction{"x": hdl.Output})

	d := diag.NewCollector(nil)
	err := NewResolver(dut, d).ResolveTemplate(v, []instance.Instance{
		{VIPName: "t", Mode: instance.Passive, ConnectedTo: []string{"x", "not_in_dut"}},
	})
	require.NoError(t, err)

	assert.Equal(t, hdl.Inout, direction(t, v, "p"))
	assert.Equal(t, 2, d.Count(diag.Warning))
	assert.Contains(t, d.Diagnostics()[0].Message, "port p direction not set")
}

func TestResolveTruncatesToShorterList(t *testing.T) {
	v := newVIP(t, "t", "p")
	dut := newDUT(map[string]hdl.Direction{"x": hdl.Input, "y": hdl.Input})

	d := diag.NewCollector(nil)
	err := NewResolver(dut, d).ResolveTemplate(v, []instance.Instance{
		{VIPName: "t", Mode: instance.Responder, ConnectedTo: []string{"x", "y", "unknown"}},
	})
	require.NoError(t, err)
	assert.Equal(t, hdl.Input, direction(t, v, "p"))
	assert.Empty(t, d.Diagnostics())
}

func TestResolveUnknownHardwarePortIsFatal(t *testing.T) {
	v := newVIP(t, "t", "p")
	dut := newDUT(map[string]hdl.Direction{})

	err := NewResolver(dut, diag.NewCollector(nil)).ResolveTemplate(v, []instance.Instance{
		{VIPName: "t", Mode: instance.Controller, ConnectedTo: []string{"ghost"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownHardwarePort)
	assert.Contains(t, err.Error(), "ghost")
}

func TestResolveOnlyUsesOwnInstances(t *testing.T) {
	a := newVIP(t, "a", "p")
	b := newVIP(t, "b", "p")
	dut := newDUT(map[string]hdl.Direction{"x": hdl.Output, "y": hdl.Input})

	d := diag.NewCollector(nil)
	err := NewResolver(dut, d).Resolve([]*vip.VIP{a, b}, []instance.Instance{
		{VIPName: "a", Mode: instance.Responder, ConnectedTo: []string{"x"}},
		{VIPName: "b", Mode: instance.Responder, ConnectedTo: []string{"y"}},
	})
	require.NoError(t, err)

	assert.Equal(t, hdl.Output, direction(t, a, "p"))
	assert.Equal(t, hdl.Input, direction(t, b, "p"))
	assert.Empty(t, d.Diagnostics())
}

func TestTableLeavesTemplateUntouched(t *testing.T) {
	v := newVIP(t, "t", "p")
	dut := newDUT(map[string]hdl.Direction{"x": hdl.Input})

	table, err := NewResolver(dut, diag.NewCollector(nil)).Table(v, []instance.Instance{
		{VIPName: "t", Mode: instance.Controller, ConnectedTo: []string{"x"}},
	})
	require.NoError(t, err)

	assert.Equal(t, Table{"p": hdl.Output}, table)
	assert.Equal(t, hdl.Inout, direction(t, v, "p"))
}
