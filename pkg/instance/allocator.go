package instance

import (
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/diag"
)

// Component tags diagnostics raised by the allocator.
const Component = "allocator"

// UsageTable holds the explicitly claimed identifiers of each bucket. It lives
// for one allocation pass.
type UsageTable map[Bucket]map[uint32]struct{}

// Contains reports whether id is claimed in bucket b.
func (u UsageTable) Contains(b Bucket, id uint32) bool {
	_, ok := u[b][id]
	return ok
}

// Allocator assigns identifiers to instances.
type Allocator struct {
	diags  *diag.Collector
	logger *slog.Logger
}

// NewAllocator creates an allocator reporting to d.
func NewAllocator(d *diag.Collector) *Allocator {
	return &Allocator{
		diags:  d,
		logger: d.Logger().With(slog.String("component", Component)),
	}
}

// Allocate fills in every missing identifier. Explicit identifiers are never
// changed; duplicates among them are reported.
func (a *Allocator) Allocate(instances []Instance) {
	a.logger.Info("estimating unset IDs")
	a.Assign(instances, a.Used(instances))
}

// Used scans the explicit identifiers of instances.
func (a *Allocator) Used(instances []Instance) UsageTable {
	used := make(UsageTable)
	for _, inst := range instances {
		if !inst.HasID() {
			a.logger.Debug("pass unset ID", slog.String("vip", inst.VIPName), slog.String("mode", inst.Mode.String()))
			continue
		}
		b := inst.Bucket()
		ids, ok := used[b]
		if !ok {
			ids = make(map[uint32]struct{})
			used[b] = ids
		}
		if _, dup := ids[*inst.ID]; dup {
			a.diags.Errorf(Component, "already registered ID %d for mode %s of vip %s, check your instances file",
				*inst.ID, inst.Mode, inst.VIPName)
			continue
		}
		ids[*inst.ID] = struct{}{}
		a.logger.Debug("register ID", slog.Uint64("id", uint64(*inst.ID)),
			slog.String("vip", inst.VIPName), slog.String("mode", inst.Mode.String()))
	}
	return used
}

// Assign gives every instance without an identifier the smallest value of its
// bucket that is neither claimed in used nor handed out earlier in this pass.
// Instances are visited in slice order.
func (a *Allocator) Assign(instances []Instance, used UsageTable) {
	counters := make(map[Bucket]uint32)
	for i := range instances {
		inst := &instances[i]
		if inst.HasID() {
			continue
		}
		b := inst.Bucket()
		next := counters[b]
		for used.Contains(b, next) {
			next++
		}
		inst.ID = ID(next)
		counters[b] = next + 1
		a.logger.Debug("set", slog.String("instance", inst.String()))
	}
}
