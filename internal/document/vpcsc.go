package document

import "fmt"

// Perimeter is the VPC Service Controls configuration. Generation is
// opt-in; while enabled, the perimeter name is required for the
// document to be savable.
type Perimeter struct {
	enabled bool
	name    string
	bridges *StringList
	dryRun  bool
}

// NewPerimeter returns a disabled perimeter config.
func NewPerimeter() *Perimeter {
	return &Perimeter{bridges: NewStringList(nil)}
}

// SetEnabled toggles perimeter generation.
func (p *Perimeter) SetEnabled(v bool) { p.enabled = v }

// Enabled reports whether perimeter generation is on.
func (p *Perimeter) Enabled() bool { return p.enabled }

// SetName sets the perimeter name. Emptiness is tolerated here and
// rejected by the save gate.
func (p *Perimeter) SetName(v string) { p.name = v }

// Name returns the perimeter name.
func (p *Perimeter) Name() string { return p.name }

// AddBridge attaches a bridge perimeter. Duplicates are rejected.
func (p *Perimeter) AddBridge(name string) error {
	if !p.enabled {
		return fmt.Errorf("%w: VPC service controls", ErrDisabled)
	}
	return p.bridges.Add(name)
}

// RemoveBridge detaches a bridge perimeter.
func (p *Perimeter) RemoveBridge(name string) error {
	return p.bridges.Remove(name)
}

// Bridges returns the bridge perimeters in order.
func (p *Perimeter) Bridges() []string { return p.bridges.Values() }

// SetDryRun toggles dry-run mode.
func (p *Perimeter) SetDryRun(v bool) { p.dryRun = v }

// DryRun reports whether dry-run mode is on.
func (p *Perimeter) DryRun() bool { return p.dryRun }
