// Package config loads the project, instances and VIP files that describe a
// testbench. Every file is checked against an embedded CUE schema and then
// decoded strictly, so misspelled keys fail early with their location.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/instance"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

// Default file locations, relative to the working directory.
const (
	DefaultProjectPath   = "./project.toml"
	DefaultInstancesPath = "./instances.toml"
	DefaultOutputDir     = "./out"
	DefaultDUTPath       = "dut.sv"
)

// DefaultTopSequenceRepeat is how many times the top sequence runs when the
// project does not say.
const DefaultTopSequenceRepeat = 5

// Project holds the project wide settings.
type Project struct {
	GenerateFileHeader bool   `toml:"generate_file_header"`
	TopDefaultSequence uint32 `toml:"top_default_sequence"`
	DUT                DUT    `toml:"dut"`
}

// DUT locates the design under test.
type DUT struct {
	// Path is resolved against the directory of the project file when
	// relative.
	Path string `toml:"path"`
	// Name selects a module of the file. Empty selects the first one.
	Name  string `toml:"name"`
	Clock string `toml:"clock"`
	Reset string `toml:"reset"`
}

// DefaultProject returns the settings used for keys a project file omits.
func DefaultProject() Project {
	return Project{
		GenerateFileHeader: false,
		TopDefaultSequence: DefaultTopSequenceRepeat,
		DUT: DUT{
			Path: DefaultDUTPath,
		},
	}
}

// Instances is the content of an instances file.
type Instances struct {
	Instances []instance.Instance `toml:"instances"`
}

// Loader reads configuration files.
type Loader struct {
	schema *Schema
}

// NewLoader creates a loader with the embedded schema.
func NewLoader() (*Loader, error) {
	s, err := NewSchema()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Loader{schema: s}, nil
}

// Project loads a project file. A missing file yields the defaults.
func (l *Loader) Project(path string) (*Project, error) {
	p := DefaultProject()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := l.decode(path, data, ProjectDef, &p); err != nil {
		return nil, err
	}
	if p.DUT.Path != "" && !filepath.IsAbs(p.DUT.Path) {
		p.DUT.Path = filepath.Join(filepath.Dir(path), p.DUT.Path)
	}
	return &p, nil
}

// Instances loads an instances file.
func (l *Loader) Instances(path string) ([]instance.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var f Instances
	if err := l.decode(path, data, InstancesDef, &f); err != nil {
		return nil, err
	}
	for i, inst := range f.Instances {
		if inst.VIPName == "" {
			return nil, fmt.Errorf("config: %s: instance %d: missing vip_name", path, i)
		}
	}
	return f.Instances, nil
}

// VIP loads one VIP file. The name defaults to the file name without its
// extension.
func (l *Loader) VIP(path string) (vip.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vip.Config{}, fmt.Errorf("config: %w", err)
	}
	var c vip.Config
	if err := l.decode(path, data, VIPDef, &c); err != nil {
		return vip.Config{}, err
	}
	if c.Name == "" {
		c.Name = Stem(path)
	}
	return c, nil
}

// VIPs loads every VIP file in order.
func (l *Loader) VIPs(paths ...string) ([]vip.Config, error) {
	out := make([]vip.Config, 0, len(paths))
	for _, path := range paths {
		c, err := l.VIP(path)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (l *Loader) decode(path string, data []byte, def string, out any) error {
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if err := l.schema.Validate(def, raw); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
