// Package source loads the design under test from a hardware description
// file, picking the SystemVerilog or VHDL front end from the file extension.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl/sv"
	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl/vhdl"
)

// Language identifies a hardware description language.
type Language int

const (
	SystemVerilog Language = iota
	VHDL
)

// String returns the language name.
func (l Language) String() string {
	if l == VHDL {
		return "VHDL"
	}
	return "SystemVerilog"
}

// Detect guesses the language of a file from its extension. Unknown
// extensions are treated as SystemVerilog.
func Detect(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vhd", ".vhdl":
		return VHDL
	default:
		return SystemVerilog
	}
}

// ParseFile parses path and returns the module called name. An empty name
// selects the first module (entity) declared in the file.
func ParseFile(path, name string) (*hdl.Module, error) {
	switch Detect(path) {
	case VHDL:
		return parseVHDL(path, name)
	default:
		return parseSV(path, name)
	}
}

// ModuleNames lists the modules (entities) declared in path.
func ModuleNames(path string) ([]string, error) {
	var names []string
	switch Detect(path) {
	case VHDL:
		file, err := parseVHDLFile(path)
		if err != nil {
			return nil, err
		}
		for _, e := range file.Entities() {
			names = append(names, e.Name)
		}
	default:
		file, err := parseSVFile(path)
		if err != nil {
			return nil, err
		}
		for _, m := range file.Modules() {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

func parseSVFile(path string) (*sv.File, error) {
	parser, err := sv.NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file, nil
}

func parseSV(path, name string) (*hdl.Module, error) {
	file, err := parseSVFile(path)
	if err != nil {
		return nil, err
	}
	for _, m := range file.Modules() {
		if name == "" || m.Name == name {
			return m.Module()
		}
	}
	return nil, notFound(path, name)
}

func parseVHDLFile(path string) (*vhdl.File, error) {
	parser, err := vhdl.NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file, nil
}

func parseVHDL(path, name string) (*hdl.Module, error) {
	file, err := parseVHDLFile(path)
	if err != nil {
		return nil, err
	}
	for _, e := range file.Entities() {
		// VHDL identifiers are case-insensitive
		if name == "" || strings.EqualFold(e.Name, name) {
			return e.Module()
		}
	}
	return nil, notFound(path, name)
}

func notFound(path, name string) error {
	if name == "" {
		return fmt.Errorf("no module declared in %s", path)
	}
	return fmt.Errorf("module %s not found in %s", name, path)
}
