package render

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/pipeline"
)

// DumpModel writes m as YAML.
func DumpModel(w io.Writer, m *pipeline.Model) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("render: encode model: %w", err)
	}
	return enc.Close()
}

// DumpModelFile writes m as YAML to path.
func DumpModelFile(path string, m *pipeline.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := DumpModel(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
