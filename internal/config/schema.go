package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// Definitions in schema.cue.
const (
	ProjectDef   = "#Project"
	InstancesDef = "#Instances"
	VIPDef       = "#VIP"
)

// Schema checks decoded configuration against the embedded CUE schema before
// it is bound to Go types.
type Schema struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewSchema compiles the embedded schema.
func NewSchema() (*Schema, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Schema{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate unifies data with definition def and reports every violation.
func (s *Schema) Validate(def string, data any) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}

	dataValue := s.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling data as CUE: %w", dataValue.Err())
	}

	defValue := s.schema.LookupPath(cue.ParsePath(def))
	if defValue.Err() != nil {
		return fmt.Errorf("looking up %s definition: %w", def, defValue.Err())
	}

	unified := defValue.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var msgs []string
		for _, e := range errors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}
	return nil
}
