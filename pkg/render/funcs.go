package render

import (
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/hdl"
)

func funcMap() template.FuncMap {
	f := sprig.TxtFuncMap()
	f["dims"] = dims
	f["decl"] = decl
	return f
}

// dims formats ranges as consecutive SystemVerilog dimensions, "[7:0][3:0]".
func dims(ranges []hdl.Range) string {
	var b strings.Builder
	for _, r := range ranges {
		b.WriteString(r.String())
	}
	return b.String()
}

// decl formats "<kind> <dims> <name>", leaving out empty dimensions.
func decl(kind string, ranges []hdl.Range, name string) string {
	if d := dims(ranges); d != "" {
		return kind + " " + d + " " + name
	}
	return kind + " " + name
}
