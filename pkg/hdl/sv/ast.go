package sv

// File is a SystemVerilog source. Only module headers are modelled; every
// other top-level token is skipped.
type File struct {
	Items []*Item `@@*`
}

// Item is either a module declaration or a skipped token.
type Item struct {
	Module *Module `  @@`
	Skip   *string `| ( @!( "module" | "macromodule" ) | @( "module" | "macromodule" ) )`
}

// Module represents a module declaration with an ANSI port list
// Example: module fifo #(parameter W = 8) (input logic clk, output logic [W-1:0] q); ... endmodule
type Module struct {
	Keyword  string    `@( "module" | "macromodule" )`
	Lifetime string    `@( "static" | "automatic" )?`
	Name     string    `@Ident`
	Imports  []*Import `@@*`
	Params   *Group    `( "#" @@ )?`
	Ports    []*Port   `( "(" ( @@ ( "," @@ )* )? ")" )? ";"`
	Body     []string  `( @!"endmodule" )*`
	EndLabel string    `"endmodule" ( ":" @Ident )?`
}

// Import is a package import in the module header.
type Import struct {
	Items []string `"import" ( @!";" )+ ";"`
}

// Port is a single ANSI port declaration. The parts after the direction and
// kind keywords are an optional type name, packed ranges, the port name and
// unpacked ranges, told apart after parsing.
type Port struct {
	Direction string      `@( "input" | "output" | "inout" | "ref" )?`
	Kinds     []string    `@( "wire" | "reg" | "logic" | "bit" | "byte" | "shortint" | "int" | "longint" | "integer" | "time" | "tri" | "tri0" | "tri1" | "wand" | "wor" | "uwire" | "var" | "signed" | "unsigned" )*`
	Parts     []*PortPart `@@+`
	Default   *Expr       `( "=" @@ )?`
}

// PortPart is an identifier (optionally with a modport) or a range.
type PortPart struct {
	Range   *Range  `  @@`
	Ident   *string `| @Ident`
	Modport *string `  ( "." @Ident )?`
}

// Range is a [high:low] dimension. The bounds are kept as raw tokens and
// evaluated later against the module parameters.
type Range struct {
	High []string `"[" ( @!( ":" | "]" ) )+`
	Low  []string `":" ( @!"]" )+ "]"`
}

// Expr is a default value expression, kept only to be skipped over.
type Expr struct {
	Items []*ExprItem `@@+`
}

// ExprItem is one token or parenthesised group of an expression.
type ExprItem struct {
	Group *Group  `  @@`
	Token *string `| @!( "," | "(" | ")" )`
}

// Group is a balanced parenthesised token sequence.
type Group struct {
	Items []*GroupItem `"(" @@* ")"`
}

// GroupItem is a nested group or a single token.
type GroupItem struct {
	Nested *Group  `  @@`
	Token  *string `| @!( "(" | ")" )`
}

// Tokens flattens the group, including its own parentheses.
func (g *Group) Tokens() []string {
	tokens := []string{"("}
	for _, item := range g.Items {
		if item.Nested != nil {
			tokens = append(tokens, item.Nested.Tokens()...)
		} else if item.Token != nil {
			tokens = append(tokens, *item.Token)
		}
	}
	return append(tokens, ")")
}

// Modules returns all module declarations in the file.
func (f *File) Modules() []*Module {
	var modules []*Module
	for _, item := range f.Items {
		if item.Module != nil {
			modules = append(modules, item.Module)
		}
	}
	return modules
}
